package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/internal/api/handler"
	"github.com/vfg2006/toystore-admin-api/internal/api/handler/router"
	"github.com/vfg2006/toystore-admin-api/internal/config"
	"github.com/vfg2006/toystore-admin-api/internal/scheduler"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/clienting"
	"github.com/vfg2006/toystore-admin-api/pkg/metrics"
	"github.com/vfg2006/toystore-admin-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
	cleanups   []func() error
}

// ServerOption registra recursos que precisam ser liberados no desligamento
type ServerOption func(s *Server)

func WithCleanup(cleanup func() error) ServerOption {
	return func(s *Server) {
		s.cleanups = append(s.cleanups, cleanup)
	}
}

func New(
	config *config.Config,
	clientService clienting.ClientService,
	authenticator authenticating.Authenticator,
	snapshotRepo repository.ReportSnapshotRepository,
	reportSnapshotSyncService *scheduler.ReportSnapshotSyncService,
	collector *metrics.PrometheusCollector,
	opts ...ServerOption,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		ReportSnapshotSyncService: reportSnapshotSyncService,
	}

	rt := router.New(
		router.WithMetrics(collector),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(collector.Handler())...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Clients(clientService)...),
		router.WithRoutes(handler.Statistics(clientService)...),
		router.WithRoutes(handler.Reports(snapshotRepo)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CorsAllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(srv)
	}

	return srv, nil
}

// Handler expõe o handler HTTP completo, com todos os middlewares
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")

	logrus.Info("Executando operações de limpeza")
	for _, cleanup := range s.cleanups {
		if err := cleanup(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso")
		}
	}

	return nil
}
