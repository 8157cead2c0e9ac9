package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed"
	"github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed/feedclient"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/internal/api"
	"github.com/vfg2006/toystore-admin-api/internal/config"
	"github.com/vfg2006/toystore-admin-api/internal/scheduler"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/clienting"
	"github.com/vfg2006/toystore-admin-api/pkg/log"
	"github.com/vfg2006/toystore-admin-api/pkg/metrics"
	"github.com/vfg2006/toystore-admin-api/pkg/utils"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.SetLevel(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var serverOpts []api.ServerOption

	clientRepo, cleanup := clientRepository(ctx, cfg)
	if cleanup != nil {
		serverOpts = append(serverOpts, api.WithCleanup(cleanup))
	}

	admin, err := authenticating.NewAdminUser(cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	userRepo := repository.NewUserRepository(admin)
	snapshotRepo := repository.NewReportSnapshotRepository()

	authenticator := authenticating.NewService(userRepo, cfg)
	clientService := clienting.NewService(clientRepo, cfg)

	collector := metrics.NewPrometheusCollector()

	reportSnapshotSyncService := scheduler.NewReportSnapshotSyncService(
		clientRepo,
		snapshotRepo,
		collector,
		cfg,
	)

	if err := reportSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
	} else {
		logrus.Info("Agendador de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		clientService,
		authenticator,
		snapshotRepo,
		reportSnapshotSyncService,
		collector,
		serverOpts...,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// clientRepository escolhe o armazenamento de clientes conforme DATABASE_DRIVER.
// Em memória, a coleção é carregada do feed na inicialização.
func clientRepository(ctx context.Context, cfg *config.Config) (repository.ClientRepository, func() error) {
	ids := utils.NewTimestampIDGenerator()

	if cfg.Database.Driver == config.DatabaseDriverPostgres {
		conn := pgconn(ctx, cfg.Database)
		return repository.NewClientRepository(conn, ids), conn.Close
	}

	feedIntegrator := toyfeed.New(feedclient.NewClient(cfg))

	clients, err := feedIntegrator.GetClients(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o feed de clientes")
	}

	logrus.WithField("clientes", len(clients)).Info("Feed de clientes carregado em memória")

	return repository.NewMemoryClientRepository(clients, ids), nil
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
