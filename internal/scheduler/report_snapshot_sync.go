package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/internal/config"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/toystore-admin-api/pkg/metrics"
)

// ReportSnapshotSyncConfig representa a configuração do agendador de relatórios
type ReportSnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ReportSnapshotSyncService gera periodicamente o retrato dos relatórios de
// vendas e publica os números como métricas
type ReportSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              ReportSnapshotSyncConfig
	clientRepo          repository.ClientRepository
	snapshotRepo        repository.ReportSnapshotRepository
	collector           metrics.Collector
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	now                 func() time.Time
}

func NewReportSnapshotSyncService(
	clientRepo repository.ClientRepository,
	snapshotRepo repository.ReportSnapshotRepository,
	collector metrics.Collector,
	appConfig *config.Config,
) *ReportSnapshotSyncService {
	snapshotConfig := ReportSnapshotSyncConfig{
		CronSchedule: appConfig.ReportSnapshot.CronSchedule,
		SyncEnabled:  appConfig.ReportSnapshot.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
		"sync_enabled":  snapshotConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportSnapshotSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       snapshotConfig,
		clientRepo:   clientRepo,
		snapshotRepo: snapshotRepo,
		collector:    collector,
		now:          time.Now,
	}
}

// Start inicia o agendador
func (s *ReportSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Geração periódica de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ReportSnapshotSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatório já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	_, err := s.GenerateSnapshot(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
		s.lastSyncCompletedAt = s.now()
	}
	s.syncMutex.Unlock()
}

// GenerateSnapshot calcula os relatórios sobre a coleção atual, guarda o
// resultado e atualiza as métricas de negócio
func (s *ReportSnapshotSyncService) GenerateSnapshot(ctx context.Context) (*domain.ReportSnapshot, error) {
	startTime := time.Now()

	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar clientes para o relatório")
		s.collector.IncrementErrorCounter("report_snapshot")
		return nil, err
	}

	snapshot := &domain.ReportSnapshot{
		ID:          uuid.New().String(),
		Summary:     reporting.Summary(clients),
		TopClients:  reporting.TopClients(clients),
		DailySales:  reporting.DailySales(clients),
		GeneratedAt: s.now(),
	}

	if err := s.snapshotRepo.Save(snapshot); err != nil {
		logrus.WithError(err).Error("Erro ao salvar relatório")
		s.collector.IncrementErrorCounter("report_snapshot")
		return nil, err
	}

	s.publishMetrics(snapshot.Summary)

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"clientes":    snapshot.Summary.TotalClientes,
		"duration":    time.Since(startTime).String(),
	}).Info("Relatório de vendas gerado")

	return snapshot, nil
}

func (s *ReportSnapshotSyncService) publishMetrics(summary domain.SalesSummary) {
	receita, _ := summary.ReceitaTotal.Float64()

	s.collector.RecordBusinessMetric("total_clientes", float64(summary.TotalClientes))
	s.collector.RecordBusinessMetric("clientes_ativos", float64(summary.ClientesAtivos))
	s.collector.RecordBusinessMetric("clientes_vip", float64(summary.ClientesVip))
	s.collector.RecordBusinessMetric("total_pedidos", float64(summary.TotalPedidos))
	s.collector.RecordBusinessMetric("receita_total", receita)
}

// TriggerManualSync dispara a geração de um relatório fora do agendamento
func (s *ReportSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual de relatório")
	go s.runSync(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ReportSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
