package clienting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/internal/config"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/toystore-admin-api/pkg/apiErrors"
)

type ClientService interface {
	ListClients(ctx context.Context, search string) ([]domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, req domain.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	GetClientStats(ctx context.Context, id string) (*domain.ClientStats, error)
	GetDailySales(ctx context.Context) ([]domain.DailySales, error)
	GetTopClients(ctx context.Context) (*domain.TopClients, error)
	GetSummary(ctx context.Context) (*domain.SalesSummary, error)
	GetRanking(ctx context.Context) ([]domain.ClientRankingItem, error)
}

type Service struct {
	clientRepository repository.ClientRepository
	latency          config.Latency
}

func NewService(clientRepository repository.ClientRepository, cfg *config.Config) ClientService {
	return &Service{
		clientRepository: clientRepository,
		latency:          cfg.Latency,
	}
}

func (s *Service) ListClients(ctx context.Context, search string) ([]domain.Client, error) {
	if err := s.simulateLatency(ctx, s.latency.List); err != nil {
		return nil, err
	}

	clients, err := s.clientRepository.ListClients(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar clientes")
		return nil, NewClientError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar clientes")
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return clients, nil
	}

	filtered := make([]domain.Client, 0, len(clients))
	for _, client := range clients {
		if strings.Contains(strings.ToLower(client.NomeCompleto), search) ||
			strings.Contains(strings.ToLower(client.Email), search) {
			filtered = append(filtered, client)
		}
	}

	return filtered, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if id == "" {
		return nil, NewClientError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID do cliente")
	}

	client, err := s.clientRepository.GetClientByID(ctx, id)
	if err != nil {
		return nil, s.handleRepositoryError(err, id, "Falha ao buscar cliente")
	}

	return client, nil
}

func (s *Service) CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
	if err := s.simulateLatency(ctx, s.latency.Create); err != nil {
		return nil, err
	}

	client, err := s.clientRepository.CreateClient(ctx, req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar cliente")
		return nil, NewClientError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar cliente")
	}

	logrus.Infof("Cliente %s criado", client.ID)

	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, req domain.UpdateClientRequest) (*domain.Client, error) {
	if id == "" {
		return nil, NewClientError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID do cliente")
	}

	if err := s.simulateLatency(ctx, s.latency.Update); err != nil {
		return nil, err
	}

	client, err := s.clientRepository.UpdateClient(ctx, id, req)
	if err != nil {
		return nil, s.handleRepositoryError(err, id, "Falha ao atualizar cliente")
	}

	logrus.Infof("Cliente %s atualizado", id)

	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if id == "" {
		return NewClientError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID do cliente")
	}

	if err := s.simulateLatency(ctx, s.latency.Delete); err != nil {
		return err
	}

	if err := s.clientRepository.DeleteClient(ctx, id); err != nil {
		return s.handleRepositoryError(err, id, "Falha ao remover cliente")
	}

	logrus.Infof("Cliente %s removido", id)

	return nil
}

func (s *Service) GetClientStats(ctx context.Context, id string) (*domain.ClientStats, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := reporting.CalculateClientStats(*client)
	return &stats, nil
}

func (s *Service) GetDailySales(ctx context.Context) ([]domain.DailySales, error) {
	if err := s.simulateLatency(ctx, s.latency.DailySales); err != nil {
		return nil, err
	}

	clients, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return reporting.DailySales(clients), nil
}

func (s *Service) GetTopClients(ctx context.Context) (*domain.TopClients, error) {
	if err := s.simulateLatency(ctx, s.latency.TopClients); err != nil {
		return nil, err
	}

	clients, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	top := reporting.TopClients(clients)
	return &top, nil
}

func (s *Service) GetSummary(ctx context.Context) (*domain.SalesSummary, error) {
	clients, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summary := reporting.Summary(clients)
	return &summary, nil
}

func (s *Service) GetRanking(ctx context.Context) ([]domain.ClientRankingItem, error) {
	clients, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return reporting.RankClients(clients), nil
}

// snapshot lê a coleção atual sem o atraso simulado da listagem
func (s *Service) snapshot(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepository.ListClients(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar clientes para relatório")
		return nil, NewClientError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao carregar clientes")
	}

	return clients, nil
}

func (s *Service) handleRepositoryError(err error, id string, details string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NewClientErrorWithID(ErrClientNotFound, apiErrors.ErrClientNotFound, id, "Cliente "+id+" não encontrado")
	}

	logrus.WithError(err).WithField("client_id", id).Error(details)
	return NewClientErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, details)
}

func (s *Service) simulateLatency(ctx context.Context, d time.Duration) error {
	if !s.latency.Enabled || d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
