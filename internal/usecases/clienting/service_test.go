package clienting

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/toystore-admin-api/internal/config"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
	"github.com/vfg2006/toystore-admin-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequenceIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return strconv.Itoa(100 + s.next)
}

func sale(data string, valor int64) domain.Sale {
	return domain.Sale{Data: data, Valor: decimal.NewFromInt(valor)}
}

func seedClients() []domain.Client {
	return []domain.Client{
		{
			ID:           "1",
			NomeCompleto: "Ana Beatriz Silva",
			Email:        "ana.b@example.com",
			Nascimento:   "1992-05-01",
			Vendas:       []domain.Sale{sale("2024-01-01", 150), sale("2024-01-02", 50)},
		},
		{
			ID:           "2",
			NomeCompleto: "Carlos Eduardo Gomes",
			Email:        "cadu@example.com",
			Nascimento:   "1987-08-15",
			Vendas:       []domain.Sale{sale("2024-01-01", 500), sale("2024-01-03", 100)},
		},
		{
			ID:           "3",
			NomeCompleto: "Roberto Silva",
			Email:        "roberto.silva@example.com",
			Nascimento:   "1985-11-30",
			Vendas:       []domain.Sale{},
		},
	}
}

func newMemoryService(t *testing.T) ClientService {
	t.Helper()
	repo := repository.NewMemoryClientRepository(seedClients(), &sequenceIDs{})
	return NewService(repo, &config.Config{})
}

func strPtr(s string) *string {
	return &s
}

func TestService_ListClients(t *testing.T) {
	tests := []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{name: "Sem filtro retorna todos na ordem", search: "", wantIDs: []string{"1", "2", "3"}},
		{name: "Filtra pelo nome sem diferenciar maiúsculas", search: "SILVA", wantIDs: []string{"1", "3"}},
		{name: "Filtra pelo email", search: "cadu@", wantIDs: []string{"2"}},
		{name: "Nenhum resultado", search: "zzz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newMemoryService(t)

			clients, err := service.ListClients(context.Background(), tt.search)

			require.NoError(t, err)
			ids := make([]string, 0, len(clients))
			for _, client := range clients {
				ids = append(ids, client.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_CreateThenList(t *testing.T) {
	service := newMemoryService(t)
	ctx := context.Background()

	created, err := service.CreateClient(ctx, domain.CreateClientRequest{
		NomeCompleto: "Fernanda Costa",
		Email:        "fernanda.costa@example.com",
		Nascimento:   "1988-07-25",
	})
	require.NoError(t, err)
	assert.Empty(t, created.Vendas)

	clients, err := service.ListClients(ctx, "")
	require.NoError(t, err)
	require.Len(t, clients, 4)
	assert.Equal(t, created.ID, clients[3].ID)
	assert.Equal(t, "Fernanda Costa", clients[3].NomeCompleto)
}

func TestService_UpdateClient(t *testing.T) {
	service := newMemoryService(t)
	ctx := context.Background()

	updated, err := service.UpdateClient(ctx, "1", domain.UpdateClientRequest{NomeCompleto: strPtr("Ana B. Silva")})

	require.NoError(t, err)
	assert.Equal(t, "Ana B. Silva", updated.NomeCompleto)
	assert.Equal(t, "ana.b@example.com", updated.Email)
	assert.Len(t, updated.Vendas, 2)

	// Vendas permanecem e as estatísticas continuam as mesmas
	stats, err := service.GetClientStats(ctx, "1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(stats.TotalVendas))
}

func TestService_NotFound(t *testing.T) {
	service := newMemoryService(t)
	ctx := context.Background()

	before, err := service.ListClients(ctx, "")
	require.NoError(t, err)

	_, err = service.UpdateClient(ctx, "99", domain.UpdateClientRequest{Email: strPtr("x@example.com")})
	assert.True(t, IsNotFound(err))

	err = service.DeleteClient(ctx, "99")
	assert.True(t, IsNotFound(err))

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, apiErrors.ErrClientNotFound, clientErr.Code)
	assert.Equal(t, "99", clientErr.ClientID)

	_, err = service.GetClient(ctx, "99")
	assert.True(t, IsNotFound(err))

	_, err = service.GetClientStats(ctx, "99")
	assert.True(t, IsNotFound(err))

	after, err := service.ListClients(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestService_DeleteClient(t *testing.T) {
	service := newMemoryService(t)
	ctx := context.Background()

	require.NoError(t, service.DeleteClient(ctx, "2"))

	clients, err := service.ListClients(ctx, "")
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "1", clients[0].ID)
	assert.Equal(t, "3", clients[1].ID)

	// O ranking reflete a remoção imediatamente
	top, err := service.GetTopClients(ctx)
	require.NoError(t, err)
	require.NotNil(t, top.MaiorVolume)
	assert.Equal(t, "1", top.MaiorVolume.ID)
}

func TestService_Statistics(t *testing.T) {
	service := newMemoryService(t)
	ctx := context.Background()

	daily, err := service.GetDailySales(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, "2024-01-01", daily[0].Data)
	assert.True(t, decimal.NewFromInt(650).Equal(daily[0].Total))

	top, err := service.GetTopClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", top.MaiorVolume.ID)
	assert.Equal(t, "2", top.MaiorMedia.ID)
	// Empate em dias distintos, vence o primeiro
	assert.Equal(t, "1", top.MaiorFrequencia.ID)

	summary, err := service.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalClientes)
	assert.Equal(t, 2, summary.ClientesAtivos)
	assert.Equal(t, 1, summary.ClientesVip)
	assert.Equal(t, 4, summary.TotalPedidos)
	assert.True(t, decimal.NewFromInt(800).Equal(summary.ReceitaTotal))

	ranking, err := service.GetRanking(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, "2", ranking[0].Cliente.ID)
	assert.Equal(t, 1, ranking[0].Posicao)
}

func TestService_RepositoryFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockClientRepository(ctrl)
	service := NewService(mockRepo, &config.Config{})
	ctx := context.Background()
	dbErr := errors.New("conexão recusada")

	tests := []struct {
		name  string
		setup func()
		call  func() error
	}{
		{
			name: "Falha ao listar",
			setup: func() {
				mockRepo.EXPECT().ListClients(gomock.Any()).Return(nil, dbErr)
			},
			call: func() error {
				_, err := service.ListClients(ctx, "")
				return err
			},
		},
		{
			name: "Falha ao criar",
			setup: func() {
				mockRepo.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil, dbErr)
			},
			call: func() error {
				_, err := service.CreateClient(ctx, domain.CreateClientRequest{NomeCompleto: "Teste"})
				return err
			},
		},
		{
			name: "Falha ao remover",
			setup: func() {
				mockRepo.EXPECT().DeleteClient(gomock.Any(), "1").Return(dbErr)
			},
			call: func() error {
				return service.DeleteClient(ctx, "1")
			},
		},
		{
			name: "Falha ao gerar resumo",
			setup: func() {
				mockRepo.EXPECT().ListClients(gomock.Any()).Return(nil, dbErr)
			},
			call: func() error {
				_, err := service.GetSummary(ctx)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			err := tt.call()

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDatabaseOperation)
			assert.False(t, IsNotFound(err))

			var clientErr *ClientError
			require.True(t, errors.As(err, &clientErr))
			assert.Equal(t, apiErrors.ErrDatabaseOperation, clientErr.Code)
		})
	}
}

func TestService_RequiresID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao repositório é esperada
	service := NewService(mocks.NewMockClientRepository(ctrl), &config.Config{})

	err := service.DeleteClient(context.Background(), "")
	assert.ErrorIs(t, err, ErrClientIDRequired)
}

func TestService_SimulatedLatencyHonoursCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockClientRepository(ctrl)
	service := NewService(mockRepo, &config.Config{
		Latency: config.Latency{Enabled: true, List: time.Hour},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.ListClients(ctx, "")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_SimulatedLatency(t *testing.T) {
	repo := repository.NewMemoryClientRepository(seedClients(), &sequenceIDs{})
	service := NewService(repo, &config.Config{
		Latency: config.Latency{Enabled: true, Delete: 20 * time.Millisecond},
	})

	start := time.Now()
	require.NoError(t, service.DeleteClient(context.Background(), "1"))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
