package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequenceIDs) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return "novo-" + strconv.Itoa(s.next)
}

func seedClients() []domain.Client {
	return []domain.Client{
		{
			ID:           "1",
			NomeCompleto: "Ana Beatriz Silva",
			Email:        "ana.b@example.com",
			Nascimento:   "1992-05-01",
			Vendas: []domain.Sale{
				{Data: "2024-01-01", Valor: decimal.NewFromInt(150)},
				{Data: "2024-01-02", Valor: decimal.NewFromInt(50)},
			},
		},
		{
			ID:           "2",
			NomeCompleto: "Roberto Silva",
			Email:        "roberto.silva@example.com",
			Nascimento:   "1985-11-30",
			Vendas:       []domain.Sale{},
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func TestMemoryClientRepository_ListClients(t *testing.T) {
	repo := NewMemoryClientRepository(seedClients(), &sequenceIDs{})

	clients, err := repo.ListClients(context.Background())

	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "1", clients[0].ID)
	assert.Equal(t, "2", clients[1].ID)
}

func TestMemoryClientRepository_ReturnsCopies(t *testing.T) {
	seed := seedClients()
	repo := NewMemoryClientRepository(seed, &sequenceIDs{})

	// Alterar a semente depois de criar o repositório não afeta a coleção
	seed[0].NomeCompleto = "Alterado"

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	clients[0].Vendas[0].Data = "1999-01-01"
	clients[0].Email = "outro@example.com"

	stored, err := repo.GetClientByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Beatriz Silva", stored.NomeCompleto)
	assert.Equal(t, "ana.b@example.com", stored.Email)
	assert.Equal(t, "2024-01-01", stored.Vendas[0].Data)
}

func TestMemoryClientRepository_CreateClient(t *testing.T) {
	repo := NewMemoryClientRepository(seedClients(), &sequenceIDs{})

	created, err := repo.CreateClient(context.Background(), domain.CreateClientRequest{
		NomeCompleto: "Fernanda Costa",
		Email:        "fernanda.costa@example.com",
		Nascimento:   "1988-07-25",
	})

	require.NoError(t, err)
	assert.Equal(t, "novo-1", created.ID)
	assert.NotNil(t, created.Vendas)
	assert.Empty(t, created.Vendas)

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, *created, clients[2])
}

func TestMemoryClientRepository_UpdateClient(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		req      domain.UpdateClientRequest
		wantErr  error
		validate func(t *testing.T, client *domain.Client)
	}{
		{
			name: "Atualiza apenas os campos informados",
			id:   "1",
			req:  domain.UpdateClientRequest{Email: strPtr("ana.nova@example.com")},
			validate: func(t *testing.T, client *domain.Client) {
				assert.Equal(t, "Ana Beatriz Silva", client.NomeCompleto)
				assert.Equal(t, "ana.nova@example.com", client.Email)
				assert.Equal(t, "1992-05-01", client.Nascimento)
				assert.Len(t, client.Vendas, 2)
			},
		},
		{
			name: "Atualiza todos os campos",
			id:   "2",
			req: domain.UpdateClientRequest{
				NomeCompleto: strPtr("Roberto Silva Jr"),
				Email:        strPtr("rob@example.com"),
				Nascimento:   strPtr("1986-01-01"),
			},
			validate: func(t *testing.T, client *domain.Client) {
				assert.Equal(t, "Roberto Silva Jr", client.NomeCompleto)
				assert.Equal(t, "rob@example.com", client.Email)
				assert.Equal(t, "1986-01-01", client.Nascimento)
			},
		},
		{
			name:    "Cliente inexistente",
			id:      "99",
			req:     domain.UpdateClientRequest{Email: strPtr("x@example.com")},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMemoryClientRepository(seedClients(), &sequenceIDs{})
			before, err := repo.ListClients(context.Background())
			require.NoError(t, err)

			client, err := repo.UpdateClient(context.Background(), tt.id, tt.req)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, client)

				after, err := repo.ListClients(context.Background())
				require.NoError(t, err)
				assert.Equal(t, before, after)
				return
			}

			require.NoError(t, err)
			tt.validate(t, client)

			stored, err := repo.GetClientByID(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, client, stored)
		})
	}
}

func TestMemoryClientRepository_DeleteClient(t *testing.T) {
	repo := NewMemoryClientRepository(seedClients(), &sequenceIDs{})

	require.NoError(t, repo.DeleteClient(context.Background(), "1"))

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "2", clients[0].ID)

	_, err = repo.GetClientByID(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryClientRepository_DeleteClient_NotFound(t *testing.T) {
	repo := NewMemoryClientRepository(seedClients(), &sequenceIDs{})
	before, err := repo.ListClients(context.Background())
	require.NoError(t, err)

	err = repo.DeleteClient(context.Background(), "99")

	assert.ErrorIs(t, err, ErrNotFound)
	after, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryClientRepository_IDsStayStableAfterDelete(t *testing.T) {
	repo := NewMemoryClientRepository(seedClients(), &sequenceIDs{})

	require.NoError(t, repo.DeleteClient(context.Background(), "1"))

	// O cliente "2" continua acessível pelo mesmo ID mesmo mudando de posição
	client, err := repo.GetClientByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Roberto Silva", client.NomeCompleto)

	_, err = repo.UpdateClient(context.Background(), "2", domain.UpdateClientRequest{NomeCompleto: strPtr("Roberto")})
	require.NoError(t, err)
}

func TestMemoryClientRepository_ImportClients(t *testing.T) {
	repo := NewMemoryClientRepository(nil, &sequenceIDs{})

	require.NoError(t, repo.ImportClients(context.Background(), seedClients()))
	assert.Error(t, repo.ImportClients(context.Background(), seedClients()[:1]))

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestMemoryClientRepository_ConcurrentCreates(t *testing.T) {
	repo := NewMemoryClientRepository(nil, &sequenceIDs{})

	const total = 50
	wg := sync.WaitGroup{}
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateClient(context.Background(), domain.CreateClientRequest{
				NomeCompleto: "Cliente " + strconv.Itoa(i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, total)

	ids := make(map[string]struct{}, total)
	for _, client := range clients {
		ids[client.ID] = struct{}{}
	}
	assert.Len(t, ids, total)
}
