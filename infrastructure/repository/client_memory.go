package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

// memoryClientRepository mantém a coleção de clientes em memória durante a
// vida do processo. Alterações são serializadas pelo mutex e quem chama
// sempre recebe cópias, nunca os registros armazenados.
type memoryClientRepository struct {
	mu      sync.RWMutex
	clients []domain.Client
	ids     IDGenerator
}

func NewMemoryClientRepository(initial []domain.Client, ids IDGenerator) ClientRepository {
	clients := make([]domain.Client, 0, len(initial))
	for _, client := range initial {
		clients = append(clients, client.Copy())
	}

	return &memoryClientRepository{
		clients: clients,
		ids:     ids,
	}
}

func (r *memoryClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client.Copy())
	}

	return clients, nil
}

func (r *memoryClientRepository) GetClientByID(ctx context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	client := r.clients[i].Copy()
	return &client, nil
}

func (r *memoryClientRepository) CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client := domain.Client{
		ID:           r.ids.NextID(),
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		Nascimento:   req.Nascimento,
		Vendas:       make([]domain.Sale, 0),
	}

	if r.indexOf(client.ID) >= 0 {
		return nil, fmt.Errorf("ID de cliente já existe: %s", client.ID)
	}

	r.clients = append(r.clients, client)

	created := client.Copy()
	return &created, nil
}

func (r *memoryClientRepository) UpdateClient(ctx context.Context, id string, req domain.UpdateClientRequest) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	req.Apply(&r.clients[i])

	updated := r.clients[i].Copy()
	return &updated, nil
}

func (r *memoryClientRepository) DeleteClient(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	r.clients = append(r.clients[:i], r.clients[i+1:]...)
	return nil
}

func (r *memoryClientRepository) ImportClients(ctx context.Context, clients []domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(clients))
	for _, client := range clients {
		_, repeated := seen[client.ID]
		if repeated || r.indexOf(client.ID) >= 0 {
			return fmt.Errorf("ID de cliente já existe: %s", client.ID)
		}
		seen[client.ID] = struct{}{}
	}

	for _, client := range clients {
		r.clients = append(r.clients, client.Copy())
	}

	return nil
}

// indexOf assume que o mutex já está travado
func (r *memoryClientRepository) indexOf(id string) int {
	for i := range r.clients {
		if r.clients[i].ID == id {
			return i
		}
	}
	return -1
}
