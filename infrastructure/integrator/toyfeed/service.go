package toyfeed

import (
	"context"
	"strconv"

	feeddomain "github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed/domain"
	"github.com/vfg2006/toystore-admin-api/infrastructure/integrator/toyfeed/feedclient"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

type FeedIntegrator interface {
	GetClients(ctx context.Context) ([]domain.Client, error)
}

type FeedService struct {
	Client feedclient.Client
}

func New(client feedclient.Client) FeedIntegrator {
	return &FeedService{
		Client: client,
	}
}

func (s *FeedService) GetClients(ctx context.Context) ([]domain.Client, error) {
	feed, err := s.Client.GetFeed(ctx)
	if err != nil {
		return nil, err
	}

	return Normalize(feed), nil
}

// Normalize converte o feed bruto em clientes planos, na mesma ordem do feed.
// O ID é a posição no feed começando em 1. Vendas ausentes viram lista vazia
// e campos extras são ignorados.
func Normalize(feed *feeddomain.RawFeed) []domain.Client {
	if feed == nil {
		return []domain.Client{}
	}

	clients := make([]domain.Client, 0, len(feed.Data.Clientes))
	for i, raw := range feed.Data.Clientes {
		vendas := make([]domain.Sale, 0)
		if raw.Estatisticas != nil {
			for _, venda := range raw.Estatisticas.Vendas {
				vendas = append(vendas, domain.Sale{
					Data:  venda.Data,
					Valor: venda.Valor,
				})
			}
		}

		clients = append(clients, domain.Client{
			ID:           strconv.Itoa(i + 1),
			NomeCompleto: raw.Info.NomeCompleto,
			Email:        raw.Info.Detalhes.Email,
			Nascimento:   raw.Info.Detalhes.Nascimento,
			Vendas:       vendas,
		})
	}

	return clients
}
