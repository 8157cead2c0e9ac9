// Package reporting calcula as métricas de vendas a partir da lista de clientes.
// Todas as funções são puras: nada é armazenado e a lista recebida não é alterada.
package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

// VIPThreshold é o total de compras a partir do qual o cliente é considerado VIP
var VIPThreshold = decimal.NewFromInt(500)

// CalculateClientStats calcula total, média, dias distintos com venda e a
// data da compra mais recente de um cliente
func CalculateClientStats(client domain.Client) domain.ClientStats {
	stats := domain.ClientStats{
		TotalVendas: decimal.Zero,
		MediaVendas: decimal.Zero,
	}

	if len(client.Vendas) == 0 {
		return stats
	}

	days := make(map[string]struct{}, len(client.Vendas))
	for _, venda := range client.Vendas {
		stats.TotalVendas = stats.TotalVendas.Add(venda.Valor)
		days[venda.Data] = struct{}{}
	}

	stats.MediaVendas = stats.TotalVendas.Div(decimal.NewFromInt(int64(len(client.Vendas))))
	stats.DiasComVendas = len(days)

	// Ordena uma cópia para não alterar a ordem das vendas do cliente
	sorted := make([]domain.Sale, len(client.Vendas))
	copy(sorted, client.Vendas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Data > sorted[j].Data
	})

	ultimaCompra := sorted[0].Data
	stats.UltimaCompra = &ultimaCompra

	return stats
}

// DailySales soma as vendas de todos os clientes por dia, em ordem crescente de data
func DailySales(clients []domain.Client) []domain.DailySales {
	totals := make(map[string]decimal.Decimal)
	for _, client := range clients {
		for _, venda := range client.Vendas {
			current, exists := totals[venda.Data]
			if !exists {
				current = decimal.Zero
			}
			totals[venda.Data] = current.Add(venda.Valor)
		}
	}

	dailySales := make([]domain.DailySales, 0, len(totals))
	for data, total := range totals {
		dailySales = append(dailySales, domain.DailySales{
			Data:  data,
			Total: total,
		})
	}

	// Datas em YYYY-MM-DD ordenam corretamente como string
	sort.Slice(dailySales, func(i, j int) bool {
		return dailySales[i].Data < dailySales[j].Data
	})

	return dailySales
}

// TopClients encontra o cliente com maior volume, maior média e maior
// frequência. Em caso de empate vence o primeiro da lista.
func TopClients(clients []domain.Client) domain.TopClients {
	var top domain.TopClients

	maxVolume := decimal.Zero
	maxMedia := decimal.Zero
	maxFrequencia := 0

	for i := range clients {
		stats := CalculateClientStats(clients[i])

		if stats.TotalVendas.GreaterThan(maxVolume) {
			maxVolume = stats.TotalVendas
			top.MaiorVolume = &clients[i]
		}

		if stats.MediaVendas.GreaterThan(maxMedia) {
			maxMedia = stats.MediaVendas
			top.MaiorMedia = &clients[i]
		}

		if stats.DiasComVendas > maxFrequencia {
			maxFrequencia = stats.DiasComVendas
			top.MaiorFrequencia = &clients[i]
		}
	}

	return top
}

// Summary consolida os números exibidos no painel
func Summary(clients []domain.Client) domain.SalesSummary {
	summary := domain.SalesSummary{
		TotalClientes: len(clients),
		ReceitaTotal:  decimal.Zero,
	}

	for _, client := range clients {
		summary.TotalPedidos += len(client.Vendas)
		if len(client.Vendas) > 0 {
			summary.ClientesAtivos++
		}

		if CalculateClientStats(client).TotalVendas.GreaterThan(VIPThreshold) {
			summary.ClientesVip++
		}
	}

	for _, day := range DailySales(clients) {
		summary.ReceitaTotal = summary.ReceitaTotal.Add(day.Total)
	}

	return summary
}

// RankClients ordena os clientes com vendas pelo total comprado, do maior para o menor
func RankClients(clients []domain.Client) []domain.ClientRankingItem {
	ranking := make([]domain.ClientRankingItem, 0, len(clients))
	for _, client := range clients {
		if len(client.Vendas) == 0 {
			continue
		}

		ranking = append(ranking, domain.ClientRankingItem{
			Cliente: client,
			Stats:   CalculateClientStats(client),
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Stats.TotalVendas.GreaterThan(ranking[j].Stats.TotalVendas)
	})

	for i := range ranking {
		ranking[i].Posicao = i + 1
	}

	return ranking
}
