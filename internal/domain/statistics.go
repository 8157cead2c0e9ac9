package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStats são as métricas derivadas das vendas de um cliente.
// Nunca são persistidas.
type ClientStats struct {
	TotalVendas   decimal.Decimal `json:"totalVendas"`
	MediaVendas   decimal.Decimal `json:"mediaVendas"`
	DiasComVendas int             `json:"diasComVendas"`
	UltimaCompra  *string         `json:"ultimaCompra,omitempty"`
}

type DailySales struct {
	Data  string          `json:"data"`
	Total decimal.Decimal `json:"total"`
}

// TopClients aponta o melhor cliente em cada categoria. Nil quando nenhum
// cliente tem valor acima de zero na categoria.
type TopClients struct {
	MaiorVolume     *Client `json:"maiorVolume"`
	MaiorMedia      *Client `json:"maiorMedia"`
	MaiorFrequencia *Client `json:"maiorFrequencia"`
}

type SalesSummary struct {
	TotalClientes  int             `json:"totalClientes"`
	ClientesAtivos int             `json:"clientesAtivos"`
	ClientesVip    int             `json:"clientesVip"`
	TotalPedidos   int             `json:"totalPedidos"`
	ReceitaTotal   decimal.Decimal `json:"receitaTotal"`
}

type ClientRankingItem struct {
	Posicao int         `json:"posicao"`
	Cliente Client      `json:"cliente"`
	Stats   ClientStats `json:"stats"`
}

// ReportSnapshot é o registro periódico dos relatórios de vendas
type ReportSnapshot struct {
	ID          string       `json:"id"`
	Summary     SalesSummary `json:"summary"`
	TopClients  TopClients   `json:"topClients"`
	DailySales  []DailySales `json:"dailySales"`
	GeneratedAt time.Time    `json:"generated_at"`
}
