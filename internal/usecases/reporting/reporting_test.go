package reporting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

func sale(data string, valor int64) domain.Sale {
	return domain.Sale{Data: data, Valor: decimal.NewFromInt(valor)}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "esperado %s, obtido %s", expected, actual)
}

func scenarioClients() []domain.Client {
	return []domain.Client{
		{
			ID:           "1",
			NomeCompleto: "Cliente A",
			Vendas:       []domain.Sale{sale("2024-01-01", 100), sale("2024-01-01", 50)},
		},
		{
			ID:           "2",
			NomeCompleto: "Cliente B",
			Vendas:       []domain.Sale{sale("2024-01-02", 200)},
		},
	}
}

func TestCalculateClientStats(t *testing.T) {
	tests := []struct {
		name          string
		vendas        []domain.Sale
		total         string
		media         string
		diasComVendas int
		ultimaCompra  *string
	}{
		{
			name:          "Cliente sem vendas - média zero e sem última compra",
			vendas:        nil,
			total:         "0",
			media:         "0",
			diasComVendas: 0,
		},
		{
			name:          "Vendas no mesmo dia contam um único dia",
			vendas:        []domain.Sale{sale("2024-01-01", 100), sale("2024-01-01", 50)},
			total:         "150",
			media:         "75",
			diasComVendas: 1,
			ultimaCompra:  strPtr("2024-01-01"),
		},
		{
			name:          "Última compra é a maior data independente da ordem",
			vendas:        []domain.Sale{sale("2024-01-05", 200), sale("2024-01-10", 75), sale("2024-01-02", 50)},
			total:         "325",
			media:         "108.3333333333333333",
			diasComVendas: 3,
			ultimaCompra:  strPtr("2024-01-10"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateClientStats(domain.Client{ID: "1", Vendas: tt.vendas})

			assertDecimal(t, tt.total, stats.TotalVendas)
			assertDecimal(t, tt.media, stats.MediaVendas)
			assert.Equal(t, tt.diasComVendas, stats.DiasComVendas)
			assert.Equal(t, tt.ultimaCompra, stats.UltimaCompra)
			assert.LessOrEqual(t, stats.DiasComVendas, len(tt.vendas))
		})
	}
}

func TestCalculateClientStats_DoesNotReorderSales(t *testing.T) {
	client := domain.Client{
		ID:     "1",
		Vendas: []domain.Sale{sale("2024-01-01", 10), sale("2024-01-03", 30), sale("2024-01-02", 20)},
	}
	before := client.Copy().Vendas

	stats := CalculateClientStats(client)

	require.NotNil(t, stats.UltimaCompra)
	assert.Equal(t, "2024-01-03", *stats.UltimaCompra)
	assert.Equal(t, before, client.Vendas)
}

func TestCalculateClientStats_TotalIsExact(t *testing.T) {
	client := domain.Client{
		ID: "1",
		Vendas: []domain.Sale{
			{Data: "2024-01-01", Valor: decimal.RequireFromString("0.10")},
			{Data: "2024-01-02", Valor: decimal.RequireFromString("0.20")},
			{Data: "2024-01-03", Valor: decimal.RequireFromString("0.30")},
		},
	}

	for i := 0; i < 3; i++ {
		assertDecimal(t, "0.60", CalculateClientStats(client).TotalVendas)
	}
}

func TestDailySales(t *testing.T) {
	clients := append(scenarioClients(), domain.Client{ID: "3", NomeCompleto: "Sem vendas"})

	daily := DailySales(clients)

	require.Len(t, daily, 2)
	assert.Equal(t, "2024-01-01", daily[0].Data)
	assertDecimal(t, "150", daily[0].Total)
	assert.Equal(t, "2024-01-02", daily[1].Data)
	assertDecimal(t, "200", daily[1].Total)
}

func TestDailySales_SortedAndSummedAcrossClients(t *testing.T) {
	clients := []domain.Client{
		{ID: "1", Vendas: []domain.Sale{sale("2024-01-10", 75), sale("2024-01-01", 150)}},
		{ID: "2", Vendas: []domain.Sale{sale("2024-01-01", 25), sale("2024-01-05", 10)}},
	}

	daily := DailySales(clients)

	require.Len(t, daily, 3)
	for i := 1; i < len(daily); i++ {
		assert.Less(t, daily[i-1].Data, daily[i].Data)
	}
	assertDecimal(t, "175", daily[0].Total)
	assertDecimal(t, "10", daily[1].Total)
	assertDecimal(t, "75", daily[2].Total)
}

func TestDailySales_Empty(t *testing.T) {
	assert.Empty(t, DailySales(nil))
	assert.Empty(t, DailySales([]domain.Client{{ID: "1"}}))
}

func TestTopClients(t *testing.T) {
	tests := []struct {
		name       string
		clients    []domain.Client
		volume     string
		media      string
		frequencia string
	}{
		{
			name:       "Cenário com dois clientes - B tem maior volume e média",
			clients:    scenarioClients(),
			volume:     "2",
			media:      "2",
			frequencia: "1",
		},
		{
			name: "Empate mantém o primeiro cliente da lista",
			clients: []domain.Client{
				{ID: "1", Vendas: []domain.Sale{sale("2024-01-01", 100)}},
				{ID: "2", Vendas: []domain.Sale{sale("2024-01-02", 100)}},
			},
			volume:     "1",
			media:      "1",
			frequencia: "1",
		},
		{
			name: "Cliente pode vencer mais de uma categoria",
			clients: []domain.Client{
				{ID: "1", Vendas: []domain.Sale{sale("2024-01-01", 10)}},
				{ID: "2", Vendas: []domain.Sale{sale("2024-01-02", 300), sale("2024-01-03", 300)}},
			},
			volume:     "2",
			media:      "2",
			frequencia: "2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := TopClients(tt.clients)

			require.NotNil(t, top.MaiorVolume)
			require.NotNil(t, top.MaiorMedia)
			require.NotNil(t, top.MaiorFrequencia)
			assert.Equal(t, tt.volume, top.MaiorVolume.ID)
			assert.Equal(t, tt.media, top.MaiorMedia.ID)
			assert.Equal(t, tt.frequencia, top.MaiorFrequencia.ID)
		})
	}
}

func TestTopClients_NilWhenEveryoneIsZero(t *testing.T) {
	top := TopClients([]domain.Client{{ID: "1"}, {ID: "2", Vendas: []domain.Sale{}}})

	assert.Nil(t, top.MaiorVolume)
	assert.Nil(t, top.MaiorMedia)
	assert.Nil(t, top.MaiorFrequencia)

	assert.Equal(t, domain.TopClients{}, TopClients(nil))
}

func TestSummary(t *testing.T) {
	clients := append(scenarioClients(),
		domain.Client{ID: "3"},
		domain.Client{ID: "4", Vendas: []domain.Sale{sale("2024-01-03", 450), sale("2024-01-04", 100)}},
	)

	summary := Summary(clients)

	assert.Equal(t, 4, summary.TotalClientes)
	assert.Equal(t, 3, summary.ClientesAtivos)
	assert.Equal(t, 1, summary.ClientesVip)
	assert.Equal(t, 5, summary.TotalPedidos)
	assertDecimal(t, "900", summary.ReceitaTotal)
}

func TestRankClients(t *testing.T) {
	clients := append(scenarioClients(), domain.Client{ID: "3"})

	ranking := RankClients(clients)

	require.Len(t, ranking, 2)
	assert.Equal(t, 1, ranking[0].Posicao)
	assert.Equal(t, "2", ranking[0].Cliente.ID)
	assert.Equal(t, 2, ranking[1].Posicao)
	assert.Equal(t, "1", ranking[1].Cliente.ID)
	assertDecimal(t, "150", ranking[1].Stats.TotalVendas)
}

func strPtr(s string) *string {
	return &s
}
