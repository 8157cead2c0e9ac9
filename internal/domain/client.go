// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "github.com/shopspring/decimal"

func init() {
	// Valores monetários trafegam como número no JSON, não como string
	decimal.MarshalJSONWithoutQuotes = true
}

// Client é o registro normalizado de um cliente da loja
type Client struct {
	ID           string `json:"id"`
	NomeCompleto string `json:"nomeCompleto"`
	Email        string `json:"email"`
	Nascimento   string `json:"nascimento"` // Formato YYYY-MM-DD
	Vendas       []Sale `json:"vendas"`
}

// Sale é uma venda do cliente. Data no formato YYYY-MM-DD, valor em BRL.
type Sale struct {
	Data  string          `json:"data"`
	Valor decimal.Decimal `json:"valor"`
}

// Copy retorna uma cópia do cliente que não compartilha a lista de vendas
func (c Client) Copy() Client {
	vendas := make([]Sale, len(c.Vendas))
	copy(vendas, c.Vendas)
	c.Vendas = vendas
	return c
}

type CreateClientRequest struct {
	NomeCompleto string `json:"nomeCompleto"`
	Email        string `json:"email"`
	Nascimento   string `json:"nascimento"`
}

// UpdateClientRequest só altera os campos informados. Vendas não podem ser
// alteradas por aqui.
type UpdateClientRequest struct {
	NomeCompleto *string `json:"nomeCompleto"`
	Email        *string `json:"email"`
	Nascimento   *string `json:"nascimento"`
}

// Apply aplica os campos informados no cliente
func (r UpdateClientRequest) Apply(client *Client) {
	if r.NomeCompleto != nil {
		client.NomeCompleto = *r.NomeCompleto
	}

	if r.Email != nil {
		client.Email = *r.Email
	}

	if r.Nascimento != nil {
		client.Nascimento = *r.Nascimento
	}
}

// IsEmpty indica que nenhum campo foi informado
func (r UpdateClientRequest) IsEmpty() bool {
	return r.NomeCompleto == nil && r.Email == nil && r.Nascimento == nil
}
