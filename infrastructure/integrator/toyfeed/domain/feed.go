// Package feeddomain descreve o formato bruto do feed de clientes da loja.
// O formato é irregular de propósito: dados aninhados, campos opcionais e
// campos duplicados que não têm significado.
package feeddomain

import "github.com/shopspring/decimal"

type RawFeed struct {
	Data       RawData `json:"data"`
	Meta       Meta    `json:"meta"`
	Redundante any     `json:"redundante,omitempty"`
}

type RawData struct {
	Clientes []RawClient `json:"clientes"`
}

type RawClient struct {
	Info         Info          `json:"info"`
	Estatisticas *Estatisticas `json:"estatisticas,omitempty"`
	Duplicado    any           `json:"duplicado,omitempty"`
}

type Info struct {
	NomeCompleto string   `json:"nomeCompleto"`
	Detalhes     Detalhes `json:"detalhes"`
}

type Detalhes struct {
	Email      string `json:"email"`
	Nascimento string `json:"nascimento"`
}

type Estatisticas struct {
	Vendas []RawSale `json:"vendas"`
}

type RawSale struct {
	Data  string          `json:"data"`
	Valor decimal.Decimal `json:"valor"`
}

type Meta struct {
	RegistroTotal int `json:"registroTotal"`
	Pagina        int `json:"pagina"`
}
