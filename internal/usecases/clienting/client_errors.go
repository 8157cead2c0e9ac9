package clienting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de clientes
var (
	ErrClientNotFound    = errors.New("cliente não encontrado")
	ErrClientIDRequired  = errors.New("ID do cliente é obrigatório")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ClientError é um erro com contexto adicional para clientes
type ClientError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ClientID string // ID do cliente envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ClientError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ClientError) Unwrap() error {
	return e.Err
}

func NewClientError(err error, code string, details string) *ClientError {
	return &ClientError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewClientErrorWithID cria um novo ClientError com o ID do cliente
func NewClientErrorWithID(err error, code string, clientID string, details string) *ClientError {
	return &ClientError{
		Err:      err,
		Code:     code,
		ClientID: clientID,
		Details:  details,
	}
}

// IsNotFound verifica se o erro indica um cliente inexistente
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound)
}
