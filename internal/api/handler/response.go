package handler

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/clienting"
	"github.com/vfg2006/toystore-admin-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// handleClientError traduz os erros do serviço de clientes para a resposta da API
func handleClientError(w http.ResponseWriter, err error) {
	var clientErr *clienting.ClientError
	if errors.As(err, &clientErr) {
		var details any
		if clientErr.ClientID != "" {
			details = map[string]string{"id": clientErr.ClientID}
		}
		apiErrors.WriteError(w, clientErr.Code, clientErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrRequestCanceled, "Requisição cancelada", nil)

	default:
		logrus.WithError(err).Error("Erro inesperado no serviço de clientes")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}
