package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/clienting"
	"github.com/vfg2006/toystore-admin-api/pkg/apiErrors"
	"github.com/vfg2006/toystore-admin-api/pkg/utils"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// now é sobrescrito nos testes
var now = time.Now

func ListClients(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListClients")

		clients, err := service.ListClients(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, clients)
	}
}

func GetClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetClient")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		client, err := service.GetClient(r.Context(), id)
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, client)
	}
}

func CreateClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateClient")

		var req domain.CreateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.NomeCompleto = strings.TrimSpace(req.NomeCompleto)
		req.Email = strings.TrimSpace(req.Email)
		req.Nascimento = strings.TrimSpace(req.Nascimento)

		if code, fieldErrors := validateClientFields(&req.NomeCompleto, &req.Email, &req.Nascimento); len(fieldErrors) > 0 {
			apiErrors.WriteError(w, code, "Dados do cliente inválidos", fieldErrors)
			return
		}

		client, err := service.CreateClient(r.Context(), req)
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, client)
	}
}

func UpdateClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateClient")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.UpdateClientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.IsEmpty() {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe ao menos um campo para atualizar", nil)
			return
		}

		trimPtr(req.NomeCompleto)
		trimPtr(req.Email)
		trimPtr(req.Nascimento)

		if code, fieldErrors := validateClientFields(req.NomeCompleto, req.Email, req.Nascimento); len(fieldErrors) > 0 {
			apiErrors.WriteError(w, code, "Dados do cliente inválidos", fieldErrors)
			return
		}

		client, err := service.UpdateClient(r.Context(), id, req)
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, client)
	}
}

func DeleteClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteClient")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteClient(r.Context(), id); err != nil {
			handleClientError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetClientStats(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetClientStats")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		stats, err := service.GetClientStats(r.Context(), id)
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

// validateClientFields valida apenas os campos informados (não nil). Campos
// vazios são tratados como ausentes; formatos inválidos têm precedência no código.
func validateClientFields(nome, email, nascimento *string) (string, map[string]string) {
	missing := make(map[string]string)
	invalid := make(map[string]string)

	if nome != nil && *nome == "" {
		missing["nomeCompleto"] = "Nome é obrigatório"
	}

	if email != nil {
		switch {
		case *email == "":
			missing["email"] = "Email é obrigatório"
		case !emailPattern.MatchString(*email):
			invalid["email"] = "Email inválido"
		}
	}

	if nascimento != nil {
		switch {
		case *nascimento == "":
			missing["nascimento"] = "Data de nascimento é obrigatória"
		default:
			birth, err := utils.ParseDate(*nascimento)
			if err != nil {
				invalid["nascimento"] = "Data de nascimento deve estar no formato YYYY-MM-DD"
			} else if utils.IsFutureDate(*birth, now()) {
				invalid["nascimento"] = "Data de nascimento não pode ser no futuro"
			}
		}
	}

	if len(invalid) > 0 {
		for field, msg := range missing {
			invalid[field] = msg
		}
		return apiErrors.ErrInvalidFormat, invalid
	}

	if len(missing) > 0 {
		return apiErrors.ErrMissingRequiredData, missing
	}

	return "", nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
