package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/internal/usecases/clienting"
)

func GetDailySales(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetDailySales")

		dailySales, err := service.GetDailySales(r.Context())
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, dailySales)
	}
}

func GetTopClients(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetTopClients")

		top, err := service.GetTopClients(r.Context())
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, top)
	}
}

func GetSummary(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSummary")

		summary, err := service.GetSummary(r.Context())
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func GetRanking(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRanking")

		ranking, err := service.GetRanking(r.Context())
		if err != nil {
			handleClientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ranking)
	}
}
