package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/toystore-admin-api/infrastructure/repository"
	"github.com/vfg2006/toystore-admin-api/pkg/apiErrors"
)

// GetLatestReportSnapshot retorna o último relatório gerado pelo agendador
func GetLatestReportSnapshot(snapshotRepo repository.ReportSnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetLatestReportSnapshot")

		snapshot, err := snapshotRepo.GetLatest()
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar relatório")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar relatório", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Nenhum relatório gerado até o momento", nil)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
