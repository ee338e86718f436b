package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/internal/scheduler"
	"github.com/quickcampaigns/campaigns-api/pkg/apiErrors"
)

const CronJobTypeCampaignCompletion = "campaign-completion"

// CronJobServices contém os serviços agendados que podem ser disparados
// manualmente.
type CronJobServices struct {
	CampaignCompletionService *scheduler.CampaignCompletionService
}

// RunCronJob dispara uma rotina agendada fora do horário de agendamento.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeCampaignCompletion:
			if services.CampaignCompletionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de encerramento de campanhas não disponível", nil)
				return
			}

			completed, err := services.CampaignCompletionService.RunNow(r.Context())
			if err != nil {
				logrus.WithError(err).Error("Erro ao executar encerramento de campanhas")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar cron job", nil)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"message":   "Cron job executada com sucesso",
				"type":      cronType,
				"completed": completed,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: campaign-completion", nil)
		}
	}
}
