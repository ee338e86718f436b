package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/campaigning"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/launching"
	"github.com/quickcampaigns/campaigns-api/pkg/apiErrors"
	"github.com/quickcampaigns/campaigns-api/pkg/middleware"
)

func CreateCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		campaign, err := service.CreateCampaign(r.Context(), userClaims.UserID, &req)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(campaign)
	}
}

func ListCampaigns(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaigns, err := service.ListCampaigns(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar campanhas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	}
}

func GetCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaign, err := service.GetCampaign(r.Context(), userClaims.UserID, campaignID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

func UpdateCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaign, err := service.UpdateCampaign(r.Context(), userClaims.UserID, &req)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

func DeleteCampaign(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteCampaign(r.Context(), userClaims.UserID, campaignID); err != nil {
			handleCampaignError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// LaunchCampaign publica a campanha na conta de anúncios vinculada e
// debita um crédito do saldo.
func LaunchCampaign(service launching.Launcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaign, err := service.Launch(r.Context(), userClaims.UserID, campaignID)
		if err != nil {
			handleLaunchError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaign)
	}
}

func handleCampaignError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaigning.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, campaigning.ErrCreativeNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Criativo não encontrado", nil)

	case errors.Is(err, campaigning.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Conta vinculada não encontrada", nil)

	case errors.Is(err, campaigning.ErrCampaignLocked):
		apiErrors.WriteError(w, apiErrors.ErrConflict, err.Error(), nil)

	case errors.Is(err, campaigning.ErrInvalidCampaignData):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, campaigning.ErrUnsupportedFileType):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar campanha", nil)
	}
}

func handleLaunchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, launching.ErrCampaignNotFound):
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Campanha não encontrada", nil)

	case errors.Is(err, launching.ErrCampaignNotLaunchable):
		apiErrors.WriteError(w, apiErrors.ErrConflict, err.Error(), nil)

	case errors.Is(err, launching.ErrNoLinkedAccount):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma conta de anúncios vinculada", nil)

	case errors.Is(err, launching.ErrInsufficientCredits):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientCredits, "Saldo de créditos insuficiente", nil)

	case errors.Is(err, launching.ErrLedgerInconsistency):
		apiErrors.WriteError(w, apiErrors.ErrLedgerInconsistency, "Campanha lançada, mas o débito do crédito falhou", nil)

	case errors.Is(err, launching.ErrLaunchFailed):
		apiErrors.WriteError(w, apiErrors.ErrLaunchFailed, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao lançar campanha", nil)
	}
}
