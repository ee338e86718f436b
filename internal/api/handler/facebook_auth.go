package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/connecting"
	"github.com/quickcampaigns/campaigns-api/pkg/apiErrors"
	"github.com/quickcampaigns/campaigns-api/pkg/middleware"
	"github.com/quickcampaigns/campaigns-api/pkg/utils"
)

const callbackPath = "/v1/auth/facebook/callback"

// FacebookLogin inicia o fluxo OAuth: redireciona o usuário autenticado
// para o diálogo de autorização do provedor com o token de estado.
func FacebookLogin(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		redirectURI := utils.RequestBaseURL(r) + callbackPath

		authURL, err := service.BeginLogin(r.Context(), userClaims.UserID, redirectURI)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar autorização", nil)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// FacebookCallback recebe o redirect do provedor e conclui a vinculação.
// No sucesso o usuário volta para o frontend; falhas respondem com o
// erro padronizado da API.
func FacebookCallback(service connecting.Connector, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		params := connecting.CallbackParams{
			Code:             query.Get("code"),
			State:            query.Get("state"),
			Error:            query.Get("error"),
			ErrorDescription: query.Get("error_description"),
			RedirectURI:      utils.RequestBaseURL(r) + callbackPath,
		}

		account, err := service.HandleCallback(r.Context(), params)
		if err != nil {
			logrus.WithError(err).Warn("Falha no callback do OAuth")
			handleCallbackError(w, err)
			return
		}

		logrus.WithField("account_id", account.ExternalAccountID).Info("Callback do OAuth concluído")

		target := fmt.Sprintf("%s/main?facebook_connected=true", cfg.Frontend.BaseURL)
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// LinkedAccounts lista as contas de anúncios vinculadas do usuário.
func LinkedAccounts(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accounts, err := service.ListLinkedAccounts(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar contas vinculadas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

// DisconnectAccount remove o vínculo de uma conta de anúncios.
func DisconnectAccount(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
			return
		}

		if err := service.Disconnect(r.Context(), userClaims.UserID, accountID); err != nil {
			if errors.Is(err, connecting.ErrAccountNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Conta vinculada não encontrada", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao desvincular conta", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleCallbackError traduz as falhas do callback. A mensagem do
// provedor (negação, status e corpo da falha remota) segue no detail
// para o cliente poder diagnosticar.
func handleCallbackError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, connecting.ErrAuthorizationDenied):
		apiErrors.WriteError(w, apiErrors.ErrAuthorizationDenied, err.Error(), nil)

	case errors.Is(err, connecting.ErrMissingAuthCode):
		apiErrors.WriteError(w, apiErrors.ErrMissingAuthCode, "Código de autorização ausente", nil)

	case errors.Is(err, connecting.ErrInvalidState):
		apiErrors.WriteError(w, apiErrors.ErrInvalidState, "Token de estado inválido ou expirado", nil)

	case errors.Is(err, connecting.ErrNoAdAccounts):
		apiErrors.WriteError(w, apiErrors.ErrNoAdAccounts, "Nenhuma conta de anúncios encontrada", nil)

	case errors.Is(err, connecting.ErrAccountAlreadyLinked):
		apiErrors.WriteError(w, apiErrors.ErrConflict, "Conta de anúncios já vinculada", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	}
}
