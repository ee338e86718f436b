package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/crediting"
	"github.com/quickcampaigns/campaigns-api/pkg/apiErrors"
	"github.com/quickcampaigns/campaigns-api/pkg/middleware"
)

type PurchaseCreditsRequest struct {
	Amount int `json:"amount"`
}

type PurchaseCreditsResponse struct {
	Balance     *domain.CreditBalance     `json:"balance"`
	Transaction *domain.CreditTransaction `json:"transaction"`
}

func GetCreditBalance(service crediting.Crediter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		balance, err := service.GetOrCreateBalance(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar saldo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(balance)
	}
}

func PurchaseCredits(service crediting.Crediter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req PurchaseCreditsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		transaction, err := service.Purchase(r.Context(), userClaims.UserID, req.Amount)
		if err != nil {
			handleCreditError(w, err)
			return
		}

		balance, err := service.GetOrCreateBalance(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar saldo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PurchaseCreditsResponse{
			Balance:     balance,
			Transaction: transaction,
		})
	}
}

func ListCreditTransactions(service crediting.Crediter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		transactions, err := service.ListTransactions(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar transações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func handleCreditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, crediting.ErrInvalidAmount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Quantidade de créditos inválida", nil)

	case errors.Is(err, crediting.ErrInsufficientCredits):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientCredits, "Saldo de créditos insuficiente", nil)

	case errors.Is(err, crediting.ErrPaymentFailed):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha na cobrança do pagamento", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar créditos", nil)
	}
}
