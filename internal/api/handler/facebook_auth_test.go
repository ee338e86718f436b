package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	fbdomain "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/domain"
	fbmocks "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/mocks"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository/mocks"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/connecting"
)

func callbackConfig() *config.Config {
	return &config.Config{
		Auth:     config.Auth{Secret: "segredo-de-teste"},
		Frontend: config.Frontend{BaseURL: "http://localhost:3000"},
	}
}

func TestFacebookCallback(t *testing.T) {
	t.Run("Negação do provedor aparece no corpo da resposta", func(t *testing.T) {
		cfg := callbackConfig()
		service := connecting.NewService(nil, nil, cfg)

		req := httptest.NewRequest(http.MethodGet,
			"/v1/auth/facebook/callback?error=access_denied&error_description=User+denied+your+request", nil)
		rec := httptest.NewRecorder()

		FacebookCallback(service, cfg)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "OAUTH_001")
		assert.Contains(t, rec.Body.String(), "access_denied")
		assert.Contains(t, rec.Body.String(), "User denied your request")
	})

	t.Run("Falha na troca do código carrega o erro do provedor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cfg := callbackConfig()

		accountRepo := mocks.NewMockLinkedAccountRepository(ctrl)
		integrator := fbmocks.NewMockIntegrator(ctrl)
		service := connecting.NewService(accountRepo, integrator, cfg)

		var state string
		integrator.EXPECT().
			AuthorizationURL(gomock.Any(), gomock.Any()).
			DoAndReturn(func(s, _ string) string {
				state = s
				return "https://www.facebook.com/v17.0/dialog/oauth?state=" + s
			})

		_, err := service.BeginLogin(context.Background(), 42, "http://api.test/v1/auth/facebook/callback")
		assert.NoError(t, err)

		integrator.EXPECT().
			ExchangeCode(gomock.Any(), "auth-code", gomock.Any()).
			Return("", &fbdomain.APIError{
				StatusCode: 400,
				Code:       100,
				Message:    "Invalid verification code format",
			})

		req := httptest.NewRequest(http.MethodGet,
			"/v1/auth/facebook/callback?code=auth-code&state="+state, nil)
		rec := httptest.NewRecorder()

		FacebookCallback(service, cfg)(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "status 400")
		assert.Contains(t, rec.Body.String(), "Invalid verification code format")
	})

	t.Run("Sucesso redireciona para o frontend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cfg := callbackConfig()

		accountRepo := mocks.NewMockLinkedAccountRepository(ctrl)
		integrator := fbmocks.NewMockIntegrator(ctrl)
		service := connecting.NewService(accountRepo, integrator, cfg)

		var state string
		integrator.EXPECT().
			AuthorizationURL(gomock.Any(), gomock.Any()).
			DoAndReturn(func(s, _ string) string {
				state = s
				return "https://www.facebook.com/v17.0/dialog/oauth?state=" + s
			})

		_, err := service.BeginLogin(context.Background(), 42, "http://api.test/v1/auth/facebook/callback")
		assert.NoError(t, err)

		integrator.EXPECT().
			ExchangeCode(gomock.Any(), "auth-code", gomock.Any()).
			Return("user-token", nil)

		integrator.EXPECT().
			ListAdAccounts(gomock.Any(), "user-token").
			Return([]fbdomain.AdAccount{{ID: "act_111", Name: "Conta A"}}, nil)

		accountRepo.EXPECT().
			SaveOrUpdate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, account *domain.LinkedAdAccount) (*domain.LinkedAdAccount, error) {
				return account, nil
			})

		req := httptest.NewRequest(http.MethodGet,
			"/v1/auth/facebook/callback?code=auth-code&state="+state, nil)
		rec := httptest.NewRecorder()

		FacebookCallback(service, cfg)(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "http://localhost:3000/main?facebook_connected=true", rec.Header().Get("Location"))
	})
}
