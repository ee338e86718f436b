package facebook

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	fbdomain "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/domain"
	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/fbclient"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

// stubClient captura os parâmetros enviados à Graph API sem fazer
// chamadas HTTP.
type stubClient struct {
	fbclient.Client

	createCampaignParams fbdomain.CreateCampaignParams
}

func (s *stubClient) CreateCampaign(ctx context.Context, params fbdomain.CreateCampaignParams) (string, error) {
	s.createCampaignParams = params
	return "fb_999", nil
}

func testConfig() *config.Config {
	return &config.Config{
		Facebook: config.Facebook{
			AppID:     "app123",
			DialogURL: "https://www.facebook.com",
			Version:   "v17.0",
		},
	}
}

func TestAuthorizationURL(t *testing.T) {
	service := NewFacebookService(testConfig(), &stubClient{})

	authURL := service.AuthorizationURL("state-token", "https://api.test/callback")

	assert.Contains(t, authURL, "https://www.facebook.com/v17.0/dialog/oauth?")
	assert.Contains(t, authURL, "client_id=app123")
	assert.Contains(t, authURL, "state=state-token")
	assert.Contains(t, authURL, "response_type=code")
	assert.Contains(t, authURL, "redirect_uri=https%3A%2F%2Fapi.test%2Fcallback")
}

func TestCreateCampaign(t *testing.T) {
	ctx := context.Background()

	account := &domain.LinkedAdAccount{
		ExternalAccountID: "1234567890",
		AccessToken:       "token-abc",
	}

	baseCampaign := func() *domain.Campaign {
		return &domain.Campaign{
			ID:        "cmp1",
			Name:      "Promoção de Verão",
			Objective: domain.CampaignObjectiveWebsite,
			Budget:    150.00,
			StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Converte o orçamento de reais para centavos", func(t *testing.T) {
		client := &stubClient{}
		service := NewFacebookService(testConfig(), client)

		campaign := baseCampaign()
		campaign.Budget = 150.75

		externalID, err := service.CreateCampaign(ctx, account, campaign)
		assert.NoError(t, err)
		assert.Equal(t, "fb_999", externalID)
		assert.Equal(t, int64(15075), client.createCampaignParams.DailyBudget)
		assert.Equal(t, "ACTIVE", client.createCampaignParams.Status)
		assert.Equal(t, "token-abc", client.createCampaignParams.AccessToken)
		assert.Equal(t, "1234567890", client.createCampaignParams.AccountID)
		assert.Equal(t, "2025-06-01T00:00:00Z", client.createCampaignParams.StartTime)
		assert.Empty(t, client.createCampaignParams.EndTime)
	})

	t.Run("Mapeia os objetivos para os da Graph API", func(t *testing.T) {
		cases := map[domain.CampaignObjective]string{
			domain.CampaignObjectiveWebsite: "CONVERSIONS",
			domain.CampaignObjectiveLead:    "LEAD_GENERATION",
			domain.CampaignObjectiveTraffic: "TRAFFIC",
			"desconhecido":                  "CONVERSIONS",
		}

		for objective, expected := range cases {
			client := &stubClient{}
			service := NewFacebookService(testConfig(), client)

			campaign := baseCampaign()
			campaign.Objective = objective

			_, err := service.CreateCampaign(ctx, account, campaign)
			assert.NoError(t, err)
			assert.Equal(t, expected, client.createCampaignParams.Objective)
		}
	})

	t.Run("Data de término entra quando definida", func(t *testing.T) {
		client := &stubClient{}
		service := NewFacebookService(testConfig(), client)

		endDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		campaign := baseCampaign()
		campaign.EndDate = &endDate

		_, err := service.CreateCampaign(ctx, account, campaign)
		assert.NoError(t, err)
		assert.Equal(t, "2025-06-30T00:00:00Z", client.createCampaignParams.EndTime)
	})
}
