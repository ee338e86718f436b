package facebook

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"

	fbdomain "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/domain"
	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/fbclient"
)

// Escopos necessários para gerenciar campanhas em nome do usuário.
const oauthScope = "ads_management,ads_read,business_management"

// Objetivos da Graph API por objetivo de campanha. Objetivos
// desconhecidos caem em CONVERSIONS.
var graphObjectives = map[domain.CampaignObjective]string{
	domain.CampaignObjectiveWebsite: "CONVERSIONS",
	domain.CampaignObjectiveLead:    "LEAD_GENERATION",
	domain.CampaignObjectiveTraffic: "TRAFFIC",
}

type Integrator interface {
	AuthorizationURL(state, redirectURI string) string
	ExchangeCode(ctx context.Context, code, redirectURI string) (string, error)
	ListAdAccounts(ctx context.Context, accessToken string) ([]fbdomain.AdAccount, error)
	CreateCampaign(ctx context.Context, account *domain.LinkedAdAccount, campaign *domain.Campaign) (string, error)
	GetCampaign(ctx context.Context, externalCampaignID, accessToken string) (*fbdomain.CampaignSnapshot, error)
}

type FacebookService struct {
	Cfg    *config.Config
	Client fbclient.Client
}

func NewFacebookService(cfg *config.Config, client fbclient.Client) Integrator {
	return &FacebookService{Cfg: cfg, Client: client}
}

// AuthorizationURL monta a URL do diálogo de autorização do Facebook
// para onde o usuário é redirecionado.
func (s *FacebookService) AuthorizationURL(state, redirectURI string) string {
	params := url.Values{}
	params.Add("client_id", s.Cfg.Facebook.AppID)
	params.Add("redirect_uri", redirectURI)
	params.Add("state", state)
	params.Add("scope", oauthScope)
	params.Add("response_type", "code")

	return fmt.Sprintf("%s/%s/dialog/oauth?%s", s.Cfg.Facebook.DialogURL, s.Cfg.Facebook.Version, params.Encode())
}

func (s *FacebookService) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	token, err := s.Client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

func (s *FacebookService) ListAdAccounts(ctx context.Context, accessToken string) ([]fbdomain.AdAccount, error) {
	return s.Client.ListAdAccounts(ctx, accessToken)
}

// CreateCampaign publica a campanha na conta de anúncios vinculada. O
// orçamento é convertido de reais para centavos e a campanha já nasce
// ativa na Graph API.
func (s *FacebookService) CreateCampaign(ctx context.Context, account *domain.LinkedAdAccount, campaign *domain.Campaign) (string, error) {
	objective, ok := graphObjectives[campaign.Objective]
	if !ok {
		objective = "CONVERSIONS"
	}

	params := fbdomain.CreateCampaignParams{
		AccessToken: account.AccessToken,
		AccountID:   account.ExternalAccountID,
		Name:        campaign.Name,
		Objective:   objective,
		Status:      "ACTIVE",
		DailyBudget: int64(math.Round(campaign.Budget * 100)),
		StartTime:   campaign.StartDate.Format(time.RFC3339),
	}

	if campaign.EndDate != nil {
		params.EndTime = campaign.EndDate.Format(time.RFC3339)
	}

	return s.Client.CreateCampaign(ctx, params)
}

func (s *FacebookService) GetCampaign(ctx context.Context, externalCampaignID, accessToken string) (*fbdomain.CampaignSnapshot, error) {
	return s.Client.GetCampaign(ctx, externalCampaignID, accessToken)
}
