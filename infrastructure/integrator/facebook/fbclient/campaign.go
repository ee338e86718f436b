package fbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	fbdomain "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/domain"
	"github.com/sirupsen/logrus"
)

// CreateCampaign cria uma campanha na conta de anúncios e retorna o ID
// externo gerado.
func (c *FacebookClient) CreateCampaign(ctx context.Context, params fbdomain.CreateCampaignParams) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/campaigns", c.Cfg.Facebook.URL, c.adAccountPath(params.AccountID))

	form := url.Values{}
	form.Add("name", params.Name)
	form.Add("objective", params.Objective)
	form.Add("status", params.Status)
	form.Add("special_ad_categories", "[]")
	form.Add("daily_budget", strconv.FormatInt(params.DailyBudget, 10))
	form.Add("start_time", params.StartTime)
	form.Add("access_token", c.accessToken(params.AccessToken))

	if params.EndTime != "" {
		form.Add("end_time", params.EndTime)
	}

	body, err := c.doPostForm(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	var response fbdomain.CreateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrap(err, "erro ao decodificar resposta")
	}

	if response.ID == "" {
		return "", errors.New("resposta de criação de campanha sem id")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_name":        params.Name,
		"external_campaign_id": response.ID,
	}).Info("Campanha criada na Graph API")

	return response.ID, nil
}

// GetCampaign consulta o estado remoto de uma campanha já criada.
func (c *FacebookClient) GetCampaign(ctx context.Context, campaignID, accessToken string) (*fbdomain.CampaignSnapshot, error) {
	endpoint := fmt.Sprintf("%s/%s", c.Cfg.Facebook.URL, campaignID)

	params := url.Values{}
	params.Add("fields", "id,name,objective,status,effective_status")
	params.Add("access_token", c.accessToken(accessToken))

	body, err := c.doGet(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var snapshot fbdomain.CampaignSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta")
	}

	return &snapshot, nil
}
