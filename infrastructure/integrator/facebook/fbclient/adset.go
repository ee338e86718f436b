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

// CreateAdSet cria um conjunto de anúncios dentro de uma campanha.
func (c *FacebookClient) CreateAdSet(ctx context.Context, params fbdomain.CreateAdSetParams) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/adsets", c.Cfg.Facebook.URL, c.adAccountPath(params.AccountID))

	targeting, err := json.Marshal(params.Targeting)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar targeting")
	}

	form := url.Values{}
	form.Add("name", params.Name)
	form.Add("campaign_id", params.CampaignID)
	form.Add("optimization_goal", params.OptimizationGoal)
	form.Add("billing_event", "IMPRESSIONS")
	form.Add("bid_amount", strconv.FormatInt(params.BidAmount, 10))
	form.Add("targeting", string(targeting))
	form.Add("status", params.Status)
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
		return "", errors.New("resposta de criação de ad set sem id")
	}

	logrus.WithFields(logrus.Fields{
		"ad_set_name":       params.Name,
		"external_adset_id": response.ID,
	}).Info("Ad set criado na Graph API")

	return response.ID, nil
}
