package fbclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	fbdomain "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/domain"
	"github.com/sirupsen/logrus"
)

// CreateAd cria um anúncio ligando um ad set a um criativo.
func (c *FacebookClient) CreateAd(ctx context.Context, params fbdomain.CreateAdParams) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/ads", c.Cfg.Facebook.URL, c.adAccountPath(params.AccountID))

	creative, err := json.Marshal(map[string]string{"creative_id": params.CreativeID})
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar creative")
	}

	form := url.Values{}
	form.Add("name", params.Name)
	form.Add("adset_id", params.AdSetID)
	form.Add("creative", string(creative))
	form.Add("status", params.Status)
	form.Add("access_token", c.accessToken(params.AccessToken))

	body, err := c.doPostForm(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	var response fbdomain.CreateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrap(err, "erro ao decodificar resposta")
	}

	if response.ID == "" {
		return "", errors.New("resposta de criação de anúncio sem id")
	}

	logrus.WithFields(logrus.Fields{
		"ad_name":        params.Name,
		"external_ad_id": response.ID,
	}).Info("Anúncio criado na Graph API")

	return response.ID, nil
}
