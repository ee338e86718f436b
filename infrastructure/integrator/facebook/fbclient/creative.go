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

// CreateAdCreative cria um criativo de anúncio com link e imagem.
func (c *FacebookClient) CreateAdCreative(ctx context.Context, params fbdomain.CreateAdCreativeParams) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/adcreatives", c.Cfg.Facebook.URL, c.adAccountPath(params.AccountID))

	objectStorySpec := map[string]interface{}{
		"page_id": params.PageID,
		"link_data": map[string]interface{}{
			"image_url":   params.ImageURL,
			"message":     params.Message,
			"link":        params.LinkURL,
			"name":        params.Headline,
			"description": params.Description,
		},
	}

	spec, err := json.Marshal(objectStorySpec)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar object_story_spec")
	}

	form := url.Values{}
	form.Add("name", params.Name)
	form.Add("object_story_spec", string(spec))
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
		return "", errors.New("resposta de criação de criativo sem id")
	}

	logrus.WithFields(logrus.Fields{
		"creative_name":        params.Name,
		"external_creative_id": response.ID,
	}).Info("Criativo criado na Graph API")

	return response.ID, nil
}
