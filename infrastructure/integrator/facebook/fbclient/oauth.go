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

// ExchangeCode troca o código de autorização do OAuth por um token de
// acesso. O redirect_uri precisa ser idêntico ao usado na URL de
// autorização, senão a Graph API rejeita a troca.
func (c *FacebookClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*fbdomain.TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/oauth/access_token", c.Cfg.Facebook.URL)

	params := url.Values{}
	params.Add("client_id", c.Cfg.Facebook.AppID)
	params.Add("client_secret", c.Cfg.Facebook.AppSecret)
	params.Add("redirect_uri", redirectURI)
	params.Add("code", code)

	body, err := c.doGet(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var tokenResp fbdomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar resposta da troca de token")
		return nil, errors.Wrap(err, "erro ao decodificar resposta")
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// ListAdAccounts lista as contas de anúncios do usuário dono do token.
func (c *FacebookClient) ListAdAccounts(ctx context.Context, accessToken string) ([]fbdomain.AdAccount, error) {
	endpoint := fmt.Sprintf("%s/me/adaccounts", c.Cfg.Facebook.URL)

	params := url.Values{}
	params.Add("fields", "id,name,account_status")
	params.Add("access_token", accessToken)

	body, err := c.doGet(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var response struct {
		Data []fbdomain.AdAccount `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar lista de contas de anúncios")
		return nil, errors.Wrap(err, "erro ao decodificar resposta")
	}

	return response.Data, nil
}
