package fbclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	fbdomain "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/domain"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/sirupsen/logrus"
)

// Client encapsula as chamadas à Graph API do Facebook. Cada operação é
// uma única chamada síncrona, sem retry nem backoff: falhas chegam ao
// chamador como *domain.APIError.
type Client interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*fbdomain.TokenResponse, error)
	ListAdAccounts(ctx context.Context, accessToken string) ([]fbdomain.AdAccount, error)
	CreateCampaign(ctx context.Context, params fbdomain.CreateCampaignParams) (string, error)
	GetCampaign(ctx context.Context, campaignID, accessToken string) (*fbdomain.CampaignSnapshot, error)
	CreateAdSet(ctx context.Context, params fbdomain.CreateAdSetParams) (string, error)
	CreateAdCreative(ctx context.Context, params fbdomain.CreateAdCreativeParams) (string, error)
	CreateAd(ctx context.Context, params fbdomain.CreateAdParams) (string, error)
}

type FacebookClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &FacebookClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// accessToken resolve o token a ser usado: o da conta vinculada quando
// presente, senão o token de sistema configurado.
func (c *FacebookClient) accessToken(token string) string {
	if token != "" {
		return token
	}
	return c.Cfg.Facebook.AccessToken
}

// adAccountPath monta o prefixo act_<id> da conta de anúncios, caindo
// para a conta de sistema quando nenhuma é informada.
func (c *FacebookClient) adAccountPath(accountID string) string {
	if accountID == "" {
		accountID = c.Cfg.Facebook.AdAccountID
	}

	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}

	return "act_" + accountID
}

func (c *FacebookClient) doGet(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

func (c *FacebookClient) doPostForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

// handleResponse lê o corpo e converte respostas de falha no erro
// uniforme da integração. Corpos de erro fora do formato esperado viram
// APIError com a resposta bruta na mensagem.
func handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	apiErr := &fbdomain.APIError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
	}

	var envelope fbdomain.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
	}

	logrus.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"error_code":  apiErr.Code,
	}).Error("Resposta de erro da Graph API")

	return nil, apiErr
}
