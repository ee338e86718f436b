package handler

import (
	"net/http"

	"github.com/quickcampaigns/campaigns-api/internal/api/handler/router"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/authenticating"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/campaigning"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/connecting"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/crediting"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/launching"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

// FacebookAuth retorna as rotas do fluxo OAuth e de gestão das contas
// vinculadas.
func FacebookAuth(service connecting.Connector, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/auth/facebook/login",
			Method:  http.MethodGet,
			Handler: FacebookLogin(service),
		},
		{
			Path:    "/v1/auth/facebook/callback",
			Method:  http.MethodGet,
			Handler: FacebookCallback(service, cfg),
		},
		{
			Path:    "/v1/auth/facebook/accounts",
			Method:  http.MethodGet,
			Handler: LinkedAccounts(service),
		},
		{
			Path:    "/v1/auth/facebook/disconnect/:id",
			Method:  http.MethodDelete,
			Handler: DisconnectAccount(service),
		},
	}
}

func Campaigns(service campaigning.Manager, launcher launching.Launcher) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodPost,
			Handler: CreateCampaign(service),
		},
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodGet,
			Handler: GetCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodPut,
			Handler: UpdateCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodDelete,
			Handler: DeleteCampaign(service),
		},
		{
			Path:    "/v1/campaigns/:id/launch",
			Method:  http.MethodPost,
			Handler: LaunchCampaign(launcher),
		},
	}
}

func Creatives(service campaigning.Manager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns/:id/creatives",
			Method:  http.MethodPost,
			Handler: UploadCreative(service),
		},
		{
			Path:    "/v1/campaigns/:id/creatives",
			Method:  http.MethodGet,
			Handler: ListCreatives(service),
		},
		{
			Path:    "/v1/campaigns/:id/creatives/:creative_id",
			Method:  http.MethodDelete,
			Handler: DeleteCreative(service),
		},
	}
}

func Credits(service crediting.Crediter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/credits/balance",
			Method:  http.MethodGet,
			Handler: GetCreditBalance(service),
		},
		{
			Path:    "/v1/credits/purchase",
			Method:  http.MethodPost,
			Handler: PurchaseCredits(service),
		},
		{
			Path:    "/v1/credits/transactions",
			Method:  http.MethodGet,
			Handler: ListCreditTransactions(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
	}
}
