package connecting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/pkg/utils"
)

// stateTTL é a validade do token de estado do OAuth. O fluxo inteiro
// (redirect, tela de consentimento, callback) precisa caber nessa janela.
const stateTTL = 10 * time.Minute

// CallbackParams carrega os parâmetros de query que o provedor envia no
// redirect de retorno.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
	RedirectURI      string
}

// Connector conduz o fluxo de vinculação de contas de anúncios via
// OAuth e o ciclo de vida dos vínculos.
type Connector interface {
	BeginLogin(ctx context.Context, userID int, redirectURI string) (string, error)
	HandleCallback(ctx context.Context, params CallbackParams) (*domain.LinkedAdAccount, error)
	ListLinkedAccounts(ctx context.Context, userID int) ([]*domain.LinkedAdAccountResponse, error)
	Disconnect(ctx context.Context, userID int, accountID string) error
}

type Service struct {
	accountRepo repository.LinkedAccountRepository
	integrator  facebook.Integrator
	cfg         *config.Config
}

func NewService(accountRepo repository.LinkedAccountRepository, integrator facebook.Integrator, cfg *config.Config) Connector {
	return &Service{
		accountRepo: accountRepo,
		integrator:  integrator,
		cfg:         cfg,
	}
}

// BeginLogin monta a URL de autorização do provedor com um token de
// estado assinado. O estado carrega o ID do usuário autenticado e é a
// única fonte de identidade no callback, que chega sem header de
// autenticação.
func (s *Service) BeginLogin(ctx context.Context, userID int, redirectURI string) (string, error) {
	state, err := s.signState(userID)
	if err != nil {
		return "", err
	}

	return s.integrator.AuthorizationURL(state, redirectURI), nil
}

// HandleCallback processa o retorno do provedor: valida o estado,
// troca o código por token, lista as contas de anúncios do usuário e
// vincula a primeira delas (política firstAccount).
func (s *Service) HandleCallback(ctx context.Context, params CallbackParams) (*domain.LinkedAdAccount, error) {
	if params.Error != "" {
		providerMessage := params.Error
		if params.ErrorDescription != "" {
			providerMessage = fmt.Sprintf("%s: %s", params.Error, params.ErrorDescription)
		}
		return nil, NewConnectError(ErrAuthorizationDenied, 0, providerMessage)
	}

	if params.Code == "" {
		return nil, ErrMissingAuthCode
	}

	userID, err := s.parseState(params.State)
	if err != nil {
		logrus.WithError(err).Warn("Token de estado do OAuth rejeitado")
		return nil, ErrInvalidState
	}

	accessToken, err := s.integrator.ExchangeCode(ctx, params.Code, params.RedirectURI)
	if err != nil {
		return nil, err
	}

	adAccounts, err := s.integrator.ListAdAccounts(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if len(adAccounts) == 0 {
		return nil, NewConnectError(ErrNoAdAccounts, userID, "")
	}

	// firstAccount: a primeira conta retornada pela Graph API é a
	// vinculada. As demais são ignoradas.
	chosen := adAccounts[0]

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.SaveOrUpdate(ctx, &domain.LinkedAdAccount{
		ID:                id,
		UserID:            userID,
		ExternalAccountID: strings.TrimPrefix(chosen.ID, "act_"),
		Name:              chosen.Name,
		AccessToken:       accessToken,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, NewConnectError(ErrAccountAlreadyLinked, userID, chosen.ID)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"account_id": account.ExternalAccountID,
	}).Info("Conta de anúncios vinculada")

	return account, nil
}

func (s *Service) ListLinkedAccounts(ctx context.Context, userID int) ([]*domain.LinkedAdAccountResponse, error) {
	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.LinkedAdAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, &domain.LinkedAdAccountResponse{
			ID:                account.ID,
			ExternalAccountID: account.ExternalAccountID,
			Name:              account.Name,
			IsActive:          account.IsActive,
			CreatedAt:         account.CreatedAt,
		})
	}

	return responses, nil
}

// Disconnect remove o vínculo do usuário. Campanhas que apontavam para
// o vínculo ficam sem conta (o banco anula a referência) e precisam de
// nova conta para futuros lançamentos.
func (s *Service) Disconnect(ctx context.Context, userID int, accountID string) error {
	deleted, err := s.accountRepo.Delete(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if !deleted {
		return NewConnectError(ErrAccountNotFound, userID, accountID)
	}

	return nil
}

func (s *Service) signState(userID int) (string, error) {
	claims := domain.StateClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) parseState(state string) (int, error) {
	if state == "" {
		return 0, errors.New("estado vazio")
	}

	token, err := jwt.ParseWithClaims(state, &domain.StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*domain.StateClaims)
	if !ok || !token.Valid {
		return 0, errors.New("estado inválido")
	}

	return claims.UserID, nil
}
