package launching

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/crediting"
)

// launchCost é quanto um lançamento consome do saldo pré-pago.
const launchCost = 1

// Launcher orquestra o lançamento de campanhas: confere o saldo,
// resolve a conta vinculada, publica na Graph API e debita o crédito.
type Launcher interface {
	Launch(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error)
}

type Service struct {
	campaignRepo repository.CampaignRepository
	accountRepo  repository.LinkedAccountRepository
	integrator   facebook.Integrator
	crediter     crediting.Crediter
}

func NewService(
	campaignRepo repository.CampaignRepository,
	accountRepo repository.LinkedAccountRepository,
	integrator facebook.Integrator,
	crediter crediting.Crediter,
) Launcher {
	return &Service{
		campaignRepo: campaignRepo,
		accountRepo:  accountRepo,
		integrator:   integrator,
		crediter:     crediter,
	}
}

// Launch publica a campanha na conta de anúncios vinculada.
//
// O cheque de saldo antes da publicação é consultivo: barra o caso
// comum de saldo zerado sem segurar lock durante a chamada remota. O
// débito autoritativo acontece depois do sucesso remoto; se ele falhar
// a campanha permanece ativa e o chamador recebe ErrLedgerInconsistency
// para sinalizar a divergência.
func (s *Service) Launch(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil || campaign.UserID != userID {
		return nil, NewLaunchError(ErrCampaignNotFound, userID, campaignID, "")
	}

	if campaign.Status != domain.CampaignStatusDraft && campaign.Status != domain.CampaignStatusError {
		return nil, NewLaunchError(ErrCampaignNotLaunchable, userID, campaign.ID, string(campaign.Status))
	}

	balance, err := s.crediter.GetOrCreateBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if balance.Balance < launchCost {
		return nil, NewLaunchError(ErrInsufficientCredits, userID, campaign.ID, fmt.Sprintf("saldo %d", balance.Balance))
	}

	account, err := s.resolveAccount(ctx, userID, campaign)
	if err != nil {
		return nil, err
	}

	externalID, err := s.integrator.CreateCampaign(ctx, account, campaign)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":     userID,
			"campaign_id": campaign.ID,
		}).Error("Erro ao lançar campanha na Graph API")

		if updateErr := s.campaignRepo.UpdateLaunchResult(ctx, campaign.ID, domain.CampaignStatusError, nil); updateErr != nil {
			logrus.WithError(updateErr).WithField("campaign_id", campaign.ID).Error("Erro ao registrar falha de lançamento")
		}

		return nil, NewLaunchError(ErrLaunchFailed, userID, campaign.ID, err.Error())
	}

	if err := s.campaignRepo.UpdateLaunchResult(ctx, campaign.ID, domain.CampaignStatusActive, &externalID); err != nil {
		// A campanha existe no provedor; registrar localmente é
		// obrigatório antes de devolver qualquer erro.
		logrus.WithError(err).WithFields(logrus.Fields{
			"campaign_id":          campaign.ID,
			"external_campaign_id": externalID,
		}).Error("Erro ao persistir resultado do lançamento")
		return nil, err
	}

	campaign.Status = domain.CampaignStatusActive
	campaign.ExternalCampaignID = &externalID

	description := fmt.Sprintf("Lançamento da campanha %s", campaign.Name)
	if err := s.crediter.Debit(ctx, userID, launchCost, &campaign.ID, description); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":     userID,
			"campaign_id": campaign.ID,
		}).Error("Campanha lançada mas débito de crédito falhou")

		return campaign, NewLaunchError(ErrLedgerInconsistency, userID, campaign.ID, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"user_id":              userID,
		"campaign_id":          campaign.ID,
		"external_campaign_id": externalID,
	}).Info("Campanha lançada")

	return campaign, nil
}

// resolveAccount escolhe a conta de anúncios do lançamento: a conta
// apontada pela campanha quando houver, senão a conta ativa mais antiga
// do usuário (política firstAccount).
func (s *Service) resolveAccount(ctx context.Context, userID int, campaign *domain.Campaign) (*domain.LinkedAdAccount, error) {
	if campaign.LinkedAccountID != nil {
		account, err := s.accountRepo.GetByID(ctx, *campaign.LinkedAccountID)
		if err != nil {
			return nil, err
		}

		if account == nil || account.UserID != userID {
			return nil, NewLaunchError(ErrNoLinkedAccount, userID, campaign.ID, *campaign.LinkedAccountID)
		}

		return account, nil
	}

	account, err := s.accountRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if account == nil {
		return nil, NewLaunchError(ErrNoLinkedAccount, userID, campaign.ID, "")
	}

	return account, nil
}
