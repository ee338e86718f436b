package launching

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	fbmocks "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/mocks"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository/mocks"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	creditmocks "github.com/quickcampaigns/campaigns-api/internal/usecases/crediting/mocks"
)

type launcherMocks struct {
	campaignRepo *mocks.MockCampaignRepository
	accountRepo  *mocks.MockLinkedAccountRepository
	integrator   *fbmocks.MockIntegrator
	crediter     *creditmocks.MockCrediter
}

func newLauncher(t *testing.T) (Launcher, launcherMocks) {
	ctrl := gomock.NewController(t)

	m := launcherMocks{
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		accountRepo:  mocks.NewMockLinkedAccountRepository(ctrl),
		integrator:   fbmocks.NewMockIntegrator(ctrl),
		crediter:     creditmocks.NewMockCrediter(ctrl),
	}

	service := NewService(m.campaignRepo, m.accountRepo, m.integrator, m.crediter)
	return service, m
}

func draftCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:        "cmp1",
		UserID:    42,
		Name:      "Promoção de Verão",
		Objective: domain.CampaignObjectiveWebsite,
		Status:    domain.CampaignStatusDraft,
		Budget:    150.00,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func linkedAccount() *domain.LinkedAdAccount {
	return &domain.LinkedAdAccount{
		ID:                "acc1",
		UserID:            42,
		ExternalAccountID: "1234567890",
		Name:              "Conta Principal",
		AccessToken:       "token-abc",
		IsActive:          true,
	}
}

func TestLaunch(t *testing.T) {
	ctx := context.Background()

	t.Run("Lançamento com sucesso ativa a campanha e debita um crédito", func(t *testing.T) {
		service, m := newLauncher(t)
		campaign := draftCampaign()

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(campaign, nil)
		m.accountRepo.EXPECT().GetActiveByUserID(gomock.Any(), 42).Return(linkedAccount(), nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 2}, nil)
		m.integrator.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any(), campaign).
			Return("fb_999", nil)
		m.campaignRepo.EXPECT().
			UpdateLaunchResult(gomock.Any(), "cmp1", domain.CampaignStatusActive, gomock.Any()).
			Return(nil)
		m.crediter.EXPECT().
			Debit(gomock.Any(), 42, 1, gomock.Any(), gomock.Any()).
			Return(nil)

		launched, err := service.Launch(ctx, 42, "cmp1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusActive, launched.Status)
		assert.NotNil(t, launched.ExternalCampaignID)
		assert.Equal(t, "fb_999", *launched.ExternalCampaignID)
	})

	t.Run("Campanha de outro usuário responde como inexistente", func(t *testing.T) {
		service, m := newLauncher(t)
		campaign := draftCampaign()
		campaign.UserID = 99

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(campaign, nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("Campanha ativa não pode ser relançada", func(t *testing.T) {
		service, m := newLauncher(t)
		campaign := draftCampaign()
		campaign.Status = domain.CampaignStatusActive

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(campaign, nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrCampaignNotLaunchable)
	})

	t.Run("Sem conta vinculada o lançamento é barrado após o cheque de saldo", func(t *testing.T) {
		service, m := newLauncher(t)

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(draftCampaign(), nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 1}, nil)
		m.accountRepo.EXPECT().GetActiveByUserID(gomock.Any(), 42).Return(nil, nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrNoLinkedAccount)
	})

	t.Run("Saldo zerado barra o lançamento antes de resolver a conta", func(t *testing.T) {
		service, m := newLauncher(t)

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(draftCampaign(), nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 0}, nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrInsufficientCredits)
	})

	t.Run("Sem saldo e sem conta vinculada prevalece o saldo insuficiente", func(t *testing.T) {
		service, m := newLauncher(t)

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(draftCampaign(), nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 0}, nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrInsufficientCredits)
		assert.NotErrorIs(t, err, ErrNoLinkedAccount)
	})

	t.Run("Falha remota marca a campanha com erro e não debita", func(t *testing.T) {
		service, m := newLauncher(t)
		campaign := draftCampaign()

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(campaign, nil)
		m.accountRepo.EXPECT().GetActiveByUserID(gomock.Any(), 42).Return(linkedAccount(), nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 1}, nil)
		m.integrator.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any(), campaign).
			Return("", assert.AnError)
		m.campaignRepo.EXPECT().
			UpdateLaunchResult(gomock.Any(), "cmp1", domain.CampaignStatusError, nil).
			Return(nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrLaunchFailed)
	})

	t.Run("Débito falhando após sucesso remoto mantém a campanha ativa", func(t *testing.T) {
		service, m := newLauncher(t)
		campaign := draftCampaign()

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(campaign, nil)
		m.accountRepo.EXPECT().GetActiveByUserID(gomock.Any(), 42).Return(linkedAccount(), nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 1}, nil)
		m.integrator.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any(), campaign).
			Return("fb_999", nil)
		m.campaignRepo.EXPECT().
			UpdateLaunchResult(gomock.Any(), "cmp1", domain.CampaignStatusActive, gomock.Any()).
			Return(nil)
		m.crediter.EXPECT().
			Debit(gomock.Any(), 42, 1, gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		launched, err := service.Launch(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrLedgerInconsistency)
		assert.NotNil(t, launched)
		assert.Equal(t, domain.CampaignStatusActive, launched.Status)
	})

	t.Run("Campanha com conta escolhida usa a conta da campanha", func(t *testing.T) {
		service, m := newLauncher(t)
		campaign := draftCampaign()
		accountID := "acc2"
		campaign.LinkedAccountID = &accountID

		chosen := linkedAccount()
		chosen.ID = "acc2"

		m.campaignRepo.EXPECT().GetByID(gomock.Any(), "cmp1").Return(campaign, nil)
		m.accountRepo.EXPECT().GetByID(gomock.Any(), "acc2").Return(chosen, nil)
		m.crediter.EXPECT().
			GetOrCreateBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 1}, nil)
		m.integrator.EXPECT().
			CreateCampaign(gomock.Any(), chosen, campaign).
			Return("fb_999", nil)
		m.campaignRepo.EXPECT().
			UpdateLaunchResult(gomock.Any(), "cmp1", domain.CampaignStatusActive, gomock.Any()).
			Return(nil)
		m.crediter.EXPECT().
			Debit(gomock.Any(), 42, 1, gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := service.Launch(ctx, 42, "cmp1")
		assert.NoError(t, err)
	})
}
