package campaigning

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/quickcampaigns/campaigns-api/infrastructure/repository/mocks"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

type managerMocks struct {
	campaignRepo *mocks.MockCampaignRepository
	creativeRepo *mocks.MockCreativeRepository
	accountRepo  *mocks.MockLinkedAccountRepository
}

func newManager(t *testing.T) (Manager, managerMocks) {
	ctrl := gomock.NewController(t)

	m := managerMocks{
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		creativeRepo: mocks.NewMockCreativeRepository(ctrl),
		accountRepo:  mocks.NewMockLinkedAccountRepository(ctrl),
	}

	cfg := &config.Config{
		Storage: config.Storage{CreativesDir: t.TempDir()},
	}

	service := NewService(m.campaignRepo, m.creativeRepo, m.accountRepo, cfg)
	return service, m
}

func validCreateRequest() *domain.CreateCampaignRequest {
	return &domain.CreateCampaignRequest{
		Name:      "Promoção de Verão",
		Objective: "website",
		Budget:    150.00,
		StartDate: "2025-06-01",
	}
}

func TestCreateCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("Campanha nasce como rascunho", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, campaign *domain.Campaign) error {
				assert.Equal(t, domain.CampaignStatusDraft, campaign.Status)
				assert.Equal(t, 42, campaign.UserID)
				assert.NotEmpty(t, campaign.ID)
				return nil
			})

		campaign, err := service.CreateCampaign(ctx, 42, validCreateRequest())
		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignObjectiveWebsite, campaign.Objective)
	})

	t.Run("Objetivo desconhecido é rejeitado", func(t *testing.T) {
		service, _ := newManager(t)

		req := validCreateRequest()
		req.Objective = "brand_awareness"

		_, err := service.CreateCampaign(ctx, 42, req)
		assert.ErrorIs(t, err, ErrInvalidCampaignData)
	})

	t.Run("Orçamento não positivo é rejeitado", func(t *testing.T) {
		service, _ := newManager(t)

		req := validCreateRequest()
		req.Budget = 0

		_, err := service.CreateCampaign(ctx, 42, req)
		assert.ErrorIs(t, err, ErrInvalidCampaignData)
	})

	t.Run("Término antes do início é rejeitado", func(t *testing.T) {
		service, _ := newManager(t)

		endDate := "2025-05-01"
		req := validCreateRequest()
		req.EndDate = &endDate

		_, err := service.CreateCampaign(ctx, 42, req)
		assert.ErrorIs(t, err, ErrInvalidCampaignData)
	})

	t.Run("Conta escolhida precisa pertencer ao usuário", func(t *testing.T) {
		service, m := newManager(t)

		accountID := "acc1"
		req := validCreateRequest()
		req.LinkedAccountID = &accountID

		m.accountRepo.EXPECT().
			GetByID(gomock.Any(), "acc1").
			Return(&domain.LinkedAdAccount{ID: "acc1", UserID: 99}, nil)

		_, err := service.CreateCampaign(ctx, 42, req)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestUpdateCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("Rascunho aceita alteração parcial", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{
				ID:        "cmp1",
				UserID:    42,
				Name:      "Nome antigo",
				Objective: domain.CampaignObjectiveWebsite,
				Status:    domain.CampaignStatusDraft,
				Budget:    100,
			}, nil)

		m.campaignRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		name := "Nome novo"
		campaign, err := service.UpdateCampaign(ctx, 42, &domain.UpdateCampaignRequest{ID: "cmp1", Name: &name})
		assert.NoError(t, err)
		assert.Equal(t, "Nome novo", campaign.Name)
		assert.Equal(t, float64(100), campaign.Budget)
	})

	t.Run("Campanha ativa não é editável", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{ID: "cmp1", UserID: 42, Status: domain.CampaignStatusActive}, nil)

		name := "Nome novo"
		_, err := service.UpdateCampaign(ctx, 42, &domain.UpdateCampaignRequest{ID: "cmp1", Name: &name})
		assert.ErrorIs(t, err, ErrCampaignLocked)
	})

	t.Run("Campanha com erro de lançamento volta a ser editável", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{
				ID:        "cmp1",
				UserID:    42,
				Objective: domain.CampaignObjectiveWebsite,
				Status:    domain.CampaignStatusError,
				Budget:    100,
			}, nil)

		m.campaignRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		budget := 200.0
		campaign, err := service.UpdateCampaign(ctx, 42, &domain.UpdateCampaignRequest{ID: "cmp1", Budget: &budget})
		assert.NoError(t, err)
		assert.Equal(t, 200.0, campaign.Budget)
	})

	t.Run("Campanha de outro usuário responde como inexistente", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{ID: "cmp1", UserID: 99, Status: domain.CampaignStatusDraft}, nil)

		name := "Nome novo"
		_, err := service.UpdateCampaign(ctx, 42, &domain.UpdateCampaignRequest{ID: "cmp1", Name: &name})
		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})
}

func TestDeleteCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("Campanha ativa não pode ser removida", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{ID: "cmp1", UserID: 42, Status: domain.CampaignStatusActive}, nil)

		err := service.DeleteCampaign(ctx, 42, "cmp1")
		assert.ErrorIs(t, err, ErrCampaignLocked)
	})

	t.Run("Remove a campanha e os arquivos dos criativos", func(t *testing.T) {
		service, m := newManager(t)

		filePath := filepath.Join(t.TempDir(), "criativo.jpg")
		assert.NoError(t, os.WriteFile(filePath, []byte("imagem"), 0o644))

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{ID: "cmp1", UserID: 42, Status: domain.CampaignStatusDraft}, nil)

		m.creativeRepo.EXPECT().
			ListByCampaignID(gomock.Any(), "cmp1").
			Return([]*domain.Creative{{ID: "crt1", CampaignID: "cmp1", FilePath: filePath}}, nil)

		m.campaignRepo.EXPECT().
			Delete(gomock.Any(), "cmp1").
			Return(nil)

		err := service.DeleteCampaign(ctx, 42, "cmp1")
		assert.NoError(t, err)
		assert.NoFileExists(t, filePath)
	})
}

func TestAddCreative(t *testing.T) {
	ctx := context.Background()

	draft := &domain.Campaign{ID: "cmp1", UserID: 42, Status: domain.CampaignStatusDraft}

	t.Run("Upload salva o arquivo com nome gerado e registra os metadados", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(draft, nil)

		m.creativeRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, creative *domain.Creative) error {
				assert.Equal(t, "cmp1", creative.CampaignID)
				assert.Equal(t, "banner.jpg", creative.FileName)
				assert.Equal(t, "image/jpeg", creative.FileType)
				assert.Equal(t, int64(6), creative.FileSize)
				return nil
			})

		creative, err := service.AddCreative(ctx, 42, "cmp1", &CreativeUpload{
			FileName:    "banner.jpg",
			ContentType: "image/jpeg",
			Data:        strings.NewReader("imagem"),
		})
		assert.NoError(t, err)
		assert.FileExists(t, creative.FilePath)
		assert.NotContains(t, creative.FilePath, "banner")
		assert.Equal(t, ".jpg", filepath.Ext(creative.FilePath))
	})

	t.Run("Tipo de arquivo não suportado", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(draft, nil)

		_, err := service.AddCreative(ctx, 42, "cmp1", &CreativeUpload{
			FileName:    "planilha.xlsx",
			ContentType: "application/vnd.ms-excel",
			Data:        strings.NewReader("dados"),
		})
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("Falha ao registrar metadados remove o arquivo salvo", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(draft, nil)

		var savedPath string
		m.creativeRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, creative *domain.Creative) error {
				savedPath = creative.FilePath
				return assert.AnError
			})

		_, err := service.AddCreative(ctx, 42, "cmp1", &CreativeUpload{
			FileName:    "banner.png",
			ContentType: "image/png",
			Data:        strings.NewReader("imagem"),
		})
		assert.Error(t, err)
		assert.NoFileExists(t, savedPath)
	})
}

func TestDeleteCreative(t *testing.T) {
	ctx := context.Background()

	t.Run("Criativo de outra campanha responde como inexistente", func(t *testing.T) {
		service, m := newManager(t)

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{ID: "cmp1", UserID: 42, Status: domain.CampaignStatusDraft}, nil)

		m.creativeRepo.EXPECT().
			GetByID(gomock.Any(), "crt1").
			Return(&domain.Creative{ID: "crt1", CampaignID: "cmp2"}, nil)

		err := service.DeleteCreative(ctx, 42, "cmp1", "crt1")
		assert.ErrorIs(t, err, ErrCreativeNotFound)
	})

	t.Run("Remove o registro e o arquivo", func(t *testing.T) {
		service, m := newManager(t)

		filePath := filepath.Join(t.TempDir(), "criativo.png")
		assert.NoError(t, os.WriteFile(filePath, []byte("imagem"), 0o644))

		m.campaignRepo.EXPECT().
			GetByID(gomock.Any(), "cmp1").
			Return(&domain.Campaign{ID: "cmp1", UserID: 42, Status: domain.CampaignStatusDraft}, nil)

		m.creativeRepo.EXPECT().
			GetByID(gomock.Any(), "crt1").
			Return(&domain.Creative{ID: "crt1", CampaignID: "cmp1", FilePath: filePath}, nil)

		m.creativeRepo.EXPECT().
			Delete(gomock.Any(), "crt1").
			Return(nil)

		err := service.DeleteCreative(ctx, 42, "cmp1", "crt1")
		assert.NoError(t, err)
		assert.NoFileExists(t, filePath)
	})
}
