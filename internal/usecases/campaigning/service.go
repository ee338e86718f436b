package campaigning

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/pkg/utils"
)

// Tipos de mídia aceitos para criativos.
var allowedFileTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"video/mp4":       {},
	"video/quicktime": {},
}

// CreativeUpload é o arquivo de mídia recebido no upload de criativo.
type CreativeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Manager cuida do CRUD de campanhas e criativos. Campanhas nascem como
// rascunho e só podem ser editadas enquanto não entram em lançamento.
type Manager interface {
	CreateCampaign(ctx context.Context, userID int, req *domain.CreateCampaignRequest) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, userID int) ([]*domain.Campaign, error)
	UpdateCampaign(ctx context.Context, userID int, req *domain.UpdateCampaignRequest) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, userID int, campaignID string) error
	AddCreative(ctx context.Context, userID int, campaignID string, upload *CreativeUpload) (*domain.Creative, error)
	ListCreatives(ctx context.Context, userID int, campaignID string) ([]*domain.Creative, error)
	DeleteCreative(ctx context.Context, userID int, campaignID, creativeID string) error
}

type Service struct {
	campaignRepo repository.CampaignRepository
	creativeRepo repository.CreativeRepository
	accountRepo  repository.LinkedAccountRepository
	cfg          *config.Config
}

func NewService(
	campaignRepo repository.CampaignRepository,
	creativeRepo repository.CreativeRepository,
	accountRepo repository.LinkedAccountRepository,
	cfg *config.Config,
) Manager {
	return &Service{
		campaignRepo: campaignRepo,
		creativeRepo: creativeRepo,
		accountRepo:  accountRepo,
		cfg:          cfg,
	}
}

func (s *Service) CreateCampaign(ctx context.Context, userID int, req *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if req.Name == "" {
		return nil, NewCampaignError(ErrInvalidCampaignData, userID, "", "Nome é obrigatório")
	}

	objective := domain.CampaignObjective(req.Objective)
	if !objective.Valid() {
		return nil, NewCampaignError(ErrInvalidCampaignData, userID, "", fmt.Sprintf("Objetivo inválido: %s", req.Objective))
	}

	if req.Budget <= 0 {
		return nil, NewCampaignError(ErrInvalidCampaignData, userID, "", "Orçamento deve ser maior que zero")
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil || startDate == nil {
		return nil, NewCampaignError(ErrInvalidCampaignData, userID, "", "Data de início inválida")
	}

	var endDate *time.Time
	if req.EndDate != nil {
		endDate, err = utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, NewCampaignError(ErrInvalidCampaignData, userID, "", "Data de término inválida")
		}
	}

	if endDate != nil && !endDate.After(*startDate) {
		return nil, NewCampaignError(ErrInvalidCampaignData, userID, "", "Data de término deve ser posterior à de início")
	}

	if req.LinkedAccountID != nil {
		if err := s.checkAccountOwnership(ctx, userID, *req.LinkedAccountID); err != nil {
			return nil, err
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	campaign := &domain.Campaign{
		ID:              id,
		UserID:          userID,
		LinkedAccountID: req.LinkedAccountID,
		Name:            req.Name,
		Objective:       objective,
		Status:          domain.CampaignStatusDraft,
		Budget:          req.Budget,
		StartDate:       *startDate,
		EndDate:         endDate,
		TargetAudience:  req.TargetAudience,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (s *Service) GetCampaign(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error) {
	return s.getOwnedCampaign(ctx, userID, campaignID)
}

func (s *Service) ListCampaigns(ctx context.Context, userID int) ([]*domain.Campaign, error) {
	return s.campaignRepo.ListByUserID(ctx, userID)
}

// UpdateCampaign aplica alterações parciais. Só rascunhos e campanhas
// com erro de lançamento são editáveis; depois do lançamento a campanha
// é um registro do que foi publicado.
func (s *Service) UpdateCampaign(ctx context.Context, userID int, req *domain.UpdateCampaignRequest) (*domain.Campaign, error) {
	campaign, err := s.getOwnedCampaign(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	if !s.editable(campaign) {
		return nil, NewCampaignError(ErrCampaignLocked, userID, campaign.ID, string(campaign.Status))
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewCampaignError(ErrInvalidCampaignData, userID, campaign.ID, "Nome não pode ser vazio")
		}
		campaign.Name = *req.Name
	}

	if req.Objective != nil {
		objective := domain.CampaignObjective(*req.Objective)
		if !objective.Valid() {
			return nil, NewCampaignError(ErrInvalidCampaignData, userID, campaign.ID, fmt.Sprintf("Objetivo inválido: %s", *req.Objective))
		}
		campaign.Objective = objective
	}

	if req.Budget != nil {
		if *req.Budget <= 0 {
			return nil, NewCampaignError(ErrInvalidCampaignData, userID, campaign.ID, "Orçamento deve ser maior que zero")
		}
		campaign.Budget = *req.Budget
	}

	if req.StartDate != nil {
		startDate, err := utils.ParseDate(*req.StartDate)
		if err != nil || startDate == nil {
			return nil, NewCampaignError(ErrInvalidCampaignData, userID, campaign.ID, "Data de início inválida")
		}
		campaign.StartDate = *startDate
	}

	if req.EndDate != nil {
		endDate, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, NewCampaignError(ErrInvalidCampaignData, userID, campaign.ID, "Data de término inválida")
		}
		campaign.EndDate = endDate
	}

	if campaign.EndDate != nil && !campaign.EndDate.After(campaign.StartDate) {
		return nil, NewCampaignError(ErrInvalidCampaignData, userID, campaign.ID, "Data de término deve ser posterior à de início")
	}

	if req.TargetAudience != nil {
		campaign.TargetAudience = req.TargetAudience
	}

	if req.LinkedAccountID != nil {
		if err := s.checkAccountOwnership(ctx, userID, *req.LinkedAccountID); err != nil {
			return nil, err
		}
		campaign.LinkedAccountID = req.LinkedAccountID
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	return campaign, nil
}

// DeleteCampaign remove a campanha e os arquivos dos criativos. A
// remoção dos registros de criativos fica por conta do banco (cascade).
func (s *Service) DeleteCampaign(ctx context.Context, userID int, campaignID string) error {
	campaign, err := s.getOwnedCampaign(ctx, userID, campaignID)
	if err != nil {
		return err
	}

	if campaign.Status == domain.CampaignStatusActive {
		return NewCampaignError(ErrCampaignLocked, userID, campaign.ID, "Campanha ativa não pode ser removida")
	}

	creatives, err := s.creativeRepo.ListByCampaignID(ctx, campaign.ID)
	if err != nil {
		return err
	}

	if err := s.campaignRepo.Delete(ctx, campaign.ID); err != nil {
		return err
	}

	for _, creative := range creatives {
		if err := os.Remove(creative.FilePath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("file_path", creative.FilePath).Warn("Erro ao remover arquivo de criativo")
		}
	}

	return nil
}

// AddCreative salva o arquivo no armazenamento local com nome gerado e
// registra os metadados. O nome original fica só nos metadados.
func (s *Service) AddCreative(ctx context.Context, userID int, campaignID string, upload *CreativeUpload) (*domain.Creative, error) {
	campaign, err := s.getOwnedCampaign(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	if _, ok := allowedFileTypes[upload.ContentType]; !ok {
		return nil, NewCampaignError(ErrUnsupportedFileType, userID, campaign.ID, upload.ContentType)
	}

	if err := os.MkdirAll(s.cfg.Storage.CreativesDir, 0o755); err != nil {
		return nil, err
	}

	storedName := uuid.NewString() + filepath.Ext(upload.FileName)
	filePath := filepath.Join(s.cfg.Storage.CreativesDir, storedName)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	size, err := io.Copy(file, upload.Data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	creative := &domain.Creative{
		ID:         id,
		CampaignID: campaign.ID,
		FilePath:   filePath,
		FileType:   upload.ContentType,
		FileName:   upload.FileName,
		FileSize:   size,
	}

	if err := s.creativeRepo.Create(ctx, creative); err != nil {
		os.Remove(filePath)
		return nil, err
	}

	return creative, nil
}

func (s *Service) ListCreatives(ctx context.Context, userID int, campaignID string) ([]*domain.Creative, error) {
	campaign, err := s.getOwnedCampaign(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}

	return s.creativeRepo.ListByCampaignID(ctx, campaign.ID)
}

func (s *Service) DeleteCreative(ctx context.Context, userID int, campaignID, creativeID string) error {
	campaign, err := s.getOwnedCampaign(ctx, userID, campaignID)
	if err != nil {
		return err
	}

	creative, err := s.creativeRepo.GetByID(ctx, creativeID)
	if err != nil {
		return err
	}

	if creative == nil || creative.CampaignID != campaign.ID {
		return NewCampaignError(ErrCreativeNotFound, userID, campaign.ID, creativeID)
	}

	if err := s.creativeRepo.Delete(ctx, creative.ID); err != nil {
		return err
	}

	if err := os.Remove(creative.FilePath); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("file_path", creative.FilePath).Warn("Erro ao remover arquivo de criativo")
	}

	return nil
}

// getOwnedCampaign retorna a campanha apenas se ela pertence ao
// usuário. Campanha de outro usuário responde como inexistente.
func (s *Service) getOwnedCampaign(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil || campaign.UserID != userID {
		return nil, NewCampaignError(ErrCampaignNotFound, userID, campaignID, "")
	}

	return campaign, nil
}

func (s *Service) checkAccountOwnership(ctx context.Context, userID int, accountID string) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if account == nil || account.UserID != userID {
		return NewCampaignError(ErrAccountNotFound, userID, "", accountID)
	}

	return nil
}

func (s *Service) editable(campaign *domain.Campaign) bool {
	return campaign.Status == domain.CampaignStatusDraft || campaign.Status == domain.CampaignStatusError
}
