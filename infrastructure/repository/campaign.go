package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/quickcampaigns/campaigns-api/infrastructure/database/postgres"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

const campaignsTable = "campaigns"

const campaignColumns = `id, user_id, linked_account_id, name, objective, status, budget,
	start_date, end_date, target_audience, external_campaign_id, created_at, updated_at`

type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByUserID(ctx context.Context, userID int) ([]*domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	UpdateLaunchResult(ctx context.Context, id string, status domain.CampaignStatus, externalCampaignID *string) error
	Delete(ctx context.Context, id string) error
	CompleteExpired(ctx context.Context, reference time.Time) (int64, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	insertSQL, insertArgs, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "user_id", "linked_account_id", "name", "objective", "status",
			"budget", "start_date", "end_date", "target_audience").
		Values(
			campaign.ID,
			campaign.UserID,
			campaign.LinkedAccountID,
			campaign.Name,
			campaign.Objective,
			campaign.Status,
			campaign.Budget,
			campaign.StartDate,
			campaign.EndDate,
			campaign.TargetAudience,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	row := r.conn.QueryRowContext(ctx, insertSQL, insertArgs...)
	return row.Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	campaignSQL, campaignArgs, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, campaignSQL, campaignArgs...)

	campaign, err := deserializeCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return campaign, nil
}

func (r *campaignRepository) ListByUserID(ctx context.Context, userID int) ([]*domain.Campaign, error) {
	listSQL, listArgs, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)

	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := scanCampaign(rows, campaign); err != nil {
			return nil, err
		}

		campaigns = append(campaigns, campaign)
	}

	return campaigns, rows.Err()
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	updateSQL, updateArgs, err := squirrel.
		Update(campaignsTable).
		Set("linked_account_id", campaign.LinkedAccountID).
		Set("name", campaign.Name).
		Set("objective", campaign.Objective).
		Set("status", campaign.Status).
		Set("budget", campaign.Budget).
		Set("start_date", campaign.StartDate).
		Set("end_date", campaign.EndDate).
		Set("target_audience", campaign.TargetAudience).
		Set("external_campaign_id", campaign.ExternalCampaignID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaign.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, updateSQL, updateArgs...)
	return err
}

// UpdateLaunchResult persiste o desfecho de um lançamento: status ativo
// com o ID externo no sucesso, ou status de erro sem ID na falha.
func (r *campaignRepository) UpdateLaunchResult(ctx context.Context, id string, status domain.CampaignStatus, externalCampaignID *string) error {
	queryBuilder := squirrel.
		Update(campaignsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if externalCampaignID != nil {
		queryBuilder = queryBuilder.Set("external_campaign_id", *externalCampaignID)
	}

	updateSQL, updateArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, updateSQL, updateArgs...)
	return err
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, deleteSQL, deleteArgs...)
	return err
}

// CompleteExpired move campanhas ativas com end_date vencida para o
// status completed. Idempotente: rodar de novo não altera nada.
func (r *campaignRepository) CompleteExpired(ctx context.Context, reference time.Time) (int64, error) {
	updateSQL, updateArgs, err := squirrel.
		Update(campaignsTable).
		Set("status", domain.CampaignStatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.CampaignStatusActive}).
		Where(squirrel.Lt{"end_date": reference}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, updateSQL, updateArgs...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func deserializeCampaign(row *sql.Row) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	if err := row.Scan(
		&campaign.ID,
		&campaign.UserID,
		&campaign.LinkedAccountID,
		&campaign.Name,
		&campaign.Objective,
		&campaign.Status,
		&campaign.Budget,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.TargetAudience,
		&campaign.ExternalCampaignID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return campaign, nil
}

func scanCampaign(rows *sql.Rows, campaign *domain.Campaign) error {
	return rows.Scan(
		&campaign.ID,
		&campaign.UserID,
		&campaign.LinkedAccountID,
		&campaign.Name,
		&campaign.Objective,
		&campaign.Status,
		&campaign.Budget,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.TargetAudience,
		&campaign.ExternalCampaignID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
}
