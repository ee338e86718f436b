package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/quickcampaigns/campaigns-api/infrastructure/database/postgres"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

const creativesTable = "creatives"

type CreativeRepository interface {
	Create(ctx context.Context, creative *domain.Creative) error
	GetByID(ctx context.Context, id string) (*domain.Creative, error)
	ListByCampaignID(ctx context.Context, campaignID string) ([]*domain.Creative, error)
	Delete(ctx context.Context, id string) error
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

func (r *creativeRepository) Create(ctx context.Context, creative *domain.Creative) error {
	insertSQL, insertArgs, err := squirrel.
		Insert(creativesTable).
		Columns("id", "campaign_id", "file_path", "file_type", "file_name", "file_size").
		Values(
			creative.ID,
			creative.CampaignID,
			creative.FilePath,
			creative.FileType,
			creative.FileName,
			creative.FileSize,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	row := r.conn.QueryRowContext(ctx, insertSQL, insertArgs...)
	return row.Scan(&creative.CreatedAt)
}

func (r *creativeRepository) GetByID(ctx context.Context, id string) (*domain.Creative, error) {
	creativeSQL, creativeArgs, err := squirrel.
		Select("id, campaign_id, file_path, file_type, file_name, file_size, created_at").
		From(creativesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	creative := &domain.Creative{}

	row := r.conn.QueryRowContext(ctx, creativeSQL, creativeArgs...)
	if err := row.Scan(
		&creative.ID,
		&creative.CampaignID,
		&creative.FilePath,
		&creative.FileType,
		&creative.FileName,
		&creative.FileSize,
		&creative.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return creative, nil
}

func (r *creativeRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]*domain.Creative, error) {
	listSQL, listArgs, err := squirrel.
		Select("id, campaign_id, file_path, file_type, file_name, file_size, created_at").
		From(creativesTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("created_at ASC").
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

	creatives := make([]*domain.Creative, 0)

	for rows.Next() {
		creative := &domain.Creative{}
		if err := rows.Scan(
			&creative.ID,
			&creative.CampaignID,
			&creative.FilePath,
			&creative.FileType,
			&creative.FileName,
			&creative.FileSize,
			&creative.CreatedAt,
		); err != nil {
			return nil, err
		}

		creatives = append(creatives, creative)
	}

	return creatives, rows.Err()
}

func (r *creativeRepository) Delete(ctx context.Context, id string) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete(creativesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, deleteSQL, deleteArgs...)
	return err
}
