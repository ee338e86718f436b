package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/quickcampaigns/campaigns-api/infrastructure/database/postgres"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

const linkedAccountsTable = "linked_ad_accounts"

const linkedAccountColumns = "id, user_id, external_account_id, name, access_token, is_active, created_at, updated_at"

type LinkedAccountRepository interface {
	SaveOrUpdate(ctx context.Context, account *domain.LinkedAdAccount) (*domain.LinkedAdAccount, error)
	GetByID(ctx context.Context, id string) (*domain.LinkedAdAccount, error)
	ListByUserID(ctx context.Context, userID int) ([]*domain.LinkedAdAccount, error)
	GetActiveByUserID(ctx context.Context, userID int) (*domain.LinkedAdAccount, error)
	Delete(ctx context.Context, id string, userID int) (bool, error)
}

type linkedAccountRepository struct {
	conn *postgres.Connection
}

func NewLinkedAccountRepository(conn *postgres.Connection) LinkedAccountRepository {
	return &linkedAccountRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza a conta vinculada usando a chave
// (user_id, external_account_id). Repetir o callback do OAuth para a
// mesma conta atualiza nome, token e reativa o vínculo em vez de
// duplicar o registro.
func (r *linkedAccountRepository) SaveOrUpdate(ctx context.Context, account *domain.LinkedAdAccount) (*domain.LinkedAdAccount, error) {
	upsertSQL, upsertArgs, err := squirrel.
		Insert(linkedAccountsTable).
		Columns("id", "user_id", "external_account_id", "name", "access_token", "is_active").
		Values(account.ID, account.UserID, account.ExternalAccountID, account.Name, account.AccessToken, true).
		Suffix(`
			ON CONFLICT (user_id, external_account_id) DO UPDATE SET
				name = EXCLUDED.name,
				access_token = EXCLUDED.access_token,
				is_active = TRUE,
				updated_at = NOW()
			RETURNING ` + linkedAccountColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, upsertSQL, upsertArgs...)

	saved, err := deserializeLinkedAccount(row)
	if err != nil {
		// A UNIQUE global de external_account_id dispara quando a conta
		// já está vinculada a outro usuário.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrUniqueViolation
		}
		return nil, err
	}

	return saved, nil
}

func (r *linkedAccountRepository) GetByID(ctx context.Context, id string) (*domain.LinkedAdAccount, error) {
	accountSQL, accountArgs, err := squirrel.
		Select(linkedAccountColumns).
		From(linkedAccountsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, accountSQL, accountArgs...)

	acc, err := deserializeLinkedAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (r *linkedAccountRepository) ListByUserID(ctx context.Context, userID int) ([]*domain.LinkedAdAccount, error) {
	listSQL, listArgs, err := squirrel.
		Select(linkedAccountColumns).
		From(linkedAccountsTable).
		Where(squirrel.Eq{"user_id": userID}).
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

	accounts := make([]*domain.LinkedAdAccount, 0)

	for rows.Next() {
		acc := &domain.LinkedAdAccount{}
		if err := rows.Scan(
			&acc.ID,
			&acc.UserID,
			&acc.ExternalAccountID,
			&acc.Name,
			&acc.AccessToken,
			&acc.IsActive,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// GetActiveByUserID retorna a conta ativa mais antiga do usuário, que é a
// conta usada nos lançamentos de campanha.
func (r *linkedAccountRepository) GetActiveByUserID(ctx context.Context, userID int) (*domain.LinkedAdAccount, error) {
	accountSQL, accountArgs, err := squirrel.
		Select(linkedAccountColumns).
		From(linkedAccountsTable).
		Where(squirrel.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, accountSQL, accountArgs...)

	acc, err := deserializeLinkedAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

// Delete remove o vínculo se ele pertencer ao usuário. Retorna false
// quando nada foi removido, sem distinguir ausência de falta de
// permissão.
func (r *linkedAccountRepository) Delete(ctx context.Context, id string, userID int) (bool, error) {
	deleteSQL, deleteArgs, err := squirrel.
		Delete(linkedAccountsTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.conn.ExecContext(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func deserializeLinkedAccount(row *sql.Row) (*domain.LinkedAdAccount, error) {
	acc := &domain.LinkedAdAccount{}

	if err := row.Scan(
		&acc.ID,
		&acc.UserID,
		&acc.ExternalAccountID,
		&acc.Name,
		&acc.AccessToken,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}
