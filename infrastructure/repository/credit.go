package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/quickcampaigns/campaigns-api/infrastructure/database/postgres"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

const (
	creditBalancesTable     = "credit_balances"
	creditTransactionsTable = "credit_transactions"
)

// CreditRepository dá acesso ao saldo e ao livro-razão. As operações Tx
// recebem a transação aberta pelo chamador para que a leitura com lock,
// a mutação do saldo e o registro no razão aconteçam como uma unidade.
type CreditRepository interface {
	GetBalance(ctx context.Context, userID int) (*domain.CreditBalance, error)
	CreateBalance(ctx context.Context, balance *domain.CreditBalance) error
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int) (*domain.CreditBalance, error)
	CreateBalanceTx(ctx context.Context, tx *sql.Tx, balance *domain.CreditBalance) error
	UpdateBalanceTx(ctx context.Context, tx *sql.Tx, id string, balance int) error
	InsertTransactionTx(ctx context.Context, tx *sql.Tx, transaction *domain.CreditTransaction) error
	ListTransactions(ctx context.Context, userID int) ([]*domain.CreditTransaction, error)
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

type creditRepository struct {
	conn *postgres.Connection
}

func NewCreditRepository(conn *postgres.Connection) CreditRepository {
	return &creditRepository{
		conn: conn,
	}
}

func (r *creditRepository) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return r.conn.RunInTransaction(ctx, fn)
}

func (r *creditRepository) GetBalance(ctx context.Context, userID int) (*domain.CreditBalance, error) {
	balanceSQL, balanceArgs, err := balanceQuery(userID).ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, balanceSQL, balanceArgs...)
	return scanBalance(row)
}

func (r *creditRepository) CreateBalance(ctx context.Context, balance *domain.CreditBalance) error {
	insertSQL, insertArgs, err := squirrel.
		Insert(creditBalancesTable).
		Columns("id", "user_id", "balance").
		Values(balance.ID, balance.UserID, balance.Balance).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, insertSQL, insertArgs...)
	return err
}

// GetBalanceForUpdate lê o saldo segurando um lock de linha (FOR UPDATE).
// Débitos concorrentes do mesmo usuário serializam aqui, o que impede
// que dois cheques de saldo passem e o saldo fique negativo.
func (r *creditRepository) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID int) (*domain.CreditBalance, error) {
	balanceSQL, balanceArgs, err := balanceQuery(userID).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx, balanceSQL, balanceArgs...)
	return scanBalance(row)
}

func (r *creditRepository) CreateBalanceTx(ctx context.Context, tx *sql.Tx, balance *domain.CreditBalance) error {
	insertSQL, insertArgs, err := squirrel.
		Insert(creditBalancesTable).
		Columns("id", "user_id", "balance").
		Values(balance.ID, balance.UserID, balance.Balance).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	row := tx.QueryRowContext(ctx, insertSQL, insertArgs...)
	return row.Scan(&balance.CreatedAt, &balance.UpdatedAt)
}

func (r *creditRepository) UpdateBalanceTx(ctx context.Context, tx *sql.Tx, id string, balance int) error {
	updateSQL, updateArgs, err := squirrel.
		Update(creditBalancesTable).
		Set("balance", balance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, updateSQL, updateArgs...)
	return err
}

func (r *creditRepository) InsertTransactionTx(ctx context.Context, tx *sql.Tx, transaction *domain.CreditTransaction) error {
	insertSQL, insertArgs, err := squirrel.
		Insert(creditTransactionsTable).
		Columns("id", "user_id", "amount", "type", "description", "external_payment_id", "campaign_id").
		Values(
			transaction.ID,
			transaction.UserID,
			transaction.Amount,
			transaction.Type,
			transaction.Description,
			transaction.ExternalPaymentID,
			transaction.CampaignID,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	row := tx.QueryRowContext(ctx, insertSQL, insertArgs...)
	return row.Scan(&transaction.CreatedAt)
}

func (r *creditRepository) ListTransactions(ctx context.Context, userID int) ([]*domain.CreditTransaction, error) {
	listSQL, listArgs, err := squirrel.
		Select("id, user_id, amount, type, description, external_payment_id, campaign_id, created_at").
		From(creditTransactionsTable).
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

	transactions := make([]*domain.CreditTransaction, 0)

	for rows.Next() {
		transaction := &domain.CreditTransaction{}
		if err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.Amount,
			&transaction.Type,
			&transaction.Description,
			&transaction.ExternalPaymentID,
			&transaction.CampaignID,
			&transaction.CreatedAt,
		); err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

func balanceQuery(userID int) squirrel.SelectBuilder {
	return squirrel.
		Select("id, user_id, balance, created_at, updated_at").
		From(creditBalancesTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
}

func scanBalance(row *sql.Row) (*domain.CreditBalance, error) {
	balance := &domain.CreditBalance{}

	if err := row.Scan(
		&balance.ID,
		&balance.UserID,
		&balance.Balance,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return balance, nil
}
