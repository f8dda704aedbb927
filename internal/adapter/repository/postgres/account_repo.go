package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const createAccountQuery = `
INSERT INTO accounts (id, username, password_hash, cash_balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

// Create creates a new account inside the given transaction.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createAccountQuery,
		account.ID,
		account.Username,
		account.PasswordHash,
		decimalToNumeric(account.CashBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

const getAccountQuery = `
SELECT id, username, password_hash, cash_balance, created_at, updated_at
FROM accounts
WHERE id = $1
`

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.scanAccount(r.pool.QueryRow(ctx, getAccountQuery, id))
}

const getAccountByUsernameQuery = `
SELECT id, username, password_hash, cash_balance, created_at, updated_at
FROM accounts
WHERE username = $1
`

// GetByUsername retrieves an account by username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.scanAccount(r.pool.QueryRow(ctx, getAccountByUsernameQuery, username))
}

const getAccountForUpdateQuery = `
SELECT id, username, password_hash, cash_balance, created_at, updated_at
FROM accounts
WHERE id = $1
FOR UPDATE
`

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.scanAccount(pgxTx.QueryRow(ctx, getAccountForUpdateQuery, id))
}

const updateCashBalanceQuery = `
UPDATE accounts
SET cash_balance = $2, updated_at = $3
WHERE id = $1
`

// UpdateCashBalance updates the cash balance of an account.
func (r *AccountRepository) UpdateCashBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, updateCashBalanceQuery,
		id,
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)

	return err
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&balance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.CashBalance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
