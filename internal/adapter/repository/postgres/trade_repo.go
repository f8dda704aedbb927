package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
)

// TradeRepository implements usecase.TradeRepository over the append-only
// trades table. Positions are never stored; they are derived by summing
// signed share counts.
type TradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

const createTradeQuery = `
INSERT INTO trades (id, account_id, symbol, shares, price_per_share, executed_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

// Create appends a trade within a transaction.
func (r *TradeRepository) Create(ctx context.Context, tx usecase.Transaction, trade *domain.Trade) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createTradeQuery,
		trade.ID,
		trade.AccountID,
		trade.Symbol,
		trade.Shares,
		decimalToNumeric(trade.PricePerShare),
		timeToPgTimestamptz(trade.ExecutedAt),
	)

	return err
}

const positionQuery = `
SELECT COALESCE(SUM(shares), 0)
FROM trades
WHERE account_id = $1 AND symbol = $2
`

// Position returns the net share count for one symbol.
func (r *TradeRepository) Position(ctx context.Context, accountID, symbol string) (int64, error) {
	var shares int64
	err := r.pool.QueryRow(ctx, positionQuery, accountID, symbol).Scan(&shares)

	return shares, err
}

// PositionTx returns the net share count for one symbol inside a
// transaction, so it observes rows written by that transaction and is
// serialized by any lock the transaction already holds.
func (r *TradeRepository) PositionTx(ctx context.Context, tx usecase.Transaction, accountID, symbol string) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var shares int64
	err := pgxTx.QueryRow(ctx, positionQuery, accountID, symbol).Scan(&shares)

	return shares, err
}

const positionsQuery = `
SELECT symbol, SUM(shares) AS shares
FROM trades
WHERE account_id = $1
GROUP BY symbol
HAVING SUM(shares) <> 0
ORDER BY symbol
`

// Positions returns all non-flat positions keyed by symbol.
func (r *TradeRepository) Positions(ctx context.Context, accountID string) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, positionsQuery, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make(map[string]int64)

	for rows.Next() {
		var (
			symbol string
			shares int64
		)
		if err := rows.Scan(&symbol, &shares); err != nil {
			return nil, err
		}

		positions[symbol] = shares
	}

	return positions, rows.Err()
}

const listTradesQuery = `
SELECT id, account_id, symbol, shares, price_per_share, executed_at
FROM trades
WHERE account_id = $1
ORDER BY executed_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// ListByAccount lists trades newest first with pagination.
func (r *TradeRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Trade, error) {
	rows, err := r.pool.Query(ctx, listTradesQuery, accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0, limit)

	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var (
		trade      domain.Trade
		price      pgtype.Numeric
		executedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&trade.ID,
		&trade.AccountID,
		&trade.Symbol,
		&trade.Shares,
		&price,
		&executedAt,
	)
	if err != nil {
		return nil, err
	}

	trade.PricePerShare = numericToDecimal(price)
	trade.ExecutedAt = executedAt.Time

	return &trade, nil
}
