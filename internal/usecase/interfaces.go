package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateCashBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

// TradeRepository defines data access for the append-only trade ledger.
type TradeRepository interface {
	Create(ctx context.Context, tx Transaction, trade *domain.Trade) error
	Position(ctx context.Context, accountID, symbol string) (int64, error)
	PositionTx(ctx context.Context, tx Transaction, accountID, symbol string) (int64, error)
	Positions(ctx context.Context, accountID string) (map[string]int64, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Trade, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// QuoteOracle looks up live prices from the external quote provider.
// Lookup returns domain.ErrUnknownSymbol when the provider does not know
// the symbol and domain.ErrQuoteUnavailable on transport failure or timeout.
type QuoteOracle interface {
	Lookup(ctx context.Context, symbol string) (*domain.Quote, error)
}

// SessionStore maps opaque session tokens to account identities.
type SessionStore interface {
	Create(ctx context.Context, accountID string, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on retryable storage errors. Domain errors
// are permanent and pass through unchanged.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
