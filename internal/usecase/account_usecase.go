package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/infrastructure/metrics"
)

// bcrypt hash of an unused throwaway password. Compared against when the
// username is unknown so both failure paths cost the same.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const pgUniqueViolation = "23505"

// AccountUseCase handles registration, authentication and sessions.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	outboxRepo   OutboxRepository
	sessions     SessionStore
	idGen        IDGenerator
	startingCash decimal.Decimal
	sessionTTL   time.Duration
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(txManager TransactionManager, accountRepo AccountRepository, outboxRepo OutboxRepository, sessions SessionStore, idGen IDGenerator, startingCash decimal.Decimal, sessionTTL time.Duration) *AccountUseCase {
	if startingCash.IsZero() {
		startingCash = decimal.RequireFromString(DefaultStartingCash)
	}
	if sessionTTL == 0 {
		sessionTTL = DefaultSessionTTL
	}

	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		outboxRepo:   outboxRepo,
		sessions:     sessions,
		idGen:        idGen,
		startingCash: startingCash,
		sessionTTL:   sessionTTL,
	}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a new account with a hashed password and the fixed
// starting cash balance. Username uniqueness is enforced by the database;
// a duplicate maps to domain.ErrUsernameTaken.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uc.idGen.Generate(),
		Username:     input.Username,
		PasswordHash: string(hash),
		CashBalance:  uc.startingCash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrUsernameTaken
		}

		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountRegistered,
		Payload: map[string]any{
			"account_id": account.ID,
			"username":   account.Username,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := *account
	result.PasswordHash = ""

	metrics.AccountRegistered()

	return &result, nil
}

// Authenticate verifies a username/password pair. Unknown user and wrong
// password both return domain.ErrInvalidCredentials.
func (uc *AccountUseCase) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Burn the same bcrypt cost as the mismatch path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account.PasswordHash = ""

	return account, nil
}

// Login authenticates and mints a session token.
func (uc *AccountUseCase) Login(ctx context.Context, username, password string) (*domain.Account, string, error) {
	account, err := uc.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := uc.sessions.Create(ctx, account.ID, uc.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	metrics.SessionCreated()

	return account, token, nil
}

// Logout destroys a session token. Destroying an unknown token is not an
// error; the session is gone either way.
func (uc *AccountUseCase) Logout(ctx context.Context, token string) error {
	err := uc.sessions.Destroy(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}

	return err
}

// ResolveSession maps a session token to an account ID.
func (uc *AccountUseCase) ResolveSession(ctx context.Context, token string) (string, error) {
	return uc.sessions.Get(ctx, token)
}

// GetAccount retrieves an account by ID with the password hash stripped.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = ""

	return account, nil
}
