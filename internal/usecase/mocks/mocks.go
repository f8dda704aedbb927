package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without an override func it behaves as an in-memory store.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByUsernameFunc     func(ctx context.Context, username string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateCashBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Username == username {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) UpdateCashBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateCashBalanceFunc != nil {
		return m.UpdateCashBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.CashBalance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

// Seed adds an account to the in-memory store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

// MockTradeRepository is a mock implementation of TradeRepository backed
// by an in-memory append-only slice.
type MockTradeRepository struct {
	mu     sync.RWMutex
	trades []*domain.Trade

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, trade *domain.Trade) error
	PositionFunc      func(ctx context.Context, accountID, symbol string) (int64, error)
	PositionTxFunc    func(ctx context.Context, tx usecase.Transaction, accountID, symbol string) (int64, error)
	PositionsFunc     func(ctx context.Context, accountID string) (map[string]int64, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Trade, error)
}

func NewMockTradeRepository() *MockTradeRepository {
	return &MockTradeRepository{}
}

func (m *MockTradeRepository) Create(ctx context.Context, tx usecase.Transaction, trade *domain.Trade) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, trade)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, trade)
	return nil
}

func (m *MockTradeRepository) Position(ctx context.Context, accountID, symbol string) (int64, error) {
	if m.PositionFunc != nil {
		return m.PositionFunc(ctx, accountID, symbol)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, t := range m.trades {
		if t.AccountID == accountID && t.Symbol == symbol {
			sum += t.Shares
		}
	}
	return sum, nil
}

func (m *MockTradeRepository) PositionTx(ctx context.Context, tx usecase.Transaction, accountID, symbol string) (int64, error) {
	if m.PositionTxFunc != nil {
		return m.PositionTxFunc(ctx, tx, accountID, symbol)
	}
	return m.Position(ctx, accountID, symbol)
}

func (m *MockTradeRepository) Positions(ctx context.Context, accountID string) (map[string]int64, error) {
	if m.PositionsFunc != nil {
		return m.PositionsFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	positions := make(map[string]int64)
	for _, t := range m.trades {
		if t.AccountID == accountID {
			positions[t.Symbol] += t.Shares
		}
	}
	for symbol, shares := range positions {
		if shares == 0 {
			delete(positions, symbol)
		}
	}
	return positions, nil
}

func (m *MockTradeRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Trade, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Trade
	for _, t := range m.trades {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExecutedAt.After(out[j].ExecutedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Trades returns a copy of all appended trades.
func (m *MockTradeRepository) Trades() []*domain.Trade {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Trade(nil), m.trades...)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns a copy of all recorded events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTransaction is a no-op transaction that records its outcome.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu sync.Mutex

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	Began     []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Began = append(m.Began, tx)
	return tx, nil
}

// MockIDGenerator generates ULIDs unless overridden.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return ulid.Make().String()
}

// MockSessionStore is an in-memory SessionStore.
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string

	CreateFunc  func(ctx context.Context, accountID string, ttl time.Duration) (string, error)
	GetFunc     func(ctx context.Context, token string) (string, error)
	DestroyFunc func(ctx context.Context, token string) error
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]string)}
}

func (m *MockSessionStore) Create(ctx context.Context, accountID string, ttl time.Duration) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, accountID, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	token := ulid.Make().String()
	m.sessions[token] = accountID
	return token, nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if accountID, ok := m.sessions[token]; ok {
		return accountID, nil
	}
	return "", domain.ErrSessionNotFound
}

func (m *MockSessionStore) Destroy(ctx context.Context, token string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, token)
	return nil
}

// MockRetrier runs the operation once, no backoff.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
