package domain

import "time"

// Event types
const (
	EventTypeTradeExecuted     = "trade.executed"
	EventTypeAccountRegistered = "account.registered"
)

// Aggregate types
const (
	AggregateTypeTrade   = "trade"
	AggregateTypeAccount = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TradeExecutedEvent payload
type TradeExecutedEvent struct {
	TradeID       string `json:"trade_id"`
	AccountID     string `json:"account_id"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Shares        int64  `json:"shares"`
	PricePerShare string `json:"price_per_share"`
	ExecutedAt    string `json:"executed_at"`
}

// AccountRegisteredEvent payload
type AccountRegisteredEvent struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
}
