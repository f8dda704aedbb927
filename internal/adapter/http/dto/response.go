package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
)

// AccountResponse represents an account in API responses. The password
// hash never leaves the server.
type AccountResponse struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Username:    a.Username,
		CashBalance: a.CashBalance,
		CreatedAt:   a.CreatedAt,
	}
}

// LoginResponse carries the session token issued at login.
type LoginResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// QuoteResponse represents a quote in API responses.
type QuoteResponse struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// QuoteFromDomain converts a domain quote to a response.
func QuoteFromDomain(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		Symbol: q.Symbol,
		Name:   q.Name,
		Price:  q.Price,
	}
}

// ReceiptResponse confirms an executed trade.
type ReceiptResponse struct {
	TradeID    string          `json:"trade_id"`
	Symbol     string          `json:"symbol"`
	Side       string          `json:"side"`
	Shares     int64           `json:"shares"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// ReceiptFromDomain converts a domain receipt to a response.
func ReceiptFromDomain(rc *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		TradeID:    rc.TradeID,
		Symbol:     rc.Symbol,
		Side:       string(rc.Side),
		Shares:     rc.Shares,
		Price:      rc.Price,
		Total:      rc.Total,
		ExecutedAt: rc.ExecutedAt,
	}
}

// TradeResponse represents a ledger trade in API responses.
type TradeResponse struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Side          string          `json:"side"`
	Shares        int64           `json:"shares"`
	PricePerShare decimal.Decimal `json:"price_per_share"`
	ExecutedAt    time.Time       `json:"executed_at"`
}

// TradeFromDomain converts a domain trade to a response.
func TradeFromDomain(t *domain.Trade) *TradeResponse {
	return &TradeResponse{
		ID:            t.ID,
		Symbol:        t.Symbol,
		Side:          string(t.Side()),
		Shares:        t.Shares,
		PricePerShare: t.PricePerShare,
		ExecutedAt:    t.ExecutedAt,
	}
}

// TradesFromDomain converts domain trades to responses.
func TradesFromDomain(trades []*domain.Trade) []*TradeResponse {
	result := make([]*TradeResponse, len(trades))
	for i, t := range trades {
		result[i] = TradeFromDomain(t)
	}
	return result
}

// HoldingResponse represents a valued position in API responses.
type HoldingResponse struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Shares      int64           `json:"shares"`
	Price       decimal.Decimal `json:"price"`
	MarketValue decimal.Decimal `json:"market_value"`
}

// PortfolioResponse represents the portfolio view in API responses.
type PortfolioResponse struct {
	Cash        decimal.Decimal   `json:"cash"`
	Holdings    []HoldingResponse `json:"holdings"`
	StocksValue decimal.Decimal   `json:"stocks_value"`
	TotalWorth  decimal.Decimal   `json:"total_worth"`
}

// PortfolioFromDomain converts a domain portfolio to a response.
func PortfolioFromDomain(p *domain.Portfolio) *PortfolioResponse {
	holdings := make([]HoldingResponse, len(p.Holdings))
	for i, h := range p.Holdings {
		holdings[i] = HoldingResponse{
			Symbol:      h.Symbol,
			Name:        h.Name,
			Shares:      h.Shares,
			Price:       h.Price,
			MarketValue: h.MarketValue,
		}
	}

	return &PortfolioResponse{
		Cash:        p.Cash,
		Holdings:    holdings,
		StocksValue: p.StocksValue,
		TotalWorth:  p.TotalWorth,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
