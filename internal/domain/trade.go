package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side of a trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade is a single executed trade in the ledger. Shares are signed:
// positive for buys, negative for sells. Trades are append-only and are
// never updated or deleted; positions are always derived by summing them.
type Trade struct {
	ID            string
	AccountID     string
	Symbol        string
	Shares        int64
	PricePerShare decimal.Decimal
	ExecutedAt    time.Time
}

// Side returns the side of the trade derived from the sign of Shares.
func (t *Trade) Side() Side {
	if t.Shares < 0 {
		return SideSell
	}
	return SideBuy
}

// Value returns the cash moved by this trade at execution price.
func (t *Trade) Value() decimal.Decimal {
	return t.PricePerShare.Mul(decimal.NewFromInt(abs(t.Shares)))
}

// Receipt confirms an executed trade back to the caller.
type Receipt struct {
	TradeID    string
	Symbol     string
	Side       Side
	Shares     int64
	Price      decimal.Decimal
	Total      decimal.Decimal
	ExecutedAt time.Time
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
