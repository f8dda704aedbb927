package domain

import "github.com/shopspring/decimal"

// Holding is a held symbol annotated with a live quote.
// MarketValue is Quote.Price multiplied by Shares.
type Holding struct {
	Symbol      string
	Name        string
	Shares      int64
	Price       decimal.Decimal
	MarketValue decimal.Decimal
}

// Portfolio is the derived view of everything an account owns:
// all positions with strictly positive share counts, valued at
// current prices, plus the cash balance.
type Portfolio struct {
	AccountID   string
	Cash        decimal.Decimal
	Holdings    []Holding
	StocksValue decimal.Decimal
	TotalWorth  decimal.Decimal
}
