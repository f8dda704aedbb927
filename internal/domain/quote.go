package domain

import "github.com/shopspring/decimal"

// Quote is a point-in-time price for a symbol, as reported by the
// external quote provider. Price is always strictly positive.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}
