package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered trading account with a cash balance.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CashBalance  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateDebit checks if the account can pay amount out of its cash balance.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.CashBalance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the cash balance after paying amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.CashBalance.Sub(amount)
}

// ApplyCredit returns the cash balance after receiving amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.CashBalance.Add(amount)
}
