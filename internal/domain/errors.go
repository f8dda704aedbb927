package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Trading errors
	ErrInvalidQuantity   = errors.New("shares must be a positive integer")
	ErrUnknownSymbol     = errors.New("unknown symbol")
	ErrInsufficientFunds = errors.New("insufficient cash balance")
	ErrQuoteUnavailable  = errors.New("quote provider unavailable")

	// Session errors
	ErrSessionNotFound = errors.New("session not found or expired")
)

// InsufficientSharesError is returned when a sell requests more shares
// than the account's current position. It carries the owned count so
// the caller can display it.
type InsufficientSharesError struct {
	Symbol string
	Owned  int64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares of %s: own %d", e.Symbol, e.Owned)
}

// IsInsufficientShares reports whether err is an InsufficientSharesError
// and returns it if so.
func IsInsufficientShares(err error) (*InsufficientSharesError, bool) {
	var e *InsufficientSharesError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
