package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrWeakPassword    = errors.New("password does not meet requirements")
	ErrInvalidSymbol   = errors.New("invalid symbol")
)

// Validation constants
const (
	MinUsernameLength = 1
	MaxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxSymbolLength   = 12
)

var (
	usernameRegex  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	symbolRegex    = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]*$`)
	hasUpperRegex  = regexp.MustCompile(`[A-Z]`)
	hasNumberRegex = regexp.MustCompile(`[0-9]`)
)

// ValidateUsername validates a username. Comparison elsewhere is
// case-sensitive exact match, so no normalization happens here.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidUsername)
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username exceeds %d characters", ErrInvalidUsername, MaxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: only letters, digits, '.', '_' and '-' are allowed", ErrInvalidUsername)
	}

	return nil
}

// ValidatePassword validates password strength: at least MinPasswordLength
// characters with at least one uppercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrWeakPassword, MaxPasswordLength)
	}

	if !hasUpperRegex.MatchString(password) || !hasNumberRegex.MatchString(password) {
		return fmt.Errorf("%w: must contain an uppercase letter and a digit", ErrWeakPassword)
	}

	return nil
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol validates a normalized ticker symbol.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: symbol cannot be empty", ErrInvalidSymbol)
	}

	if len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: symbol exceeds %d characters", ErrInvalidSymbol, MaxSymbolLength)
	}

	if !symbolRegex.MatchString(symbol) {
		return fmt.Errorf("%w: %s", ErrInvalidSymbol, symbol)
	}

	return nil
}

// ValidateShares validates a requested share count for a buy or sell.
func ValidateShares(shares int64) error {
	if shares <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 500
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
