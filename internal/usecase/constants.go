package usecase

import "time"

const (
	// DefaultStartingCash is the cash balance every new account starts with.
	DefaultStartingCash = "10000"

	// DefaultSessionTTL is how long a session token stays valid without logout.
	DefaultSessionTTL = 24 * time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
