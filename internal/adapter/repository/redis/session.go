package redis

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iho/papertrade/internal/domain"
)

// SessionStore implements usecase.SessionStore using Redis. Tokens are
// opaque ULIDs; destroying the key is all it takes to end a session.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Create issues a new session token for the account.
func (s *SessionStore) Create(ctx context.Context, accountID string, ttl time.Duration) (string, error) {
	token := ulid.Make().String()

	err := s.client.Set(ctx, s.prefix+token, accountID, ttl).Err()
	if err != nil {
		return "", err
	}

	return token, nil
}

// Get resolves a token to an account ID.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	accountID, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}

		return "", err
	}

	return accountID, nil
}

// Destroy removes a session. Destroying an expired or unknown token
// reports ErrSessionNotFound.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, s.prefix+token).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}
