package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/papertrade/internal/domain"
)

func TestSessionCreateAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	token, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	accountID, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if accountID != "acct-1" {
		t.Fatalf("expected acct-1, got %s", accountID)
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	t1, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	t2, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if t1 == t2 {
		t.Fatal("expected distinct tokens for separate logins")
	}
}

func TestSessionGetUnknownToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "no-such-token")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionDestroy(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	token, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	_, err = store.Get(ctx, token)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}

	if err := store.Destroy(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second destroy, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	token, err := store.Create(ctx, "acct-1", time.Minute)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, token)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}
