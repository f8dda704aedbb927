package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/papertrade/internal/adapter/repository/redis"
	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
	"github.com/iho/papertrade/tests/testutil"
)

func newAccountUseCase(t *testing.T, testDB *testutil.TestDB) *usecase.AccountUseCase {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return usecase.NewAccountUseCase(
		postgres.NewTxManager(testDB.Pool),
		postgres.NewAccountRepository(testDB.Pool),
		postgres.NewOutboxRepository(testDB.Pool),
		redisRepo.NewSessionStore(client),
		postgres.NewULIDGenerator(),
		decimal.NewFromInt(10000),
		24*time.Hour,
	)
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	accountUC := newAccountUseCase(t, testDB)

	account, err := accountUC.Register(ctx, usecase.RegisterInput{
		Username: "alice",
		Password: "Abcdef12",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !account.CashBalance.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected starting cash 10000, got %s", account.CashBalance)
	}

	logged, token, err := accountUC.Login(ctx, "alice", "Abcdef12")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != account.ID {
		t.Fatalf("expected login to resolve the registered account")
	}

	resolved, err := accountUC.ResolveSession(ctx, token)
	if err != nil || resolved != account.ID {
		t.Fatalf("expected session to resolve to %s, got %s (%v)", account.ID, resolved, err)
	}

	if err := accountUC.Logout(ctx, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := accountUC.ResolveSession(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	accountUC := newAccountUseCase(t, testDB)

	if _, err := accountUC.Register(ctx, usecase.RegisterInput{
		Username: "bob",
		Password: "Abcdef12",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := accountUC.Register(ctx, usecase.RegisterInput{
		Username: "bob",
		Password: "Ghijkl34",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
