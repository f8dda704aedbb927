package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
	"github.com/iho/papertrade/internal/usecase/mocks"
)

func TestPortfolioUseCase_View(t *testing.T) {
	ctx := context.Background()

	seed := func(tradeRepo *mocks.MockTradeRepository, symbol string, shares int64, price int64) {
		tradeRepo.Create(ctx, nil, &domain.Trade{
			ID: symbol + "-t", AccountID: "acc-1", Symbol: symbol, Shares: shares,
			PricePerShare: decimal.NewFromInt(price), ExecutedAt: time.Now().UTC(),
		})
	}

	t.Run("empty portfolio is just cash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accountRepo := mocks.NewMockAccountRepository()
		seedAccount(accountRepo, "acc-1", 10000)

		uc := usecase.NewPortfolioUseCase(accountRepo, mocks.NewMockTradeRepository(), mocks.NewMockQuoteOracle(ctrl))

		portfolio, err := uc.View(ctx, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(portfolio.Holdings) != 0 {
			t.Errorf("expected no holdings, got %d", len(portfolio.Holdings))
		}
		if !portfolio.TotalWorth.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("expected total 10000, got %s", portfolio.TotalWorth)
		}
	})

	t.Run("market value is price times shares", func(t *testing.T) {
		// A 10-share position at 100 contributes 1000 to the total,
		// not a single unit price.
		ctrl := gomock.NewController(t)
		accountRepo := mocks.NewMockAccountRepository()
		seedAccount(accountRepo, "acc-1", 9000)

		tradeRepo := mocks.NewMockTradeRepository()
		seed(tradeRepo, "NFLX", 10, 100)
		seed(tradeRepo, "AAPL", 2, 150)

		oracle := mocks.NewMockQuoteOracle(ctrl)
		oracle.EXPECT().Lookup(gomock.Any(), "AAPL").Return(&domain.Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.NewFromInt(150)}, nil)
		oracle.EXPECT().Lookup(gomock.Any(), "NFLX").Return(&domain.Quote{Symbol: "NFLX", Name: "Netflix Inc", Price: decimal.NewFromInt(100)}, nil)

		uc := usecase.NewPortfolioUseCase(accountRepo, tradeRepo, oracle)

		portfolio, err := uc.View(ctx, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !portfolio.StocksValue.Equal(decimal.NewFromInt(1300)) {
			t.Errorf("expected stocks value 1300, got %s", portfolio.StocksValue)
		}
		if !portfolio.TotalWorth.Equal(decimal.NewFromInt(10300)) {
			t.Errorf("expected total 10300, got %s", portfolio.TotalWorth)
		}

		// Holdings come back sorted by symbol.
		if portfolio.Holdings[0].Symbol != "AAPL" || portfolio.Holdings[1].Symbol != "NFLX" {
			t.Errorf("unexpected holding order: %+v", portfolio.Holdings)
		}
		if !portfolio.Holdings[1].MarketValue.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected NFLX market value 1000, got %s", portfolio.Holdings[1].MarketValue)
		}
	})

	t.Run("closed positions are not valued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accountRepo := mocks.NewMockAccountRepository()
		seedAccount(accountRepo, "acc-1", 10000)

		tradeRepo := mocks.NewMockTradeRepository()
		seed(tradeRepo, "NFLX", 10, 100)
		seed(tradeRepo, "NFLX", -10, 110)

		uc := usecase.NewPortfolioUseCase(accountRepo, tradeRepo, mocks.NewMockQuoteOracle(ctrl))

		portfolio, err := uc.View(ctx, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(portfolio.Holdings) != 0 {
			t.Errorf("expected no holdings for a closed position, got %+v", portfolio.Holdings)
		}
	})

	t.Run("oracle failure for a held symbol fails the whole view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accountRepo := mocks.NewMockAccountRepository()
		seedAccount(accountRepo, "acc-1", 9000)

		tradeRepo := mocks.NewMockTradeRepository()
		seed(tradeRepo, "AAPL", 2, 150)
		seed(tradeRepo, "NFLX", 10, 100)

		oracle := mocks.NewMockQuoteOracle(ctrl)
		oracle.EXPECT().Lookup(gomock.Any(), "AAPL").Return(&domain.Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.NewFromInt(150)}, nil).AnyTimes()
		oracle.EXPECT().Lookup(gomock.Any(), "NFLX").Return(nil, domain.ErrQuoteUnavailable)

		uc := usecase.NewPortfolioUseCase(accountRepo, tradeRepo, oracle)

		_, err := uc.View(ctx, "acc-1")
		if !errors.Is(err, domain.ErrQuoteUnavailable) {
			t.Fatalf("expected ErrQuoteUnavailable, got %v", err)
		}
	})

	t.Run("stable prices give identical totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accountRepo := mocks.NewMockAccountRepository()
		seedAccount(accountRepo, "acc-1", 9000)

		tradeRepo := mocks.NewMockTradeRepository()
		seed(tradeRepo, "NFLX", 10, 100)

		oracle := mocks.NewMockQuoteOracle(ctrl)
		oracle.EXPECT().Lookup(gomock.Any(), "NFLX").Return(&domain.Quote{Symbol: "NFLX", Name: "Netflix Inc", Price: decimal.NewFromInt(100)}, nil).Times(2)

		uc := usecase.NewPortfolioUseCase(accountRepo, tradeRepo, oracle)

		first, err := uc.View(ctx, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.View(ctx, "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !first.TotalWorth.Equal(second.TotalWorth) {
			t.Errorf("totals differ: %s vs %s", first.TotalWorth, second.TotalWorth)
		}
	})
}
