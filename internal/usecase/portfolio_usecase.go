package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
)

// PortfolioUseCase derives the valued portfolio view from the ledger.
type PortfolioUseCase struct {
	accountRepo AccountRepository
	tradeRepo   TradeRepository
	oracle      QuoteOracle
}

// NewPortfolioUseCase creates a new PortfolioUseCase.
func NewPortfolioUseCase(accountRepo AccountRepository, tradeRepo TradeRepository, oracle QuoteOracle) *PortfolioUseCase {
	return &PortfolioUseCase{
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
		oracle:      oracle,
	}
}

// View values every positive position at its current quote and returns it
// together with the cash balance and total worth. A failed lookup for any
// held symbol fails the whole view; there is no partial or stale rendering.
func (uc *PortfolioUseCase) View(ctx context.Context, accountID string) (*domain.Portfolio, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	positions, err := uc.tradeRepo.Positions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(positions))
	for symbol, shares := range positions {
		if shares > 0 {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)

	portfolio := &domain.Portfolio{
		AccountID:   accountID,
		Cash:        account.CashBalance,
		Holdings:    make([]domain.Holding, 0, len(symbols)),
		StocksValue: decimal.Zero,
	}

	for _, symbol := range symbols {
		quote, err := uc.oracle.Lookup(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrQuoteUnavailable, symbol)
		}

		shares := positions[symbol]
		value := quote.Price.Mul(decimal.NewFromInt(shares))

		portfolio.Holdings = append(portfolio.Holdings, domain.Holding{
			Symbol:      symbol,
			Name:        quote.Name,
			Shares:      shares,
			Price:       quote.Price,
			MarketValue: value,
		})

		portfolio.StocksValue = portfolio.StocksValue.Add(value)
	}

	portfolio.TotalWorth = portfolio.Cash.Add(portfolio.StocksValue)

	return portfolio, nil
}
