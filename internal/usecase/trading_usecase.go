package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/infrastructure/metrics"
)

// TradingUseCase executes buy and sell orders against the cash balance
// and the trade ledger, atomically.
type TradingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	tradeRepo   TradeRepository
	outboxRepo  OutboxRepository
	oracle      QuoteOracle
	retrier     Retrier
	idGen       IDGenerator
}

// NewTradingUseCase creates a new TradingUseCase.
func NewTradingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	tradeRepo TradeRepository,
	outboxRepo OutboxRepository,
	oracle QuoteOracle,
	retrier Retrier,
	idGen IDGenerator,
) *TradingUseCase {
	return &TradingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
		outboxRepo:  outboxRepo,
		oracle:      oracle,
		retrier:     retrier,
		idGen:       idGen,
	}
}

// TradeInput represents a buy or sell request.
type TradeInput struct {
	AccountID string
	Symbol    string
	Shares    int64
}

// Buy purchases shares at the current quoted price. The cash check, the
// debit and the ledger append happen inside one transaction holding a row
// lock on the account, so concurrent orders against the same account
// serialize and can never double-spend cash.
func (uc *TradingUseCase) Buy(ctx context.Context, input TradeInput) (*domain.Receipt, error) {
	quote, err := uc.prepare(ctx, &input)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.executeRetrying(ctx, input.AccountID, input.Symbol, input.Shares, quote.Price)
	if err != nil {
		return nil, err
	}

	metrics.TradeExecuted(string(domain.SideBuy), receipt.Total)

	return receipt, nil
}

// Sell sells shares at the current quoted price. The position is computed
// from the ledger inside the same transaction as the credit and the append;
// a request for more shares than owned fails with InsufficientSharesError.
func (uc *TradingUseCase) Sell(ctx context.Context, input TradeInput) (*domain.Receipt, error) {
	quote, err := uc.prepare(ctx, &input)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.executeRetrying(ctx, input.AccountID, input.Symbol, -input.Shares, quote.Price)
	if err != nil {
		return nil, err
	}

	metrics.TradeExecuted(string(domain.SideSell), receipt.Total)

	return receipt, nil
}

// prepare validates the request and fetches the execution price. The price
// is fixed here, before the transaction, so a storage-level retry re-executes
// at the same price.
func (uc *TradingUseCase) prepare(ctx context.Context, input *TradeInput) (*domain.Quote, error) {
	if err := domain.ValidateShares(input.Shares); err != nil {
		return nil, err
	}

	input.Symbol = domain.NormalizeSymbol(input.Symbol)
	if err := domain.ValidateSymbol(input.Symbol); err != nil {
		return nil, err
	}

	return uc.oracle.Lookup(ctx, input.Symbol)
}

func (uc *TradingUseCase) executeRetrying(ctx context.Context, accountID, symbol string, signedShares int64, price decimal.Decimal) (*domain.Receipt, error) {
	var receipt *domain.Receipt

	err := uc.retrier.Retry(ctx, func() error {
		r, err := uc.execute(ctx, accountID, symbol, signedShares, price)
		if err != nil {
			return err
		}

		receipt = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// execute runs the check-then-mutate sequence as one unit: lock the account
// row, validate sufficiency, move cash, append the trade, record the outbox
// event, commit. Any failure rolls back everything.
func (uc *TradingUseCase) execute(ctx context.Context, accountID, symbol string, signedShares int64, price decimal.Decimal) (*domain.Receipt, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	amount := price.Mul(decimal.NewFromInt(signedShares).Abs())

	var newBalance decimal.Decimal

	if signedShares > 0 {
		if err := account.ValidateDebit(amount); err != nil {
			return nil, err
		}

		newBalance = account.ApplyDebit(amount)
	} else {
		position, err := uc.tradeRepo.PositionTx(ctx, tx, accountID, symbol)
		if err != nil {
			return nil, err
		}

		if -signedShares > position {
			return nil, &domain.InsufficientSharesError{Symbol: symbol, Owned: position}
		}

		newBalance = account.ApplyCredit(amount)
	}

	now := time.Now().UTC()

	trade := &domain.Trade{
		ID:            uc.idGen.Generate(),
		AccountID:     accountID,
		Symbol:        symbol,
		Shares:        signedShares,
		PricePerShare: price,
		ExecutedAt:    now,
	}

	if err := uc.tradeRepo.Create(ctx, tx, trade); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateCashBalance(ctx, tx, accountID, newBalance, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   trade.ID,
		AggregateType: domain.AggregateTypeTrade,
		EventType:     domain.EventTypeTradeExecuted,
		Payload: map[string]any{
			"trade_id":        trade.ID,
			"account_id":      accountID,
			"symbol":          symbol,
			"side":            string(trade.Side()),
			"shares":          signedShares,
			"price_per_share": price.String(),
			"executed_at":     now.Format(time.RFC3339),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.Receipt{
		TradeID:    trade.ID,
		Symbol:     symbol,
		Side:       trade.Side(),
		Shares:     decimal.NewFromInt(signedShares).Abs().IntPart(),
		Price:      price,
		Total:      amount,
		ExecutedAt: now,
	}, nil
}

// Quote passes a symbol lookup through to the oracle. An unknown symbol
// surfaces as domain.ErrUnknownSymbol, distinct from a transport failure.
func (uc *TradingUseCase) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if err := domain.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	return uc.oracle.Lookup(ctx, symbol)
}

// HistoryInput represents input for listing an account's trades.
type HistoryInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// History lists an account's trades, newest first.
func (uc *TradingUseCase) History(ctx context.Context, input HistoryInput) ([]*domain.Trade, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.tradeRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// Position returns the net share count an account holds in a symbol.
func (uc *TradingUseCase) Position(ctx context.Context, accountID, symbol string) (int64, error) {
	return uc.tradeRepo.Position(ctx, accountID, domain.NormalizeSymbol(symbol))
}
