package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/papertrade/internal/adapter/http/dto"
	"github.com/iho/papertrade/internal/adapter/http/middleware"
	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/usecase"
)

// TradingService defines the behavior needed by TradingHandler.
type TradingService interface {
	Buy(ctx context.Context, input usecase.TradeInput) (*domain.Receipt, error)
	Sell(ctx context.Context, input usecase.TradeInput) (*domain.Receipt, error)
	Quote(ctx context.Context, symbol string) (*domain.Quote, error)
	History(ctx context.Context, input usecase.HistoryInput) ([]*domain.Trade, error)
}

// TradingHandler handles quote and order HTTP requests.
type TradingHandler struct {
	tradingUC TradingService
}

// NewTradingHandler creates a new TradingHandler.
func NewTradingHandler(tradingUC TradingService) *TradingHandler {
	return &TradingHandler{tradingUC: tradingUC}
}

// Quote returns the current price for a symbol.
func (h *TradingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "missing symbol", "")
		return
	}

	quote, err := h.tradingUC.Quote(r.Context(), symbol)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromDomain(quote))
}

// Buy executes a buy order for the authenticated account.
func (h *TradingHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.tradingUC.Buy)
}

// Sell executes a sell order for the authenticated account.
func (h *TradingHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.tradingUC.Sell)
}

func (h *TradingHandler) trade(w http.ResponseWriter, r *http.Request, execute func(context.Context, usecase.TradeInput) (*domain.Receipt, error)) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := execute(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// History lists the authenticated account's trades, newest first.
func (h *TradingHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	trades, err := h.tradingUC.History(r.Context(), usecase.HistoryInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TradesFromDomain(trades))
}
