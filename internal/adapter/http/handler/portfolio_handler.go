package handler

import (
	"context"
	"net/http"

	"github.com/iho/papertrade/internal/adapter/http/dto"
	"github.com/iho/papertrade/internal/adapter/http/middleware"
	"github.com/iho/papertrade/internal/domain"
)

// PortfolioService defines the behavior needed by PortfolioHandler.
type PortfolioService interface {
	View(ctx context.Context, accountID string) (*domain.Portfolio, error)
}

// PortfolioHandler handles portfolio HTTP requests.
type PortfolioHandler struct {
	portfolioUC PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioUC PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioUC: portfolioUC}
}

// Get returns the authenticated account's holdings valued at current
// prices.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	portfolio, err := h.portfolioUC.View(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(portfolio))
}
