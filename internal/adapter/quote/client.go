// Package quote provides a client for the external stock quote provider.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/papertrade/internal/domain"
	"github.com/iho/papertrade/internal/infrastructure/metrics"
)

// Client looks up live quotes over the provider's REST API. It implements
// usecase.QuoteOracle.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a new quote Client.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type quoteResponse struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"companyName"`
	LatestPrice json.Number `json:"latestPrice"`
}

// Lookup fetches the current quote for a symbol. An unknown symbol maps to
// domain.ErrUnknownSymbol; transport failures, timeouts, and provider
// errors map to domain.ErrQuoteUnavailable so callers can tell a bad
// symbol from a bad day.
func (c *Client) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	start := time.Now()

	quote, err := c.lookup(ctx, symbol)

	switch {
	case err == nil:
		metrics.QuoteLookup(metrics.QuoteOutcomeOK, time.Since(start).Seconds())
	case errors.Is(err, domain.ErrUnknownSymbol):
		metrics.QuoteLookup(metrics.QuoteOutcomeNotFound, time.Since(start).Seconds())
	default:
		metrics.QuoteLookup(metrics.QuoteOutcomeUnavailable, time.Since(start).Seconds())
	}

	return quote, err
}

func (c *Client) lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/stock/%s/quote?token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrUnknownSymbol
	default:
		return nil, fmt.Errorf("%w: provider returned %d", domain.ErrQuoteUnavailable, resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}

	price, err := decimal.NewFromString(body.LatestPrice.String())
	if err != nil {
		return nil, fmt.Errorf("%w: bad price %q", domain.ErrQuoteUnavailable, body.LatestPrice)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: non-positive price for %s", domain.ErrQuoteUnavailable, symbol)
	}

	return &domain.Quote{
		Symbol: body.Symbol,
		Name:   body.CompanyName,
		Price:  price,
	}, nil
}
