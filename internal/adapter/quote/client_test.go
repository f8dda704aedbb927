package quote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/papertrade/internal/domain"
)

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/NFLX/quote", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol":"NFLX","companyName":"Netflix, Inc.","latestPrice":181.17}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", time.Second)

	quote, err := client.Lookup(context.Background(), "NFLX")
	require.NoError(t, err)

	assert.Equal(t, "NFLX", quote.Symbol)
	assert.Equal(t, "Netflix, Inc.", quote.Name)
	assert.Equal(t, "181.17", quote.Price.String())
}

func TestLookupUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unknown symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", time.Second)

	_, err := client.Lookup(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestLookupProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", time.Second)

	_, err := client.Lookup(context.Background(), "NFLX")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestLookupTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, "test-token", time.Second)

	_, err := client.Lookup(context.Background(), "NFLX")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", 50*time.Millisecond)

	_, err := client.Lookup(context.Background(), "NFLX")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestLookupMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", time.Second)

	_, err := client.Lookup(context.Background(), "NFLX")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestLookupNonPositivePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"NFLX","companyName":"Netflix, Inc.","latestPrice":0}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", time.Second)

	_, err := client.Lookup(context.Background(), "NFLX")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestLookupCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Lookup(ctx, "NFLX")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQuoteUnavailable))
}
