// Package metrics holds the Prometheus instruments for trading activity.
// HTTP-level metrics live in the HTTP middleware; these cover the domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	tradesExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrade_trades_executed_total",
			Help: "Total number of executed trades by side",
		},
		[]string{"side"},
	)

	tradeVolume = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "papertrade_trade_volume",
			Help:    "Cash moved per executed trade",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"side"},
	)

	quoteLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrade_quote_lookups_total",
			Help: "Total quote lookups by outcome",
		},
		[]string{"outcome"},
	)

	quoteLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "papertrade_quote_lookup_duration_seconds",
			Help:    "Quote provider request duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	accountsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "papertrade_accounts_registered_total",
			Help: "Total number of registered accounts",
		},
	)

	sessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "papertrade_sessions_created_total",
			Help: "Total number of login sessions created",
		},
	)
)

// Quote lookup outcomes.
const (
	QuoteOutcomeOK          = "ok"
	QuoteOutcomeNotFound    = "not_found"
	QuoteOutcomeUnavailable = "unavailable"
)

// TradeExecuted records one executed trade.
func TradeExecuted(side string, total decimal.Decimal) {
	tradesExecuted.WithLabelValues(side).Inc()
	volume, _ := total.Float64()
	tradeVolume.WithLabelValues(side).Observe(volume)
}

// QuoteLookup records a quote provider call.
func QuoteLookup(outcome string, seconds float64) {
	quoteLookups.WithLabelValues(outcome).Inc()
	quoteLookupDuration.Observe(seconds)
}

// AccountRegistered records one successful registration.
func AccountRegistered() {
	accountsRegistered.Inc()
}

// SessionCreated records one successful login.
func SessionCreated() {
	sessionsCreated.Inc()
}
