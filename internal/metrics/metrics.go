// Package metrics holds the Prometheus collectors of the node.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "auctiond_build_info",
			Help: "Build information of auctiond",
		},
		[]string{"version", "commit"},
	)

	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auctiond_transactions_total",
			Help: "Total number of submitted transactions by type and result",
		},
		[]string{"type", "result"},
	)

	ApplyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auctiond_transaction_apply_duration_seconds",
			Help:    "Duration of transaction application including commit",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		},
		[]string{"type"},
	)

	OpenAuctions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auctiond_open_auctions",
			Help: "Number of auction records in state",
		},
	)

	SettledVolume = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auctiond_settled_volume_drops_total",
			Help: "Total winning bid amount of completed auctions",
		},
	)

	TreasuryFees = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auctiond_treasury_fees_drops_total",
			Help: "Total fees paid to the treasury",
		},
	)

	HistoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auctiond_history_writes_total",
			Help: "Total number of history store writes",
		},
		[]string{"status"},
	)

	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auctiond_event_subscribers",
			Help: "Number of active event subscribers",
		},
	)

	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auctiond_rpc_requests_total",
			Help: "Total number of RPC requests by method and status",
		},
		[]string{"method", "status"},
	)
)
