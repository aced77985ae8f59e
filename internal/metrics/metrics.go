// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_orders_placed_total",
		Help: "Orders created by terminal placement status.",
	}, []string{"status"})

	OrderReplays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custody_order_replays_total",
		Help: "Order placements deduplicated by idempotency key.",
	})

	TransferTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custody_transfer_transitions_total",
		Help: "Transfer state transitions by resulting status.",
	}, []string{"status"})

	LedgerDebits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custody_ledger_debits_total",
		Help: "Balance debits performed at transfer approval quorum.",
	})
)
