// Package metrics defines the Prometheus collectors of the lending tool.
// All collectors register on the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lending"

// LoansBorrowedTotal counts successful borrows.
var LoansBorrowedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_borrowed_total",
		Help:      "Total number of loans created.",
	},
)

// UnitsBorrowedTotal counts units handed out across all loans.
var UnitsBorrowedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_borrowed_total",
		Help:      "Total number of item units borrowed.",
	},
)

// LoansReturnedTotal counts loans closed by a return.
var LoansReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_returned_total",
		Help:      "Total number of loans returned.",
	},
)

// BorrowRejectionsTotal counts refused borrows.
// Label:
//   - reason: "not_found", "invalid_quantity", "validation", "error"
var BorrowRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrow_rejections_total",
		Help:      "Total number of borrow requests that were refused.",
	},
	[]string{"reason"},
)

// ReturnRejectionsTotal counts refused returns.
// Label:
//   - reason: "not_found", "already_returned", "not_authorized", "error"
var ReturnRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "return_rejections_total",
		Help:      "Total number of return requests that were refused.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts by result ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts.",
	},
	[]string{"result"},
)

// ItemMutationsTotal counts catalog changes by op ("create", "update", "delete").
var ItemMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_mutations_total",
		Help:      "Total number of administrative catalog changes.",
	},
	[]string{"op"},
)

// LedgerDiscrepancies is the number of unbalanced items found by the last audit.
var LedgerDiscrepancies = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_discrepancies",
		Help:      "Items whose available count does not match total minus outstanding loans.",
	},
)
