// Package metrics defines and registers all custom Prometheus metrics for the
// user provisioning API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "provisioning"

// ImportRowsTotal counts processed import rows by outcome.
// Label:
//   - outcome: "created", "failed", or "skipped"
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of import rows processed, by outcome.",
	},
	[]string{"outcome"},
)

// ImportBatchesTotal counts import batches by final result.
// Label:
//   - result: "committed" (at least one row created), "rolled_back" (no rows
//     created), or "error" (structural or persistence failure)
var ImportBatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_batches_total",
		Help:      "Total number of import batches, by final result.",
	},
	[]string{"result"},
)

// ImportDuration measures how long one batch takes from upload to report.
var ImportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of a full import batch, parse to report.",
		Buckets:   prometheus.DefBuckets,
	},
)

// UsersCreatedTotal counts provisioned accounts by role.
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created by imports, by role.",
	},
	[]string{"role"},
)

// WelcomeMailsTotal counts welcome notification attempts.
// Label:
//   - result: "sent", "error", or "dropped" (queue full)
var WelcomeMailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "welcome_mails_total",
		Help:      "Total number of welcome mail dispatch attempts, by result.",
	},
	[]string{"result"},
)
