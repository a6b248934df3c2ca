// Package metrics defines and registers all custom Prometheus metrics for
// the Fincount API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry on
// import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fincount"

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRegistrationsTotal counts successfully created accounts.
var AuthRegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// SessionsCreatedTotal counts ingested counting sessions.
// Label:
//   - species: the counted species (e.g. "Tilapia")
var SessionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of counting sessions created, by species.",
	},
	[]string{"species"},
)

// BatchesCreatedTotal counts explicitly created batches. Batches
// auto-created during session ingestion are not included.
var BatchesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batches_created_total",
		Help:      "Total number of batches created through the batch endpoint.",
	},
)
