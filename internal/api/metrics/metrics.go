// Package metrics defines the custom Prometheus metrics for the CRM API. It
// is the single source of truth for metric names, labels, and help strings.
//
// HTTP-level request metrics come from the echoprometheus middleware; the
// metrics here cover domain events only.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials" or "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully registered users.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered.",
	},
)

// AuthDeniedTotal counts requests terminated by an authorization guard.
// Label:
//   - reason: "unauthenticated", "not_admin" or "not_owner"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected by an authorization guard.",
	},
	[]string{"reason"},
)

// RecordsWrittenTotal counts create/update/delete operations per resource.
// Labels:
//   - resource: "account", "contact", "deal", "activity" or "user"
//   - op: "create", "update" or "delete"
var RecordsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_written_total",
		Help:      "Total number of store mutations, by resource and operation.",
	},
	[]string{"resource", "op"},
)
