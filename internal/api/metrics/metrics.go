// Package metrics defines all custom Prometheus metrics for the hospital
// records API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid" (bad credentials), or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "success", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokenValidationsTotal counts token checks on inbound requests.
// Label:
//   - result: "valid", "invalid" (signature/issuer/audience/expiry failure),
//     or "absent" (no token in the configured header)
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of inbound token validations, by result.",
	},
	[]string{"result"},
)

// ── Policy metrics ────────────────────────────────────────────────────────────

// PolicyDecisionsTotal counts policy evaluations.
// Labels:
//   - policy: the policy name (e.g. "adminOnly")
//   - decision: "allow", "deny_anonymous", or "deny_role"
var PolicyDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_decisions_total",
		Help:      "Total number of authorization policy decisions.",
	},
	[]string{"policy", "decision"},
)
