package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the policy module.
type Metrics struct {
	PoliciesCreated   prometheus.Counter
	PoliciesDeleted   prometheus.Counter
	CreationConflicts prometheus.Counter
}

// New creates a Metrics instance with all policy module metrics registered.
func New() *Metrics {
	return &Metrics{
		PoliciesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_policies_created_total",
			Help: "Total number of gating policies created",
		}),
		PoliciesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_policies_deleted_total",
			Help: "Total number of gating policies deleted",
		}),
		CreationConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_policy_creation_conflicts_total",
			Help: "Creation attempts rejected because the chat already had an active policy",
		}),
	}
}
