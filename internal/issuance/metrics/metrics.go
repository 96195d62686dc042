package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the issuance pipeline.
type Metrics struct {
	InvitesIssued   prometheus.Counter
	InvitesReused   prometheus.Counter
	GateDenied      prometheus.Counter
	OracleFailures  prometheus.Counter
	ResolveDuration prometheus.Histogram
	IssueDuration   prometheus.Histogram
}

// New creates a Metrics instance with all issuance metrics registered.
func New() *Metrics {
	return &Metrics{
		InvitesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_invites_issued_total",
			Help: "Total number of invite links minted",
		}),
		InvitesReused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_invites_reused_total",
			Help: "Requests served from a previously issued, still valid invite",
		}),
		GateDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_gate_denied_total",
			Help: "Requests rejected because the wallet balance was below the minimum",
		}),
		OracleFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokengate_oracle_failures_total",
			Help: "Balance lookups that failed because the ledger oracle was unreachable",
		}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokengate_balance_resolve_duration_seconds",
			Help:    "Time spent resolving wallet balances against the ledger oracle",
			Buckets: prometheus.DefBuckets,
		}),
		IssueDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokengate_invite_issue_duration_seconds",
			Help:    "Time spent minting invite links through the Telegram API",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
