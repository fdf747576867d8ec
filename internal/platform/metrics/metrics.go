package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ledger service.
type Metrics struct {
	VotesCast         prometheus.Counter
	IssuersApproved   prometheus.Counter
	IssuersRevoked    prometheus.Counter
	ApprovedIssuers   prometheus.Gauge
	CreditsSold       prometheus.Counter
	CreditsMinted     prometheus.Counter
	CreditsRetired    prometheus.Counter
	RejectedActions   *prometheus.CounterVec
	RequestDurationMs *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VotesCast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_votes_cast_total",
			Help: "Total number of issuer approval votes cast",
		}),
		IssuersApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_issuers_approved_total",
			Help: "Total number of issuer approvals",
		}),
		IssuersRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_issuers_revoked_total",
			Help: "Total number of issuer revocations",
		}),
		ApprovedIssuers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "carbonx_approved_issuers",
			Help: "Number of currently approved issuers",
		}),
		CreditsSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_credits_sold_total",
			Help: "Credits sold through the marketplace",
		}),
		CreditsMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_credits_minted_total",
			Help: "Credits deposited or minted by the creator",
		}),
		CreditsRetired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carbonx_credits_retired_total",
			Help: "Credits permanently retired",
		}),
		RejectedActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonx_rejected_actions_total",
			Help: "Actions rejected by error code",
		}, []string{"code"}),
		RequestDurationMs: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carbonx_http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		}, []string{"path", "status"}),
	}
}
