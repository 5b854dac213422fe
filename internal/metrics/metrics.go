package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcome label values.
const (
	OutcomeLeads             = "leads"
	OutcomeEmpty             = "empty"
	OutcomeMissingCredential = "missing_credential"
	OutcomeParseError        = "parse_error"
)

var (
	// Pipeline metrics
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_discovery_searches_total",
			Help: "Total number of lead searches by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	LeadsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lead_discovery_leads_returned",
			Help:    "Number of actionable leads returned per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
	)

	CandidatesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_discovery_candidates_dropped_total",
			Help: "Candidates removed by the actionability filter",
		},
	)

	// Backend metrics
	DiscoveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_discovery_backend_duration_seconds",
			Help:    "Grounded discovery call duration in seconds",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120},
		},
		[]string{"model", "status"},
	)
)
