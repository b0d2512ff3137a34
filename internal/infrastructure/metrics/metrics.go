package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for PolicySubmissions.
const (
	OutcomeCreated      = "created"
	OutcomeInvalid      = "invalid"
	OutcomePrecondition = "precondition"
	OutcomeFailed       = "failed"
)

var (
	PolicySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_submissions_total",
			Help: "Policy submissions by product rule and outcome",
		},
		[]string{"rule_code", "outcome"},
	)

	PolicyQuotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_quotes_total",
			Help: "Premium quotes computed per product rule",
		},
		[]string{"rule_code"},
	)

	PolicyTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_status_transitions_total",
			Help: "Accepted policy status changes by target status",
		},
		[]string{"to"},
	)

	SubmittedPremium = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policy_submitted_premium",
			Help:    "Premium amount of created policies",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 5000, 20000},
		},
		[]string{"rule_code"},
	)
)
