package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RuleMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_rule_matches_total",
			Help: "Count of pricing rule matches by rule type.",
		},
		[]string{"rule_type"},
	)

	EvaluatorFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_evaluator_failures_total",
			Help: "Count of pricing rules skipped because their evaluator failed.",
		},
		[]string{"rule_type"},
	)

	FloorClampsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_floor_clamps_total",
			Help: "Count of quotes clamped to the floor price.",
		},
	)
)

func init() {
	prometheus.MustRegister(RuleMatchesTotal, EvaluatorFailuresTotal, FloorClampsTotal)
}
