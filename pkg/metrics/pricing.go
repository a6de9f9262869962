package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the dynamic price HTTP handler
	PriceQuoteLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_quote_latency_seconds",
		Help:    "Latency of the dynamic price quote handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of price quotes served
	PriceQuoteRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_quote_requests_total",
		Help: "Total number of price quote requests",
	})
)

func Init() {
	prometheus.MustRegister(
		PriceQuoteLatency,
		PriceQuoteRequests,
	)
}
