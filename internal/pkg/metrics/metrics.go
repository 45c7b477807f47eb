package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReportsTotal counts completed full reports by outcome
	// ("success", "user_not_found", "no_wallets").
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gas_checker_reports_total",
			Help: "Completed full gas reports by outcome.",
		},
		[]string{"outcome"},
	)

	// UpstreamFailures counts degraded upstream calls by source
	// ("identity", "registry", "hub", "rpc", "explorer").
	UpstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gas_checker_upstream_failures_total",
			Help: "Upstream calls that degraded to a zero/absent result.",
		},
		[]string{"source"},
	)

	// ReportDuration observes end-to-end full report latency.
	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gas_checker_report_duration_seconds",
			Help:    "Full report pipeline duration.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once from main.
func MustRegisterMetrics() {
	prometheus.MustRegister(ReportsTotal, UpstreamFailures, ReportDuration)
}
