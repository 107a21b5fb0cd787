package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records scan pipeline metrics in Prometheus.
type Recorder struct {
	scansTotal      *prometheus.CounterVec
	candidatesTotal *prometheus.CounterVec
	alertsTotal     *prometheus.CounterVec
	sourceErrors    *prometheus.CounterVec
	scanDuration    prometheus.Histogram
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_scanner_scans_total",
				Help: "Total number of scans by final status",
			},
			[]string{"status"},
		),
		candidatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_scanner_candidates_total",
				Help: "Total number of candidate signals emitted per source",
			},
			[]string{"source"},
		),
		alertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_scanner_alerts_total",
				Help: "Total number of nuclear alerts by gate outcome",
			},
			[]string{"outcome"},
		),
		sourceErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insider_scanner_source_errors_total",
				Help: "Total number of feed fetch failures per source",
			},
			[]string{"source"},
		),
		scanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "insider_scanner_scan_duration_seconds",
				Help:    "Duration of scan runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (r *Recorder) RecordScan(status string, seconds float64) {
	r.scansTotal.WithLabelValues(status).Inc()
	r.scanDuration.Observe(seconds)
}

func (r *Recorder) RecordCandidates(source string, n int) {
	r.candidatesTotal.WithLabelValues(source).Add(float64(n))
}

func (r *Recorder) RecordAlert(outcome string) {
	r.alertsTotal.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordSourceError(source string) {
	r.sourceErrors.WithLabelValues(source).Inc()
}
