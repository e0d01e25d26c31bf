package ingest

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments pipeline outcomes.
type Metrics struct {
	ingestionsTotal *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewMetrics registers ingestion metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ingestionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ingestd_ingestions_total",
			Help: "Total ingestion pipeline runs labeled by outcome (success, invalid_reference, scratch_io, process_failure, timeout, empty_result).",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ingestd_ingestion_duration_seconds",
			Help:    "End-to-end ingestion pipeline duration in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
	}
}

// observe records one pipeline run. nil-safe so the service works without
// metrics in tests.
func (m *Metrics) observe(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ingestionsTotal.WithLabelValues(outcomeLabel(err)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// outcomeLabel maps a classified pipeline error to its metric label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, ErrProcessTimeout):
		return "timeout"
	case errors.Is(err, ErrProcessFailed):
		return "process_failure"
	case errors.Is(err, ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, ErrScratchIO):
		return "scratch_io"
	default:
		return "error"
	}
}
