package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the adapter's Prometheus metrics
type Recorder struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Bytes      *prometheus.CounterVec
}

// NewRecorder registers the adapter metrics with reg. A nil reg uses the
// default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flysystem_operations_total",
				Help: "Total number of adapter operations",
			},
			[]string{"operation", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flysystem_operation_duration_seconds",
				Help:    "Adapter operation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"operation"},
		),
		Bytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flysystem_bytes_total",
				Help: "Bytes moved through read and write operations",
			},
			[]string{"direction"},
		),
	}
}

// Observe records one finished operation. Safe on a nil Recorder.
func (r *Recorder) Observe(operation string, started time.Time, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.Operations.WithLabelValues(operation, outcome).Inc()
	r.Duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// AddRead counts bytes read. Safe on a nil Recorder.
func (r *Recorder) AddRead(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.Bytes.WithLabelValues("read").Add(float64(n))
}

// AddWritten counts bytes written. Safe on a nil Recorder.
func (r *Recorder) AddWritten(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.Bytes.WithLabelValues("write").Add(float64(n))
}
