// Package metrics exposes Prometheus instrumentation for the notification
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors registered for the notification pipeline.
type Metrics struct {
	sends    *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates the pipeline collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courier_notifications_total",
			Help: "Notification sends by channel and outcome status.",
		}, []string{"channel", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courier_send_duration_seconds",
			Help:    "Time spent in the validate-expand-dispatch pipeline.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.sends, m.duration)
	return m
}

// ObserveSend records one completed pipeline run.
func (m *Metrics) ObserveSend(channel, status string, d time.Duration) {
	m.sends.WithLabelValues(channel, status).Inc()
	m.duration.Observe(d.Seconds())
}
