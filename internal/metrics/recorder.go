// Package metrics exposes Prometheus metrics for schedule operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "conference"

// Recorder counts schedule operations by result and tracks schedule size.
type Recorder struct {
	registry *prometheus.Registry

	operations      *prometheus.CounterVec
	persistFailures prometheus.Counter
	notifyFailures  prometheus.Counter
	events          prometheus.Gauge
	rooms           prometheus.Gauge
}

// NewRecorder registers the schedule metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "operations_total",
			Help:      "Schedule operations by operation and result code.",
		}, []string{"operation", "result"}),
		persistFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "persist_failures_total",
			Help:      "Mutations applied in memory that could not be saved.",
		}),
		notifyFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "notify_failures_total",
			Help:      "Cancellation notices that could not be delivered.",
		}),
		events: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "events",
			Help:      "Active events in the schedule.",
		}),
		rooms: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "rooms",
			Help:      "Registered rooms.",
		}),
	}
}

// Operation counts one call of operation that finished with result.
func (r *Recorder) Operation(operation, result string) {
	r.operations.WithLabelValues(operation, result).Inc()
}

// PersistFailed counts a failed save.
func (r *Recorder) PersistFailed() {
	r.persistFailures.Inc()
}

// NotifyFailed counts an undelivered cancellation notice.
func (r *Recorder) NotifyFailed() {
	r.notifyFailures.Inc()
}

// ScheduleSize records the current number of events and rooms.
func (r *Recorder) ScheduleSize(events, rooms int) {
	r.events.Set(float64(events))
	r.rooms.Set(float64(rooms))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
