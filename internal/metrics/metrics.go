// Package metrics exposes prometheus counters for file intake and
// transcription attempts.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "transcribeui"

// Collector owns its own registry so tests and multiple servers in one
// process do not collide on the default registerer.
type Collector struct {
	registry   *prometheus.Registry
	selections *prometheus.CounterVec
	attempts   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates a Collector with Go runtime and process collectors attached.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_selections_total",
			Help:      "Candidate files offered to the uploader, by result.",
		}, []string{"result"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_attempts_total",
			Help:      "Resolved transcription attempts, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_duration_seconds",
			Help:      "Time from submit to resolution.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"outcome"}),
	}

	c.registry.MustRegister(
		c.selections,
		c.attempts,
		c.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) FileAccepted() {
	c.selections.WithLabelValues("accepted").Inc()
}

func (c *Collector) FileRejected() {
	c.selections.WithLabelValues("rejected").Inc()
}

func (c *Collector) AttemptFinished(outcome string, elapsed time.Duration) {
	c.attempts.WithLabelValues(outcome).Inc()
	c.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
