// Package metrics holds the per-run Prometheus collectors. Each run gets its
// own registry so that tests and repeated runs never share counters; the CLI
// exports it as a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"compart/internal/engine"
)

// Run groups the collectors of one invocation. A nil *Run records nothing.
type Run struct {
	Registry *prometheus.Registry

	HitsRead        *prometheus.CounterVec
	Groups          prometheus.Counter
	RawCompartments prometheus.Counter
	Compartments    prometheus.Counter
	Splits          prometheus.Counter
	Accepted        prometheus.Counter
	GroupLatency    prometheus.Histogram
	RunDuration     prometheus.Gauge
}

// New registers a fresh set of collectors on a private registry.
func New() *Run {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Run{
		Registry: reg,
		HitsRead: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "compart",
			Subsystem: "input",
			Name:      "hits_total",
			Help:      "Hits read, by input format",
		}, []string{"format"}),
		Groups: f.NewCounter(prometheus.CounterOpts{
			Namespace: "compart",
			Subsystem: "engine",
			Name:      "groups_total",
			Help:      "Sequence-pair groups processed",
		}),
		RawCompartments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "compart",
			Subsystem: "engine",
			Name:      "raw_compartments_total",
			Help:      "Compartments produced by the greedy builder",
		}),
		Compartments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "compart",
			Subsystem: "engine",
			Name:      "compartments_total",
			Help:      "Compartments after gap splitting",
		}),
		Splits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "compart",
			Subsystem: "engine",
			Name:      "splits_total",
			Help:      "Extra compartments created by the gap splitter",
		}),
		Accepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "compart",
			Subsystem: "output",
			Name:      "compartments_written_total",
			Help:      "Compartments that passed the acceptance thresholds",
		}),
		GroupLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "compart",
			Subsystem: "engine",
			Name:      "group_duration_seconds",
			Help:      "Time spent building and splitting one group",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		RunDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "compart",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the whole run",
		}),
	}
}

// ObserveHits counts n hits read in the given format.
func (r *Run) ObserveHits(format string, n int) {
	if r == nil {
		return
	}
	r.HitsRead.WithLabelValues(format).Add(float64(n))
}

// ObserveGroup records one group's stats and processing time.
func (r *Run) ObserveGroup(st engine.Stats, d time.Duration) {
	if r == nil {
		return
	}
	r.Groups.Inc()
	r.RawCompartments.Add(float64(st.Raw))
	r.Compartments.Add(float64(st.Compartments))
	r.Splits.Add(float64(st.Splits()))
	r.GroupLatency.Observe(d.Seconds())
}

// ObserveAccepted counts one written compartment.
func (r *Run) ObserveAccepted() {
	if r == nil {
		return
	}
	r.Accepted.Inc()
}

// ObserveRun sets the total wall time.
func (r *Run) ObserveRun(d time.Duration) {
	if r == nil {
		return
	}
	r.RunDuration.Set(d.Seconds())
}

// WriteTextfile writes the registry in the text exposition format.
func (r *Run) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.Registry)
}
