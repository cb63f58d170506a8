// Package metrics exports solver statistics to Prometheus.
//
// A Collector implements diffline.Observer; pass it to diffline.WithObserver
// and every completed step updates the series below (namespace "diffgrowth"):
//
//	steps_total                 counter
//	splits_total                counter
//	soft_failures_total         counter
//	moved_vertices              gauge, last step
//	vertices, edges             gauge
//	active_vertices             gauge
//	safe                        gauge, 1 while inside the boundary margin
//	step_duration_seconds       histogram
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/diffgrowth/diffline"
)

const namespace = "diffgrowth"

// Collector holds the solver series.
type Collector struct {
	steps        prometheus.Counter
	splits       prometheus.Counter
	softFailures prometheus.Counter
	moved        prometheus.Gauge
	vertices     prometheus.Gauge
	edges        prometheus.Gauge
	active       prometheus.Gauge
	safe         prometheus.Gauge
	duration     prometheus.Histogram
}

var _ diffline.Observer = (*Collector)(nil)

// NewCollector creates the series and registers them on reg.
// Use prometheus.WrapRegistererWith to attach run labels.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Completed simulation steps.",
		}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_total",
			Help:      "Edges split by growth.",
		}),
		softFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "soft_failures_total",
			Help:      "Growth candidates that were already gone when visited.",
		}),
		moved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "moved_vertices",
			Help:      "Vertices displaced by the last relaxation pass.",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vertices",
			Help:      "Live vertices.",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "edges",
			Help:      "Live edges.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_vertices",
			Help:      "Vertices moved by the solver.",
		}),
		safe: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "safe",
			Help:      "1 while every vertex is inside the boundary margin.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one step.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}

	for _, m := range []prometheus.Collector{
		c.steps, c.splits, c.softFailures, c.moved,
		c.vertices, c.edges, c.active, c.safe, c.duration,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveStep implements diffline.Observer.
func (c *Collector) ObserveStep(s diffline.StepStats) {
	c.steps.Inc()
	c.splits.Add(float64(s.Splits))
	c.softFailures.Add(float64(s.SoftFailures))
	c.moved.Set(float64(s.Moved))
	c.vertices.Set(float64(s.Vertices))
	c.edges.Set(float64(s.Edges))
	c.active.Set(float64(s.ActiveVertices))
	if s.Safe {
		c.safe.Set(1)
	} else {
		c.safe.Set(0)
	}
	c.duration.Observe(s.Duration.Seconds())
}
