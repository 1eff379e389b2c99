// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics counts network events with Prometheus metrics.
//
// A Collector is a hwboard.Observer:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.New(reg)
//	n := hwboard.New(hwboard.WithObserver(c))
//	// ...
//	prometheus.WriteToTextfile("hwboard.prom", reg)
//
package metrics

import (
	"github.com/db47h/hwboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "hwboard"
	subsystem = "network"
)

// Collector holds the network metrics. All fields are registered by New.
//
type Collector struct {
	// Components counts registered and removed components.
	// Labels: event (registered, removed), kind
	Components *prometheus.CounterVec
	// Merges counts wire merges.
	Merges prometheus.Counter
	// LevelChanges counts group level changes seen by components.
	// Labels: level
	LevelChanges *prometheus.CounterVec
	// Evaluations counts successful gate evaluations.
	// Labels: part
	Evaluations *prometheus.CounterVec
	// Oscillations counts broken propagation loops.
	Oscillations prometheus.Counter
	// Conflicts counts groups driven by several setters.
	Conflicts prometheus.Counter
	// Solves counts completed solve passes.
	Solves prometheus.Counter
	// Requests observes the number of requests processed per solve pass.
	Requests prometheus.Histogram
	// Failures counts aborted solve passes.
	// Labels: part
	Failures *prometheus.CounterVec
}

// New returns a Collector whose metrics are registered with reg. If reg is
// nil, metrics are not registered.
//
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		Components: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "components_total",
			Help:      "Components registered or removed, by kind.",
		}, []string{"event", "kind"}),
		Merges: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wire_merges_total",
			Help:      "Wires merged end to end.",
		}),
		LevelChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "level_changes_total",
			Help:      "Component level changes, by new level.",
		}, []string{"level"}),
		Evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evaluations_total",
			Help:      "Successful gate evaluations, by part.",
		}, []string{"part"}),
		Oscillations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "oscillations_total",
			Help:      "Propagation loops broken.",
		}),
		Conflicts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "conflicts_total",
			Help:      "Groups driven by more than one setter.",
		}),
		Solves: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solves_total",
			Help:      "Completed solve passes.",
		}),
		Requests: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solve_requests",
			Help:      "Requests processed per solve pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solve_failures_total",
			Help:      "Aborted solve passes, by failing part.",
		}, []string{"part"}),
	}
}

// Registered implements hwboard.Observer.
func (c *Collector) Registered(comp hwboard.Component) {
	c.Components.WithLabelValues("registered", comp.Kind().String()).Inc()
}

// Removed implements hwboard.Observer.
func (c *Collector) Removed(comp hwboard.Component) {
	c.Components.WithLabelValues("removed", comp.Kind().String()).Inc()
}

// Merged implements hwboard.Observer.
func (c *Collector) Merged(*hwboard.Wire) { c.Merges.Inc() }

// LevelChanged implements hwboard.Observer.
func (c *Collector) LevelChanged(_ hwboard.Component, l hwboard.Level) {
	c.LevelChanges.WithLabelValues(l.String()).Inc()
}

// Evaluated implements hwboard.Observer.
func (c *Collector) Evaluated(g *hwboard.Gate) {
	c.Evaluations.WithLabelValues(g.Name()).Inc()
}

// Oscillation implements hwboard.Observer.
func (c *Collector) Oscillation(hwboard.Component, []hwboard.ID) { c.Oscillations.Inc() }

// Conflict implements hwboard.Observer.
func (c *Collector) Conflict(*hwboard.Group) { c.Conflicts.Inc() }

// Solved implements hwboard.Observer.
func (c *Collector) Solved(requests int) {
	c.Solves.Inc()
	c.Requests.Observe(float64(requests))
}

// SolveFailed implements hwboard.Observer.
func (c *Collector) SolveFailed(err *hwboard.EvalError) {
	c.Failures.WithLabelValues(err.Part).Inc()
}
