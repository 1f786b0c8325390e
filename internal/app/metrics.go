package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/triadgrid/internal/output"
)

// metrics are the collectors exposed on /metrics.
type metrics struct {
	output   *output.Metrics
	visited  prometheus.Counter
	edges    prometheus.Counter
	cached   prometheus.Gauge
	chords   prometheus.Gauge
	notes    prometheus.Counter
	runsDone *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) (*metrics, error) {
	out, err := output.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		output: out,
		visited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "triadgrid", Subsystem: "explore", Name: "vertices_visited_total",
			Help: "Chords visited by graph traversal.",
		}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "triadgrid", Subsystem: "explore", Name: "edges_discovered_total",
			Help: "Edge hook invocations during graph traversal.",
		}),
		cached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "triadgrid", Subsystem: "explore", Name: "cached_vertices",
			Help: "Chords whose successors are memoized.",
		}),
		chords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "triadgrid", Subsystem: "progression", Name: "chords",
			Help: "Length of the chosen progression.",
		}),
		notes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "triadgrid", Subsystem: "scheduler", Name: "notes_scheduled_total",
			Help: "Notes handed to the scheduler.",
		}),
		runsDone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "triadgrid", Name: "runs_total",
			Help: "Finished runs by outcome.",
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{m.visited, m.edges, m.cached, m.chords, m.notes, m.runsDone} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
