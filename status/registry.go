// Package status collects process counters and gauges for the hosts.
package status

import "sync/atomic"

// Registry groups counters and gauges
// Hosts resolve pointers once and update them from hot paths
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
	}
}

// Counter is shorthand for Counters.Get
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.Counters.Get(name)
}

// Gauge is shorthand for Gauges.Get
func (r *Registry) Gauge(name string) *AtomicFloat {
	return r.Gauges.Get(name)
}

// TotalCount returns the number of metrics of every kind
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count()
}

// Snapshot copies current values, keyed by metric name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Counters.Range(func(name string, c *atomic.Int64) {
		out[name] = c.Load()
	})
	r.Gauges.Range(func(name string, g *AtomicFloat) {
		out[name] = g.Get()
	})
	return out
}
