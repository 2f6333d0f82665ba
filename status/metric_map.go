package status

import (
	"sort"
	"sync"
)

// MetricMap holds named metrics of type T
// Lookup allocates once per name; callers cache the pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for name, creating it on first use
func (m *MetricMap[T]) Get(name string) *T {
	m.mu.RLock()
	ptr, ok := m.items[name]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[name]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[name] = ptr
	return ptr
}

// Has reports whether name was ever requested
func (m *MetricMap[T]) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[name]
	return ok
}

// Range visits metrics in name order
func (m *MetricMap[T]) Range(fn func(name string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.items))
	for k := range m.items {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fn(k, m.items[k])
	}
}

// Count returns the number of metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
