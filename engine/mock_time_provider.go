package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a TimeSource that only moves when told to
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts the mock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now implements TimeSource
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set jumps the mock to t, which may be in the past
func (m *MockTimeProvider) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
