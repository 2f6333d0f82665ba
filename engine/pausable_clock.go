package engine

import (
	"sync"
	"time"
)

// PausableClock provides pausable game time with pause duration tracking
type PausableClock struct {
	mu sync.RWMutex

	source    TimeSource
	realStart time.Time // When clock was created (real time)

	paused          bool
	pauseStart      time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a new pausable clock over the given source
// A nil source uses the system clock
func NewPausableClock(source TimeSource) *PausableClock {
	if source == nil {
		source = NewTimeProvider()
	}
	return &PausableClock{
		source:    source,
		realStart: source.Now(),
	}
}

// Elapsed returns game time since creation, excluding paused spans
// Monotonically non-decreasing
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime
	}
	return pc.source.Now().Sub(pc.realStart) - pc.totalPausedTime
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.source.Now()
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.paused = false
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
