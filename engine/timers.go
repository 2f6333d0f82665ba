package engine

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback
type TimerID uint64

type scheduled struct {
	id TimerID
	at time.Duration
	fn func()
}

// Timers runs one-shot callbacks against simulation time
// Time only moves through Advance, so frozen phases freeze pending callbacks
// Not safe for concurrent use; owned by the tick
type Timers struct {
	now     time.Duration
	nextID  TimerID
	pending []scheduled
}

// NewTimers creates an empty timer set
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once d of simulation time has elapsed
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.nextID++
	t.pending = append(t.pending, scheduled{id: t.nextID, at: t.now + d, fn: fn})
	sort.SliceStable(t.pending, func(i, j int) bool {
		return t.pending[i].at < t.pending[j].at
	})
	return t.nextID
}

// Cancel removes a pending callback, returns false if it already fired
func (t *Timers) Cancel(id TimerID) bool {
	for i, s := range t.pending {
		if s.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves simulation time forward and fires due callbacks in deadline order
// Callbacks may schedule or cancel timers
func (t *Timers) Advance(dt time.Duration) {
	t.now += dt
	for len(t.pending) > 0 && t.pending[0].at <= t.now {
		s := t.pending[0]
		t.pending = t.pending[1:]
		s.fn()
	}
}

// Clear drops every pending callback
func (t *Timers) Clear() {
	t.pending = nil
}

// Len returns the pending callback count
func (t *Timers) Len() int {
	return len(t.pending)
}
