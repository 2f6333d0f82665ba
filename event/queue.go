package event

import (
	"sync/atomic"

	"github.com/lixenwraith/drag-match/parameter"
)

// EventQueue is a fixed ring of pending notifications for hosts
// Emit may be called from any goroutine; Consume and Drain from one reader only
// A full ring overwrites its oldest entry and counts it as dropped
type EventQueue struct {
	ring  [parameter.EventQueueSize]GameEvent
	ready [parameter.EventQueueSize]atomic.Bool // Slot write finished

	read    atomic.Uint64
	write   atomic.Uint64
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push reserves the next slot with CAS then publishes ev into it
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		w := eq.write.Load()
		if !eq.write.CompareAndSwap(w, w+1) {
			continue
		}

		slot := w & parameter.EventBufferMask
		eq.ring[slot] = ev
		eq.ready[slot].Store(true)

		// Lapped the reader: slide it forward past the overwritten entry
		r := eq.read.Load()
		if w+1-r > parameter.EventQueueSize && eq.read.CompareAndSwap(r, w+1-parameter.EventQueueSize) {
			eq.dropped.Add(1)
		}
		return
	}
}

// Emit is Push for a type and payload
func (eq *EventQueue) Emit(t EventType, payload any) {
	eq.Push(GameEvent{Type: t, Payload: payload})
}

// Consume returns pending events oldest first, nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	var out []GameEvent
	eq.Drain(func(ev GameEvent) {
		out = append(out, ev)
	})
	return out
}

// Drain hands pending events to fn oldest first and returns how many were delivered
// Stops early at a slot whose writer has not finished; the rest wait for the next call
func (eq *EventQueue) Drain(fn func(GameEvent)) int {
	for {
		r := eq.read.Load()
		w := eq.write.Load()
		if w == r {
			return 0
		}

		n := w - r
		if n > parameter.EventQueueSize {
			r = w - parameter.EventQueueSize
			n = parameter.EventQueueSize
		}

		batch := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			slot := (r + i) & parameter.EventBufferMask
			if !eq.ready[slot].Load() {
				break
			}
			batch = append(batch, eq.ring[slot])
			eq.ready[slot].Store(false)
		}

		if !eq.read.CompareAndSwap(r, r+uint64(len(batch))) {
			continue
		}
		for _, ev := range batch {
			fn(ev)
		}
		return len(batch)
	}
}

// Len returns the approximate number of pending events
func (eq *EventQueue) Len() int {
	r, w := eq.read.Load(), eq.write.Load()
	if w <= r {
		return 0
	}
	return int(min(w-r, parameter.EventQueueSize))
}

// Dropped returns how many events were overwritten before being read
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
