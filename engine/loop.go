package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/drag-match/core"
)

// Loop drives a tick function on a fixed interval in its own goroutine
// Stop cancels the pending frame; no tick runs after Stop returns
// A stopped Loop may be started again
type Loop struct {
	interval time.Duration
	tick     func()

	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  atomic.Bool

	tickCount atomic.Uint64
}

// NewLoop creates a loop calling tick every interval
func NewLoop(interval time.Duration, tick func()) *Loop {
	return &Loop{
		interval: interval,
		tick:     tick,
	}
}

// Start begins the loop; no-op when already running
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.CompareAndSwap(false, true) {
		return
	}
	stop := make(chan struct{})
	l.stopChan = stop
	l.wg.Add(1)
	core.Go(func() { l.run(stop) })
}

// Stop halts the loop and waits for an in-flight tick to finish
// Must not be called from inside the tick function
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running.CompareAndSwap(true, false) {
		return
	}
	close(l.stopChan)
	l.wg.Wait()
}

// IsRunning reports whether ticks are being scheduled
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Ticks returns the number of ticks executed since creation
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

// run schedules ticks against a deadline for drift correction
func (l *Loop) run(stop <-chan struct{}) {
	defer l.wg.Done()

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	nextDeadline := time.Now().Add(l.interval)

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		// Stop may have raced the timer
		select {
		case <-stop:
			return
		default:
		}

		l.tick()
		l.tickCount.Add(1)

		now := time.Now()
		nextDeadline = nextDeadline.Add(l.interval)
		if now.Sub(nextDeadline) > l.interval*2 {
			nextDeadline = now.Add(l.interval)
		}

		sleep := nextDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
