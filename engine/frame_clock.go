package engine

import (
	"time"

	"github.com/lixenwraith/drag-match/parameter"
)

// FrameClock turns a PausableClock into per-frame deltas
// Delta is clamped to MaxDelta so a stalled host cannot inject one huge step
type FrameClock struct {
	clock    *PausableClock
	last     time.Duration
	MaxDelta time.Duration
}

// NewFrameClock creates a frame clock reading from clock
func NewFrameClock(clock *PausableClock) *FrameClock {
	return &FrameClock{
		clock:    clock,
		last:     clock.Elapsed(),
		MaxDelta: parameter.MaxFrameDelta,
	}
}

// Tick returns elapsed game time since the previous Tick, clamped
func (fc *FrameClock) Tick() time.Duration {
	now := fc.clock.Elapsed()
	dt := now - fc.last
	fc.last = now
	return ClampDelta(dt, fc.MaxDelta)
}

// Reset discards accumulated time, the next Tick measures from now
func (fc *FrameClock) Reset() {
	fc.last = fc.clock.Elapsed()
}

// Now returns the underlying monotonic game time
func (fc *FrameClock) Now() time.Duration {
	return fc.clock.Elapsed()
}

// ClampDelta bounds dt to [0, max]; max <= 0 disables the upper bound
func ClampDelta(dt, max time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}
