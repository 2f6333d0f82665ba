package game

import (
	"sync"
	"time"

	"github.com/lixenwraith/drag-match/engine"
	"github.com/lixenwraith/drag-match/render"
)

// Runner drives a Game from a frame loop
// The loop runs only while the phase needs ticks; pausing the phase pauses the clock
type Runner struct {
	game    *Game
	clock   *engine.PausableClock
	frames  *engine.FrameClock
	loop    *engine.Loop
	onFrame func(*render.Frame)

	mu sync.Mutex
}

// NewRunner creates a stopped runner; onFrame receives a snapshot after each tick
func NewRunner(g *Game, source engine.TimeSource, interval time.Duration, onFrame func(*render.Frame)) *Runner {
	clock := engine.NewPausableClock(source)
	clock.Pause()
	r := &Runner{
		game:    g,
		clock:   clock,
		frames:  engine.NewFrameClock(clock),
		onFrame: onFrame,
	}
	r.loop = engine.NewLoop(interval, r.Step)
	return r
}

// Step runs one frame: clamped delta, game tick, snapshot
func (r *Runner) Step() {
	dt := r.frames.Tick()
	r.game.Tick(dt)
	if r.onFrame != nil {
		r.onFrame(r.game.Snapshot())
	}
}

// Sync starts or stops the loop to match the game phase
// Call after every command that can change phase; never from onFrame
func (r *Runner) Sync() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.Running() {
		if r.loop.IsRunning() {
			return
		}
		r.clock.Resume()
		r.frames.Reset()
		r.loop.Start()
		return
	}

	if r.loop.IsRunning() {
		r.loop.Stop()
	}
	r.clock.Pause()
	if r.onFrame != nil {
		r.onFrame(r.game.Snapshot())
	}
}

// Stop halts the loop
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop.Stop()
	r.clock.Pause()
}

// Running reports whether frames are being produced
func (r *Runner) Running() bool {
	return r.loop.IsRunning()
}

// Ticks returns frames produced since creation
func (r *Runner) Ticks() uint64 {
	return r.loop.Ticks()
}
