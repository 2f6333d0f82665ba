package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drag-match/engine"
	"github.com/lixenwraith/drag-match/render"
)

func newTestRunner(t *testing.T) (*Game, *Runner, *engine.MockTimeProvider, *atomic.Pointer[render.Frame]) {
	t.Helper()
	mock := engine.NewMockTimeProvider(time.Unix(1_700_000_000, 0))
	g := newTestGame(t, WithTimeSource(mock))

	var last atomic.Pointer[render.Frame]
	r := NewRunner(g, mock, time.Millisecond, func(f *render.Frame) { last.Store(f) })
	t.Cleanup(r.Stop)
	return g, r, mock, &last
}

func TestRunnerStepInMenu(t *testing.T) {
	_, r, _, last := newTestRunner(t)
	r.Step()
	require.NotNil(t, last.Load())
	assert.Equal(t, PhaseMenu, last.Load().Phase)
	assert.False(t, r.Running())
}

func TestRunnerFollowsPhase(t *testing.T) {
	g, r, mock, last := newTestRunner(t)
	require.NoError(t, g.Start())

	r.Sync()
	require.True(t, r.Running())

	mock.Advance(50 * time.Millisecond)
	require.Eventually(t, func() bool {
		f := last.Load()
		return f != nil && f.Time >= 0.05
	}, time.Second, time.Millisecond)

	require.True(t, g.Pause())
	r.Sync()
	assert.False(t, r.Running())
	assert.Equal(t, PhasePaused, last.Load().Phase)
	frozen := last.Load().Time

	// Wall time spent paused never reaches the simulation
	mock.Advance(10 * time.Second)
	require.True(t, g.Resume())
	r.Sync()
	require.True(t, r.Running())

	ticks := r.Ticks()
	require.Eventually(t, func() bool { return r.Ticks() > ticks+2 }, time.Second, time.Millisecond)
	assert.InDelta(t, frozen, last.Load().Time, 1e-9)

	require.True(t, g.Exit())
	r.Sync()
	assert.False(t, r.Running())
	assert.Equal(t, PhaseMenu, last.Load().Phase)
}
