package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drag-match/audio"
	"github.com/lixenwraith/drag-match/content"
	"github.com/lixenwraith/drag-match/entity"
	"github.com/lixenwraith/drag-match/event"
	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/match"
	"github.com/lixenwraith/drag-match/parameter"
)

const frame = 16 * time.Millisecond

func catCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.NewCatalog(
		level.PuzzleLevel{
			Name:        "cat",
			Keys:        []string{"C", "A", "T"},
			Layout:      level.DefaultLayout(),
			Palette:     level.DefaultPalette(),
			Distractors: level.DistractorPolicy{Count: 2, Pool: []string{"B", "R"}},
		},
		level.PuzzleLevel{
			Name:    "dog",
			Keys:    []string{"D", "O", "G"},
			Layout:  level.DefaultLayout(),
			Palette: level.DefaultPalette(),
		},
	)
	require.NoError(t, err)
	return cat
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := New(catCatalog(t), append([]Option{WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	return g
}

func pieceFor(t *testing.T, g *Game, key string) *entity.Piece {
	t.Helper()
	for _, p := range g.session.Store.Pieces() {
		if p.Key == key && !p.Placed {
			return p
		}
	}
	t.Fatalf("no unplaced piece %q", key)
	return nil
}

func slotFor(t *testing.T, g *Game, key string) *entity.Slot {
	t.Helper()
	for _, s := range g.session.Store.Slots() {
		if s.ExpectedKey == key {
			return s
		}
	}
	t.Fatalf("no slot %q", key)
	return nil
}

// dragTo performs a full down/move/up gesture from a piece to a slot
func dragTo(t *testing.T, g *Game, pieceKey, slotKey string) match.Outcome {
	t.Helper()
	p := pieceFor(t, g, pieceKey)
	from := p.Center()
	to := slotFor(t, g, slotKey).Center()
	require.True(t, g.PointerDown(from.X, from.Y))
	g.PointerMove(to.X, to.Y)
	outcome, ok := g.PointerUp()
	require.True(t, ok)
	return outcome
}

func countEvents(evs []event.GameEvent, typ event.EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestNewGameStartsInMenu(t *testing.T) {
	g := newTestGame(t)
	assert.Equal(t, StateMenu, g.Phase())
	assert.Equal(t, PhaseMenu, g.PhaseName())
	assert.Empty(t, g.SessionID())
	assert.False(t, g.Running())

	// Menu input is a no-op
	g.Tick(frame)
	assert.False(t, g.PointerDown(100, 100))
	_, ok := g.PointerUp()
	assert.False(t, ok)
	assert.False(t, g.Pause())
	assert.False(t, g.Exit())
}

func TestNilCatalogUsesEmbeddedPack(t *testing.T) {
	g, err := New(nil, WithSeed(1))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	assert.Equal(t, content.Default().Levels[0].Name, g.Snapshot().LevelName)
}

func TestStartCreatesSession(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())

	assert.Equal(t, StatePlaying, g.Phase())
	assert.True(t, g.Running())
	assert.NotEmpty(t, g.SessionID())
	assert.Equal(t, 0, g.Level())
	assert.Equal(t, 0, g.Score())
	assert.Len(t, g.session.Store.Pieces(), 5)

	evs := g.Events().Consume()
	assert.Equal(t, 1, countEvents(evs, event.EventLevelStarted))
	assert.Equal(t, 1, countEvents(evs, event.EventPhaseChanged))

	// Start while playing is ignored
	id := g.SessionID()
	require.NoError(t, g.Start())
	assert.Equal(t, id, g.SessionID())
}

func TestStartAtRejectsOutOfRange(t *testing.T) {
	g := newTestGame(t)

	err := g.StartAt(parameter.MaxStartLevel + 1)
	require.ErrorIs(t, err, ErrLevelRange)
	assert.Equal(t, StateMenu, g.Phase())

	require.NoError(t, g.StartAt(parameter.MaxStartLevel))
	assert.Equal(t, StatePlaying, g.Phase())
	assert.Equal(t, parameter.MaxStartLevel, g.Level())
}

func TestCatScenario(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	g.Events().Consume()

	// Distractor over a real slot is rejected with an error cue
	assert.Equal(t, match.OutcomeRejected, dragTo(t, g, "B", "C"))
	assert.Equal(t, match.OutcomeRejected, dragTo(t, g, "R", "T"))
	evs := g.Events().Consume()
	assert.Equal(t, 2, countEvents(evs, event.EventPieceRejected))
	assert.Equal(t, 2, countEvents(evs, event.EventCue))

	assert.Equal(t, match.OutcomePlaced, dragTo(t, g, "T", "T"))
	assert.Equal(t, match.OutcomePlaced, dragTo(t, g, "C", "C"))
	g.Tick(frame)
	assert.Equal(t, StatePlaying, g.Phase(), "two of three placed")

	assert.Equal(t, match.OutcomePlaced, dragTo(t, g, "A", "A"))
	assert.Equal(t, StatePlaying, g.Phase(), "completion is detected on tick")

	g.Tick(frame)
	assert.Equal(t, StateCompleted, g.Phase())
	assert.Equal(t, ScoreForLevel(0), g.Score())

	evs = g.Events().Consume()
	assert.Equal(t, 3, countEvents(evs, event.EventPiecePlaced))
	assert.Equal(t, 1, countEvents(evs, event.EventPuzzleCompleted))
}

func TestCompletionTriggersExactlyOnce(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	for _, k := range []string{"C", "A", "T"} {
		dragTo(t, g, k, k)
	}

	completions := 0
	for i := 0; i < 10; i++ {
		g.Tick(frame)
		completions += countEvents(g.Events().Consume(), event.EventPuzzleCompleted)
	}
	assert.Equal(t, 1, completions)
	assert.Equal(t, ScoreForLevel(0), g.Score(), "award applied once")

	// Input is frozen during the celebration
	assert.False(t, g.PointerDown(400, 400))
	assert.False(t, g.Pause())
}

func TestCelebrationAdvancesToNextLevel(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	first := g.SessionID()
	for _, k := range []string{"C", "A", "T"} {
		dragTo(t, g, k, k)
	}
	g.Tick(frame)
	require.Equal(t, StateCompleted, g.Phase())

	// Just short of the delay nothing happens
	elapsed := time.Duration(0)
	for elapsed+parameter.MaxFrameDelta < parameter.CelebrationDelay {
		g.Tick(parameter.MaxFrameDelta)
		elapsed += parameter.MaxFrameDelta
	}
	assert.Equal(t, StateCompleted, g.Phase())

	g.Tick(parameter.MaxFrameDelta)
	assert.Equal(t, StatePlaying, g.Phase())
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, ScoreForLevel(0), g.Score(), "score carried forward")
	assert.NotEqual(t, first, g.SessionID())
	assert.Equal(t, "dog", g.session.Config.Name)
	assert.False(t, g.session.Completed())

	for _, k := range []string{"D", "O", "G"} {
		dragTo(t, g, k, k)
	}
	g.Tick(frame)
	assert.Equal(t, StateCompleted, g.Phase())
	assert.Equal(t, ScoreForLevel(0)+ScoreForLevel(1), g.Score())
}

func TestLevelsWrapWithHarderDifficulty(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.StartAt(2))
	assert.Equal(t, "cat", g.session.Config.Name)
	assert.Equal(t, level.DifficultyMedium, g.session.Config.Difficulty)
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	dragTo(t, g, "C", "C")
	require.NotZero(t, g.session.Particles.Len())

	require.True(t, g.Pause())
	assert.Equal(t, StatePaused, g.Phase())
	assert.False(t, g.Running())

	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Tick(frame)
	}
	after := g.Snapshot()
	assert.Equal(t, before.Time, after.Time)
	assert.Equal(t, before.Particles, after.Particles)

	// Input while paused is ignored
	p := pieceFor(t, g, "A")
	assert.False(t, g.PointerDown(p.Center().X, p.Center().Y))

	require.True(t, g.Resume())
	g.Tick(frame)
	assert.Greater(t, g.Snapshot().Time, before.Time)
}

func TestPauseReturnsHeldPiece(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	p := pieceFor(t, g, "A")
	c := p.Center()
	require.True(t, g.PointerDown(c.X, c.Y))
	g.PointerMove(10, 10)

	require.True(t, g.TogglePause())
	assert.False(t, p.Dragging)
	assert.Equal(t, p.OriginX, p.X)

	require.True(t, g.TogglePause())
	assert.Equal(t, StatePlaying, g.Phase())
}

func TestExitFromAnyPhase(t *testing.T) {
	for _, setup := range []func(*Game){
		func(g *Game) {},
		func(g *Game) { g.Pause() },
		func(g *Game) {
			for _, k := range []string{"C", "A", "T"} {
				dragTo(t, g, k, k)
			}
			g.Tick(frame)
		},
	} {
		g := newTestGame(t)
		require.NoError(t, g.Start())
		setup(g)

		require.True(t, g.Exit())
		assert.Equal(t, StateMenu, g.Phase())
		assert.Empty(t, g.SessionID())
		assert.Zero(t, g.timers.Len(), "pending advance must be dropped")

		// Ticking long after exit must not revive the old level
		for i := 0; i < 40; i++ {
			g.Tick(parameter.MaxFrameDelta)
		}
		assert.Equal(t, StateMenu, g.Phase())
	}
}

func TestRestartResetsScore(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	for _, k := range []string{"C", "A", "T"} {
		dragTo(t, g, k, k)
	}
	g.Tick(frame)
	require.Equal(t, ScoreForLevel(0), g.Score())

	g.Exit()
	assert.Equal(t, ScoreForLevel(0), g.Score(), "last score visible in menu")

	require.NoError(t, g.Start())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, g.Level())
}

func TestTickClampsDelta(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	g.Tick(10 * time.Second)
	assert.Equal(t, parameter.MaxFrameDelta, g.session.AnimationTime)
}

func TestGlowDecaysWhenIdle(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start())
	slot := slotFor(t, g, "C")
	slot.Glow = 1

	g.Tick(100 * time.Millisecond)
	assert.InDelta(t, 1-parameter.GlowDecayPerSecond*0.1, slot.Glow, 1e-9)
}

func TestSnapshotIsDetached(t *testing.T) {
	g := newTestGame(t)
	menu := g.Snapshot()
	assert.Equal(t, PhaseMenu, menu.Phase)
	assert.Empty(t, menu.Pieces)

	require.NoError(t, g.Start())
	dragTo(t, g, "T", "T")
	g.Tick(frame)

	f := g.Snapshot()
	assert.Equal(t, PhasePlaying, f.Phase)
	assert.Equal(t, "cat", f.LevelName)
	assert.Len(t, f.Slots, 3)
	assert.Len(t, f.Pieces, 5)
	assert.NotEmpty(t, f.Particles)
	assert.True(t, f.Muted, "no synth means muted")

	for _, p := range f.Pieces {
		if p.Placed {
			assert.Zero(t, p.Bob, "placed pieces do not bob")
		}
		assert.LessOrEqual(t, p.Bob, parameter.BobAmplitude)
	}

	f.Pieces[0].X = -999
	f.Palette.Particles[0].R = 1
	assert.NotEqual(t, -999.0, g.session.Store.Pieces()[0].X)
	assert.NotEqual(t, uint8(1), g.session.Config.Palette.Particles[0].R)
}

func TestCuesReachSynth(t *testing.T) {
	out := audio.NewMixerOutput()
	g := newTestGame(t, WithSynth(audio.NewSynth(out, audio.DefaultConfig())))
	require.NoError(t, g.Start())

	dragTo(t, g, "B", "A")
	dragTo(t, g, "A", "A")
	assert.GreaterOrEqual(t, out.Played(), 2)
	assert.False(t, g.Snapshot().Muted)

	assert.True(t, g.ToggleMute())
	assert.True(t, g.Snapshot().Muted)
}

func TestToggleMuteIsSerialized(t *testing.T) {
	g := newTestGame(t, WithSynth(audio.NewSynth(audio.NewMixerOutput(), audio.DefaultConfig())))

	g.mu.Lock()
	done := make(chan bool, 1)
	go func() { done <- g.ToggleMute() }()

	select {
	case <-done:
		t.Fatal("ToggleMute ran while another operation held the game")
	case <-time.After(20 * time.Millisecond):
	}
	g.mu.Unlock()

	select {
	case muted := <-done:
		assert.True(t, muted)
	case <-time.After(time.Second):
		t.Fatal("ToggleMute did not complete")
	}
	assert.False(t, g.ToggleMute())
}
