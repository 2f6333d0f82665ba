// Package game owns a play session: the phase machine, the active level,
// scoring, and the snapshot hosts render.
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/drag-match/audio"
	"github.com/lixenwraith/drag-match/content"
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/drag"
	"github.com/lixenwraith/drag-match/engine"
	"github.com/lixenwraith/drag-match/engine/fsm"
	"github.com/lixenwraith/drag-match/event"
	"github.com/lixenwraith/drag-match/match"
	"github.com/lixenwraith/drag-match/parameter"
	"github.com/lixenwraith/drag-match/vmath"
)

const baseLevelScore = parameter.BaseLevelScore

// ErrLevelRange rejects a start index past parameter.MaxStartLevel
var ErrLevelRange = errors.New("start level out of range")

// Game is the session root handed to hosts
// All methods are serialized by one mutex so host goroutines observe whole operations
type Game struct {
	mu sync.Mutex

	catalog *content.Catalog
	synth   *audio.Synth
	rng     *vmath.FastRand
	clock   engine.TimeSource
	fsm     *fsm.Machine[*Game]
	timers  *engine.Timers
	events  *event.EventQueue

	session *Session
	match   *match.Engine
	drag    *drag.Controller

	// Session output, kept after exit until the next start
	score int
	level int
}

// Option configures a Game
type Option func(*Game)

// WithSynth routes cues to s; without it the game is silent
func WithSynth(s *audio.Synth) Option {
	return func(g *Game) { g.synth = s }
}

// WithSeed fixes the shuffle and particle seed
func WithSeed(seed uint64) Option {
	return func(g *Game) { g.rng = vmath.NewFastRand(seed) }
}

// WithTimeSource sets the wall clock used for session IDs
func WithTimeSource(ts engine.TimeSource) Option {
	return func(g *Game) { g.clock = ts }
}

// New creates a game in the menu phase; a nil catalog uses the embedded pack
func New(catalog *content.Catalog, opts ...Option) (*Game, error) {
	if catalog == nil {
		c, err := content.NewCatalog(content.Default().Levels...)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	g := &Game{
		catalog: catalog,
		clock:   engine.NewTimeProvider(),
		timers:  engine.NewTimers(),
		events:  event.NewEventQueue(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = vmath.NewFastRand(uint64(g.clock.Now().UnixNano()))
	}

	m, err := newPhaseMachine()
	if err != nil {
		return nil, fmt.Errorf("phase machine: %w", err)
	}
	g.fsm = m
	if err := g.fsm.Init(g, StateMenu); err != nil {
		return nil, fmt.Errorf("phase machine: %w", err)
	}
	return g, nil
}

// Start begins a new run at level 0; no-op outside the menu
func (g *Game) Start() error {
	return g.StartAt(0)
}

// StartAt begins a new run at a zero-based catalog index; no-op outside the menu
// Configuration errors and indexes past parameter.MaxStartLevel leave the game in the menu
func (g *Game) StartAt(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fsm.ActiveStateID() != StateMenu {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index > parameter.MaxStartLevel {
		return fmt.Errorf("%w: %d", ErrLevelRange, index)
	}
	if err := g.loadLevel(index, 0); err != nil {
		return err
	}
	g.fsm.HandleEvent(g, event.EventStart)
	g.playNamed("start")
	return nil
}

// Pause freezes a playing level
func (g *Game) Pause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.HandleEvent(g, event.EventPause)
}

// Resume continues a paused level
func (g *Game) Resume() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.HandleEvent(g, event.EventResume)
}

// TogglePause pauses when playing and resumes when paused
func (g *Game) TogglePause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.fsm.ActiveStateID() {
	case StatePlaying:
		return g.fsm.HandleEvent(g, event.EventPause)
	case StatePaused:
		return g.fsm.HandleEvent(g, event.EventResume)
	}
	return false
}

// Exit discards the session and returns to the menu from any phase
func (g *Game) Exit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.HandleEvent(g, event.EventExit)
}

// ToggleMute flips audio mute, returns the new state
func (g *Game) ToggleMute() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.synth == nil {
		return true
	}
	return g.synth.ToggleMute()
}

// Tick advances simulation by dt, clamped to the frame delta limit
// Menu and Paused freeze everything
func (g *Game) Tick(dt time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	phase := g.fsm.ActiveStateID()
	if phase != StatePlaying && phase != StateCompleted {
		return
	}
	dt = engine.ClampDelta(dt, parameter.MaxFrameDelta)

	s := g.session
	s.AnimationTime += dt
	s.Particles.Tick(dt)
	if g.drag.Held() == nil {
		s.Store.DecayGlow(parameter.GlowDecayPerSecond * dt.Seconds())
	}

	g.fsm.Update(g, dt)
	g.timers.Advance(dt)

	// Completion is checked once per playing tick behind the session one-shot
	if g.fsm.ActiveStateID() == StatePlaying && !g.session.completed && g.match.Complete() {
		g.session.completed = true
		g.fsm.HandleEvent(g, event.EventPuzzleCompleted)
	}
}

// PointerDown picks up a piece at logical (x, y); ignored unless playing
func (g *Game) PointerDown(x, y float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.ActiveStateID() != StatePlaying {
		return false
	}
	return g.drag.PointerDown(core.Vec2{X: x, Y: y})
}

// PointerMove drags the held piece; ignored unless playing
func (g *Game) PointerMove(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.ActiveStateID() != StatePlaying {
		return
	}
	g.drag.PointerMove(core.Vec2{X: x, Y: y})
}

// PointerUp releases the held piece; ok is false when nothing was released
func (g *Game) PointerUp() (outcome match.Outcome, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fsm.ActiveStateID() != StatePlaying {
		return match.OutcomeMissed, false
	}
	outcome, _, ok = g.drag.PointerUp()
	return outcome, ok
}

// Phase returns the active phase state
func (g *Game) Phase() fsm.StateID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.ActiveStateID()
}

// PhaseName returns the active phase name
func (g *Game) PhaseName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.ActiveStateName()
}

// Running reports whether the phase needs frame ticks
func (g *Game) Running() bool {
	p := g.Phase()
	return p == StatePlaying || p == StateCompleted
}

// Score returns the current or last run score
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// Level returns the current or last zero-based level index
func (g *Game) Level() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.level
}

// SessionID returns the active session ID, empty in the menu
func (g *Game) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return ""
	}
	return g.session.ID.String()
}

// Events returns the queue hosts drain for notifications
func (g *Game) Events() *event.EventQueue {
	return g.events
}

// loadLevel replaces the session with a fresh one for index
func (g *Game) loadLevel(index, score int) error {
	lvl := g.catalog.Level(index)
	s, err := newSession(lvl, index, score, g.rng, g.clock.Now())
	if err != nil {
		return fmt.Errorf("load level %d: %w", index, err)
	}

	g.session = s
	g.match = match.NewEngine(s.Store, feedback{g})
	g.drag = drag.NewController(s.Store, g.match)
	g.score = score
	g.level = index

	g.events.Emit(event.EventLevelStarted, &event.LevelStartedPayload{
		Level:     index,
		Name:      lvl.Name,
		SessionID: s.ID.String(),
		Slots:     len(s.Store.Slots()),
		Pieces:    len(s.Store.Pieces()),
	})
	log.Printf("game: level %d %q started, session %s", index, lvl.Name, s.ID)
	return nil
}

// advance moves from the celebration to the next level
func (g *Game) advance() {
	if g.fsm.ActiveStateID() != StateCompleted {
		return
	}
	if err := g.loadLevel(g.session.Level+1, g.score); err != nil {
		log.Printf("game: advance failed, returning to menu: %v", err)
		g.fsm.HandleEvent(g, event.EventExit)
		return
	}
	g.fsm.HandleEvent(g, event.EventAdvance)
}

// onEnterPaused drops any held piece back to its origin
func (g *Game) onEnterPaused() {
	if g.drag != nil {
		g.drag.Cancel()
	}
}

// onEnterCompleted awards the level, celebrates, and schedules the advance
func (g *Game) onEnterCompleted() {
	s := g.session
	award := ScoreForLevel(s.Level)
	g.score += award
	s.Score = g.score

	for _, slot := range s.Store.Slots() {
		c := slot.Center()
		s.Particles.BurstPalette(c.X, c.Y, parameter.CompletionBurstCount, s.Config.Palette.Particles)
	}
	g.playNamed("levelup")

	g.events.Emit(event.EventPuzzleCompleted, &event.CompletedPayload{
		Level: s.Level,
		Award: award,
		Score: g.score,
	})
	g.timers.After(parameter.CelebrationDelay, g.advance)
}

// onLeaveActive discards the session on exit to the menu
func (g *Game) onLeaveActive() {
	g.timers.Clear()
	g.session = nil
	g.match = nil
	g.drag = nil
}

func (g *Game) cue(c audio.CueType) {
	g.synth.Cue(c)
	g.events.Emit(event.EventCue, &event.CuePayload{Name: c.String()})
}

func (g *Game) playNamed(name string) {
	if _, err := g.synth.PlayNamed(name); err != nil {
		log.Printf("game: %v", err)
	}
	g.events.Emit(event.EventCue, &event.CuePayload{Name: name})
}
