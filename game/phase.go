package game

import (
	"github.com/lixenwraith/drag-match/engine/fsm"
	"github.com/lixenwraith/drag-match/event"
)

// Phase states; Active is the non-leaf parent of every in-level state
const (
	StateMenu fsm.StateID = iota + fsm.StateRoot + 1
	StateActive
	StatePlaying
	StatePaused
	StateCompleted
)

// Phase names as reported to hosts
const (
	PhaseMenu      = "menu"
	PhasePlaying   = "playing"
	PhasePaused    = "paused"
	PhaseCompleted = "completed"
)

// newPhaseMachine builds the phase hierarchy
//
//	root ── exit ──> menu
//	menu ── start ──> playing
//	active
//	  playing ── pause ──> paused ── resume ──> playing
//	  playing ── puzzle_completed ──> completed ── advance ──> playing
func newPhaseMachine() (*fsm.Machine[*Game], error) {
	m := fsm.NewMachine[*Game]()

	m.AddState(fsm.StateRoot, "root", fsm.StateNone)
	m.AddState(StateMenu, PhaseMenu, fsm.StateRoot)
	m.AddState(StateActive, "active", fsm.StateRoot).
		Exit((*Game).onLeaveActive)
	m.AddState(StatePlaying, PhasePlaying, StateActive)
	m.AddState(StatePaused, PhasePaused, StateActive).
		Enter((*Game).onEnterPaused)
	m.AddState(StateCompleted, PhaseCompleted, StateActive).
		Enter((*Game).onEnterCompleted)

	m.On(fsm.StateRoot, event.EventExit, StateMenu)
	m.On(StateMenu, event.EventStart, StatePlaying)
	m.On(StatePlaying, event.EventPause, StatePaused)
	m.On(StatePlaying, event.EventPuzzleCompleted, StateCompleted)
	m.On(StatePaused, event.EventResume, StatePlaying)
	m.On(StateCompleted, event.EventAdvance, StatePlaying)

	m.OnTransition = func(g *Game, from, to fsm.StateID) {
		g.events.Emit(event.EventPhaseChanged, &event.PhaseChangedPayload{
			From: m.StateName(from),
			To:   m.StateName(to),
		})
	}

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}
