// Package match decides what happens when a dragged piece is released.
package match

import (
	"github.com/lixenwraith/drag-match/entity"
)

// Outcome classifies a release
type Outcome uint8

const (
	// OutcomeMissed means no free slot contained the piece center
	OutcomeMissed Outcome = iota
	// OutcomePlaced means the key matched and the piece is pinned
	OutcomePlaced
	// OutcomeRejected means a free slot was hit with the wrong key
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeRejected:
		return "rejected"
	default:
		return "missed"
	}
}

// Feedback receives release side effects (particles, tones, events)
type Feedback interface {
	Placed(piece *entity.Piece, slot *entity.Slot)
	Rejected(piece *entity.Piece, slot *entity.Slot)
	Missed(piece *entity.Piece)
}

// Engine applies the placement rule to a Store
type Engine struct {
	store    *entity.Store
	feedback Feedback
}

// NewEngine binds an engine to a store; feedback may be nil
func NewEngine(store *entity.Store, feedback Feedback) *Engine {
	return &Engine{store: store, feedback: feedback}
}

// Store returns the bound store
func (e *Engine) Store() *entity.Store {
	return e.store
}

// TryPlace resolves the release of piece at its current position
// The first free slot in creation order containing the piece center is the
// candidate; only an exact key match commits
func (e *Engine) TryPlace(piece *entity.Piece) Outcome {
	defer e.settle(piece)

	if piece.Placed {
		return OutcomeMissed
	}

	slot := e.store.FreeSlotAt(piece.Center())
	if slot == nil {
		piece.ReturnToOrigin()
		if e.feedback != nil {
			e.feedback.Missed(piece)
		}
		return OutcomeMissed
	}

	if piece.Key != slot.ExpectedKey {
		piece.ReturnToOrigin()
		if e.feedback != nil {
			e.feedback.Rejected(piece, slot)
		}
		return OutcomeRejected
	}

	if err := e.store.Occupy(piece, slot); err != nil {
		piece.ReturnToOrigin()
		if e.feedback != nil {
			e.feedback.Missed(piece)
		}
		return OutcomeMissed
	}
	if e.feedback != nil {
		e.feedback.Placed(piece, slot)
	}
	return OutcomePlaced
}

// settle clears drag state after every release; glow is a function of an active drag only
func (e *Engine) settle(piece *entity.Piece) {
	piece.Dragging = false
	piece.Scale = 1
	e.store.ResetGlow()
}

// Complete reports whether every slot is occupied
func (e *Engine) Complete() bool {
	return e.store.AllOccupied()
}

// PlacedCount returns the number of committed placements
func (e *Engine) PlacedCount() int {
	return e.store.PlacedCount()
}
