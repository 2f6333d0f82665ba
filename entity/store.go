// Package entity owns the pieces and slots of the active puzzle.
package entity

import (
	"errors"
	"math"

	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/vmath"
)

var (
	ErrSlotOccupied = errors.New("slot already occupied")
	ErrPiecePlaced  = errors.New("piece already placed")
	ErrForeignPiece = errors.New("piece belongs to another store")
)

// Store holds the live pieces and slots in creation order
// Creation order is the iteration order for hit tests
type Store struct {
	level  level.PuzzleLevel
	pieces []*Piece
	slots  []*Slot
	placed int
}

// NewStore validates lvl and generates its slots and pieces
// Slot keys follow the level key order, piece keys are a uniform permutation
// of required plus distractor keys, positions come from the layout
func NewStore(lvl level.PuzzleLevel, rng *vmath.FastRand) (*Store, error) {
	if err := lvl.Validate(); err != nil {
		return nil, err
	}

	s := &Store{level: lvl}

	slotBoxes := slotRects(lvl.Layout, len(lvl.Keys))
	s.slots = make([]*Slot, len(lvl.Keys))
	for i, key := range lvl.Keys {
		r := slotBoxes[i]
		s.slots[i] = &Slot{
			ID:          i,
			ExpectedKey: key,
			X:           r.X,
			Y:           r.Y,
			W:           r.W,
			H:           r.H,
			OccupantID:  -1,
		}
	}

	keys := make([]string, 0, len(lvl.Keys)+lvl.Distractors.Count)
	keys = append(keys, lvl.Keys...)
	keys = append(keys, pickDistractors(&lvl, rng)...)
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	pieceBoxes := pieceRects(lvl.Layout, len(keys))
	s.pieces = make([]*Piece, len(keys))
	for i, key := range keys {
		r := pieceBoxes[i]
		s.pieces[i] = &Piece{
			ID:      i,
			Key:     key,
			Shape:   lvl.Shape,
			X:       r.X,
			Y:       r.Y,
			W:       r.W,
			H:       r.H,
			OriginX: r.X,
			OriginY: r.Y,
			Phase:   rng.Range(0, 2*math.Pi),
			Scale:   1,
		}
	}

	return s, nil
}

// pickDistractors draws Count distinct candidates with a partial Fisher-Yates
func pickDistractors(lvl *level.PuzzleLevel, rng *vmath.FastRand) []string {
	n := lvl.Distractors.Count
	if n == 0 {
		return nil
	}
	pool := lvl.DistractorCandidates()
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Level returns the configuration the store was built from
func (s *Store) Level() *level.PuzzleLevel {
	return &s.level
}

// Pieces returns pieces in creation order
func (s *Store) Pieces() []*Piece {
	return s.pieces
}

// Slots returns slots in creation order
func (s *Store) Slots() []*Slot {
	return s.slots
}

// Piece looks up a piece by ID
func (s *Store) Piece(id int) *Piece {
	if id < 0 || id >= len(s.pieces) {
		return nil
	}
	return s.pieces[id]
}

// PieceAt returns the first unplaced piece whose box contains p
func (s *Store) PieceAt(p core.Vec2) *Piece {
	for _, piece := range s.pieces {
		if piece.Placed {
			continue
		}
		if piece.Bounds().Contains(p) {
			return piece
		}
	}
	return nil
}

// FreeSlotAt returns the first unoccupied slot whose box contains p
func (s *Store) FreeSlotAt(p core.Vec2) *Slot {
	for _, slot := range s.slots {
		if slot.Occupied {
			continue
		}
		if slot.Bounds().Contains(p) {
			return slot
		}
	}
	return nil
}

// Occupy pins piece to slot, both transitions are one-way
func (s *Store) Occupy(piece *Piece, slot *Slot) error {
	if s.Piece(piece.ID) != piece {
		return ErrForeignPiece
	}
	if slot.Occupied {
		return ErrSlotOccupied
	}
	if piece.Placed {
		return ErrPiecePlaced
	}
	piece.CenterOn(slot.Center())
	piece.Placed = true
	piece.Dragging = false
	slot.Occupied = true
	slot.OccupantID = piece.ID
	slot.Glow = 0
	s.placed++
	return nil
}

// PlacedCount returns the number of committed placements
func (s *Store) PlacedCount() int {
	return s.placed
}

// AllOccupied reports whether every slot holds a piece
func (s *Store) AllOccupied() bool {
	return s.placed == len(s.slots)
}

// ResetGlow zeroes glow on every slot
func (s *Store) ResetGlow() {
	for _, slot := range s.slots {
		slot.Glow = 0
	}
}

// DecayGlow fades glow toward zero by amount
func (s *Store) DecayGlow(amount float64) {
	for _, slot := range s.slots {
		if slot.Glow > 0 {
			slot.Glow = vmath.Clamp(slot.Glow-amount, 0, 1)
		}
	}
}
