package entity

import "github.com/lixenwraith/drag-match/core"

// Slot is a placement target
// Occupied flips to true at most once per level and never back
type Slot struct {
	ID          int
	ExpectedKey string

	X, Y float64
	W, H float64

	Occupied   bool
	OccupantID int // Piece ID when occupied, -1 otherwise

	Glow float64 // Proximity feedback in [0, 1], transient
}

// Bounds returns the slot box
func (s *Slot) Bounds() core.Rect {
	return core.Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// Center returns the slot center
func (s *Slot) Center() core.Vec2 {
	return s.Bounds().Center()
}
