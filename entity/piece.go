package entity

import (
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
)

// Piece is a draggable unit carrying a key
// A placed piece is never dragging and stays centered on its slot
type Piece struct {
	ID    int
	Key   string
	Shape level.Shape

	X, Y float64 // Top-left
	W, H float64

	Placed   bool
	Dragging bool

	OriginX, OriginY float64 // Snap-back position on failed release

	Phase float64 // Idle bob offset in radians, cosmetic
	Scale float64 // Visual emphasis, 1 at rest
}

// Bounds returns the current bounding box
func (p *Piece) Bounds() core.Rect {
	return core.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the bounding box center
func (p *Piece) Center() core.Vec2 {
	return p.Bounds().Center()
}

// CenterOn moves the piece so its center sits at c
func (p *Piece) CenterOn(c core.Vec2) {
	p.X = c.X - p.W/2
	p.Y = c.Y - p.H/2
}

// ReturnToOrigin snaps back to the spawn position
func (p *Piece) ReturnToOrigin() {
	p.X, p.Y = p.OriginX, p.OriginY
}
