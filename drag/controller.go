// Package drag tracks the pointer and the piece it holds.
package drag

import (
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/entity"
	"github.com/lixenwraith/drag-match/match"
	"github.com/lixenwraith/drag-match/parameter"
)

// Controller owns at most one held piece between pointer down and up
type Controller struct {
	store   *entity.Store
	engine  *match.Engine
	held    *entity.Piece
	pointer core.Vec2
}

// NewController binds pointer handling to a store and its match engine
func NewController(store *entity.Store, engine *match.Engine) *Controller {
	return &Controller{store: store, engine: engine}
}

// PointerDown picks up the first unplaced piece under p
// Ignored while a piece is already held
func (c *Controller) PointerDown(p core.Vec2) bool {
	if c.held != nil {
		return false
	}
	piece := c.store.PieceAt(p)
	if piece == nil {
		return false
	}
	c.held = piece
	c.pointer = p
	piece.Dragging = true
	piece.Scale = parameter.DragScale
	return true
}

// PointerMove drags the held piece and recomputes slot glow
func (c *Controller) PointerMove(p core.Vec2) {
	c.pointer = p
	if c.held == nil {
		return
	}
	c.held.CenterOn(p)
	for _, slot := range c.store.Slots() {
		if slot.Occupied {
			continue
		}
		slot.Glow = Glow(p.Dist(slot.Center()))
	}
}

// PointerUp releases the held piece into the match engine
// ok is false when nothing was held
func (c *Controller) PointerUp() (outcome match.Outcome, piece *entity.Piece, ok bool) {
	if c.held == nil {
		return match.OutcomeMissed, nil, false
	}
	piece = c.held
	c.held = nil
	return c.engine.TryPlace(piece), piece, true
}

// Held returns the held piece or nil
func (c *Controller) Held() *entity.Piece {
	return c.held
}

// Pointer returns the last known pointer position
func (c *Controller) Pointer() core.Vec2 {
	return c.pointer
}

// Cancel drops the held piece back to its origin without a match attempt
func (c *Controller) Cancel() {
	if c.held == nil {
		return
	}
	c.held.ReturnToOrigin()
	c.held.Dragging = false
	c.held.Scale = 1
	c.held = nil
	c.store.ResetGlow()
}

// Glow maps pointer distance to slot highlight intensity
func Glow(dist float64) float64 {
	g := 1 - dist/parameter.GlowRadius
	if g < 0 {
		return 0
	}
	return g
}
