package render

import (
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
)

// Frame is an immutable snapshot of everything a renderer draws
// Coordinates are logical; renderers scale to their surface
type Frame struct {
	Phase     string  `json:"phase"`
	Score     int     `json:"score"`
	Level     int     `json:"level"`
	LevelName string  `json:"level_name"`
	SessionID string  `json:"session_id,omitempty"`
	Muted     bool    `json:"muted"`
	Time      float64 `json:"time"` // Animation seconds since session start
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`

	Palette   level.Palette  `json:"palette"`
	Slots     []SlotView     `json:"slots"`
	Pieces    []PieceView    `json:"pieces"`
	Particles []ParticleView `json:"particles"`
}

// SlotView is the drawable state of a slot
type SlotView struct {
	ID       int     `json:"id"`
	Key      string  `json:"key"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Glow     float64 `json:"glow"`
	Occupied bool    `json:"occupied"`
}

// PieceView is the drawable state of a piece
// Bob is a vertical offset already evaluated for Frame.Time
type PieceView struct {
	ID       int         `json:"id"`
	Key      string      `json:"key"`
	Shape    level.Shape `json:"shape"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	W        float64     `json:"w"`
	H        float64     `json:"h"`
	Scale    float64     `json:"scale"`
	Bob      float64     `json:"bob"`
	Placed   bool        `json:"placed"`
	Dragging bool        `json:"dragging"`
}

// ParticleView is the drawable state of a particle
type ParticleView struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Size  float64  `json:"size"`
	Life  float64  `json:"life"`
	Color core.RGB `json:"color"`
}

// Rect returns the drawn box, scale applied about the center and bob added
func (p PieceView) Rect() core.Rect {
	r := core.Rect{X: p.X, Y: p.Y + p.Bob, W: p.W, H: p.H}
	if p.Scale > 0 && p.Scale != 1 {
		c := r.Center()
		r = core.Rect{W: p.W * p.Scale, H: p.H * p.Scale}.CenteredAt(c)
	}
	return r
}

// Rect returns the slot box
func (s SlotView) Rect() core.Rect {
	return core.Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// Renderer draws frames to a surface
type Renderer interface {
	Draw(f *Frame) error
}
