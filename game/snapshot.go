package game

import (
	"math"

	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/parameter"
	"github.com/lixenwraith/drag-match/render"
)

// Snapshot copies the drawable state into a Frame
// The frame shares nothing with the game and is safe to hand to another goroutine
func (g *Game) Snapshot() *render.Frame {
	g.mu.Lock()
	defer g.mu.Unlock()

	f := &render.Frame{
		Phase:   g.fsm.ActiveStateName(),
		Score:   g.score,
		Level:   g.level,
		Muted:   g.synth == nil || g.synth.IsMuted(),
		Width:   parameter.DefaultWorldWidth,
		Height:  parameter.DefaultWorldHeight,
		Palette: level.DefaultPalette(),
	}

	s := g.session
	if s == nil {
		return f
	}

	t := s.AnimationTime.Seconds()
	f.SessionID = s.ID.String()
	f.LevelName = s.Config.Name
	f.Time = t
	f.Width = s.Config.Layout.Width
	f.Height = s.Config.Layout.Height
	f.Palette = s.Config.Palette
	f.Palette.Particles = append(f.Palette.Particles[:0:0], s.Config.Palette.Particles...)

	slots := s.Store.Slots()
	f.Slots = make([]render.SlotView, len(slots))
	for i, sl := range slots {
		f.Slots[i] = render.SlotView{
			ID:       sl.ID,
			Key:      sl.ExpectedKey,
			X:        sl.X,
			Y:        sl.Y,
			W:        sl.W,
			H:        sl.H,
			Glow:     sl.Glow,
			Occupied: sl.Occupied,
		}
	}

	pieces := s.Store.Pieces()
	f.Pieces = make([]render.PieceView, len(pieces))
	for i, p := range pieces {
		var bob float64
		if !p.Placed && !p.Dragging {
			bob = parameter.BobAmplitude * math.Sin(t*parameter.BobSpeed+p.Phase)
		}
		f.Pieces[i] = render.PieceView{
			ID:       p.ID,
			Key:      p.Key,
			Shape:    p.Shape,
			X:        p.X,
			Y:        p.Y,
			W:        p.W,
			H:        p.H,
			Scale:    p.Scale,
			Bob:      bob,
			Placed:   p.Placed,
			Dragging: p.Dragging,
		}
	}

	active := s.Particles.Active()
	f.Particles = make([]render.ParticleView, len(active))
	for i, p := range active {
		f.Particles[i] = render.ParticleView{
			X:     p.X,
			Y:     p.Y,
			Size:  p.Size,
			Life:  p.Life,
			Color: p.Color,
		}
	}
	return f
}
