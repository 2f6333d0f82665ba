package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/parameter"
)

// statusRows is reserved at the bottom of the screen
const statusRows = 1

// Terminal draws frames to a tcell screen, scaling the logical world to cells
type Terminal struct {
	screen tcell.Screen
	worldW float64
	worldH float64
}

// NewTerminal creates a renderer over an initialized screen
func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		worldW: parameter.DefaultWorldWidth,
		worldH: parameter.DefaultWorldHeight,
	}
}

// scale returns cells per logical unit on each axis
func (t *Terminal) scale() (sx, sy float64) {
	w, h := t.screen.Size()
	rows := h - statusRows
	if rows < 1 {
		rows = 1
	}
	return float64(w) / t.worldW, float64(rows) / t.worldH
}

// toCell maps a logical point to a cell
func (t *Terminal) toCell(x, y float64) (int, int) {
	sx, sy := t.scale()
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}

// ToLogical maps a cell back to the logical point at its center
func (t *Terminal) ToLogical(col, row int) core.Vec2 {
	sx, sy := t.scale()
	return core.Vec2{X: (float64(col) + 0.5) / sx, Y: (float64(row) + 0.5) / sy}
}

// cellRect returns the inclusive cell span covering r, at least one cell each way
func (t *Terminal) cellRect(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = t.toCell(r.X, r.Y)
	x1, y1 = t.toCell(r.X+r.W, r.Y+r.H)
	x1--
	y1--
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return
}

func rgb(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw renders f and shows the screen
func (t *Terminal) Draw(f *Frame) error {
	if f.Width > 0 && f.Height > 0 {
		t.worldW, t.worldH = f.Width, f.Height
	}

	bg := tcell.StyleDefault.Background(rgb(f.Palette.Background))
	w, h := t.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	for i := range f.Slots {
		t.drawSlot(&f.Slots[i], f, bg)
	}

	// Dragged pieces last so they stay on top
	order := make([]int, len(f.Pieces))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return !f.Pieces[order[a]].Dragging && f.Pieces[order[b]].Dragging
	})
	for _, i := range order {
		t.drawPiece(&f.Pieces[i], f, bg)
	}

	for i := range f.Particles {
		t.drawParticle(&f.Particles[i], f, bg)
	}

	t.drawBanner(f, bg)
	t.drawStatusBar(f, bg)
	t.screen.Show()
	return nil
}

func (t *Terminal) drawSlot(s *SlotView, f *Frame, bg tcell.Style) {
	base := f.Palette.Slot
	if s.Occupied {
		base = f.Palette.Success
	} else if s.Glow > 0 {
		base = base.Blend(f.Palette.Glow, s.Glow)
	}
	style := bg.Background(rgb(base)).Foreground(rgb(f.Palette.Text))

	x0, y0, x1, y1 := t.cellRect(s.Rect())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if !s.Occupied {
		t.drawLabel(s.Key, x0, y0, x1, y1, style.Foreground(rgb(f.Palette.Background)).Dim(true))
	}
}

func (t *Terminal) drawPiece(p *PieceView, f *Frame, bg tcell.Style) {
	sk := skinFor(p.Shape)
	color := f.Palette.Piece
	if p.Dragging {
		color = color.Blend(f.Palette.Glow, 0.35)
	}
	style := bg.Background(rgb(color)).Foreground(rgb(f.Palette.Text))

	x0, y0, x1, y1 := t.cellRect(p.Rect())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := sk.fill
			switch {
			case x0 == x1 || y0 == y1:
				ch = sk.fill
			case x == x0 && y == y0:
				ch = sk.corners[0]
			case x == x1 && y == y0:
				ch = sk.corners[1]
			case x == x0 && y == y1:
				ch = sk.corners[2]
			case x == x1 && y == y1:
				ch = sk.corners[3]
			case y == y0 || y == y1:
				ch = sk.hEdge
			case x == x0 || x == x1:
				ch = sk.vEdge
			}
			t.screen.SetContent(x, y, ch, nil, style)
		}
	}
	t.drawLabel(p.Key, x0, y0, x1, y1, style.Bold(true))
}

func (t *Terminal) drawParticle(p *ParticleView, f *Frame, bg tcell.Style) {
	x, y := t.toCell(p.X, p.Y)
	ch := '·'
	if p.Life > 0.5 {
		ch = '•'
	}
	c := f.Palette.Background.Blend(p.Color, p.Life)
	t.screen.SetContent(x, y, ch, nil, bg.Foreground(rgb(c)))
}

// drawLabel centers text in the cell box, truncated to its width
func (t *Terminal) drawLabel(text string, x0, y0, x1, y1 int, style tcell.Style) {
	runes := []rune(text)
	width := x1 - x0 + 1
	if len(runes) > width {
		runes = runes[:width]
	}
	x := x0 + (width-len(runes))/2
	y := y0 + (y1-y0)/2
	for i, r := range runes {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawBanner overlays the phase message for non-playing phases
func (t *Terminal) drawBanner(f *Frame, bg tcell.Style) {
	var msg string
	switch f.Phase {
	case "menu":
		msg = " DRAG MATCH  press Enter to start "
	case "paused":
		msg = " PAUSED  press p to resume "
	case "completed":
		msg = fmt.Sprintf(" LEVEL %d COMPLETE ", f.Level+1)
	default:
		return
	}
	w, h := t.screen.Size()
	style := bg.Background(rgb(f.Palette.Glow)).Foreground(rgb(f.Palette.Background)).Bold(true)
	t.drawText((w-len([]rune(msg)))/2, (h-statusRows)/2, msg, style)
}

func (t *Terminal) drawStatusBar(f *Frame, bg tcell.Style) {
	w, h := t.screen.Size()
	y := h - 1
	style := bg.Background(rgb(f.Palette.Slot)).Foreground(rgb(core.RGBWhite))
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}

	status := fmt.Sprintf(" %s | level %d %s | score %d", f.Phase, f.Level+1, f.LevelName, f.Score)
	if f.Muted {
		status += " | muted"
	}
	t.drawText(0, y, status, style)

	help := "enter start  p pause  m mute  esc menu  q quit "
	if x := w - len(help); x > len(status)+1 {
		t.drawText(x, y, help, style.Dim(true))
	}
}
