package entity

import (
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
)

// slotRects lays slots in centered rows across the upper band
func slotRects(lay level.Layout, n int) []core.Rect {
	return gridRects(lay, n, lay.SlotColumns(n), lay.SlotSize, lay.SlotTop())
}

// pieceRects lays pieces in centered rows across the tray
func pieceRects(lay level.Layout, n int) []core.Rect {
	return gridRects(lay, n, lay.PieceColumns(n), lay.PieceSize, lay.TrayY())
}

// gridRects places n square cells of size in rows of cols starting at top
// Each row is centered on its own width so a short last row stays centered
func gridRects(lay level.Layout, n, cols int, size, top float64) []core.Rect {
	out := make([]core.Rect, 0, n)
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols

		inRow := cols
		if remaining := n - row*cols; remaining < cols {
			inRow = remaining
		}
		rowWidth := float64(inRow)*size + float64(inRow-1)*lay.Gap
		x0 := (lay.Width - rowWidth) / 2

		out = append(out, core.Rect{
			X: x0 + float64(col)*(size+lay.Gap),
			Y: top + float64(row)*(size+lay.Gap),
			W: size,
			H: size,
		})
	}
	return out
}
