package level

import "fmt"

// TrayTop is the fraction of height where the piece tray begins
const TrayTop = 0.55

// SlotColumns returns slots per row for n slots
func (lay Layout) SlotColumns(n int) int {
	cols := lay.Columns
	if cols <= 0 || cols > n {
		cols = n
	}
	return cols
}

// PieceColumns returns pieces per row for n pieces, as many as the width allows
func (lay Layout) PieceColumns(n int) int {
	cols := int((lay.Width - lay.Gap) / (lay.PieceSize + lay.Gap))
	return max(1, min(cols, n))
}

// SlotTop is the y of the first slot row
func (lay Layout) SlotTop() float64 {
	return lay.Gap * 2
}

// TrayY is the y of the first piece row
func (lay Layout) TrayY() float64 {
	return lay.Height * TrayTop
}

// gridExtent returns the width of the widest row and the total height of
// n cells of size laid in rows of cols
func (lay Layout) gridExtent(n, cols int, size float64) (w, h float64) {
	if n <= 0 {
		return 0, 0
	}
	rows := (n + cols - 1) / cols
	w = float64(cols)*size + float64(cols-1)*lay.Gap
	h = float64(rows)*size + float64(rows-1)*lay.Gap
	return w, h
}

// overflow describes why slots and pieces do not fit, "" when they do
// Slots must end above the tray and the tray must end inside the height
func (lay Layout) overflow(slots, pieces int) string {
	sw, sh := lay.gridExtent(slots, lay.SlotColumns(slots), lay.SlotSize)
	if sw > lay.Width {
		return fmt.Sprintf("slot row width %.0f exceeds %.0f", sw, lay.Width)
	}
	if bottom := lay.SlotTop() + sh; bottom >= lay.TrayY() {
		return fmt.Sprintf("slots end at y=%.0f, tray starts at y=%.0f", bottom, lay.TrayY())
	}

	pw, ph := lay.gridExtent(pieces, lay.PieceColumns(pieces), lay.PieceSize)
	if pw > lay.Width {
		return fmt.Sprintf("piece row width %.0f exceeds %.0f", pw, lay.Width)
	}
	if bottom := lay.TrayY() + ph; bottom > lay.Height {
		return fmt.Sprintf("tray ends at y=%.0f, height is %.0f", bottom, lay.Height)
	}
	return ""
}

// Fits reports whether slots and pieces can be laid out without overlap
func (lay Layout) Fits(slots, pieces int) bool {
	return lay.overflow(slots, pieces) == ""
}
