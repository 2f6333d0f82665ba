package level

import (
	"fmt"

	"github.com/lixenwraith/drag-match/parameter"
)

// Validate rejects levels that cannot produce a playable puzzle
func (l *PuzzleLevel) Validate() error {
	if len(l.Keys) == 0 {
		return configErr(l, "keys", ErrNoKeys, "")
	}
	for i, k := range l.Keys {
		if k == "" {
			return configErr(l, "keys", ErrNoKeys, fmt.Sprintf("key %d is empty", i))
		}
	}

	d := l.Distractors
	if d.Count < 0 {
		return configErr(l, "distractors", ErrDistractorPool, "negative count")
	}
	if d.Count > parameter.MaxDistractors {
		return configErr(l, "distractors", ErrDistractorPool,
			fmt.Sprintf("count %d exceeds max %d", d.Count, parameter.MaxDistractors))
	}
	if d.Count > 0 {
		if avail := len(l.DistractorCandidates()); avail < d.Count {
			return configErr(l, "distractors", ErrDistractorPool,
				fmt.Sprintf("need %d keys outside the target set, pool has %d", d.Count, avail))
		}
	}

	lay := l.Layout
	if lay.Width <= 0 || lay.Height <= 0 {
		return configErr(l, "layout", ErrLayout, "width and height must be positive")
	}
	if lay.SlotSize <= 0 || lay.PieceSize <= 0 || lay.Gap < 0 {
		return configErr(l, "layout", ErrLayout, "sizes must be positive")
	}
	if lay.Columns < 0 {
		return configErr(l, "layout", ErrLayout, "negative columns")
	}
	if reason := lay.overflow(len(l.Keys), len(l.Keys)+d.Count); reason != "" {
		return configErr(l, "layout", ErrLayout, reason)
	}
	if l.Shape >= ShapeCount {
		return configErr(l, "shape", ErrShape, "")
	}
	return nil
}
