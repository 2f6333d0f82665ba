package content

import (
	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/parameter"
)

// Catalog is the endless level sequence
// Index n maps to entry n mod len; each completed pass over the list
// raises difficulty and adds a distractor where the pool allows
type Catalog struct {
	levels []level.PuzzleLevel
}

// NewCatalog builds a catalog from validated levels
func NewCatalog(levels ...level.PuzzleLevel) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, ErrEmptyPack
	}
	for i := range levels {
		if err := levels[i].Validate(); err != nil {
			return nil, err
		}
	}
	return &Catalog{levels: levels}, nil
}

// Len returns the number of distinct levels
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Cycle returns how many full passes precede index
func (c *Catalog) Cycle(index int) int {
	if index < 0 {
		return 0
	}
	return index / len(c.levels)
}

// Level returns the configuration for a zero-based level index
// The result is a copy; callers may not mutate catalog state through it
func (c *Catalog) Level(index int) level.PuzzleLevel {
	if index < 0 {
		index = 0
	}
	base := c.levels[index%len(c.levels)]
	cycle := c.Cycle(index)

	lvl := base
	lvl.Keys = append([]string(nil), base.Keys...)
	lvl.Distractors.Pool = append([]string(nil), base.Distractors.Pool...)
	lvl.Palette.Particles = append(lvl.Palette.Particles[:0:0], base.Palette.Particles...)

	// Difficulty and distractor ramps saturate after a few cycles
	for range min(cycle, int(level.DifficultyHard)) {
		lvl.Difficulty = lvl.Difficulty.Harder()
	}

	// Validated base counts never exceed limit and always fit the tray
	limit := min(len(lvl.DistractorCandidates()), parameter.MaxDistractors)
	count := min(base.Distractors.Count+min(cycle, parameter.MaxDistractors), limit)
	for count > base.Distractors.Count && !lvl.Layout.Fits(len(lvl.Keys), len(lvl.Keys)+count) {
		count--
	}
	lvl.Distractors.Count = count
	return lvl
}
