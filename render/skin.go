package render

import "github.com/lixenwraith/drag-match/level"

// skin is the terminal look of one piece shape
type skin struct {
	corners [4]rune // top-left, top-right, bottom-left, bottom-right
	hEdge   rune
	vEdge   rune
	fill    rune
}

// skins is indexed by level.Shape; the array length makes a missing entry a compile error
var skins = [level.ShapeCount]skin{
	level.ShapeTile:    {corners: [4]rune{'┌', '┐', '└', '┘'}, hEdge: '─', vEdge: '│', fill: ' '},
	level.ShapeBubble:  {corners: [4]rune{'╭', '╮', '╰', '╯'}, hEdge: '─', vEdge: '│', fill: ' '},
	level.ShapeStar:    {corners: [4]rune{'*', '*', '*', '*'}, hEdge: '·', vEdge: '·', fill: ' '},
	level.ShapeDiamond: {corners: [4]rune{'◆', '◆', '◆', '◆'}, hEdge: '─', vEdge: '│', fill: '░'},
	level.ShapeStripes: {corners: [4]rune{'▛', '▜', '▙', '▟'}, hEdge: '▀', vEdge: '▌', fill: '▤'},
}

// skinFor returns the skin for s, falling back to tile on out-of-range values
func skinFor(s level.Shape) skin {
	if s < level.ShapeCount {
		return skins[s]
	}
	return skins[level.ShapeTile]
}
