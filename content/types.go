package content

import "github.com/lixenwraith/drag-match/level"

// Pack is a named, validated list of levels
type Pack struct {
	Name   string
	Source string // File path, or "embedded"
	Levels []level.PuzzleLevel
}

// packFile mirrors the TOML layout of a level pack
type packFile struct {
	Name     string                  `mapstructure:"name"`
	Palettes map[string]paletteEntry `mapstructure:"palettes"`
	Levels   []levelEntry            `mapstructure:"levels"`
}

type paletteEntry struct {
	Background string   `mapstructure:"background"`
	Piece      string   `mapstructure:"piece"`
	Text       string   `mapstructure:"text"`
	Slot       string   `mapstructure:"slot"`
	Glow       string   `mapstructure:"glow"`
	Success    string   `mapstructure:"success"`
	Error      string   `mapstructure:"error"`
	Particles  []string `mapstructure:"particles"`
}

type levelEntry struct {
	Name        string   `mapstructure:"name"`
	Keys        []string `mapstructure:"keys"`
	Shape       string   `mapstructure:"shape"`
	Difficulty  string   `mapstructure:"difficulty"`
	Palette     string   `mapstructure:"palette"`
	Columns     int      `mapstructure:"columns"`
	Distractors int      `mapstructure:"distractors"`
	Pool        []string `mapstructure:"pool"`
	Width       float64  `mapstructure:"width"`
	Height      float64  `mapstructure:"height"`
	SlotSize    float64  `mapstructure:"slot_size"`
	PieceSize   float64  `mapstructure:"piece_size"`
	Gap         float64  `mapstructure:"gap"`
}
