// Package level describes one puzzle instance: the keys to place, the
// geometry to place them in, and how it looks.
package level

import (
	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/parameter"
)

// PuzzleLevel is immutable configuration consumed once at level start
type PuzzleLevel struct {
	Name        string
	Keys        []string // Required multiset, one slot per entry, in slot order
	Layout      Layout
	Difficulty  Difficulty
	Palette     Palette
	Shape       Shape
	Distractors DistractorPolicy
}

// Layout is the level geometry in logical coordinates
type Layout struct {
	Width, Height float64
	Columns       int // Slots per row, 0 = all slots in one row
	SlotSize      float64
	PieceSize     float64
	Gap           float64
}

// DistractorPolicy adds pieces whose keys match no slot
type DistractorPolicy struct {
	Count int
	Pool  []string // Candidate keys; entries equal to a target key are ignored
}

// Palette colors a level
type Palette struct {
	Background core.RGB
	Piece      core.RGB
	Text       core.RGB
	Slot       core.RGB
	Glow       core.RGB
	Success    core.RGB
	Error      core.RGB
	Particles  []core.RGB
}

// DefaultLayout fills the default logical area
func DefaultLayout() Layout {
	return Layout{
		Width:     parameter.DefaultWorldWidth,
		Height:    parameter.DefaultWorldHeight,
		SlotSize:  parameter.DefaultSlotSize,
		PieceSize: parameter.DefaultPieceSize,
		Gap:       parameter.DefaultGap,
	}
}

// DefaultPalette is used when a level names no palette
func DefaultPalette() Palette {
	return Palette{
		Background: core.MustHex("#1b1e2b"),
		Piece:      core.MustHex("#f4a261"),
		Text:       core.MustHex("#1b1e2b"),
		Slot:       core.MustHex("#3a3f58"),
		Glow:       core.MustHex("#ffe066"),
		Success:    core.MustHex("#2a9d8f"),
		Error:      core.MustHex("#e63946"),
		Particles: []core.RGB{
			core.MustHex("#ffe066"),
			core.MustHex("#2a9d8f"),
			core.MustHex("#f4a261"),
			core.MustHex("#e76f51"),
		},
	}
}

// TargetSet returns the distinct expected keys
func (l *PuzzleLevel) TargetSet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.Keys))
	for _, k := range l.Keys {
		set[k] = struct{}{}
	}
	return set
}

// DistractorCandidates returns pool keys outside the target set, deduplicated, pool order
func (l *PuzzleLevel) DistractorCandidates() []string {
	targets := l.TargetSet()
	seen := make(map[string]struct{}, len(l.Distractors.Pool))
	out := make([]string, 0, len(l.Distractors.Pool))
	for _, k := range l.Distractors.Pool {
		if k == "" {
			continue
		}
		if _, hit := targets[k]; hit {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
