package level

import (
	"fmt"
	"strings"
)

// Shape is the closed set of piece skins
// Renderers index a table by Shape; adding a value requires a table entry
type Shape uint8

const (
	ShapeTile    Shape = iota // Letter tile
	ShapeBubble               // Round digit bubble
	ShapeStar                 // Star sticker
	ShapeDiamond              // Diamond gem
	ShapeStripes              // Striped pattern swatch
	ShapeCount
)

var shapeNames = [ShapeCount]string{
	ShapeTile:    "tile",
	ShapeBubble:  "bubble",
	ShapeStar:    "star",
	ShapeDiamond: "diamond",
	ShapeStripes: "stripes",
}

// String returns the content-pack name
func (s Shape) String() string {
	if s < ShapeCount {
		return shapeNames[s]
	}
	return "unknown"
}

// MarshalText serializes shapes by name
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a shape name
func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseShape resolves a content-pack name, empty defaults to tile
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ShapeTile, nil
	}
	for i, s := range shapeNames {
		if s == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrShape, name)
}

// Difficulty tags a level; content cycles raise it
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = []string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return "unknown"
}

// MarshalText serializes difficulty by name
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Harder returns the next difficulty, saturating at hard
func (d Difficulty) Harder() Difficulty {
	if d >= DifficultyHard {
		return DifficultyHard
	}
	return d + 1
}

// ParseDifficulty resolves a content-pack name, empty defaults to easy
func ParseDifficulty(name string) (Difficulty, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return DifficultyEasy, nil
	}
	for i, s := range difficultyNames {
		if s == n {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDifficulty, name)
}
