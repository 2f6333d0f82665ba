package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
)

//go:embed packs/default.toml
var defaultPack []byte

var (
	ErrEmptyPack      = errors.New("pack has no levels")
	ErrUnknownPalette = errors.New("unknown palette")
)

// Parse reads a TOML level pack and validates every level
func Parse(r io.Reader, source string) (*Pack, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read pack %s: %w", source, err)
	}
	return decode(v, source)
}

// LoadFile reads a pack from disk
func LoadFile(path string) (*Pack, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read pack %s: %w", path, err)
	}
	return decode(v, path)
}

var (
	defaultOnce sync.Once
	defaultVal  *Pack
)

// Default returns the embedded starter pack
func Default() *Pack {
	defaultOnce.Do(func() {
		p, err := Parse(bytes.NewReader(defaultPack), "embedded")
		if err != nil {
			panic(fmt.Sprintf("embedded pack invalid: %v", err))
		}
		defaultVal = p
	})
	return defaultVal
}

func decode(v *viper.Viper, source string) (*Pack, error) {
	var pf packFile
	if err := v.Unmarshal(&pf); err != nil {
		return nil, fmt.Errorf("decode pack %s: %w", source, err)
	}
	if len(pf.Levels) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyPack)
	}

	palettes := make(map[string]level.Palette, len(pf.Palettes))
	for name, entry := range pf.Palettes {
		pal, err := entry.palette()
		if err != nil {
			return nil, fmt.Errorf("%s: palette %s: %w", source, name, err)
		}
		palettes[strings.ToLower(name)] = pal
	}

	pack := &Pack{Name: pf.Name, Source: source}
	if pack.Name == "" {
		pack.Name = source
	}
	for i, entry := range pf.Levels {
		lvl, err := entry.level(palettes)
		if err != nil {
			return nil, fmt.Errorf("%s: level %d: %w", source, i, err)
		}
		if err := lvl.Validate(); err != nil {
			return nil, fmt.Errorf("%s: level %d: %w", source, i, err)
		}
		pack.Levels = append(pack.Levels, lvl)
	}
	return pack, nil
}

func (s levelEntry) level(palettes map[string]level.Palette) (level.PuzzleLevel, error) {
	shape, err := level.ParseShape(s.Shape)
	if err != nil {
		return level.PuzzleLevel{}, err
	}
	diff, err := level.ParseDifficulty(s.Difficulty)
	if err != nil {
		return level.PuzzleLevel{}, err
	}

	pal := level.DefaultPalette()
	if s.Palette != "" {
		p, ok := palettes[strings.ToLower(s.Palette)]
		if !ok {
			return level.PuzzleLevel{}, fmt.Errorf("%w: %q", ErrUnknownPalette, s.Palette)
		}
		pal = p
	}

	lay := level.DefaultLayout()
	lay.Columns = s.Columns
	if s.Width > 0 {
		lay.Width = s.Width
	}
	if s.Height > 0 {
		lay.Height = s.Height
	}
	if s.SlotSize > 0 {
		lay.SlotSize = s.SlotSize
	}
	if s.PieceSize > 0 {
		lay.PieceSize = s.PieceSize
	}
	if s.Gap > 0 {
		lay.Gap = s.Gap
	}

	keys := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		keys[i] = strings.TrimSpace(k)
	}

	return level.PuzzleLevel{
		Name:        s.Name,
		Keys:        keys,
		Layout:      lay,
		Difficulty:  diff,
		Palette:     pal,
		Shape:       shape,
		Distractors: level.DistractorPolicy{Count: s.Distractors, Pool: s.Pool},
	}, nil
}

// palette fills unset colors from the default palette
func (s paletteEntry) palette() (level.Palette, error) {
	pal := level.DefaultPalette()
	fields := []struct {
		hex string
		dst *core.RGB
	}{
		{s.Background, &pal.Background},
		{s.Piece, &pal.Piece},
		{s.Text, &pal.Text},
		{s.Slot, &pal.Slot},
		{s.Glow, &pal.Glow},
		{s.Success, &pal.Success},
		{s.Error, &pal.Error},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := core.ParseHex(f.hex)
		if err != nil {
			return pal, err
		}
		*f.dst = c
	}

	if len(s.Particles) > 0 {
		pal.Particles = make([]core.RGB, 0, len(s.Particles))
		for _, hex := range s.Particles {
			c, err := core.ParseHex(hex)
			if err != nil {
				return pal, err
			}
			pal.Particles = append(pal.Particles, c)
		}
	}
	return pal, nil
}
