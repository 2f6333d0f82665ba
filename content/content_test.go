package content

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/drag-match/core"
	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/parameter"
)

const samplePack = `
name = "sample"

[palettes.night]
background = "#000000"
glow = "#ffffff"
particles = ["#ff0000", "#00ff00"]

[[levels]]
name = "cat"
keys = ["C", "A", "T"]
shape = "star"
palette = "Night"
distractors = 2
pool = ["B", "R", "C"]

[[levels]]
name = "pair"
keys = ["1", "2"]
difficulty = "hard"
columns = 1
slot_size = 50
`

func TestDefaultPackIsValid(t *testing.T) {
	p := Default()
	require.NotNil(t, p)
	assert.Equal(t, "starter", p.Name)
	require.NotEmpty(t, p.Levels)

	first := p.Levels[0]
	assert.Equal(t, "cat", first.Name)
	assert.Equal(t, []string{"C", "A", "T"}, first.Keys)
	assert.Equal(t, 2, first.Distractors.Count)

	shapes := map[level.Shape]bool{}
	for _, l := range p.Levels {
		require.NoError(t, l.Validate(), l.Name)
		shapes[l.Shape] = true
	}
	assert.Len(t, shapes, int(level.ShapeCount), "starter pack should exercise every shape")
}

func TestParsePack(t *testing.T) {
	p, err := Parse(strings.NewReader(samplePack), "test")
	require.NoError(t, err)
	assert.Equal(t, "sample", p.Name)
	require.Len(t, p.Levels, 2)

	cat := p.Levels[0]
	assert.Equal(t, level.ShapeStar, cat.Shape)
	assert.Equal(t, core.RGB{}, cat.Palette.Background)
	assert.Equal(t, core.RGBWhite, cat.Palette.Glow)
	assert.Equal(t, level.DefaultPalette().Piece, cat.Palette.Piece, "unset colors fall back")
	assert.Equal(t, []core.RGB{{R: 255}, {G: 255}}, cat.Palette.Particles)

	pair := p.Levels[1]
	assert.Equal(t, level.DifficultyHard, pair.Difficulty)
	assert.Equal(t, level.ShapeTile, pair.Shape)
	assert.Equal(t, 1, pair.Layout.Columns)
	assert.Equal(t, 50.0, pair.Layout.SlotSize)
	assert.Equal(t, level.DefaultPalette(), pair.Palette)
}

func TestParseRejectsInvalidLevels(t *testing.T) {
	cases := map[string]struct {
		body string
		want error
	}{
		"no levels": {`name = "x"`, ErrEmptyPack},
		"no keys": {`[[levels]]
name = "empty"
keys = []`, level.ErrNoKeys},
		"pool too small": {`[[levels]]
keys = ["A", "B"]
distractors = 2
pool = ["A", "C"]`, level.ErrDistractorPool},
		"bad shape": {`[[levels]]
keys = ["A"]
shape = "hexagon"`, level.ErrShape},
		"bad palette ref": {`[[levels]]
keys = ["A"]
palette = "missing"`, ErrUnknownPalette},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.body), name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestManagerDiscoversPacks(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.toml":       samplePack,
		"a.toml":       "[[levels]]\nkeys = [\"X\", \"Y\"]\n",
		".hidden.toml": samplePack,
		"notes.txt":    "ignored",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}

	m := NewManager(dir)
	require.NoError(t, m.DiscoverPacks())
	assert.Equal(t, []string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.toml")}, m.Files())

	cat, err := m.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []string{"X", "Y"}, cat.Level(0).Keys)
	assert.Equal(t, "cat", cat.Level(1).Name)
}

func TestManagerFallsBackToEmbedded(t *testing.T) {
	for _, dir := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		m := NewManager(dir)
		require.NoError(t, m.DiscoverPacks())
		cat, err := m.Catalog()
		require.NoError(t, err)
		assert.Equal(t, len(Default().Levels), cat.Len())
	}
}

func TestManagerFailsOnInvalidPack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("[[levels]]\nkeys = []\n"), 0644))

	m := NewManager(dir)
	require.NoError(t, m.DiscoverPacks())
	_, err := m.Catalog()
	assert.ErrorIs(t, err, level.ErrNoKeys)
}

func TestCatalogWrapsAndEscalates(t *testing.T) {
	p, err := Parse(strings.NewReader(samplePack), "test")
	require.NoError(t, err)
	cat, err := NewCatalog(p.Levels...)
	require.NoError(t, err)

	// index 0 and 2 share a base; the second pass is harder
	first, second := cat.Level(0), cat.Level(2)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 0, cat.Cycle(1))
	assert.Equal(t, 1, cat.Cycle(2))
	assert.Equal(t, level.DifficultyEasy, first.Difficulty)
	assert.Equal(t, level.DifficultyMedium, second.Difficulty)

	// cat pool has only B and R outside the target set
	assert.Equal(t, 2, second.Distractors.Count)

	// pair has no pool, so distractors stay at zero
	assert.Equal(t, 0, cat.Level(3).Distractors.Count)
	assert.Equal(t, level.DifficultyHard, cat.Level(3).Difficulty)

	for i := 0; i < 20; i++ {
		require.NoError(t, func() error { l := cat.Level(i); return l.Validate() }())
	}
}

func TestCatalogDistractorsGrowUntilCapped(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	base := level.PuzzleLevel{
		Name:        "grow",
		Keys:        []string{"Z"},
		Layout:      level.DefaultLayout(),
		Distractors: level.DistractorPolicy{Count: 1, Pool: pool},
	}
	cat, err := NewCatalog(base)
	require.NoError(t, err)

	assert.Equal(t, 1, cat.Level(0).Distractors.Count)
	assert.Equal(t, 2, cat.Level(1).Distractors.Count)
	assert.Equal(t, parameter.MaxDistractors, cat.Level(50).Distractors.Count)
}

func TestCatalogHugeIndexIsBounded(t *testing.T) {
	cat, err := NewCatalog(Default().Levels...)
	require.NoError(t, err)

	start := time.Now()
	for _, idx := range []int{math.MaxInt / 2, math.MaxInt, -1} {
		l := cat.Level(idx)
		require.NoError(t, l.Validate(), "index %d", idx)
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	deep := cat.Level(math.MaxInt / 2)
	assert.Equal(t, level.DifficultyHard, deep.Difficulty)
	assert.LessOrEqual(t, deep.Distractors.Count, parameter.MaxDistractors)
}

func TestCatalogDistractorsStopAtTrayCapacity(t *testing.T) {
	lay := level.DefaultLayout()
	lay.Height = 300 // One tray row of nine pieces
	base := level.PuzzleLevel{
		Name:        "short",
		Keys:        []string{"X", "Y", "Z"},
		Layout:      lay,
		Distractors: level.DistractorPolicy{Count: 1, Pool: []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
	}
	cat, err := NewCatalog(base)
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Level(1).Distractors.Count)
	for _, idx := range []int{10, 50, math.MaxInt} {
		l := cat.Level(idx)
		assert.Equal(t, 6, l.Distractors.Count)
		assert.NoError(t, l.Validate())
	}
}

func TestCatalogLevelIsACopy(t *testing.T) {
	cat, err := NewCatalog(Default().Levels...)
	require.NoError(t, err)

	l := cat.Level(0)
	l.Keys[0] = "mutated"
	l.Distractors.Pool[0] = "mutated"
	assert.Equal(t, "C", cat.Level(0).Keys[0])
	assert.NotEqual(t, "mutated", cat.Level(0).Distractors.Pool[0])
}

func TestNewCatalogRejectsEmpty(t *testing.T) {
	_, err := NewCatalog()
	assert.ErrorIs(t, err, ErrEmptyPack)
}
