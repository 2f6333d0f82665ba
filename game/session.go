package game

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/drag-match/entity"
	"github.com/lixenwraith/drag-match/level"
	"github.com/lixenwraith/drag-match/particle"
	"github.com/lixenwraith/drag-match/vmath"
)

// Session is the state of one level attempt
// Replaced wholesale on advance with score carried forward, discarded on exit
type Session struct {
	ID            ulid.ULID
	Level         int // Zero-based catalog index
	Score         int // Score at session start plus any award for this level
	Config        level.PuzzleLevel
	Store         *entity.Store
	Particles     *particle.System
	AnimationTime time.Duration

	completed bool // One-shot completion guard
}

// newSession generates the store for lvl; the ULID draws entropy from rng
func newSession(lvl level.PuzzleLevel, index, score int, rng *vmath.FastRand, now time.Time) (*Session, error) {
	store, err := entity.NewStore(lvl, rng)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        ulid.MustNew(ulid.Timestamp(now), rng),
		Level:     index,
		Score:     score,
		Config:    lvl,
		Store:     store,
		Particles: particle.NewSystem(particle.DefaultConfig(), rng),
	}, nil
}

// Completed reports whether completion has fired for this session
func (s *Session) Completed() bool {
	return s.completed
}

// ScoreForLevel is the award for clearing zero-based level index
func ScoreForLevel(index int) int {
	return baseLevelScore * (index + 1)
}
