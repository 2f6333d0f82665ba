package parameter

import "time"

// Drag & match feedback
const (
	// GlowRadius is the pointer distance at which slot glow reaches zero
	GlowRadius = 120.0
	// GlowDecayPerSecond fades residual glow while nothing is held
	GlowDecayPerSecond = 3.0
	// DragScale is the visual emphasis applied to a held piece
	DragScale = 1.15
)

// Idle animation
const (
	// BobAmplitude is the idle bob height in logical units
	BobAmplitude = 4.0
	// BobSpeed is the idle bob angular speed in radians per second
	BobSpeed = 2.5
)

// Level flow
const (
	// CelebrationDelay is the Completed display time before the next level
	CelebrationDelay = 2 * time.Second
	// BaseLevelScore is the award for clearing level 0, later levels scale linearly
	BaseLevelScore = 100
	// MaxDistractors bounds the distractor count of any level
	MaxDistractors = 8
	// MaxStartLevel is the highest index a run may start at
	MaxStartLevel = 9999
)

// Layout defaults
const (
	DefaultSlotSize  = 72.0
	DefaultPieceSize = 64.0
	DefaultGap       = 16.0
)
