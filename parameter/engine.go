package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation/render tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single tick's elapsed time
	// A host losing focus can deliver one very large delta on return
	MaxFrameDelta = 100 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Default logical coordinate space
const (
	DefaultWorldWidth  = 800.0
	DefaultWorldHeight = 600.0
)
