package parameter

import "time"

// Particle feedback
const (
	// ParticleMinSpeed is minimum initial speed in logical units per second
	ParticleMinSpeed = 80.0
	// ParticleMaxSpeed is maximum initial speed in logical units per second
	ParticleMaxSpeed = 240.0
	// ParticleGravity is downward acceleration in units per second squared
	ParticleGravity = 420.0
	// ParticleJitter is the max spawn offset from the burst origin on each axis
	ParticleJitter = 6.0
	// ParticleLifetime is the time for life to go from 1 to 0
	ParticleLifetime = 900 * time.Millisecond
	// ParticleMinSize and ParticleMaxSize bound the drawn radius
	ParticleMinSize = 2.0
	ParticleMaxSize = 5.0

	// SuccessBurstCount is particles emitted per correct placement
	SuccessBurstCount = 24
	// CompletionBurstCount is particles emitted per slot on puzzle completion
	CompletionBurstCount = 12
)
