package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Tone envelope: exponential ramp from start gain down to near silence
const (
	ToneStartGain = 0.3
	ToneEndGain   = 0.01
)

// Success cue (C6 bell)
const (
	SuccessToneFreq     = 1046.50
	SuccessToneDuration = 250 * time.Millisecond
)

// Error cue (low buzz)
const (
	ErrorToneFreq     = 150.0
	ErrorToneDuration = 200 * time.Millisecond
)

// Sequences
const (
	// SequenceNoteDuration is the per-note length inside a sequence
	SequenceNoteDuration = 180 * time.Millisecond
	// DefaultSequenceTempo is the interval between sequence notes
	DefaultSequenceTempo = 150 * time.Millisecond
)
