package audio

import (
	"github.com/lixenwraith/drag-match/parameter"
	"github.com/lixenwraith/drag-match/vmath"
)

// Config holds synth output settings
type Config struct {
	Enabled    bool
	Volume     float64 // Master volume in [0, 1]
	SampleRate int
}

// DefaultConfig returns enabled audio at full master volume
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     1.0,
		SampleRate: parameter.AudioSampleRate,
	}
}

// normalize clamps volume and fills a missing sample rate
func (c Config) normalize() Config {
	c.Volume = vmath.Clamp(c.Volume, 0, 1)
	if c.SampleRate <= 0 {
		c.SampleRate = parameter.AudioSampleRate
	}
	return c
}
