package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// oscillator generates unbounded raw waves for the non-sine shapes
type oscillator struct {
	freq  float64
	phase float64
	wave  WaveType
	rate  beep.SampleRate
}

// NewOscillator returns an endless streamer at freq
// Sine is delegated to beep's generator; callers bound length with beep.Take
func NewOscillator(freq float64, wave WaveType, rate beep.SampleRate) (beep.Streamer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSampleRate, rate)
	}
	if freq <= 0 || freq >= float64(rate)/2 {
		return nil, fmt.Errorf("%w: %.2f Hz at %d Hz", ErrFrequency, freq, rate)
	}
	if wave == WaveSine {
		return generators.SineTone(rate, freq)
	}
	return &oscillator{freq: freq, wave: wave, rate: rate}, nil
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps gain exponentially from start to end across total samples, then ends the stream
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	start    float64
	ratio    float64 // end/start
}

// NewEnvelope shapes s over duration; the result ends when duration elapses
func NewEnvelope(s beep.Streamer, duration time.Duration, start, end float64, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	ratio := 0.0
	if start > 0 {
		ratio = end / start
	}
	return &envelope{
		streamer: beep.Take(total, s),
		total:    total,
		start:    start,
		ratio:    ratio,
	}
}

// Gain returns the envelope gain at sample pos
func (e *envelope) gain(pos int) float64 {
	if e.total <= 0 || e.start <= 0 {
		return 0
	}
	return e.start * math.Pow(e.ratio, float64(pos)/float64(e.total))
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewTone builds a finite enveloped tone scaled by vol
func NewTone(freq float64, duration time.Duration, wave WaveType, vol, startGain, endGain float64, rate beep.SampleRate) (beep.Streamer, error) {
	osc, err := NewOscillator(freq, wave, rate)
	if err != nil {
		return nil, err
	}
	shaped := NewEnvelope(osc, duration, startGain, endGain, rate)
	return newVolume(shaped, vol), nil
}
