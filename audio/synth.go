package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/drag-match/parameter"
)

// Sequences are the named melodies available to PlayNamed
var Sequences = map[string][]string{
	"start":   {"C5", "E5", "G5"},
	"levelup": {"C5", "E5", "G5", "C6"},
	"victory": {"G5", "C6", "E6", "G6", "E6", "G6"},
}

// scheduleFunc runs fn after d and returns a canceller reporting whether fn was prevented
type scheduleFunc func(d time.Duration, fn func()) func() bool

func afterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Synth renders tones into an Output
// A nil output makes every call a no-op; callbacks never touch game state
type Synth struct {
	out      Output
	rate     beep.SampleRate
	volume   float64
	muted    atomic.Bool
	schedule scheduleFunc
}

// NewSynth creates a synth writing to out, which may be nil
func NewSynth(out Output, cfg Config) *Synth {
	cfg = cfg.normalize()
	s := &Synth{
		out:      out,
		rate:     beep.SampleRate(cfg.SampleRate),
		volume:   cfg.Volume,
		schedule: afterFunc,
	}
	s.muted.Store(!cfg.Enabled)
	return s
}

// Enabled reports whether tones reach an output
func (s *Synth) Enabled() bool {
	return s != nil && s.out != nil && !s.muted.Load()
}

// ToggleMute flips mute and returns the new state
func (s *Synth) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports the mute state
func (s *Synth) IsMuted() bool {
	return s.muted.Load()
}

// PlayTone plays one enveloped tone; returns false when nothing was queued
func (s *Synth) PlayTone(freq float64, dur time.Duration, wave WaveType) bool {
	if !s.Enabled() || dur <= 0 {
		return false
	}
	tone, err := NewTone(freq, dur, wave, s.volume, parameter.ToneStartGain, parameter.ToneEndGain, s.rate)
	if err != nil {
		return false
	}
	return s.out.Play(tone) == nil
}

// Cue plays a gameplay feedback tone
func (s *Synth) Cue(c CueType) bool {
	switch c {
	case CueSuccess:
		return s.PlayTone(parameter.SuccessToneFreq, parameter.SuccessToneDuration, WaveSine)
	case CueError:
		return s.PlayTone(parameter.ErrorToneFreq, parameter.ErrorToneDuration, WaveSaw)
	default:
		return false
	}
}

// PlaySequence schedules note i at i*tempo and returns immediately
// Unknown note names keep their beat but are silent
func (s *Synth) PlaySequence(notes []string, tempo time.Duration) *Playback {
	pb := &Playback{}
	if !s.Enabled() {
		return pb
	}
	if tempo <= 0 {
		tempo = parameter.DefaultSequenceTempo
	}

	for i, name := range notes {
		freq, err := NoteNameFreq(name)
		if err != nil {
			continue
		}
		pb.add(s.schedule(time.Duration(i)*tempo, func() {
			s.PlayTone(freq, parameter.SequenceNoteDuration, WaveTriangle)
		}))
	}
	return pb
}

// PlayNamed plays one of Sequences at the default tempo
func (s *Synth) PlayNamed(name string) (*Playback, error) {
	notes, ok := Sequences[name]
	if !ok {
		return &Playback{}, fmt.Errorf("%w: %q", ErrUnknownSeq, name)
	}
	return s.PlaySequence(notes, parameter.DefaultSequenceTempo), nil
}

// Playback is a handle on a scheduled sequence
type Playback struct {
	mu      sync.Mutex
	cancels []func() bool
}

func (p *Playback) add(cancel func() bool) {
	p.mu.Lock()
	p.cancels = append(p.cancels, cancel)
	p.mu.Unlock()
}

// Len returns the number of notes scheduled
func (p *Playback) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cancels)
}

// Stop cancels notes that have not started and returns how many were cancelled
// Notes already sounding play out
func (p *Playback) Stop() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, cancel := range p.cancels {
		if cancel() {
			n++
		}
	}
	p.cancels = nil
	return n
}
