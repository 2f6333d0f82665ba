package audio

import (
	"errors"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

var waveNames = []string{"sine", "square", "saw", "triangle"}

func (w WaveType) String() string {
	if w >= 0 && int(w) < len(waveNames) {
		return waveNames[w]
	}
	return "unknown"
}

// CueType identifies a gameplay feedback tone
type CueType int

const (
	CueSuccess CueType = iota // Correct placement
	CueError                  // Wrong key at a slot
)

func (c CueType) String() string {
	switch c {
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	default:
		return "unknown"
	}
}

// Output receives finished streamers; concurrent Play calls mix additively
type Output interface {
	Play(s beep.Streamer) error
}

// Sentinel errors
var (
	ErrUnknownNote   = errors.New("unknown note name")
	ErrFrequency     = errors.New("frequency out of range")
	ErrUnknownSeq    = errors.New("unknown sequence")
	ErrNotRunning    = errors.New("audio output not running")
	ErrBadSampleRate = errors.New("sample rate must be positive")
)
