package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/drag-match/parameter"
)

// SpeakerOutput plays through the system speaker via one long-lived mixer
type SpeakerOutput struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerOutput creates an uninitialized speaker output
func NewSpeakerOutput(rate beep.SampleRate) *SpeakerOutput {
	return &SpeakerOutput{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker device; fails without an audio device
func (so *SpeakerOutput) Initialize() error {
	so.mu.Lock()
	defer so.mu.Unlock()

	if so.initialized {
		return nil
	}
	if so.rate <= 0 {
		return fmt.Errorf("%w: %d", ErrBadSampleRate, so.rate)
	}

	if err := speaker.Init(so.rate, so.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(so.mixer)
	so.initialized = true
	return nil
}

// Play adds s to the speaker mixer, ErrNotRunning until initialized
func (so *SpeakerOutput) Play(s beep.Streamer) error {
	so.mu.Lock()
	defer so.mu.Unlock()

	if !so.initialized {
		return ErrNotRunning
	}
	speaker.Lock()
	so.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close drops every playing streamer
func (so *SpeakerOutput) Close() {
	so.mu.Lock()
	defer so.mu.Unlock()

	if !so.initialized {
		return
	}
	speaker.Lock()
	so.mixer.Clear()
	speaker.Unlock()
	so.initialized = false
}

// MixerOutput collects streamers into an in-memory mixer
// Used for offline rendering and tests; Stream pulls mixed samples
type MixerOutput struct {
	mu     sync.Mutex
	mixer  beep.Mixer
	played int
}

// NewMixerOutput creates an empty mixer output
func NewMixerOutput() *MixerOutput {
	return &MixerOutput{}
}

// Play adds s to the mix
func (mo *MixerOutput) Play(s beep.Streamer) error {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	mo.mixer.Add(s)
	mo.played++
	return nil
}

// Stream implements beep.Streamer, silence when empty
func (mo *MixerOutput) Stream(samples [][2]float64) (n int, ok bool) {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	return mo.mixer.Stream(samples)
}

func (mo *MixerOutput) Err() error { return nil }

// Active returns the number of unfinished streamers
func (mo *MixerOutput) Active() int {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	return mo.mixer.Len()
}

// Played returns the number of streamers ever added
func (mo *MixerOutput) Played() int {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	return mo.played
}
