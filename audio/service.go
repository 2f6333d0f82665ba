package audio

import (
	"log"

	"github.com/gopxl/beep"
)

// AudioService owns the speaker and the synth
// Handles graceful degradation when no audio device is available
type AudioService struct {
	synth    *Synth
	speaker  *SpeakerOutput
	disabled bool
}

// NewService opens the speaker when enabled and degrades to a silent synth on failure
// Never returns an error: gameplay must not depend on audio
func NewService(cfg Config) *AudioService {
	cfg = cfg.normalize()
	if !cfg.Enabled {
		return &AudioService{synth: NewSynth(nil, cfg), disabled: true}
	}

	so := NewSpeakerOutput(beep.SampleRate(cfg.SampleRate))
	if err := so.Initialize(); err != nil {
		log.Printf("audio: speaker unavailable, running silent: %v", err)
		return &AudioService{synth: NewSynth(nil, cfg), disabled: true}
	}

	return &AudioService{
		synth:   NewSynth(so, cfg),
		speaker: so,
	}
}

// Synth returns the synth, never nil
func (s *AudioService) Synth() *Synth {
	return s.synth
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled
}

// Stop silences the speaker
func (s *AudioService) Stop() {
	if s.speaker != nil {
		s.speaker.Close()
	}
}
