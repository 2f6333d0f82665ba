package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestMixerOutputSilentWhenEmpty verifies an empty mix streams zeros
func TestMixerOutputSilentWhenEmpty(t *testing.T) {
	out := NewMixerOutput()
	buf := make([][2]float64, 64)
	for i := range buf {
		buf[i] = [2]float64{1, 1}
	}
	n, ok := out.Stream(buf)
	if n != 64 || !ok {
		t.Fatalf("Expected 64 ok, got %d %v", n, ok)
	}
	for i, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Sample %d not silent", i)
		}
	}
}

// TestMixerOutputDropsFinished verifies finished tones leave the mix
func TestMixerOutputDropsFinished(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone, err := NewTone(440, 10*time.Millisecond, WaveSquare, 1, 0.3, 0.01, rate)
	if err != nil {
		t.Fatal(err)
	}
	out := NewMixerOutput()
	if err := out.Play(tone); err != nil {
		t.Fatal(err)
	}
	if out.Active() != 1 {
		t.Fatalf("Expected 1 active, got %d", out.Active())
	}

	buf := make([][2]float64, rate.N(200*time.Millisecond))
	out.Stream(buf)
	if out.Active() != 0 {
		t.Errorf("Expected finished tone removed, got %d active", out.Active())
	}
	if out.Played() != 1 {
		t.Errorf("Expected played count 1, got %d", out.Played())
	}
}

// TestSpeakerOutputGracefulDegradation verifies Play before Initialize reports not running
func TestSpeakerOutputGracefulDegradation(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Speaker output panicked without initialization: %v", r)
		}
	}()
	so := NewSpeakerOutput(beep.SampleRate(44100))
	if err := so.Play(beep.Silence(10)); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Expected ErrNotRunning, got %v", err)
	}
	so.Close()

	// A synth over a closed speaker queues nothing
	s := NewSynth(so, DefaultConfig())
	if s.Cue(CueSuccess) {
		t.Error("Expected cue to fail before Initialize")
	}
}

// TestSpeakerOutputRejectsSampleRate verifies a bad rate fails before the device is opened
func TestSpeakerOutputRejectsSampleRate(t *testing.T) {
	so := NewSpeakerOutput(0)
	if err := so.Initialize(); !errors.Is(err, ErrBadSampleRate) {
		t.Errorf("Expected ErrBadSampleRate, got %v", err)
	}
	if _, err := NewOscillator(440, WaveSine, 0); !errors.Is(err, ErrBadSampleRate) {
		t.Errorf("Expected ErrBadSampleRate from oscillator, got %v", err)
	}
}
