package audio

import (
	"errors"
	"math"
	"testing"
)

func TestParseNote(t *testing.T) {
	cases := map[string]int{
		"A4":  69,
		"C4":  60,
		"C5":  72,
		"c5":  72,
		"F#4": 66,
		"Bb3": 58,
		"C-1": 0,
		"G9":  127,
	}
	for name, want := range cases {
		got, err := ParseNote(name)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %d, got %d", name, want, got)
		}
	}
}

func TestParseNoteRejects(t *testing.T) {
	for _, name := range []string{"", "H4", "C", "Cx", "G#9", "A10"} {
		if _, err := ParseNote(name); !errors.Is(err, ErrUnknownNote) {
			t.Errorf("%q: expected ErrUnknownNote, got %v", name, err)
		}
	}
}

func TestNoteNameFreq(t *testing.T) {
	freq, err := NoteNameFreq("A4")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(freq-440) > 1e-6 {
		t.Errorf("Expected 440Hz, got %f", freq)
	}
	c6, _ := NoteNameFreq("C6")
	if math.Abs(c6-1046.50) > 0.01 {
		t.Errorf("Expected C6 near 1046.50Hz, got %f", c6)
	}
}
