package audio

import (
	"fmt"
	"strconv"
	"strings"
)

// NoteFrequencies contains precomputed frequencies for MIDI notes 0-127
// A4 (note 69) = 440Hz, equal temperament
var NoteFrequencies [128]float64

func init() {
	for i := range NoteFrequencies {
		NoteFrequencies[i] = 440.0 * pow2((float64(i)-69.0)/12.0)
	}
}

// pow2 computes 2^x using Taylor series
func pow2(x float64) float64 {
	ln2 := 0.693147180559945
	y := x * ln2
	sum := 1.0
	term := 1.0
	for i := 1; i < 20; i++ {
		term *= y / float64(i)
		sum += term
	}
	return sum
}

// NoteFreq returns frequency in Hz for MIDI note number
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= 128 {
		return 0
	}
	return NoteFrequencies[midi]
}

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseNote converts scientific pitch notation ("C5", "F#4", "Bb3") to a MIDI number
func ParseNote(name string) (int, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	semi, ok := semitones[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		semi++
		rest = rest[1:]
	case 'b':
		semi--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	midi := (octave+1)*12 + semi
	if midi < 0 || midi >= len(NoteFrequencies) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}
	return midi, nil
}

// NoteNameFreq resolves a note name directly to Hz
func NoteNameFreq(name string) (float64, error) {
	midi, err := ParseNote(name)
	if err != nil {
		return 0, err
	}
	return NoteFreq(midi), nil
}
