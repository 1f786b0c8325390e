// Package pitch maps scientific pitch names (C4, F#2, Bb-1) to MIDI note
// numbers and back. A Pitch is only its height: two spellings of the same
// height (C#4, Db4) are the same value.
package pitch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pitch is a MIDI note number in the range [Min, Max].
type Pitch int

const (
	Min Pitch = 0
	Max Pitch = 127
)

var (
	// ErrInvalidName is returned when a name does not follow <letter><accidentals><octave>.
	ErrInvalidName = errors.New("invalid pitch name")
	// ErrOutOfRange is returned when a name or number falls outside the MIDI range.
	ErrOutOfRange = errors.New("pitch out of MIDI range")
)

// nameRegex accepts one letter, up to two sharps or flats and a signed octave.
var nameRegex = regexp.MustCompile(`^([A-Ga-g])(#{1,2}|b{1,2})?(-?\d+)$`)

var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Parse converts a pitch name into its MIDI number. C4 is 60.
func Parse(name string) (Pitch, error) {
	name = strings.TrimSpace(name)
	matches := nameRegex.FindStringSubmatch(name)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	offset := letterOffsets[strings.ToUpper(matches[1])[0]]
	for _, acc := range matches[2] {
		if acc == '#' {
			offset++
		} else {
			offset--
		}
	}

	octave, err := strconv.Atoi(matches[3])
	if err != nil {
		// Unreachable due to regex `-?\d+`
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return New((octave+1)*12 + offset)
}

// MustParse is Parse for package-level tables and tests.
func MustParse(name string) Pitch {
	p, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return p
}

// New validates a raw MIDI number.
func New(n int) (Pitch, error) {
	if n < int(Min) || n > int(Max) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return Pitch(n), nil
}

// Midi returns the note number.
func (p Pitch) Midi() int { return int(p) }

// PitchClass returns the height modulo the octave, 0 for C.
func (p Pitch) PitchClass() int { return int(p) % 12 }

// Octave returns the scientific octave number, -1 for MIDI 0..11.
func (p Pitch) Octave() int { return int(p)/12 - 1 }

// Transpose shifts the pitch by the given number of semitones.
func (p Pitch) Transpose(semitones int) (Pitch, error) {
	return New(int(p) + semitones)
}

// String spells the pitch with sharps.
func (p Pitch) String() string {
	return sharpNames[p.PitchClass()] + strconv.Itoa(p.Octave())
}

// ParseClass converts a bare pitch-class name such as "C", "F#" or "Bb" into
// 0..11.
func ParseClass(name string) (int, error) {
	p, err := Parse(strings.TrimSpace(name) + "4")
	if err != nil {
		return 0, fmt.Errorf("%w: pitch class %q", ErrInvalidName, name)
	}
	return ((p.Midi() % 12) + 12) % 12, nil
}
