// Package triad defines the chord state explored by the graph: three pitches
// kept in ascending order.
//
// Triad is a comparable value. It stores nothing but the sorted pitch
// heights, so == and map hashing are structural: any ordering of the same
// three heights, in any spelling, produces the same key.
package triad

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/triadgrid/internal/pitch"
)

// Size is the number of voices in a triad.
const Size = 3

// ErrArity is returned when a triad is built from anything but three pitches.
var ErrArity = errors.New("triad requires exactly three pitches")

// Triad is an immutable, canonically ordered chord of three pitches.
type Triad struct {
	pitches [Size]pitch.Pitch
}

// New builds a triad from three pitches in any order.
func New(a, b, c pitch.Pitch) Triad {
	ps := [Size]pitch.Pitch{a, b, c}
	sort.Slice(ps[:], func(i, j int) bool { return ps[i] < ps[j] })
	return Triad{pitches: ps}
}

// FromSlice builds a triad from a slice, failing fast on the wrong arity.
func FromSlice(ps []pitch.Pitch) (Triad, error) {
	if len(ps) != Size {
		return Triad{}, fmt.Errorf("%w: got %d", ErrArity, len(ps))
	}
	return New(ps[0], ps[1], ps[2]), nil
}

// Parse builds a triad from pitch names such as "C2", "E3", "G3".
func Parse(names ...string) (Triad, error) {
	if len(names) != Size {
		return Triad{}, fmt.Errorf("%w: got %d", ErrArity, len(names))
	}
	ps := make([]pitch.Pitch, 0, Size)
	for _, name := range names {
		p, err := pitch.Parse(name)
		if err != nil {
			return Triad{}, fmt.Errorf("triad: %w", err)
		}
		ps = append(ps, p)
	}
	return FromSlice(ps)
}

// MustParse is Parse for tests and fixed tables.
func MustParse(names ...string) Triad {
	t, err := Parse(names...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pitches returns the sorted pitches.
func (t Triad) Pitches() [Size]pitch.Pitch { return t.pitches }

// Voice returns the i-th lowest pitch.
func (t Triad) Voice(i int) pitch.Pitch { return t.pitches[i] }

// Lowest returns the bass pitch.
func (t Triad) Lowest() pitch.Pitch { return t.pitches[0] }

// Highest returns the top pitch.
func (t Triad) Highest() pitch.Pitch { return t.pitches[Size-1] }

// Key returns the derived equality key: the sorted MIDI numbers.
func (t Triad) Key() [Size]int {
	return [Size]int{int(t.pitches[0]), int(t.pitches[1]), int(t.pitches[2])}
}

// Less orders triads lexicographically by key.
func (t Triad) Less(o Triad) bool {
	for i := range t.pitches {
		if t.pitches[i] != o.pitches[i] {
			return t.pitches[i] < o.pitches[i]
		}
	}
	return false
}

// Transpose moves one voice by the given number of semitones and returns a
// fresh, re-sorted triad. The receiver is untouched.
func (t Triad) Transpose(voice, semitones int) (Triad, error) {
	if voice < 0 || voice >= Size {
		return Triad{}, fmt.Errorf("triad: voice %d out of range", voice)
	}
	p, err := t.pitches[voice].Transpose(semitones)
	if err != nil {
		return Triad{}, fmt.Errorf("triad: transpose voice %d: %w", voice, err)
	}
	ps := t.pitches
	ps[voice] = p
	return New(ps[0], ps[1], ps[2]), nil
}

// Shift transposes every voice by the same interval.
func (t Triad) Shift(semitones int) (Triad, error) {
	var ps [Size]pitch.Pitch
	for i, p := range t.pitches {
		moved, err := p.Transpose(semitones)
		if err != nil {
			return Triad{}, fmt.Errorf("triad: shift by %d: %w", semitones, err)
		}
		ps[i] = moved
	}
	return Triad{pitches: ps}, nil
}

// Distance is the voice-leading distance: the sum of absolute semitone
// movements between corresponding voices.
func (t Triad) Distance(o Triad) int {
	d := 0
	for i := range t.pitches {
		diff := int(t.pitches[i]) - int(o.pitches[i])
		if diff < 0 {
			diff = -diff
		}
		d += diff
	}
	return d
}

// String renders the triad as "(C2 E3 G3)".
func (t Triad) String() string {
	names := make([]string, 0, Size)
	for _, p := range t.pitches {
		names = append(names, p.String())
	}
	return "(" + strings.Join(names, " ") + ")"
}
