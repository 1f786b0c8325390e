package harmony

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/triadgrid/internal/pitch"
)

// ErrUnknownScale is returned when a scale name is not in the table.
var ErrUnknownScale = errors.New("unknown scale")

// ErrNotInScale is returned when a scale move starts from a foreign pitch.
var ErrNotInScale = errors.New("pitch not in scale")

// ScaleTable maps scale names to their semitone offsets from the tonic.
// It is built once and passed to the rules that need it.
type ScaleTable map[string][]int

// DefaultScales returns a fresh table with the common diatonic and symmetric
// scales.
func DefaultScales() ScaleTable {
	return ScaleTable{
		"major":          {0, 2, 4, 5, 7, 9, 11},
		"natural_minor":  {0, 2, 3, 5, 7, 8, 10},
		"harmonic_minor": {0, 2, 3, 5, 7, 8, 11},
		"melodic_minor":  {0, 2, 3, 5, 7, 9, 11},
		"dorian":         {0, 2, 3, 5, 7, 9, 10},
		"phrygian":       {0, 1, 3, 5, 7, 8, 10},
		"lydian":         {0, 2, 4, 6, 7, 9, 11},
		"mixolydian":     {0, 2, 4, 5, 7, 9, 10},
		"whole_tone":     {0, 2, 4, 6, 8, 10},
		"chromatic":      {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	}
}

// Names lists the scale names in alphabetical order.
func (t ScaleTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scale resolves a named scale rooted at tonic (a pitch class, 0 = C).
func (t ScaleTable) Scale(name string, tonic int) (Scale, error) {
	steps, ok := t[name]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownScale, name, t.Names())
	}
	s := Scale{Name: name, Tonic: ((tonic % 12) + 12) % 12}
	for _, st := range steps {
		s.classes[(s.Tonic+st)%12] = true
	}
	return s, nil
}

// Scale is a set of pitch classes.
type Scale struct {
	Name    string
	Tonic   int
	classes [12]bool
}

// Contains reports whether p belongs to the scale.
func (s Scale) Contains(p pitch.Pitch) bool {
	return s.classes[p.PitchClass()]
}

// Step moves p by n scale degrees (negative moves down).
func (s Scale) Step(p pitch.Pitch, n int) (pitch.Pitch, error) {
	if !s.Contains(p) {
		return 0, fmt.Errorf("%w: %s in %s", ErrNotInScale, p, s.Name)
	}
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	curr := p
	for moved := 0; moved < n; {
		next, err := curr.Transpose(dir)
		if err != nil {
			return 0, err
		}
		curr = next
		if s.Contains(curr) {
			moved++
		}
	}
	return curr, nil
}
