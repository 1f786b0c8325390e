package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Defaults applied by Normalize when a session leaves a field unset.
const (
	DefaultChannelsPerPort = 16
	DefaultSteps           = 4
	DefaultLength          = 8
	DefaultBeat            = 500 * time.Millisecond
	DefaultVelocity        = 100
	DefaultScale           = "major"
	DefaultTonic           = "C"
)

// Model is the unified, format-agnostic representation of a session: where
// sounds come from, which output ports exist, how the chord graph is explored
// and how the chosen progression is played.
type Model struct {
	Outputs     []*Output
	Sounds      *Sounds
	Explore     *Explore
	Progression *Progression
}

// Output describes one output port. Name is the port name sounds are routed
// to, Driver selects the implementation ("log", "memory", "socketio").
type Output struct {
	Driver    string
	Name      string
	URL       string
	Namespace string
	Event     string
}

// Sounds points at the preset catalogue.
type Sounds struct {
	SoundsFile      string
	RangesFile      string
	ChannelsPerPort int
	// Ports names the outputs sounds are routed over, in order. Empty means
	// every configured output in declaration order.
	Ports []string
}

// Resolve makes relative file paths relative to dir, the directory of the
// session file that declared them.
func (s *Sounds) Resolve(dir string) {
	if s.SoundsFile != "" && !filepath.IsAbs(s.SoundsFile) {
		s.SoundsFile = filepath.Join(dir, s.SoundsFile)
	}
	if s.RangesFile != "" && !filepath.IsAbs(s.RangesFile) {
		s.RangesFile = filepath.Join(dir, s.RangesFile)
	}
}

// Explore configures graph construction.
type Explore struct {
	// Start holds the three pitch names of the initial triad.
	Start []string
	// Steps bounds the breadth-first rounds (distance for traversal).
	Steps int
	// Low and High bound every pitch of every explored triad (pitch names).
	Low   string
	High  string
	Scale string
	Tonic string
	Rules []*Rule
}

// Rule is one successor rule. Kind selects the rule; the other fields are
// read by the kinds that need them.
type Rule struct {
	Kind      string
	Voice     int
	Semitones []int
	Degrees   []int
	Ceiling   string
}

// Progression configures the path walked through the graph and its playback.
type Progression struct {
	Length   int
	Beat     time.Duration
	Duration time.Duration
	Velocity int
	Voices   []*Voice
}

// Voice assigns the sound matching (Section, Instrument, Articulation) to one
// voice of every chord. Voice 0 is the lowest pitch.
type Voice struct {
	Name         string
	Section      string
	Instrument   string
	Articulation string
	Voice        int
	Velocity     int
}

// Normalize fills defaults and validates cross-field constraints.
func (m *Model) Normalize() error {
	if m.Sounds == nil {
		m.Sounds = &Sounds{}
	}
	if m.Sounds.ChannelsPerPort <= 0 {
		m.Sounds.ChannelsPerPort = DefaultChannelsPerPort
	}

	if m.Explore == nil {
		return fmt.Errorf("config: an explore block is required")
	}
	if len(m.Explore.Start) != 3 {
		return fmt.Errorf("config: explore.start must name exactly three pitches, got %d", len(m.Explore.Start))
	}
	if m.Explore.Steps <= 0 {
		m.Explore.Steps = DefaultSteps
	}
	if m.Explore.Scale == "" {
		m.Explore.Scale = DefaultScale
	}
	if m.Explore.Tonic == "" {
		m.Explore.Tonic = DefaultTonic
	}
	if len(m.Explore.Rules) == 0 {
		return fmt.Errorf("config: explore needs at least one rule")
	}

	if m.Progression == nil {
		m.Progression = &Progression{}
	}
	p := m.Progression
	if p.Length <= 0 {
		p.Length = DefaultLength
	}
	if p.Beat <= 0 {
		p.Beat = DefaultBeat
	}
	if p.Duration <= 0 {
		p.Duration = p.Beat
	}
	if p.Velocity <= 0 {
		p.Velocity = DefaultVelocity
	}
	if p.Velocity > 127 {
		return fmt.Errorf("config: progression velocity %d exceeds 127", p.Velocity)
	}
	for _, v := range p.Voices {
		if v.Voice < 0 || v.Voice > 2 {
			return fmt.Errorf("config: voice %q: voice index %d must be 0, 1 or 2", v.Name, v.Voice)
		}
		if v.Velocity <= 0 {
			v.Velocity = p.Velocity
		}
		if v.Velocity > 127 {
			return fmt.Errorf("config: voice %q: velocity %d exceeds 127", v.Name, v.Velocity)
		}
	}
	return nil
}
