// Package sound is the preset catalogue: which instrument sounds exist, their
// playable range, and the output port and channel each one is routed to.
package sound

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/triadgrid/internal/output"
	"github.com/specialistvlad/triadgrid/internal/pitch"
)

var (
	// ErrNoMatch is returned by Query when no sound has the requested attributes.
	ErrNoMatch = errors.New("no matching sound")
	// ErrInsufficientChannels is returned by Route when the ports cannot carry every sound.
	ErrInsufficientChannels = errors.New("not enough output channels")
	// ErrUnknownEnum is returned when a catalogue row names an unknown section, instrument or articulation.
	ErrUnknownEnum = errors.New("unknown catalogue value")
)

// Sound is one orchestral preset. Port and Channel stay zero until Route runs.
type Sound struct {
	LongName     string
	Section      Section
	Instrument   Instrument
	Articulation Articulation
	ShortName    string
	Low          pitch.Pitch
	High         pitch.Pitch

	Port    output.Port
	Channel uint8
}

// Contains reports whether p is inside the playable range.
func (s *Sound) Contains(p pitch.Pitch) bool {
	return p >= s.Low && p <= s.High
}

// Fit moves p by whole octaves until it lies inside the playable range. The
// second result is false when the range is narrower than an octave and no
// octave of p fits.
func (s *Sound) Fit(p pitch.Pitch) (pitch.Pitch, bool) {
	for p < s.Low {
		p += 12
	}
	for p > s.High {
		p -= 12
	}
	return p, s.Contains(p)
}

// Middle is the centre of the playable range.
func (s *Sound) Middle() pitch.Pitch {
	return (s.Low + s.High) / 2
}

func (s *Sound) String() string {
	return s.LongName
}

// Query returns the first sound with the given section, instrument and articulation.
func Query(sounds []*Sound, section Section, instrument Instrument, articulation Articulation) (*Sound, error) {
	for _, s := range sounds {
		if s.Section == section && s.Instrument == instrument && s.Articulation == articulation {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s - %s - %s", ErrNoMatch, section, instrument, articulation)
}

// QueryNames is Query with the attributes given as catalogue strings.
func QueryNames(sounds []*Sound, section, instrument, articulation string) (*Sound, error) {
	sec, err := ParseSection(section)
	if err != nil {
		return nil, err
	}
	ins, err := ParseInstrument(instrument)
	if err != nil {
		return nil, err
	}
	art, err := ParseArticulation(articulation)
	if err != nil {
		return nil, err
	}
	return Query(sounds, sec, ins, art)
}

// Route assigns every sound a port and channel: sound i goes to channel
// i % channelsPerPort on port i / channelsPerPort. It fails, leaving sounds
// untouched, unless the total capacity is strictly greater than the sound count.
func Route(sounds []*Sound, ports []output.Port, channelsPerPort int) error {
	if channelsPerPort <= 0 || channelsPerPort > 16 {
		return fmt.Errorf("channels per port must be in 1..16, got %d", channelsPerPort)
	}
	if len(ports)*channelsPerPort <= len(sounds) {
		return fmt.Errorf("%w: %d sounds on %d ports with %d channels each",
			ErrInsufficientChannels, len(sounds), len(ports), channelsPerPort)
	}
	for i, s := range sounds {
		s.Channel = uint8(i % channelsPerPort)
		s.Port = ports[i/channelsPerPort]
	}
	return nil
}
