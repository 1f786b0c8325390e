package sound

import "fmt"

// Section is an orchestra section as spelled in the catalogue.
type Section string

const (
	Strings    Section = "Strings"
	Brass      Section = "Brass"
	Woodwinds  Section = "Woodwinds"
	Percussion Section = "Percussion"
)

// Instrument is an instrument or ensemble as spelled in the catalogue.
type Instrument string

const (
	Violins1         Instrument = "Violins 1"
	Violins2         Instrument = "Violins 2"
	Violas           Instrument = "Violas"
	Celli            Instrument = "Celli"
	Basses           Instrument = "Basses"
	HornsA4          Instrument = "Horns a4"
	TrumpetsA3       Instrument = "Trumpets a3"
	TenorTrombonesA3 Instrument = "Tenor Trombones a3"
	BassTrombonesA2  Instrument = "Bass Trombones a2"
	Tuba             Instrument = "Tuba"
	FlutesA3         Instrument = "Flutes a3"
	Piccolo          Instrument = "Piccolo"
	OboesA3          Instrument = "Oboes a3"
	ClarinetsA3      Instrument = "Clarinets a3"
	BassoonsA3       Instrument = "Bassoons a3"
	HarpAndCeleste   Instrument = "Harp and Celeste"
	PercussionKit    Instrument = "Percussion"
	TunedPercussion  Instrument = "Tuned Percussion"
)

// Articulation is a playing technique as spelled in the catalogue.
type Articulation string

const (
	Long              Articulation = "Long"
	Spiccato          Articulation = "Spiccato"
	Pizzicato         Articulation = "Pizzicato"
	Tremolo           Articulation = "Tremolo"
	Staccatissimo     Articulation = "Staccatissimo"
	HarpPlucks        Articulation = "Harp Plucks"
	Celeste           Articulation = "Celeste"
	TimpaniHits       Articulation = "Timpani Hits"
	UntunedPercussion Articulation = "Untuned Percussion"
	TubularBells      Articulation = "Tubular Bells"
	Marimba           Articulation = "Marimba"
	Xylophone         Articulation = "Xylophone"
	Glockenspiel      Articulation = "Glockenspiel"
)

var sections = setOf(Strings, Brass, Woodwinds, Percussion)

var instruments = setOf(
	Violins1, Violins2, Violas, Celli, Basses,
	HornsA4, TrumpetsA3, TenorTrombonesA3, BassTrombonesA2, Tuba,
	FlutesA3, Piccolo, OboesA3, ClarinetsA3, BassoonsA3,
	HarpAndCeleste, PercussionKit, TunedPercussion,
)

var articulations = setOf(
	Long, Spiccato, Pizzicato, Tremolo, Staccatissimo, HarpPlucks, Celeste,
	TimpaniHits, UntunedPercussion, TubularBells, Marimba, Xylophone, Glockenspiel,
)

func setOf[T comparable](values ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func parseEnum[T ~string](set map[T]struct{}, kind, s string) (T, error) {
	v := T(s)
	if _, ok := set[v]; !ok {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownEnum, kind, s)
	}
	return v, nil
}

// ParseSection validates a catalogue section name.
func ParseSection(s string) (Section, error) { return parseEnum(sections, "section", s) }

// ParseInstrument validates a catalogue instrument name.
func ParseInstrument(s string) (Instrument, error) { return parseEnum(instruments, "instrument", s) }

// ParseArticulation validates a catalogue articulation name.
func ParseArticulation(s string) (Articulation, error) {
	return parseEnum(articulations, "articulation", s)
}
