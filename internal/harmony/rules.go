package harmony

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/explore"
	"github.com/specialistvlad/triadgrid/internal/pitch"
	"github.com/specialistvlad/triadgrid/internal/triad"
)

// ErrUnknownRule is returned for a rule kind Compile does not know.
var ErrUnknownRule = errors.New("unknown rule kind")

// Rule is a successor function over triads.
type Rule = explore.SuccessorFunc[triad.Triad]

// Range bounds every pitch of a triad, inclusive.
type Range struct {
	Low  pitch.Pitch
	High pitch.Pitch
}

// FullRange admits every MIDI pitch.
var FullRange = Range{Low: pitch.Min, High: pitch.Max}

// Contains reports whether every voice of t lies within the range.
func (r Range) Contains(t triad.Triad) bool {
	return t.Lowest() >= r.Low && t.Highest() <= r.High
}

// TransposeVoice moves one voice by a fixed interval and keeps the result
// only while its top pitch stays strictly below ceiling. Leaving the MIDI
// range ends the branch instead of failing.
func TransposeVoice(voice, semitones int, ceiling pitch.Pitch) Rule {
	return func(t triad.Triad) ([]triad.Triad, error) {
		next, err := t.Transpose(voice, semitones)
		if errors.Is(err, pitch.ErrOutOfRange) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if next.Highest() >= ceiling {
			return nil, nil
		}
		return []triad.Triad{next}, nil
	}
}

// Shift transposes the whole chord by each of the given intervals.
func Shift(intervals []int, bounds Range) Rule {
	return func(t triad.Triad) ([]triad.Triad, error) {
		var out []triad.Triad
		for _, iv := range intervals {
			next, err := t.Shift(iv)
			if errors.Is(err, pitch.ErrOutOfRange) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if bounds.Contains(next) {
				out = append(out, next)
			}
		}
		return dedupe(out), nil
	}
}

// ScaleStep moves one voice at a time by each of the given scale degrees.
// Results must keep three distinct pitches and stay inside bounds. A triad
// with a pitch outside the scale is a rule violation and fails.
func ScaleStep(scale Scale, degrees []int, bounds Range) Rule {
	return func(t triad.Triad) ([]triad.Triad, error) {
		ps := t.Pitches()
		var out []triad.Triad
		for voice := range ps {
			for _, deg := range degrees {
				moved, err := scale.Step(ps[voice], deg)
				if errors.Is(err, pitch.ErrOutOfRange) {
					continue
				}
				if err != nil {
					return nil, fmt.Errorf("harmony: scale step from %s: %w", t, err)
				}
				next := ps
				next[voice] = moved
				cand := triad.New(next[0], next[1], next[2])
				if !distinct(cand) || !bounds.Contains(cand) {
					continue
				}
				out = append(out, cand)
			}
		}
		return dedupe(out), nil
	}
}

// Union concatenates the successors of several rules, dropping repeats.
func Union(rules ...Rule) Rule {
	return func(t triad.Triad) ([]triad.Triad, error) {
		var out []triad.Triad
		for _, r := range rules {
			succ, err := r(t)
			if err != nil {
				return nil, err
			}
			out = append(out, succ...)
		}
		return dedupe(out), nil
	}
}

func distinct(t triad.Triad) bool {
	ps := t.Pitches()
	return ps[0] != ps[1] && ps[1] != ps[2]
}

// dedupe drops repeated triads and sorts the rest so successor lists are
// deterministic.
func dedupe(ts []triad.Triad) []triad.Triad {
	if len(ts) == 0 {
		return nil
	}
	seen := make(map[triad.Triad]struct{}, len(ts))
	out := ts[:0]
	for _, t := range ts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Compile turns the configured rules into one successor function. The scale
// table is injected so rules never read process-wide state.
func Compile(ex *config.Explore, scales ScaleTable) (Rule, error) {
	bounds := FullRange
	if ex.Low != "" {
		low, err := pitch.Parse(ex.Low)
		if err != nil {
			return nil, fmt.Errorf("harmony: explore.low: %w", err)
		}
		bounds.Low = low
	}
	if ex.High != "" {
		high, err := pitch.Parse(ex.High)
		if err != nil {
			return nil, fmt.Errorf("harmony: explore.high: %w", err)
		}
		bounds.High = high
	}

	tonic, err := pitch.ParseClass(ex.Tonic)
	if err != nil {
		return nil, fmt.Errorf("harmony: explore.tonic: %w", err)
	}
	scale, err := scales.Scale(ex.Scale, tonic)
	if err != nil {
		return nil, fmt.Errorf("harmony: %w", err)
	}

	rules := make([]Rule, 0, len(ex.Rules))
	for i, spec := range ex.Rules {
		r, err := compileRule(spec, scale, bounds)
		if err != nil {
			return nil, fmt.Errorf("harmony: rule %d (%s): %w", i, spec.Kind, err)
		}
		rules = append(rules, r)
	}
	if len(rules) == 1 {
		return rules[0], nil
	}
	return Union(rules...), nil
}

func compileRule(spec *config.Rule, scale Scale, bounds Range) (Rule, error) {
	switch spec.Kind {
	case "transpose_voice":
		if spec.Voice < 0 || spec.Voice >= triad.Size {
			return nil, fmt.Errorf("voice %d out of range", spec.Voice)
		}
		if len(spec.Semitones) != 1 {
			return nil, fmt.Errorf("transpose_voice takes exactly one interval, got %d", len(spec.Semitones))
		}
		ceiling := bounds.High + 1
		if spec.Ceiling != "" {
			c, err := pitch.Parse(spec.Ceiling)
			if err != nil {
				return nil, err
			}
			ceiling = c
		}
		return TransposeVoice(spec.Voice, spec.Semitones[0], ceiling), nil
	case "shift":
		if len(spec.Semitones) == 0 {
			return nil, fmt.Errorf("shift needs at least one interval")
		}
		return Shift(spec.Semitones, bounds), nil
	case "scale_step":
		degrees := spec.Degrees
		if len(degrees) == 0 {
			degrees = []int{-1, 1}
		}
		return ScaleStep(scale, degrees, bounds), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, spec.Kind)
	}
}
