package hcl

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/specialistvlad/triadgrid/internal/config"
)

// translate converts one file's decoded blocks into the agnostic model.
// Singular blocks repeated inside the file are rejected by config.Merge just
// as they are across files.
func translate(path string, root *fileRoot) (*config.Model, error) {
	model := &config.Model{}
	for _, o := range root.Outputs {
		model.Outputs = append(model.Outputs, translateOutput(o))
	}

	var parts []*config.Model
	for _, s := range root.Sounds {
		sounds := translateSounds(s)
		sounds.Resolve(filepath.Dir(path))
		parts = append(parts, &config.Model{Sounds: sounds})
	}
	for _, e := range root.Explore {
		parts = append(parts, &config.Model{Explore: translateExplore(e)})
	}
	for _, p := range root.Progression {
		prog, err := translateProgression(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, &config.Model{Progression: prog})
	}

	for _, part := range parts {
		if err := config.Merge(model, part); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func translateOutput(o *outputBlock) *config.Output {
	return &config.Output{
		Driver:    o.Driver,
		Name:      o.Name,
		URL:       o.URL,
		Namespace: o.Namespace,
		Event:     o.Event,
	}
}

func translateSounds(s *soundsBlock) *config.Sounds {
	return &config.Sounds{
		SoundsFile:      s.SoundsFile,
		RangesFile:      s.RangesFile,
		ChannelsPerPort: s.ChannelsPerPort,
		Ports:           s.Ports,
	}
}

func translateExplore(e *exploreBlock) *config.Explore {
	ex := &config.Explore{
		Start: e.Start,
		Steps: e.Steps,
		Low:   e.Low,
		High:  e.High,
		Scale: e.Scale,
		Tonic: e.Tonic,
	}
	for _, r := range e.Rules {
		ex.Rules = append(ex.Rules, &config.Rule{
			Kind:      r.Kind,
			Voice:     r.Voice,
			Semitones: r.Semitones,
			Degrees:   r.Degrees,
			Ceiling:   r.Ceiling,
		})
	}
	return ex
}

func translateProgression(p *progressionBlock) (*config.Progression, error) {
	beat, err := parseDuration("beat", p.Beat)
	if err != nil {
		return nil, err
	}
	duration, err := parseDuration("duration", p.Duration)
	if err != nil {
		return nil, err
	}

	prog := &config.Progression{
		Length:   p.Length,
		Beat:     beat,
		Duration: duration,
		Velocity: p.Velocity,
	}
	for _, v := range p.Voices {
		prog.Voices = append(prog.Voices, &config.Voice{
			Name:         v.Name,
			Section:      v.Section,
			Instrument:   v.Instrument,
			Articulation: v.Articulation,
			Voice:        v.Voice,
			Velocity:     v.Velocity,
		})
	}
	return prog, nil
}

// parseDuration accepts Go duration strings ("500ms", "1.5s"); empty means unset.
func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("progression.%s: %w", field, err)
	}
	return d, nil
}
