// Package yamlcfg loads session files written in YAML into the
// format-agnostic config.Model. It accepts the same sessions as the hcl
// package, without locals or functions.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/specialistvlad/triadgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML session loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML session files found in %v", paths)
	}

	model := &config.Model{}
	for _, path := range files {
		doc, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		fileModel, err := translate(path, doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := config.Merge(model, fileModel); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := model.Normalize(); err != nil {
		return nil, err
	}

	logger.Debug("YAML loading complete.", "files", len(files), "outputs", len(model.Outputs), "rules", len(model.Explore.Rules))
	return model, nil
}

// decodeFile decodes one file strictly: unknown keys are errors. An empty
// file decodes to an empty document.
func decodeFile(path string) (*file, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	return &doc, nil
}

func translate(path string, doc *file) (*config.Model, error) {
	model := &config.Model{}
	for _, o := range doc.Outputs {
		model.Outputs = append(model.Outputs, &config.Output{
			Driver:    o.Driver,
			Name:      o.Name,
			URL:       o.URL,
			Namespace: o.Namespace,
			Event:     o.Event,
		})
	}

	if s := doc.Sounds; s != nil {
		model.Sounds = &config.Sounds{
			SoundsFile:      s.SoundsFile,
			RangesFile:      s.RangesFile,
			ChannelsPerPort: s.ChannelsPerPort,
			Ports:           s.Ports,
		}
		model.Sounds.Resolve(filepath.Dir(path))
	}

	if e := doc.Explore; e != nil {
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
		model.Explore = ex
	}

	if p := doc.Progression; p != nil {
		prog := &config.Progression{Length: p.Length, Velocity: p.Velocity}
		var err error
		if prog.Beat, err = parseDuration("beat", p.Beat); err != nil {
			return nil, err
		}
		if prog.Duration, err = parseDuration("duration", p.Duration); err != nil {
			return nil, err
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
		model.Progression = prog
	}
	return model, nil
}

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
