package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const session = `
locals {
  depth = 3
  root  = "C4"
}

output "memory" "loop-1" {}

output "socketio" "bridge" {
  url       = "http://localhost:3000/socket.io/"
  namespace = "/"
  event     = upper("midi")
}

sounds {
  sounds_file       = "sounds/sounds.csv"
  ranges_file       = "/data/ranges.csv"
  channels_per_port = min(16, 12)
}

explore {
  start = [local.root, "E4", "G4"]
  steps = max(local.depth, 2)
  low   = "C3"
  high  = "C6"
  scale = lower("MAJOR")

  rule "scale_step" {
    degrees = [-1, 1]
  }

  rule "transpose_voice" {
    voice     = 2
    semitones = [abs(-2)]
    ceiling   = "C5"
  }
}

progression {
  length   = 6
  beat     = "400ms"
  duration = "350ms"
  velocity = 90

  voice "bass" {
    section      = "Strings"
    instrument   = "Basses"
    articulation = "Spiccato"
    voice        = 0
  }

  voice "melody" {
    section      = "Strings"
    instrument   = "Violins 1"
    articulation = "Spiccato"
    voice        = 2
    velocity     = 110
  }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "session.hcl", session)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, model.Outputs, 2)
	assert.Equal(t, &config.Output{Driver: "memory", Name: "loop-1"}, model.Outputs[0])
	assert.Equal(t, &config.Output{
		Driver:    "socketio",
		Name:      "bridge",
		URL:       "http://localhost:3000/socket.io/",
		Namespace: "/",
		Event:     "MIDI",
	}, model.Outputs[1])

	assert.Equal(t, &config.Sounds{
		SoundsFile:      filepath.Join(dir, "sounds", "sounds.csv"),
		RangesFile:      "/data/ranges.csv",
		ChannelsPerPort: 12,
	}, model.Sounds)

	ex := model.Explore
	assert.Equal(t, []string{"C4", "E4", "G4"}, ex.Start)
	assert.Equal(t, 3, ex.Steps)
	assert.Equal(t, "C3", ex.Low)
	assert.Equal(t, "C6", ex.High)
	assert.Equal(t, "major", ex.Scale)
	assert.Equal(t, config.DefaultTonic, ex.Tonic)
	require.Len(t, ex.Rules, 2)
	assert.Equal(t, &config.Rule{Kind: "scale_step", Degrees: []int{-1, 1}}, ex.Rules[0])
	assert.Equal(t, &config.Rule{Kind: "transpose_voice", Voice: 2, Semitones: []int{2}, Ceiling: "C5"}, ex.Rules[1])

	p := model.Progression
	assert.Equal(t, 6, p.Length)
	assert.Equal(t, 400*time.Millisecond, p.Beat)
	assert.Equal(t, 350*time.Millisecond, p.Duration)
	assert.Equal(t, 90, p.Velocity)
	require.Len(t, p.Voices, 2)
	assert.Equal(t, &config.Voice{Name: "bass", Section: "Strings", Instrument: "Basses", Articulation: "Spiccato", Voice: 0, Velocity: 90}, p.Voices[0])
	assert.Equal(t, 110, p.Voices[1].Velocity)
}

func TestLoader_SplitAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "outputs.hcl", `
locals {
  octave = 4
}
output "log" "loop-1" {}
`)
	writeFile(t, dir, "nested/explore.hcl", `
output "memory" "loop-2" {}
explore {
  start = ["C4", "E4", format("G%d", local.octave)]
  rule "shift" {
    semitones = [-1, 1]
  }
}
`)
	writeFile(t, dir, "notes.txt", "not a session file")

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Outputs, 2)
	assert.Equal(t, "loop-2", model.Outputs[0].Name, "nested directory sorts before outputs.hcl")
	assert.Equal(t, "loop-1", model.Outputs[1].Name)
	assert.Equal(t, []string{"C4", "E4", "G4"}, model.Explore.Start, "locals are shared across files")
	assert.Equal(t, config.DefaultSteps, model.Explore.Steps)
	assert.Equal(t, config.DefaultLength, model.Progression.Length)
}

func TestLoader_UnknownFunction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `
explore {
  start = ["C4", "E4", "G4"]
  steps = length("abc")
  rule "shift" {
    semitones = [1]
  }
}
`)
	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}

func TestLoader_Errors(t *testing.T) {
	const explore = `
explore {
  start = ["C4", "E4", "G4"]
  rule "shift" {
    semitones = [1]
  }
}
`
	testCases := []struct {
		name    string
		files   map[string]string
		is      error
		message string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": "explore {"},
			message: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": "orchestra {}\n"},
			message: "failed to decode HCL file",
		},
		{
			name:  "explore twice across files",
			files: map[string]string{"a.hcl": explore, "b.hcl": explore},
			is:    config.ErrDuplicateBlock,
		},
		{
			name:  "explore twice in one file",
			files: map[string]string{"a.hcl": explore + explore},
			is:    config.ErrDuplicateBlock,
		},
		{
			name:    "bad duration",
			files:   map[string]string{"a.hcl": explore + "progression {\n  beat = \"soon\"\n}\n"},
			message: "progression.beat",
		},
		{
			name:    "duplicate local",
			files:   map[string]string{"a.hcl": "locals {\n  a = 1\n}\nlocals {\n  a = 2\n}\n" + explore},
			message: `local "a" is defined more than once`,
		},
		{
			name:    "missing explore",
			files:   map[string]string{"a.hcl": "output \"log\" \"x\" {}\n"},
			message: "explore block is required",
		},
		{
			name:    "no files",
			files:   map[string]string{"a.yaml": "explore: {}\n"},
			message: "no .hcl session files",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
			if tc.message != "" {
				assert.Contains(t, err.Error(), tc.message)
			}
		})
	}
}
