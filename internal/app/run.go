package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/specialistvlad/triadgrid/internal/explore"
	"github.com/specialistvlad/triadgrid/internal/harmony"
	"github.com/specialistvlad/triadgrid/internal/output"
	"github.com/specialistvlad/triadgrid/internal/scheduler"
	"github.com/specialistvlad/triadgrid/internal/sound"
	"github.com/specialistvlad/triadgrid/internal/triad"
)

// Run executes one session: read the catalogue, open and route the output
// ports, explore the chord graph, pick a progression and play it.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx, logger := ctxlog.With(ctx, "run_id", uuid.NewString())
	logger.Debug("App.Run method started.")

	a.startHealthCheckServer(ctx)
	defer func() {
		if cerr := a.closeHealthCheckServer(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		a.metrics.runsDone.WithLabelValues(outcome).Inc()
	}()

	progression, err := a.chooseProgression(ctx)
	if err != nil {
		return err
	}

	voices := a.session.Progression.Voices
	if len(voices) == 0 {
		logger.Warn("No voices configured, nothing to play.")
		return nil
	}

	sounds, err := a.readSounds()
	if err != nil {
		return err
	}

	ports, err := a.openPorts(ctx)
	if err != nil {
		return err
	}
	defer output.CloseAll(ctx, ports)

	if err := sound.Route(sounds, ports, a.session.Sounds.ChannelsPerPort); err != nil {
		return fmt.Errorf("failed to route sounds: %w", err)
	}
	logger.Debug("Sounds routed.", "sounds", len(sounds), "ports", len(ports))

	sched := scheduler.New(scheduler.WithClock(a.clock))
	if err := a.schedule(ctx, sched, sounds, progression); err != nil {
		return err
	}

	logger.Info("🎼 Playing progression...", "chords", len(progression), "actions", sched.Len())
	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	logger.Info("🏁 Playback finished.")
	return nil
}

// chooseProgression builds the chord graph around the start chord and walks it.
func (a *App) chooseProgression(ctx context.Context) ([]triad.Triad, error) {
	logger := ctxlog.FromContext(ctx)
	ex := a.session.Explore

	start, err := triad.Parse(ex.Start...)
	if err != nil {
		return nil, fmt.Errorf("invalid start chord: %w", err)
	}
	rule, err := harmony.Compile(ex, a.scales)
	if err != nil {
		return nil, err
	}

	g := explore.New(rule,
		explore.WithPreVisit(func(v triad.Triad) {
			a.metrics.visited.Inc()
			logger.Debug("Visiting chord.", "chord", v)
		}),
		explore.WithEdge(func(from, to triad.Triad) {
			a.metrics.edges.Inc()
		}),
	)

	visited, err := g.Traverse(ctx, start, ex.Steps)
	if err != nil {
		return nil, fmt.Errorf("failed to explore chord graph: %w", err)
	}
	a.metrics.cached.Set(float64(g.Len()))

	// Build reuses the memoized successors, so it only adds the edge set.
	summary, err := explore.Build(ctx, start, g.Successors, ex.Steps)
	if err != nil {
		return nil, fmt.Errorf("failed to build chord graph: %w", err)
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Debug("Chord graph edges.", "edges", fmt.Sprint(g.SortedEdges(triad.Triad.Less)))
	}
	logger.Info("🔎 Chord graph explored.",
		"start", start,
		"visited", len(visited),
		"vertices", len(summary.Vertices),
		"edges", len(summary.Edges),
		"discovered", len(summary.Discovered()),
	)

	progression, err := harmony.Walk(ctx, g, start, a.session.Progression.Length)
	if err != nil {
		return nil, err
	}
	a.metrics.chords.Set(float64(len(progression)))
	logger.Info("Progression chosen.", "chords", fmt.Sprint(progression))
	return progression, nil
}

func (a *App) readSounds() ([]*sound.Sound, error) {
	s := a.session.Sounds
	if s.SoundsFile == "" || s.RangesFile == "" {
		return nil, errors.New("a sounds block with sounds_file and ranges_file is required to play voices")
	}
	sounds, err := sound.ReadFiles(s.SoundsFile, s.RangesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read sounds: %w", err)
	}
	return sounds, nil
}

// openPorts opens the outputs named by sounds.ports, or every configured
// output in declaration order when none are named. A dry run swaps every
// driver for the log driver.
func (a *App) openPorts(ctx context.Context) ([]output.Port, error) {
	specs := a.session.Outputs
	drivers := a.drivers
	if a.config.DryRun {
		ctxlog.FromContext(ctx).Info("Dry run: notes go to the log instead of the configured ports.")
		specs = make([]*config.Output, len(a.session.Outputs))
		for i, o := range a.session.Outputs {
			dry := *o
			dry.Driver = "log"
			specs[i] = &dry
		}
		drivers = output.Drivers{"log": output.OpenLog}
	}

	names := a.session.Sounds.Ports
	if len(names) == 0 {
		names = make([]string, len(specs))
		for i, o := range specs {
			names[i] = o.Name
		}
	}
	ports, err := output.Open(ctx, drivers, specs, names...)
	if err != nil {
		return nil, fmt.Errorf("failed to open output ports: %w", err)
	}
	return a.metrics.output.InstrumentAll(ports), nil
}

// schedule places every voice of every chord on the scheduler, one chord per
// beat. A pitch outside a sound's range is moved by octaves into it; a sound
// whose range cannot hold the pitch class plays the middle of its range.
func (a *App) schedule(ctx context.Context, sched *scheduler.Scheduler, sounds []*sound.Sound, progression []triad.Triad) error {
	logger := ctxlog.FromContext(ctx)
	p := a.session.Progression

	type voice struct {
		spec  *config.Voice
		sound *sound.Sound
	}
	voices := make([]voice, len(p.Voices))
	for i, v := range p.Voices {
		snd, err := sound.QueryNames(sounds, v.Section, v.Instrument, v.Articulation)
		if err != nil {
			return fmt.Errorf("voice %q: %w", v.Name, err)
		}
		voices[i] = voice{spec: v, sound: snd}
		logger.Debug("Voice assigned.", "voice", v.Name, "sound", snd, "channel", snd.Channel, "port", snd.Port.Name())
	}

	for i, chord := range progression {
		start := time.Duration(i) * p.Beat
		for _, v := range voices {
			pt, ok := v.sound.Fit(chord.Voice(v.spec.Voice))
			if !ok {
				pt = v.sound.Middle()
				logger.Warn("Pitch outside sound range, playing its middle instead.", "voice", v.spec.Name, "chord", chord, "sound", v.sound, "pitch", pt)
			}
			target := scheduler.Target{Port: v.sound.Port, Channel: v.sound.Channel}
			sched.Schedule(target, pt, start, p.Duration, uint8(v.spec.Velocity))
			a.metrics.notes.Inc()
		}
	}
	return nil
}
