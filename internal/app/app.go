package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/specialistvlad/triadgrid/internal/harmony"
	"github.com/specialistvlad/triadgrid/internal/hcl"
	"github.com/specialistvlad/triadgrid/internal/output"
	"github.com/specialistvlad/triadgrid/internal/scheduler"
	"github.com/specialistvlad/triadgrid/internal/yamlcfg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	session    *config.Model
	drivers    output.Drivers
	scales     harmony.ScaleTable
	clock      scheduler.Clock
	registry   *prometheus.Registry
	metrics    *metrics
	httpServer *http.Server
}

// Option customises an App, mostly for tests.
type Option func(*App)

// WithDrivers replaces the built-in output drivers.
func WithDrivers(d output.Drivers) Option {
	return func(a *App) { a.drivers = d }
}

// WithClock replaces the wall clock used for playback.
func WithClock(c scheduler.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithScales replaces the built-in scale table.
func WithScales(t harmony.ScaleTable) Option {
	return func(a *App) { a.scales = t }
}

// NewApp is the constructor for the main application. It loads the session
// through loader and panics if it cannot: a broken session is a fatal
// startup error.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	session, err := loader.Load(ctx, cfg.SessionPath)
	if err != nil {
		panic(fmt.Errorf("failed to load session: %w", err))
	}
	logger.Debug("Session loaded into unified model.", "outputs", len(session.Outputs))

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		session:  session,
		drivers:  output.DefaultDrivers(),
		scales:   harmony.DefaultScales(),
		clock:    scheduler.RealClock{},
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.metrics, err = newMetrics(a.registry)
	if err != nil {
		// Registration only fails on duplicate collectors, a programmer error.
		panic(err)
	}
	return a
}

// Session returns the loaded session model. This is primarily for testing.
func (a *App) Session() *config.Model {
	return a.session
}

// LoaderFor picks the session loader matching path: YAML for .yaml/.yml
// files or directories holding only YAML, HCL otherwise.
func LoaderFor(path string) config.Loader {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yamlcfg.NewLoader()
	case hcl.Extension:
		return hcl.NewLoader()
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		hclFiles, _ := filepath.Glob(filepath.Join(path, "*"+hcl.Extension))
		yamlFiles, _ := filepath.Glob(filepath.Join(path, "*.y*ml"))
		if len(hclFiles) == 0 && len(yamlFiles) > 0 {
			return yamlcfg.NewLoader()
		}
	}
	return hcl.NewLoader()
}
