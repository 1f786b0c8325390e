package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/specialistvlad/triadgrid/internal/app"
)

// ExitError carries the process exit code for a failed invocation.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const usage = `
triadgrid - explore chord progressions as a graph and play them over MIDI.

Usage:
  triadgrid [options] [SESSION_PATH]

Arguments:
  SESSION_PATH
    Path to a .hcl or .yaml session file, or a directory of them.

Options:
`

var (
	logFormats = []string{"text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// flags holds the raw values bound to the flag set.
type flags struct {
	session    string
	short      string
	healthPort int
	logFormat  string
	logLevel   string
	dryRun     bool
}

func newFlagSet(output io.Writer, f *flags) *flag.FlagSet {
	fs := flag.NewFlagSet("triadgrid", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.session, "session", "", "Path to the session file or directory.")
	fs.StringVar(&f.short, "s", "", "Path to the session file or directory (shorthand).")
	fs.IntVar(&f.healthPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Log every MIDI message instead of sending it to the configured outputs.")
	return fs
}

// Parse turns command-line arguments into an app.Config. The boolean result
// is true when the program should exit cleanly without running (help, or no
// session given). Invalid input is reported as an *ExitError with code 2.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	var f flags
	fs := newFlagSet(output, &f)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError(err.Error())
	}

	// -session beats -s, which beats the first positional argument.
	path := firstNonEmpty(f.session, f.short, fs.Arg(0))
	if path == "" {
		slog.Debug("No session path provided, printing usage and exiting.")
		fs.Usage()
		return nil, true, nil
	}

	logFormat, err := choice("log-format", f.logFormat, logFormats)
	if err != nil {
		return nil, false, err
	}
	logLevel, err := choice("log-level", f.logLevel, logLevels)
	if err != nil {
		return nil, false, err
	}

	config, err := app.NewConfig(app.Config{
		SessionPath:     path,
		HealthcheckPort: f.healthPort,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		DryRun:          f.dryRun,
	})
	if err != nil {
		return nil, false, usageError(err.Error())
	}

	slog.Debug("CLI arguments parsed.", "config", config)
	return config, false, nil
}

// choice lower-cases value and checks it against allowed.
func choice(name, value string, allowed []string) (string, error) {
	v := strings.ToLower(value)
	if !slices.Contains(allowed, v) {
		return "", usageError(fmt.Sprintf("invalid %s: must be one of '%s'", name, strings.Join(allowed, "', '")))
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func usageError(msg string) *ExitError {
	return &ExitError{Code: 2, Message: msg}
}
