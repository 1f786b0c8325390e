package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/triadgrid/internal/app"
	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/output"
	"github.com/stretchr/testify/require"
)

// SessionPath is where RunIntegrationTest points the app, relative to the
// temporary root. Tests that only write one file can name it "session/x.hcl".
const SessionPath = "session"

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Ports maps every memory output opened during the run by name.
	Ports map[string]*output.MemoryPort
	// Elapsed is how far the fake clock moved during playback.
	Elapsed time.Duration
}

// FakeClock advances only when slept on.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock stopped at the Unix epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}

// RunIntegrationTest runs the session made of files with a background context.
func RunIntegrationTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files)
}

// RunIntegrationTestWithContext writes files under a temporary root, loads
// the session directory and plays it. Memory outputs are captured and time
// is driven by a fake clock, so playback is instant.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	// 1. Lay out the files. Paths are relative to the temporary root.
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, SessionPath), 0o755))
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	// 2. Capture memory outputs.
	var mu sync.Mutex
	ports := map[string]*output.MemoryPort{}
	drivers := output.DefaultDrivers()
	drivers["memory"] = func(_ context.Context, spec *config.Output) (output.Port, error) {
		p := output.NewMemory(spec.Name)
		mu.Lock()
		ports[spec.Name] = p
		mu.Unlock()
		return p, nil
	}

	clock := NewFakeClock()
	start := clock.Now()
	sessionDir := filepath.Join(root, SessionPath)
	appConfig := &app.Config{
		SessionPath: sessionDir,
		LogLevel:    "debug",
		LogFormat:   "text",
	}
	logs := &app.SafeBuffer{}

	// 3. Build the app. Session errors surface as a panic from NewApp.
	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logs, appConfig, app.LoaderFor(sessionDir),
			app.WithDrivers(drivers), app.WithClock(clock))
	}()

	result := &HarnessResult{Ports: ports}
	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	} else {
		result.App = testApp
		result.Err = testApp.Run(ctx)
	}
	result.LogOutput = logs.String()
	result.Elapsed = clock.Now().Sub(start)

	if os.Getenv("TRIADGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
