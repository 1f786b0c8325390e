package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/triadgrid/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An unterminated block is a parse error, which NewApp turns into a panic.
	invalidHCL := `
		explore {
			start = ["C4", "E4", "G4"]
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_ExploreOnlySession(t *testing.T) {
	t.Parallel()

	session := `
explore {
  start = ["C4", "E4", "G4"]
  steps = 2
  rule "scale_step" {}
}
progression {
  length = 4
}
`
	filePath := filepath.Join(t.TempDir(), "session.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(session), 0600))

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-log-level", "info", filePath})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Chord graph explored.")
	require.Contains(t, out.String(), "nothing to play")
}
