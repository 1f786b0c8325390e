package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NotesOn returns the note numbers of every note-on sent to port, grouped by
// channel in send order.
func NotesOn(t *testing.T, result *HarnessResult, port string) map[uint8][]uint8 {
	t.Helper()

	p, ok := result.Ports[port]
	require.True(t, ok, "memory port %q was never opened", port)

	notes := map[uint8][]uint8{}
	for _, m := range p.Messages() {
		if m.Kind() == "note_on" {
			notes[m.Channel()] = append(notes[m.Channel()], m.Data1)
		}
	}
	return notes
}

// AssertBalanced checks that every note-on sent to port is matched by a
// note-off for the same channel and note, and that the port was closed.
func AssertBalanced(t *testing.T, result *HarnessResult, port string) {
	t.Helper()

	p, ok := result.Ports[port]
	require.True(t, ok, "memory port %q was never opened", port)
	require.True(t, p.Closed(), "memory port %q was left open", port)

	type key struct{ channel, note uint8 }
	open := map[key]int{}
	for _, m := range p.Messages() {
		k := key{m.Channel(), m.Data1}
		switch m.Kind() {
		case "note_on":
			open[k]++
		case "note_off":
			require.Positive(t, open[k], "note-off without note-on: channel %d note %d", k.channel, k.note)
			open[k]--
		}
	}
	for k, n := range open {
		require.Zero(t, n, "channel %d note %d left sounding", k.channel, k.note)
	}
}
