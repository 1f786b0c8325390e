package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/triadgrid/internal/output"
	"github.com/specialistvlad/triadgrid/internal/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when slept on.
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	cancel func()
	after  int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	if c.cancel != nil && len(c.slept) == c.after {
		c.cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	return nil
}

// elapsed is the total time the scheduler slept.
func (c *fakeClock) elapsed() time.Duration {
	var total time.Duration
	for _, d := range c.slept {
		total += d
	}
	return total
}

func TestSchedule_ReleaseAndAttackTimes(t *testing.T) {
	s := New(WithClock(newFakeClock()))
	port := output.NewMemory("A")
	s.Schedule(Target{Port: port, Channel: 2}, 60, 0, 200*time.Millisecond, 100)

	require.Equal(t, 2, s.Len())
	pending := s.Pending()
	require.Len(t, pending, 2)

	attack, release := pending[0], pending[1]
	assert.Equal(t, Attack, attack.Kind)
	assert.Equal(t, time.Duration(0), attack.At)
	assert.Equal(t, AttackPriority, attack.Priority)
	assert.Equal(t, uint8(100), attack.Velocity)

	assert.Equal(t, Release, release.Kind)
	assert.Equal(t, 190*time.Millisecond, release.At)
	assert.Equal(t, ReleasePriority, release.Priority)

	assert.Equal(t, 2, s.Len(), "Pending does not consume")
}

func TestRun_AttackBeforeRelease(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock))
	port := output.NewMemory("A")
	s.Schedule(Target{Port: port, Channel: 2}, 60, 0, 200*time.Millisecond, 100)

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []output.Message{
		output.NoteOn(2, 60, 100),
		output.NoteOff(2, 60),
	}, port.Messages())
	assert.Equal(t, 190*time.Millisecond, clock.elapsed())
	assert.Zero(t, s.Len())
}

func TestRun_ReleaseWinsExactTie(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock))
	port := output.NewMemory("A")
	target := Target{Port: port}

	// The second note starts exactly when the first one's release is due.
	s.Schedule(target, 60, 0, 200*time.Millisecond, 90)
	s.Schedule(target, 62, 190*time.Millisecond, 200*time.Millisecond, 90)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []output.Message{
		output.NoteOn(0, 60, 90),
		output.NoteOff(0, 60),
		output.NoteOn(0, 62, 90),
		output.NoteOff(0, 62),
	}, port.Messages())
}

func TestRun_BackToBackNotesOnOneChannel(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock))
	port := output.NewMemory("A")
	target := Target{Port: port, Channel: 5}

	beat := 200 * time.Millisecond
	for i, p := range []pitch.Pitch{60, 60, 60} {
		s.Schedule(target, p, time.Duration(i)*beat, beat, 80)
	}

	require.NoError(t, s.Run(context.Background()))
	msgs := port.Messages()
	require.Len(t, msgs, 6)
	for i := 0; i < len(msgs); i += 2 {
		assert.Equal(t, "note_on", msgs[i].Kind(), "message %d", i)
		assert.Equal(t, "note_off", msgs[i+1].Kind(), "message %d", i+1)
	}
	assert.Equal(t, 2*beat+beat-Epsilon, clock.elapsed())
}

func TestRun_InsertionOrderBreaksTies(t *testing.T) {
	s := New(WithClock(newFakeClock()))
	a, b := output.NewMemory("A"), output.NewMemory("B")
	s.Schedule(Target{Port: b}, 64, 0, time.Second, 70)
	s.Schedule(Target{Port: a}, 60, 0, time.Second, 70)

	pending := s.Pending()
	require.Len(t, pending, 4)
	assert.Equal(t, "B", pending[0].Target.Port.Name())
	assert.Equal(t, "A", pending[1].Target.Port.Name())
	assert.Equal(t, "B", pending[2].Target.Port.Name())
	assert.Equal(t, "A", pending[3].Target.Port.Name())
}

func TestRun_ContextCancelled(t *testing.T) {
	clock := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock.cancel, clock.after = cancel, 1

	s := New(WithClock(clock))
	port := output.NewMemory("A")
	s.Schedule(Target{Port: port}, 60, 100*time.Millisecond, 100*time.Millisecond, 90)

	err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, port.Messages())
	assert.Equal(t, 2, s.Len(), "unfired actions stay queued")
}

func TestRun_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(WithClock(newFakeClock()))
	port := output.NewMemory("A")
	s.Schedule(Target{Port: port}, 60, 0, 100*time.Millisecond, 90)

	require.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Empty(t, port.Messages())
}

type refusingPort struct{ *output.MemoryPort }

func (refusingPort) Send(output.Message) error { return errors.New("port gone") }

func TestRun_SendErrorAborts(t *testing.T) {
	s := New(WithClock(newFakeClock()))
	s.Schedule(Target{Port: refusingPort{output.NewMemory("A")}}, 60, 0, 100*time.Millisecond, 90)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port gone")
	assert.Contains(t, err.Error(), `"A"`)
	assert.Equal(t, 1, s.Len())
}

func TestRun_Empty(t *testing.T) {
	clock := newFakeClock()
	require.NoError(t, New(WithClock(clock)).Run(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestRealClock_Sleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RealClock{}.Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, RealClock{}.Sleep(context.Background(), time.Millisecond))
}
