package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/specialistvlad/triadgrid/internal/output"
	"github.com/specialistvlad/triadgrid/internal/pitch"
)

// Epsilon is taken off every release so it lands before a note that starts
// exactly when this one ends.
const Epsilon = 10 * time.Millisecond

// Tie-break priorities; the lower value fires first.
const (
	ReleasePriority = 1
	AttackPriority  = 10
)

// Kind tells attacks from releases.
type Kind int

const (
	Attack Kind = iota
	Release
)

func (k Kind) String() string {
	if k == Release {
		return "release"
	}
	return "attack"
}

// Target is where a note sounds: one channel of one output port.
type Target struct {
	Port    output.Port
	Channel uint8
}

// Action is one timed MIDI message.
type Action struct {
	At       time.Duration
	Priority int
	Kind     Kind
	Target   Target
	Pitch    pitch.Pitch
	Velocity uint8

	seq uint64
}

// Message is the MIDI message the action sends.
func (a Action) Message() output.Message {
	if a.Kind == Release {
		return output.NoteOff(a.Target.Channel, uint8(a.Pitch))
	}
	return output.NoteOn(a.Target.Channel, uint8(a.Pitch), a.Velocity)
}

func (a Action) before(b Action) bool {
	if a.At != b.At {
		return a.At < b.At
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

type actionHeap []Action

func (h actionHeap) Len() int           { return len(h) }
func (h actionHeap) Less(i, j int) bool { return h[i].before(h[j]) }
func (h actionHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *actionHeap) Push(x any)        { *h = append(*h, x.(Action)) }
func (h *actionHeap) Pop() any {
	old := *h
	n := len(old)
	a := old[n-1]
	*h = old[:n-1]
	return a
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// Scheduler is an ordered queue of note actions.
type Scheduler struct {
	clock   Clock
	actions actionHeap
	seq     uint64
}

// New creates an empty scheduler on the wall clock.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{clock: RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule registers one note: a release at start+duration-Epsilon and an
// attack at start. duration must exceed Epsilon; shorter notes are not
// rejected but their release fires no later than their attack.
func (s *Scheduler) Schedule(target Target, p pitch.Pitch, start, duration time.Duration, velocity uint8) {
	s.push(Action{
		At:       start + duration - Epsilon,
		Priority: ReleasePriority,
		Kind:     Release,
		Target:   target,
		Pitch:    p,
	})
	s.push(Action{
		At:       start,
		Priority: AttackPriority,
		Kind:     Attack,
		Target:   target,
		Pitch:    p,
		Velocity: velocity,
	})
}

func (s *Scheduler) push(a Action) {
	a.seq = s.seq
	s.seq++
	heap.Push(&s.actions, a)
}

// Len is the number of actions not yet fired.
func (s *Scheduler) Len() int { return s.actions.Len() }

// Pending returns the unfired actions in firing order.
func (s *Scheduler) Pending() []Action {
	h := append(actionHeap(nil), s.actions...)
	out := make([]Action, 0, len(h))
	for h.Len() > 0 {
		out = append(out, heap.Pop(&h).(Action))
	}
	return out
}

// Run fires every pending action in order, sleeping until each one is due
// relative to the moment Run was called. It returns when the queue is empty,
// when a port refuses a message, or when ctx is done; actions not yet fired
// stay queued.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler starting.", "actions", s.Len())

	start := s.clock.Now()
	fired := 0
	for s.actions.Len() > 0 {
		next := s.actions[0]
		if wait := next.At - s.clock.Now().Sub(start); wait > 0 {
			if err := s.clock.Sleep(ctx, wait); err != nil {
				logger.Debug("Scheduler interrupted.", "fired", fired, "remaining", s.Len())
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		a := heap.Pop(&s.actions).(Action)
		msg := a.Message()
		if err := a.Target.Port.Send(msg); err != nil {
			return fmt.Errorf("scheduler: %s %s at %s on %q: %w", a.Kind, a.Pitch, a.At, a.Target.Port.Name(), err)
		}
		fired++
	}

	logger.Debug("Scheduler finished.", "fired", fired, "elapsed", s.clock.Now().Sub(start))
	return nil
}
