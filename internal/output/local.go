package output

import (
	"context"
	"log/slog"
	"sync"

	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
)

// LogPort writes every message to a logger. It is the dry-run driver.
type LogPort struct {
	name   string
	logger *slog.Logger
}

// OpenLog is the Factory for the "log" driver.
func OpenLog(ctx context.Context, spec *config.Output) (Port, error) {
	return &LogPort{
		name:   spec.Name,
		logger: ctxlog.FromContext(ctx).With("port", spec.Name),
	}, nil
}

func (p *LogPort) Name() string { return p.name }

func (p *LogPort) Send(m Message) error {
	p.logger.Info("MIDI message.", "kind", m.Kind(), "channel", m.Channel(), "note", m.Data1, "velocity", m.Data2)
	return nil
}

func (p *LogPort) Close() error { return nil }

// MemoryPort records messages in memory.
type MemoryPort struct {
	name   string
	mu     sync.Mutex
	sent   []Message
	closed bool
}

// NewMemory creates a recording port.
func NewMemory(name string) *MemoryPort {
	return &MemoryPort{name: name}
}

// OpenMemory is the Factory for the "memory" driver.
func OpenMemory(_ context.Context, spec *config.Output) (Port, error) {
	return NewMemory(spec.Name), nil
}

func (p *MemoryPort) Name() string { return p.name }

func (p *MemoryPort) Send(m Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, m)
	return nil
}

func (p *MemoryPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Messages returns a copy of everything sent so far.
func (p *MemoryPort) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.sent...)
}

// Closed reports whether Close was called.
func (p *MemoryPort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
