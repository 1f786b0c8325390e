package output

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPortUnavailable is returned when a requested port name is not offered by any driver.
	ErrPortUnavailable = errors.New("output port not available")
	// ErrUnknownDriver is returned for a driver name with no factory.
	ErrUnknownDriver = errors.New("unknown output driver")
)

// Port is a named MIDI output.
type Port interface {
	Name() string
	Send(Message) error
	Close() error
}

// Factory opens one port from its configuration.
type Factory func(ctx context.Context, spec *config.Output) (Port, error)

// Drivers maps driver names to factories.
type Drivers map[string]Factory

// DefaultDrivers returns the built-in drivers.
func DefaultDrivers() Drivers {
	return Drivers{
		"log":      OpenLog,
		"memory":   OpenMemory,
		"socketio": OpenSocketIO,
	}
}

// Open opens the named ports, in order, concurrently. Every requested name
// must be among available. If any port fails, the ones already opened are
// closed and the first error is returned.
func Open(ctx context.Context, drivers Drivers, available []*config.Output, names ...string) ([]Port, error) {
	logger := ctxlog.FromContext(ctx)

	byName := make(map[string]*config.Output, len(available))
	for _, spec := range available {
		byName[spec.Name] = spec
	}
	specs := make([]*config.Output, len(names))
	for i, name := range names {
		spec, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q. Make sure the port is configured and its bridge is running", ErrPortUnavailable, name)
		}
		if _, ok := drivers[spec.Driver]; !ok {
			return nil, fmt.Errorf("%w: %q for port %q", ErrUnknownDriver, spec.Driver, name)
		}
		specs[i] = spec
	}

	ports := make([]Port, len(specs))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			p, err := drivers[spec.Driver](gctx, spec)
			if err != nil {
				return fmt.Errorf("output: open %q (%s): %w", spec.Name, spec.Driver, err)
			}
			mu.Lock()
			ports[i] = p
			mu.Unlock()
			logger.Debug("Output port opened.", "port", spec.Name, "driver", spec.Driver)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		CloseAll(ctx, ports)
		return nil, err
	}
	return ports, nil
}

// CloseAll closes every non-nil port, logging failures.
func CloseAll(ctx context.Context, ports []Port) {
	logger := ctxlog.FromContext(ctx)
	for _, p := range ports {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil {
			logger.Warn("Failed to close output port.", "port", p.Name(), "error", err)
		}
	}
}
