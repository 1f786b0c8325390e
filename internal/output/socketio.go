package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/triadgrid/internal/config"
	"github.com/specialistvlad/triadgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	defaultSocketIOEvent = "midi"
	socketIOConnectWait  = 15 * time.Second
)

// SocketIOPort forwards messages to a socket.io server that bridges them to a
// real or virtual MIDI device. Each message is emitted as one event whose
// payload is the three raw bytes.
type SocketIOPort struct {
	name       string
	event      string
	client     emitter
	disconnect func()
	logger     *slog.Logger
}

// emitter is the part of *socket.Socket a port sends through.
type emitter interface {
	Connected() bool
	Emit(ev string, args ...any) error
}

// OpenSocketIO is the Factory for the "socketio" driver. It blocks until the
// client is connected, the context ends or the connect timeout elapses.
func OpenSocketIO(ctx context.Context, spec *config.Output) (Port, error) {
	logger := ctxlog.FromContext(ctx).With("port", spec.Name, "driver", "socketio", "url", spec.URL)
	logger.Debug("Connecting socket.io output port...")

	parsedURL, err := url.Parse(spec.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("socket.io URL %q must be absolute", spec.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(spec.Namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Socket.io output port connected.", "sid", io.Id())
		notify(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		notify(connectChan, err)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(socketIOConnectWait):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", socketIOConnectWait)
	}

	event := spec.Event
	if event == "" {
		event = defaultSocketIOEvent
	}
	return &SocketIOPort{
		name:       spec.Name,
		event:      event,
		client:     io,
		disconnect: func() { io.Disconnect() },
		logger:     logger,
	}, nil
}

// notify delivers the first connection outcome; later ones are dropped.
func notify(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func (p *SocketIOPort) Name() string { return p.name }

// Send fails when the bridge has dropped the connection, so playback stops
// instead of going silent.
func (p *SocketIOPort) Send(m Message) error {
	if !p.client.Connected() {
		return fmt.Errorf("socket.io port %q is not connected", p.name)
	}
	if err := p.client.Emit(p.event, []int{int(m.Status), int(m.Data1), int(m.Data2)}); err != nil {
		return fmt.Errorf("socket.io port %q: emit %s: %w", p.name, p.event, err)
	}
	return nil
}

func (p *SocketIOPort) Close() error {
	p.logger.Debug("Disconnecting socket.io output port.")
	p.disconnect()
	return nil
}
