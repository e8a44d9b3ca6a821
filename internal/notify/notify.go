// Package notify announces finished builds to a socket.io server, e.g. a dev
// server that reloads the icon preview.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
)

// DefaultEvent is emitted after a successful build.
const DefaultEvent = "assets:generated"

// Payload is the data sent with the event.
type Payload struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
	Files []string `json:"files"`
}

// Notifier announces a finished build.
type Notifier interface {
	Notify(ctx context.Context, p Payload) error
}

// Config configures a socket.io Notifier.
type Config struct {
	URL       string
	Namespace string
	Event     string
	// AckEvent, when set, is the event the server answers with. Without it
	// the notifier waits FlushDelay after emitting before disconnecting.
	AckEvent           string
	Timeout            time.Duration
	FlushDelay         time.Duration
	InsecureSkipVerify bool
}

// New returns a socket.io notifier, or a no-op one when cfg.URL is empty.
func New(cfg Config) Notifier {
	if cfg.URL == "" {
		return Nop{}
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FlushDelay <= 0 {
		cfg.FlushDelay = 250 * time.Millisecond
	}
	return &SocketIO{cfg: cfg}
}

// Nop discards notifications.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, Payload) error { return nil }

// SocketIO emits the build event over a short-lived socket.io connection.
type SocketIO struct {
	cfg Config
}

// Notify connects, emits the event and disconnects.
func (s *SocketIO) Notify(ctx context.Context, p Payload) error {
	logger := ctxlog.FromContext(ctx).With("component", "notify", "url", s.cfg.URL, "event", s.cfg.Event)

	parsedURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse notify URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("notify URL %q must be absolute", s.cfg.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if s.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	connected := make(chan error, 1)
	acked := make(chan struct{}, 1)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected", "sid", io.Id())
		offer(connected, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		offer(connected, err)
	})
	if s.cfg.AckEvent != "" {
		io.Once(types.EventName(s.cfg.AckEvent), func(...any) {
			offer(acked, struct{}{})
		})
	}

	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %v waiting for socket.io connection", s.cfg.Timeout)
	}

	logger.Info("Emitting build notification", "files", len(p.Files))
	io.Emit(s.cfg.Event, p)

	if s.cfg.AckEvent == "" {
		select {
		case <-time.After(s.cfg.FlushDelay):
		case <-opCtx.Done():
		}
		return nil
	}

	select {
	case <-acked:
		logger.Debug("Notification acknowledged", "ack_event", s.cfg.AckEvent)
		return nil
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %v waiting for event '%s'", s.cfg.Timeout, s.cfg.AckEvent)
	}
}

// offer sends v unless ch is full. The client may fire connect again after a
// reconnect, and its event goroutine must never block on us.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
