package notify

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/glyphforge/internal/ctxlog"
)

func TestNew_NopWithoutURL(t *testing.T) {
	n := New(Config{})

	assert.IsType(t, Nop{}, n)
	assert.NoError(t, n.Notify(context.Background(), Payload{Name: "icons"}))
}

func TestNew_Defaults(t *testing.T) {
	n := New(Config{URL: "http://localhost:3000"})

	s, ok := n.(*SocketIO)
	require.True(t, ok)
	assert.Equal(t, DefaultEvent, s.cfg.Event)
	assert.Equal(t, 10*time.Second, s.cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, s.cfg.FlushDelay)
}

func TestNotify_RelativeURL(t *testing.T) {
	n := New(Config{URL: "/socket.io"})

	err := n.Notify(ctxlog.Discard(context.Background()), Payload{})

	assert.EqualError(t, err, `notify URL "/socket.io" must be absolute`)
}

func TestNotify_UnreachableServer(t *testing.T) {
	// Reserve a port and close it so nothing is listening there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	n := New(Config{URL: "http://" + addr, Timeout: 2 * time.Second})

	start := time.Now()
	err = n.Notify(ctxlog.Discard(context.Background()), Payload{Name: "icons"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOffer_NeverBlocksOnFullChannel(t *testing.T) {
	// --- Arrange ---
	connected := make(chan error, 1)
	first := errors.New("connect_error")
	done := make(chan struct{})

	// --- Act ---
	go func() {
		defer close(done)
		offer(connected, first)
		// A reconnect fires connect after the slot is already taken.
		offer(connected, nil)
	}()

	// --- Assert ---
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("offer blocked on a full channel")
	}
	assert.Equal(t, first, <-connected)
	assert.Empty(t, connected)
}
