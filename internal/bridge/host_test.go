package bridge

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valpere/promptlight/internal/visibility"
)

// fakeConn plays the host side of the websocket.
type fakeConn struct {
	in      chan []byte
	mu      sync.Mutex
	written []command
	onWrite func(c *fakeConn, cmd command)
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), closed: make(chan struct{})}
}

func (c *fakeConn) ReadJSON(v any) error {
	select {
	case b := <-c.in:
		return json.Unmarshal(b, v)
	case <-c.closed:
		return io.EOF
	}
}

func (c *fakeConn) WriteJSON(v any) error {
	cmd := v.(command)
	c.mu.Lock()
	c.written = append(c.written, cmd)
	hook := c.onWrite
	c.mu.Unlock()
	if hook != nil {
		hook(c, cmd)
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) push(t *testing.T, msg any) {
	t.Helper()
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	c.in <- b
}

func (c *fakeConn) ops() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := make([]string, len(c.written))
	for i, cmd := range c.written {
		ops[i] = cmd.Op
	}
	return ops
}

type eventLog struct {
	mu     sync.Mutex
	events []visibility.Event
}

func (l *eventLog) add(ev visibility.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) get() []visibility.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]visibility.Event(nil), l.events...)
}

func serveFake(t *testing.T, h *HostWindow, conn *fakeConn, events *eventLog) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		h.Serve(conn, events.add)
		close(done)
	}()
	require.Eventually(t, h.Connected, time.Second, 5*time.Millisecond)
	t.Cleanup(func() {
		conn.Close()
		<-done
	})
}

func TestHostWindow_NoHost(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), 50*time.Millisecond)

	assert.ErrorIs(t, h.Show(), ErrNoHost)
	_, err := h.IsVisible()
	assert.ErrorIs(t, err, ErrNoHost)
	assert.False(t, h.Connected())
}

func TestHostWindow_Commands(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), time.Second)
	conn := newFakeConn()
	serveFake(t, h, conn, &eventLog{})

	require.NoError(t, h.Show())
	require.NoError(t, h.Center())
	require.NoError(t, h.Focus())
	require.NoError(t, h.Hide())

	assert.Equal(t, []string{"show", "center", "focus", "hide"}, conn.ops())
}

func TestHostWindow_IsVisibleReply(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), time.Second)
	conn := newFakeConn()
	conn.onWrite = func(c *fakeConn, cmd command) {
		if cmd.Op == "is_visible" {
			b, _ := json.Marshal(map[string]any{"id": cmd.ID, "visible": true})
			c.in <- b
		}
	}
	serveFake(t, h, conn, &eventLog{})

	visible, err := h.IsVisible()
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestHostWindow_IsVisibleTimeout(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), 30*time.Millisecond)
	conn := newFakeConn()
	serveFake(t, h, conn, &eventLog{})

	_, err := h.IsVisible()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reply")
}

func TestHostWindow_Events(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), time.Second)
	conn := newFakeConn()
	events := &eventLog{}
	serveFake(t, h, conn, events)

	conn.push(t, map[string]any{"event": "hotkey"})
	conn.push(t, map[string]any{"event": "focus", "focused": true})
	conn.push(t, map[string]any{"event": "focus", "focused": false})
	conn.push(t, map[string]any{"event": "resize"})

	require.Eventually(t, func() bool { return len(events.get()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []visibility.Event{visibility.HotkeyPressed, visibility.FocusLost}, events.get())
}

func TestHostWindow_Disconnect(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), time.Second)
	conn := newFakeConn()
	done := make(chan struct{})
	go func() {
		h.Serve(conn, func(visibility.Event) {})
		close(done)
	}()
	require.Eventually(t, h.Connected, time.Second, 5*time.Millisecond)

	conn.Close()
	<-done
	assert.False(t, h.Connected())
	assert.True(t, errors.Is(h.Hide(), ErrNoHost))
}

func TestHostWindow_Reconnect(t *testing.T) {
	h := NewHostWindow(zerolog.Nop(), time.Second)
	first := newFakeConn()
	serveFake(t, h, first, &eventLog{})

	second := newFakeConn()
	serveFake(t, h, second, &eventLog{})

	select {
	case <-first.closed:
	case <-time.After(time.Second):
		t.Fatal("previous connection was not closed")
	}
	require.NoError(t, h.Show())
	assert.Equal(t, []string{"show"}, second.ops())
	assert.Empty(t, first.ops())
}
