package bridge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/valpere/promptlight/internal/visibility"
)

// ErrNoHost is returned for window commands while no host is connected.
var ErrNoHost = errors.New("no host window connected")

const defaultReplyTimeout = 2 * time.Second

// Conn is the part of a websocket connection the host link needs.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// command is sent to the host.
type command struct {
	ID string `json:"id"`
	Op string `json:"op"`
}

// hostMessage is anything the host sends: a reply to is_visible, or an
// event (hotkey, focus).
type hostMessage struct {
	ID      string `json:"id,omitempty"`
	Visible *bool  `json:"visible,omitempty"`
	Event   string `json:"event,omitempty"`
	Focused *bool  `json:"focused,omitempty"`
}

// HostWindow implements visibility.Window by forwarding commands to the
// host over its websocket. Only one host is attached at a time; a new
// connection replaces the old one.
type HostWindow struct {
	log     zerolog.Logger
	timeout time.Duration

	mu      sync.Mutex
	conn    Conn
	pending map[string]chan bool

	writeMu sync.Mutex
}

var _ visibility.Window = (*HostWindow)(nil)

func NewHostWindow(log zerolog.Logger, replyTimeout time.Duration) *HostWindow {
	if replyTimeout <= 0 {
		replyTimeout = defaultReplyTimeout
	}
	return &HostWindow{
		log:     log,
		timeout: replyTimeout,
		pending: make(map[string]chan bool),
	}
}

func (h *HostWindow) Show() error   { return h.send("show") }
func (h *HostWindow) Hide() error   { return h.send("hide") }
func (h *HostWindow) Center() error { return h.send("center") }
func (h *HostWindow) Focus() error  { return h.send("focus") }

// IsVisible asks the host and waits for its reply.
func (h *HostWindow) IsVisible() (bool, error) {
	id := uuid.NewString()
	reply := make(chan bool, 1)

	h.mu.Lock()
	h.pending[id] = reply
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.pending, id)
		h.mu.Unlock()
	}()

	if err := h.write(command{ID: id, Op: "is_visible"}); err != nil {
		return false, err
	}

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()
	select {
	case v := <-reply:
		return v, nil
	case <-timer.C:
		return false, fmt.Errorf("is_visible: no reply within %s", h.timeout)
	}
}

// Connected reports whether a host is attached.
func (h *HostWindow) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn != nil
}

// Serve attaches conn and reads from it until it fails. Events are passed
// to onEvent in arrival order.
func (h *HostWindow) Serve(conn Conn, onEvent func(visibility.Event)) {
	h.mu.Lock()
	prev := h.conn
	h.conn = conn
	h.mu.Unlock()
	if prev != nil {
		h.log.Info().Msg("host reconnected, dropping previous connection")
		prev.Close()
	}

	defer func() {
		h.mu.Lock()
		if h.conn == conn {
			h.conn = nil
		}
		h.mu.Unlock()
		conn.Close()
	}()

	h.log.Info().Msg("host connected")
	for {
		var msg hostMessage
		if err := conn.ReadJSON(&msg); err != nil {
			h.log.Info().Err(err).Msg("host disconnected")
			return
		}
		h.handle(msg, onEvent)
	}
}

func (h *HostWindow) handle(msg hostMessage, onEvent func(visibility.Event)) {
	if msg.ID != "" && msg.Visible != nil {
		h.mu.Lock()
		reply, ok := h.pending[msg.ID]
		h.mu.Unlock()
		if ok {
			select {
			case reply <- *msg.Visible:
			default:
			}
		} else {
			h.log.Debug().Str("id", msg.ID).Msg("late is_visible reply dropped")
		}
		return
	}

	switch msg.Event {
	case "hotkey":
		onEvent(visibility.HotkeyPressed)
	case "focus":
		if msg.Focused != nil && !*msg.Focused {
			onEvent(visibility.FocusLost)
		}
	case "":
		h.log.Warn().Msg("host message without id or event")
	default:
		h.log.Warn().Str("event", msg.Event).Msg("unknown host event")
	}
}

func (h *HostWindow) send(op string) error {
	return h.write(command{ID: uuid.NewString(), Op: op})
}

func (h *HostWindow) write(cmd command) error {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn == nil {
		return ErrNoHost
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("%s: %w", cmd.Op, err)
	}
	return nil
}
