package visibility

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/valpere/promptlight/internal/metrics"
)

type envelope struct {
	event Event
	done  chan State
}

// Controller is the visibility state machine.
type Controller struct {
	win    Window
	log    zerolog.Logger
	events chan envelope

	// applyMu serializes transitions. state is read without it so that
	// State never waits on a host round-trip.
	applyMu sync.Mutex
	state   atomic.Int32
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithInitialState sets the state assumed before the first event.
func WithInitialState(s State) Option {
	return func(c *Controller) { c.state.Store(int32(s)) }
}

// WithQueueSize sets the event channel capacity.
func WithQueueSize(n int) Option {
	return func(c *Controller) { c.events = make(chan envelope, n) }
}

func New(win Window, opts ...Option) *Controller {
	c := &Controller{
		win:    win,
		log:    zerolog.Nop(),
		events: make(chan envelope, 16),
	}
	c.state.Store(int32(Hidden))
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run applies queued events in arrival order until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-c.events:
			s := c.Apply(env.event)
			if env.done != nil {
				env.done <- s
			}
		}
	}
}

// Post queues an event without waiting for it to be applied.
func (c *Controller) Post(ctx context.Context, ev Event) error {
	select {
	case c.events <- envelope{event: ev}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch queues an event and waits until Run has applied it.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (State, error) {
	done := make(chan State, 1)
	select {
	case c.events <- envelope{event: ev, done: done}:
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
	select {
	case s := <-done:
		return s, nil
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}

// State returns the last decided visibility.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Apply performs one transition synchronously. Run calls it for queued
// events; it is exported for hosts that already deliver events serially.
func (c *Controller) Apply(ev Event) State {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	switch ev {
	case HotkeyPressed:
		if c.queryVisible() {
			c.hide()
		} else {
			c.show()
		}
	case FocusLost, HideRequested:
		c.hide()
	case ShowRequested:
		c.show()
	default:
		c.log.Warn().Int("event", int(ev)).Msg("ignoring unknown visibility event")
		return c.State()
	}

	state := c.State()
	metrics.IncTransition(ev.String(), state.String())
	c.log.Debug().Stringer("event", ev).Stringer("state", state).Msg("visibility transition")
	return state
}

// queryVisible asks the host. A failed query counts as hidden so the hotkey
// always brings the window up.
func (c *Controller) queryVisible() bool {
	visible, err := c.win.IsVisible()
	if err != nil {
		c.failed("is_visible", err)
		return false
	}
	return visible
}

// show issues Show, Center, Focus in that order so the focus gain that
// follows does not race a stale blur.
func (c *Controller) show() {
	c.do("show", c.win.Show)
	c.do("center", c.win.Center)
	c.do("focus", c.win.Focus)
	c.state.Store(int32(Visible))
}

func (c *Controller) hide() {
	c.do("hide", c.win.Hide)
	c.state.Store(int32(Hidden))
}

func (c *Controller) do(op string, fn func() error) {
	if err := fn(); err != nil {
		c.failed(op, err)
	}
}

func (c *Controller) failed(op string, err error) {
	metrics.IncHostFailure(op)
	c.log.Warn().Err(err).Str("op", op).Msg("window command failed")
}
