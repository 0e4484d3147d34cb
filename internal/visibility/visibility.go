// Package visibility decides when the application window is shown or hidden.
//
// The host window delivers hotkey and focus events; the UI issues explicit
// show/hide requests. All of them go through one channel and are applied by a
// single goroutine, so two transitions never run at the same time.
package visibility

// State is the window visibility.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Event is an input to the controller.
type Event int

const (
	HotkeyPressed Event = iota
	FocusLost
	ShowRequested
	HideRequested
)

func (e Event) String() string {
	switch e {
	case HotkeyPressed:
		return "hotkey"
	case FocusLost:
		return "focus_lost"
	case ShowRequested:
		return "show"
	case HideRequested:
		return "hide"
	default:
		return "unknown"
	}
}

// Window is the set of operations the host performs on command.
// Each call is best effort.
type Window interface {
	Show() error
	Hide() error
	Center() error
	Focus() error
	IsVisible() (bool, error)
}
