// Package event defines the normalized window event vocabulary shared by
// all windowing backends. Backends translate their native event streams
// into these types; anything a backend cannot express here is dropped.
package event

// Point is a position in the windowing system's physical pixel space.
type Point struct {
	X float64
	Y float64
}

// PressState describes one side of a physical button transition.
type PressState uint8

const (
	Pressed PressState = iota
	Released
)

func (s PressState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a mapped mouse button. Native button codes outside
// this set cause the whole event to be dropped rather than emitting an
// "unknown" variant.
type MouseButton uint8

const (
	Left MouseButton = iota
	Right
	Middle
)

func (b MouseButton) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "middle"
	}
}

// WindowEvent is the unified event type. Exactly one concrete variant is
// active at a time; the set of variants is sealed to this package.
type WindowEvent interface {
	windowEvent()
}

// CloseRequested reports a user-initiated close (window manager handshake).
// The window stays valid until Close is called on it.
type CloseRequested struct{}

// CloseHappened reports that the native window has been destroyed.
type CloseHappened struct{}

// ResizeHappened reports the new window size in physical pixels.
type ResizeHappened struct {
	Width  float64
	Height float64
}

// MouseMove reports a pointer motion inside the window.
type MouseMove struct {
	Pos Point
}

// MouseClick reports a button transition. Pos always carries the most
// recent MouseMove position observed on the same window; native click
// payloads are never used because not every windowing protocol attaches
// coordinates to button events.
type MouseClick struct {
	State  PressState
	Button MouseButton
	Pos    Point
}

// MouseEnter reports the pointer entering the window.
type MouseEnter struct{}

// MouseExit reports the pointer leaving the window.
type MouseExit struct{}

// Keyboard reports a key transition with the backend's raw keycode.
type Keyboard struct {
	State   PressState
	Keycode uint32
}

// Expose reports that a window region must be repainted.
type Expose struct{}

func (CloseRequested) windowEvent() {}
func (CloseHappened) windowEvent()  {}
func (ResizeHappened) windowEvent() {}
func (MouseMove) windowEvent()      {}
func (MouseClick) windowEvent()     {}
func (MouseEnter) windowEvent()     {}
func (MouseExit) windowEvent()      {}
func (Keyboard) windowEvent()       {}
func (Expose) windowEvent()         {}
