// Package window defines the capability contract a windowing backend must
// satisfy: backend lifecycle, window creation and destruction, non-blocking
// event polling into a queue, geometry access, and presentation. Two
// heterogeneous backends implement it (X11 and SDL); the application
// driver composes one of them with a drawing backend.
package window

import (
	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/event"
)

// Dims is the requested creation geometry for a top-level window.
type Dims struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

// Window is an opaque handle owned by the backend that created it. A
// handle is only valid with its own backend instance; operations on a
// window from another backend fail with ErrForeignWindow.
type Window interface {
	// Backend reports the name of the backend that owns this window.
	Backend() string
}

// Backend is the windowing capability.
//
// The model is single-threaded and non-blocking: PollEvents drains
// whatever native events are already available and returns immediately,
// leaving cadence to the caller's own loop. No operation blocks waiting
// for new events.
type Backend interface {
	// Name returns the backend name (e.g. "x11", "sdl").
	Name() string

	// CreateWindow creates and maps a top-level window at the requested
	// geometry, registering the native close handshake so user-initiated
	// close surfaces as a CloseRequested event.
	CreateWindow(title string, dims Dims) (Window, error)

	// PollEvents drains all currently available native events for win into
	// queue, translated to the normalized event model. Pending output is
	// flushed before and after the drain. Per-event translation failures
	// are dropped, never returned.
	PollEvents(win Window, queue *event.Queue) error

	// SetSize resizes the window. Best effort; backends that cannot
	// support it return an *UnsupportedError.
	SetSize(win Window, width, height uint32) error

	// SetPosition moves the window. Best effort; backends that cannot
	// support it return an *UnsupportedError.
	SetPosition(win Window, x, y int32) error

	// Size returns the current window size in physical pixels.
	Size(win Window) (width, height uint32, err error)

	// Present flushes the native connection so any pending requests reach
	// the display server. Frame compositing belongs to the drawing side.
	Present()

	// Close releases the native window. The handle is invalid afterwards.
	Close(win Window) error

	// Shutdown releases the backend's connection state. All windows must
	// be closed first.
	Shutdown() error
}

// SurfaceCreator is the bridge between a windowing backend and the drawing
// side: it binds a drawing surface to a native window, choosing a visual /
// pixel format compatible with the engine's RGBA layout.
type SurfaceCreator interface {
	CreateSurface(win Window) (drawing.Surface, error)
}
