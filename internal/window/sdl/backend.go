// Package sdl implements the windowing capability on top of SDL2
// (veandco/go-sdl2). SDL owns its own event loop and delivers close
// requests natively, so unlike the X11 backend there is no protocol
// handshake to register; the work here is event normalization and the
// texture-backed surface.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/bryanchriswhite/sash/internal/event"
	"github.com/bryanchriswhite/sash/internal/logger"
	"github.com/bryanchriswhite/sash/internal/window"
)

const backendName = "sdl"

// Backend wraps SDL's process-wide video subsystem.
type Backend struct {
	initialized bool
}

type sdlWindow struct {
	winState
	backend *Backend
	win     *sdl.Window
	closed  bool
}

func (w *sdlWindow) Backend() string { return backendName }

// Init brings up the SDL video subsystem. Fails with
// window.ErrConnectionFailed when no display is reachable.
func Init() (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("%w: %v", window.ErrConnectionFailed, err)
	}
	return &Backend{initialized: true}, nil
}

// Name returns the backend name.
func (b *Backend) Name() string { return backendName }

// CreateWindow creates and shows a resizable top-level window. SDL
// reports user-initiated close through its own event stream, which
// PollEvents surfaces as CloseRequested.
func (b *Backend) CreateWindow(title string, dims window.Dims) (window.Window, error) {
	win, err := sdl.CreateWindow(
		title,
		dims.X, dims.Y,
		int32(dims.Width), int32(dims.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", window.ErrWindowCreation, err)
	}
	id, err := win.GetID()
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("%w: window id: %v", window.ErrWindowCreation, err)
	}

	logger.WithComponent("sdl").Info().
		Uint32("window", id).
		Str("title", title).
		Msg("Created window")

	return &sdlWindow{
		winState: winState{id: id},
		backend:  b,
		win:      win,
	}, nil
}

func (b *Backend) window(win window.Window) (*sdlWindow, error) {
	sw, ok := win.(*sdlWindow)
	if !ok || sw.backend != b {
		return nil, window.ErrForeignWindow
	}
	if sw.closed {
		return nil, window.ErrWindowClosed
	}
	return sw, nil
}

// PollEvents drains SDL's event queue, translating events addressed to
// win into the normalized model. Never blocks.
//
// SDL keeps one process-global queue, so the drain consumes events for
// every window and discards those not addressed to win. This backend
// therefore supports a single open window at a time; a second window
// would lose whatever arrives while another window is polled.
func (b *Backend) PollEvents(win window.Window, queue *event.Queue) error {
	sw, err := b.window(win)
	if err != nil {
		return err
	}
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if evt, ok := translate(ev, &sw.winState); ok {
			queue.Push(evt)
		}
	}
	return nil
}

// SetSize resizes the window.
func (b *Backend) SetSize(win window.Window, width, height uint32) error {
	sw, err := b.window(win)
	if err != nil {
		return err
	}
	sw.win.SetSize(int32(width), int32(height))
	return nil
}

// SetPosition moves the window.
func (b *Backend) SetPosition(win window.Window, x, y int32) error {
	sw, err := b.window(win)
	if err != nil {
		return err
	}
	sw.win.SetPosition(x, y)
	return nil
}

// Size returns the current window size in physical pixels.
func (b *Backend) Size(win window.Window) (uint32, uint32, error) {
	sw, err := b.window(win)
	if err != nil {
		return 0, 0, err
	}
	w, h := sw.win.GetSize()
	return uint32(w), uint32(h), nil
}

// Present is a no-op: SDL has no client-side request queue to flush and
// frame compositing belongs to the surface.
func (b *Backend) Present() {}

// Close destroys the native window and invalidates the handle.
func (b *Backend) Close(win window.Window) error {
	sw, err := b.window(win)
	if err != nil {
		return err
	}
	sw.closed = true
	if err := sw.win.Destroy(); err != nil {
		return fmt.Errorf("destroy window: %w", err)
	}
	return nil
}

// Shutdown tears down the SDL video subsystem.
func (b *Backend) Shutdown() error {
	if b.initialized {
		sdl.Quit()
		b.initialized = false
	}
	return nil
}
