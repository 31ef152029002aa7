// Package app drives one window and one drawing backend as a unit: it
// owns the event queue, keeps the drawing surface sized to the window,
// and hands normalized events to the host loop.
package app

import (
	"fmt"

	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/drawing/ggdraw"
	"github.com/bryanchriswhite/sash/internal/event"
	"github.com/bryanchriswhite/sash/internal/logger"
	"github.com/bryanchriswhite/sash/internal/window"
)

// System is what the driver needs from the windowing side: the full
// backend contract plus surface creation. Both compiled-in backends
// satisfy it.
type System interface {
	window.Backend
	window.SurfaceCreator
}

// DrawerFactory builds a drawing backend over a freshly created surface.
type DrawerFactory func(surface drawing.Surface) (drawing.Backend, error)

// App composes one window, its surface, and a drawing backend.
// Single-threaded; all methods must be called from the same goroutine.
type App struct {
	sys    System
	win    window.Window
	drawer drawing.Backend
	queue  *event.Queue

	frameW float64
	frameH float64
}

// New assembles an App with the default vector engine over sys.
func New(sys System, title string, dims window.Dims, font drawing.FontConfig) (*App, error) {
	return NewWithDrawer(sys, title, dims, func(surface drawing.Surface) (drawing.Backend, error) {
		return ggdraw.New(surface, font)
	})
}

// NewWithDrawer assembles an App with a caller-supplied drawing engine.
// The engine takes ownership of the surface.
func NewWithDrawer(sys System, title string, dims window.Dims, factory DrawerFactory) (*App, error) {
	win, err := sys.CreateWindow(title, dims)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	surface, err := sys.CreateSurface(win)
	if err != nil {
		sys.Close(win)
		return nil, fmt.Errorf("create surface: %w", err)
	}

	drawer, err := factory(surface)
	if err != nil {
		surface.Close()
		sys.Close(win)
		return nil, fmt.Errorf("create drawer: %w", err)
	}

	w, h := surface.Size()

	logger.WithComponent("app").Info().
		Str("backend", sys.Name()).
		Str("title", title).
		Int("width", w).
		Int("height", h).
		Msg("Application assembled")

	return &App{
		sys:    sys,
		win:    win,
		drawer: drawer,
		queue:  event.NewQueue(),
		frameW: float64(w),
		frameH: float64(h),
	}, nil
}

// PollEvents drains the backend's pending events and hands each one to
// fn. On ResizeHappened the surface and cached frame dimensions are
// updated before fn observes the event, so fn always draws against the
// new geometry. A poll error is returned after delivering whatever was
// already queued.
func (a *App) PollEvents(fn func(event.WindowEvent)) error {
	pollErr := a.sys.PollEvents(a.win, a.queue)

	for {
		ev, ok := a.queue.Pop()
		if !ok {
			break
		}
		if resize, ok := ev.(event.ResizeHappened); ok {
			a.frameW = resize.Width
			a.frameH = resize.Height
			a.drawer.ResizeSurface(resize.Width, resize.Height)
		}
		fn(ev)
	}

	if pollErr != nil {
		return fmt.Errorf("poll events: %w", pollErr)
	}
	return nil
}

// Drawer exposes the drawing backend for the host's frame rendering.
func (a *App) Drawer() drawing.Backend { return a.drawer }

// FrameDims returns the current frame dimensions in physical pixels.
func (a *App) FrameDims() (width, height float64) {
	return a.frameW, a.frameH
}

// Window exposes the underlying window handle.
func (a *App) Window() window.Window { return a.win }

// Present flushes the windowing backend's pending native requests.
func (a *App) Present() { a.sys.Present() }

// Close tears down the drawer (and with it the surface), then the
// window. The backend itself stays up for the caller to shut down.
func (a *App) Close() error {
	var firstErr error
	if err := a.drawer.Close(); err != nil {
		firstErr = fmt.Errorf("close drawer: %w", err)
	}
	if err := a.sys.Close(a.win); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close window: %w", err)
	}
	return firstErr
}
