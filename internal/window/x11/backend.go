// Package x11 implements the windowing capability on top of the X11
// protocol via XCB-style requests (BurntSushi/xgb). It owns the display
// connection, translates raw X events into the normalized event model,
// and exposes the typed property marshalling layer used for the window
// manager handshake.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/bryanchriswhite/sash/internal/event"
	"github.com/bryanchriswhite/sash/internal/logger"
	"github.com/bryanchriswhite/sash/internal/window"
)

const backendName = "x11"

// Backend holds the X server connection and the process-wide state shared
// by all windows: the default screen, the close-handshake atoms, and the
// 32-bit visual used for translucent drawing. The visual record is owned
// by the backend for its whole lifetime so native calls can reference it
// without any leaked allocation.
type Backend struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo

	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom

	visual      xproto.VisualInfo
	visualDepth byte

	// Atom cache; single-threaded access, no lock needed.
	atoms map[string]xproto.Atom
}

type x11Window struct {
	winState
	backend *Backend
	closed  bool
}

func (w *x11Window) Backend() string { return backendName }

// Init connects to the X server and prepares the shared window state.
// It fails with window.ErrConnectionFailed when no display is reachable.
func Init() (*Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", window.ErrConnectionFailed, err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	b := &Backend{
		conn:   conn,
		setup:  setup,
		screen: screen,
		atoms:  make(map[string]xproto.Atom),
	}

	b.wmProtocols, err = b.Atom("WM_PROTOCOLS")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: intern WM_PROTOCOLS: %v", window.ErrConnectionFailed, err)
	}
	b.wmDeleteWindow, err = b.Atom("WM_DELETE_WINDOW")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: intern WM_DELETE_WINDOW: %v", window.ErrConnectionFailed, err)
	}

	b.visual, b.visualDepth = findVisual(screen)
	logger.WithComponent("x11").Debug().
		Uint32("visual", uint32(b.visual.VisualId)).
		Uint8("depth", b.visualDepth).
		Msg("Selected visual")

	return b, nil
}

// findVisual picks a 32-bit TrueColor visual so windows support an alpha
// channel. Falls back to the root visual when the screen has no 32-bit
// depth.
func findVisual(screen *xproto.ScreenInfo) (xproto.VisualInfo, byte) {
	for _, d := range screen.AllowedDepths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.RedMask == 0xff0000 && v.GreenMask == 0xff00 && v.BlueMask == 0xff {
				return v, d.Depth
			}
		}
		if len(d.Visuals) > 0 {
			return d.Visuals[0], d.Depth
		}
	}
	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == screen.RootVisual {
				return v, d.Depth
			}
		}
	}
	return xproto.VisualInfo{VisualId: screen.RootVisual}, screen.RootDepth
}

// Name returns the backend name.
func (b *Backend) Name() string { return backendName }

// Atom resolves an atom name, caching replies. Implements AtomInterner.
func (b *Backend) Atom(name string) (xproto.Atom, error) {
	if atom, ok := b.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(b.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %q: %w", name, err)
	}
	b.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// CreateWindow creates and maps a top-level window at the requested
// geometry and registers the WM_DELETE_WINDOW handshake so a user close
// arrives as a CloseRequested event instead of destroying the window
// behind our back.
func (b *Backend) CreateWindow(title string, dims window.Dims) (window.Window, error) {
	wid, err := xproto.NewWindowId(b.conn)
	if err != nil {
		return nil, fmt.Errorf("%w: allocate window id: %v", window.ErrWindowCreation, err)
	}

	colormap := b.screen.DefaultColormap
	if b.screen.RootDepth != b.visualDepth {
		// The root colormap only matches the root visual; a depth-32
		// window needs its own.
		cmid, err := xproto.NewColormapId(b.conn)
		if err != nil {
			return nil, fmt.Errorf("%w: allocate colormap id: %v", window.ErrWindowCreation, err)
		}
		err = xproto.CreateColormapChecked(
			b.conn,
			xproto.ColormapAllocNone,
			cmid,
			b.screen.Root,
			b.visual.VisualId,
		).Check()
		if err != nil {
			return nil, fmt.Errorf("%w: create colormap: %v", window.ErrWindowCreation, err)
		}
		colormap = cmid
	}

	const eventMask = xproto.EventMaskExposure |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskStructureNotify

	// Value list order follows the mask's bit order. The border pixel is
	// required for depth-32 windows.
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap)
	values := []uint32{
		b.screen.BlackPixel,
		b.screen.BlackPixel,
		eventMask,
		uint32(colormap),
	}

	err = xproto.CreateWindowChecked(
		b.conn,
		b.visualDepth,
		wid,
		b.screen.Root,
		int16(dims.X), int16(dims.Y),
		uint16(dims.Width), uint16(dims.Height),
		0,
		xproto.WindowClassInputOutput,
		b.visual.VisualId,
		mask,
		values,
	).Check()
	if err != nil {
		return nil, fmt.Errorf("%w: create window: %v", window.ErrWindowCreation, err)
	}

	if err := SetProperty(b, wid, b.wmProtocols, AtomCodec, []xproto.Atom{b.wmDeleteWindow}); err != nil {
		return nil, fmt.Errorf("%w: register close handshake: %v", window.ErrWindowCreation, err)
	}

	if err := b.setTitle(wid, title); err != nil {
		logger.WithComponent("x11").Warn().Err(err).Msg("Failed to set window title")
	}

	if err := xproto.MapWindowChecked(b.conn, wid).Check(); err != nil {
		return nil, fmt.Errorf("%w: map window: %v", window.ErrWindowCreation, err)
	}
	b.conn.Sync()

	logger.WithComponent("x11").Info().
		Uint32("window", uint32(wid)).
		Str("title", title).
		Msg("Created and mapped window")

	return &x11Window{
		winState: winState{
			id:    wid,
			lastW: uint16(dims.Width),
			lastH: uint16(dims.Height),
		},
		backend: b,
	}, nil
}

// setTitle publishes the window title as both _NET_WM_NAME (UTF-8) and
// the legacy WM_NAME (Latin-1) through the property layer.
func (b *Backend) setTitle(win xproto.Window, title string) error {
	netWMName, err := b.Atom("_NET_WM_NAME")
	if err != nil {
		return err
	}
	if err := SetProperty(b, win, netWMName, UTF8StringCodec, []string{title}); err != nil {
		return err
	}
	return SetProperty(b, win, xproto.AtomWmName, Latin1StringCodec, []Latin1String{Latin1String(title)})
}

// window checks that the handle belongs to this backend and is still open.
func (b *Backend) window(win window.Window) (*x11Window, error) {
	xw, ok := win.(*x11Window)
	if !ok || xw.backend != b {
		return nil, window.ErrForeignWindow
	}
	if xw.closed {
		return nil, window.ErrWindowClosed
	}
	return xw, nil
}

// PollEvents drains every native event already available on the
// connection, translates the ones addressed to win, and pushes the result
// into queue. The connection is flushed before and after the drain so
// event delivery never queues behind unsent requests. The call does not
// block waiting for new events.
func (b *Backend) PollEvents(win window.Window, queue *event.Queue) error {
	xw, err := b.window(win)
	if err != nil {
		return err
	}
	log := logger.WithComponent("x11")

	b.conn.Sync()
	for {
		ev, xerr := b.conn.PollForEvent()
		if ev == nil && xerr == nil {
			break
		}
		if xerr != nil {
			// Per-event errors are local; the drain continues.
			log.Debug().Str("error", xerr.Error()).Msg("X error during event drain")
			continue
		}
		if evt, ok := translate(ev, &xw.winState, b.wmProtocols, b.wmDeleteWindow); ok {
			queue.Push(evt)
		}
	}
	b.conn.Sync()
	return nil
}

// SetSize resizes the window via ConfigureWindow.
func (b *Backend) SetSize(win window.Window, width, height uint32) error {
	xw, err := b.window(win)
	if err != nil {
		return err
	}
	return b.configureWindow(xw.id, ConfigWidth(width), ConfigHeight(height))
}

// SetPosition moves the window via ConfigureWindow.
func (b *Backend) SetPosition(win window.Window, x, y int32) error {
	xw, err := b.window(win)
	if err != nil {
		return err
	}
	return b.configureWindow(xw.id, ConfigX(x), ConfigY(y))
}

// Size returns the current window size in physical pixels.
func (b *Backend) Size(win window.Window) (uint32, uint32, error) {
	xw, err := b.window(win)
	if err != nil {
		return 0, 0, err
	}
	geom, err := xproto.GetGeometry(b.conn, xproto.Drawable(xw.id)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("get geometry: %w", err)
	}
	return uint32(geom.Width), uint32(geom.Height), nil
}

// Present flushes the connection. Compositing is owned by the drawing
// side; this only makes sure pending requests reach the server.
func (b *Backend) Present() {
	b.conn.Sync()
}

// Close destroys the native window and invalidates the handle.
func (b *Backend) Close(win window.Window) error {
	xw, err := b.window(win)
	if err != nil {
		return err
	}
	xw.closed = true
	if err := xproto.DestroyWindowChecked(b.conn, xw.id).Check(); err != nil {
		return fmt.Errorf("destroy window: %w", err)
	}
	b.conn.Sync()
	return nil
}

// Shutdown closes the X server connection.
func (b *Backend) Shutdown() error {
	b.conn.Close()
	return nil
}
