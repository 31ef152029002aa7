package app

import (
	"errors"
	"image"
	"testing"

	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/event"
	"github.com/bryanchriswhite/sash/internal/window"
)

type fakeWindow struct{}

func (fakeWindow) Backend() string { return "fake" }

// fakeSystem scripts the events PollEvents delivers and records calls.
type fakeSystem struct {
	scripted []event.WindowEvent
	pollErr  error

	width, height uint32
	windowsClosed int
	shutdown      bool
}

func (f *fakeSystem) Name() string { return "fake" }

func (f *fakeSystem) CreateWindow(title string, dims window.Dims) (window.Window, error) {
	f.width, f.height = dims.Width, dims.Height
	return fakeWindow{}, nil
}

func (f *fakeSystem) PollEvents(win window.Window, queue *event.Queue) error {
	for _, ev := range f.scripted {
		queue.Push(ev)
	}
	f.scripted = nil
	return f.pollErr
}

func (f *fakeSystem) SetSize(win window.Window, w, h uint32) error {
	f.width, f.height = w, h
	return nil
}

func (f *fakeSystem) SetPosition(win window.Window, x, y int32) error { return nil }

func (f *fakeSystem) Size(win window.Window) (uint32, uint32, error) {
	return f.width, f.height, nil
}

func (f *fakeSystem) Present() {}

func (f *fakeSystem) Close(win window.Window) error {
	f.windowsClosed++
	return nil
}

func (f *fakeSystem) Shutdown() error {
	f.shutdown = true
	return nil
}

func (f *fakeSystem) CreateSurface(win window.Window) (drawing.Surface, error) {
	return &fakeSurface{w: int(f.width), h: int(f.height)}, nil
}

type fakeSurface struct {
	w, h   int
	closed bool
}

func (s *fakeSurface) Present(img *image.RGBA) error { return nil }
func (s *fakeSurface) Resize(w, h int) error         { s.w, s.h = w, h; return nil }
func (s *fakeSurface) Size() (int, int)              { return s.w, s.h }
func (s *fakeSurface) Close() error                  { s.closed = true; return nil }

// fakeDrawer records resize calls so tests can check ordering against
// event delivery.
type fakeDrawer struct {
	surface drawing.Surface
	resizes [][2]float64
	closed  bool
}

func (d *fakeDrawer) ResizeSurface(w, h float64) {
	d.resizes = append(d.resizes, [2]float64{w, h})
	d.surface.Resize(int(w), int(h))
}

func (d *fakeDrawer) MoveTo(x, y float64)                      {}
func (d *fakeDrawer) LineTo(x, y float64)                      {}
func (d *fakeDrawer) NewPath()                                 {}
func (d *fakeDrawer) NewSubPath()                              {}
func (d *fakeDrawer) Arc(xc, yc, r, a1, a2 float64)            {}
func (d *fakeDrawer) Rect(x, y, w, h float64)                  {}
func (d *fakeDrawer) SetLineWidth(w float64)                   {}
func (d *fakeDrawer) SetSourceRGBA(r, g, b, a float64)         {}
func (d *fakeDrawer) Stroke()                                  {}
func (d *fakeDrawer) Fill()                                    {}
func (d *fakeDrawer) Paint()                                   {}
func (d *fakeDrawer) Clear()                                   {}
func (d *fakeDrawer) FontExtents() drawing.FontExtents         { return drawing.FontExtents{} }
func (d *fakeDrawer) TextExtents(s string) drawing.TextExtents { return drawing.TextExtents{} }
func (d *fakeDrawer) DrawText(s string)                        {}
func (d *fakeDrawer) Present()                                 {}

func (d *fakeDrawer) Close() error {
	d.closed = true
	return d.surface.Close()
}

func newFakeApp(t *testing.T, sys *fakeSystem) (*App, *fakeDrawer) {
	t.Helper()
	var drawer *fakeDrawer
	a, err := NewWithDrawer(sys, "test", window.Dims{Width: 320, Height: 240},
		func(surface drawing.Surface) (drawing.Backend, error) {
			drawer = &fakeDrawer{surface: surface}
			return drawer, nil
		})
	if err != nil {
		t.Fatalf("NewWithDrawer: %v", err)
	}
	return a, drawer
}

func TestInitialFrameDims(t *testing.T) {
	a, _ := newFakeApp(t, &fakeSystem{})

	w, h := a.FrameDims()
	if w != 320 || h != 240 {
		t.Errorf("frame dims = %vx%v, want 320x240", w, h)
	}
}

func TestEventsDeliveredInOrder(t *testing.T) {
	sys := &fakeSystem{scripted: []event.WindowEvent{
		event.MouseMove{Pos: event.Point{X: 1}},
		event.MouseMove{Pos: event.Point{X: 2}},
		event.MouseClick{State: event.Pressed, Button: event.Left, Pos: event.Point{X: 2}},
	}}
	a, _ := newFakeApp(t, sys)

	var seen []event.WindowEvent
	if err := a.PollEvents(func(ev event.WindowEvent) {
		seen = append(seen, ev)
	}); err != nil {
		t.Fatalf("PollEvents: %v", err)
	}

	if len(seen) != 3 {
		t.Fatalf("delivered %d events, want 3", len(seen))
	}
	if move, ok := seen[1].(event.MouseMove); !ok || move.Pos.X != 2 {
		t.Errorf("second event = %+v, want MouseMove at x=2", seen[1])
	}
	if _, ok := seen[2].(event.MouseClick); !ok {
		t.Errorf("third event = %T, want MouseClick", seen[2])
	}
}

func TestResizeAppliedBeforeCallback(t *testing.T) {
	sys := &fakeSystem{scripted: []event.WindowEvent{
		event.ResizeHappened{Width: 640, Height: 480},
	}}
	a, drawer := newFakeApp(t, sys)

	called := false
	err := a.PollEvents(func(ev event.WindowEvent) {
		called = true
		if _, ok := ev.(event.ResizeHappened); !ok {
			t.Fatalf("got %T, want ResizeHappened", ev)
		}
		// The callback must already observe the new geometry.
		if w, h := a.FrameDims(); w != 640 || h != 480 {
			t.Errorf("frame dims inside callback = %vx%v, want 640x480", w, h)
		}
		if len(drawer.resizes) != 1 || drawer.resizes[0] != [2]float64{640, 480} {
			t.Errorf("drawer resizes inside callback = %v, want [[640 480]]", drawer.resizes)
		}
	})
	if err != nil {
		t.Fatalf("PollEvents: %v", err)
	}
	if !called {
		t.Fatal("callback never invoked")
	}
}

func TestCloseRequestedLeavesHandleValid(t *testing.T) {
	sys := &fakeSystem{scripted: []event.WindowEvent{event.CloseRequested{}}}
	a, _ := newFakeApp(t, sys)

	if err := a.PollEvents(func(event.WindowEvent) {}); err != nil {
		t.Fatalf("PollEvents: %v", err)
	}

	// A close request is advisory; the window stays usable until the host
	// decides to close.
	if sys.windowsClosed != 0 {
		t.Fatalf("window closed by driver after CloseRequested")
	}
	if _, _, err := sys.Size(a.Window()); err != nil {
		t.Errorf("handle unusable after CloseRequested: %v", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if sys.windowsClosed != 1 {
		t.Errorf("window closed %d times, want 1", sys.windowsClosed)
	}
}

func TestPollErrorReturnedAfterDelivery(t *testing.T) {
	pollErr := errors.New("connection reset")
	sys := &fakeSystem{
		scripted: []event.WindowEvent{event.Expose{}},
		pollErr:  pollErr,
	}
	a, _ := newFakeApp(t, sys)

	delivered := 0
	err := a.PollEvents(func(event.WindowEvent) { delivered++ })
	if !errors.Is(err, pollErr) {
		t.Fatalf("got %v, want wrapped poll error", err)
	}
	if delivered != 1 {
		t.Errorf("delivered %d events despite poll error, want 1", delivered)
	}
}

func TestCloseReleasesDrawerAndWindow(t *testing.T) {
	a, drawer := newFakeApp(t, &fakeSystem{})

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !drawer.closed {
		t.Error("drawer not closed")
	}
	if !drawer.surface.(*fakeSurface).closed {
		t.Error("surface not closed")
	}
}
