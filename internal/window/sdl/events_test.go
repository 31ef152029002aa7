package sdl

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/bryanchriswhite/sash/internal/event"
)

const (
	testWinID  uint32 = 7
	otherWinID uint32 = 8
)

func TestQuitRequestsClose(t *testing.T) {
	st := &winState{id: testWinID}

	ev, ok := translate(&sdl.QuitEvent{}, st)
	if !ok {
		t.Fatal("quit dropped")
	}
	if _, ok := ev.(event.CloseRequested); !ok {
		t.Errorf("got %T, want CloseRequested", ev)
	}
}

func TestWindowEventMapping(t *testing.T) {
	st := &winState{id: testWinID}

	tests := []struct {
		name    string
		subtype uint8
		data1   int32
		data2   int32
		check   func(t *testing.T, ev event.WindowEvent)
	}{
		{
			name:    "close",
			subtype: sdl.WINDOWEVENT_CLOSE,
			check: func(t *testing.T, ev event.WindowEvent) {
				if _, ok := ev.(event.CloseRequested); !ok {
					t.Errorf("got %T, want CloseRequested", ev)
				}
			},
		},
		{
			name:    "size changed",
			subtype: sdl.WINDOWEVENT_SIZE_CHANGED,
			data1:   320,
			data2:   240,
			check: func(t *testing.T, ev event.WindowEvent) {
				resize, ok := ev.(event.ResizeHappened)
				if !ok {
					t.Fatalf("got %T, want ResizeHappened", ev)
				}
				if resize.Width != 320 || resize.Height != 240 {
					t.Errorf("got %+v, want 320x240", resize)
				}
			},
		},
		{
			name:    "enter",
			subtype: sdl.WINDOWEVENT_ENTER,
			check: func(t *testing.T, ev event.WindowEvent) {
				if _, ok := ev.(event.MouseEnter); !ok {
					t.Errorf("got %T, want MouseEnter", ev)
				}
			},
		},
		{
			name:    "leave",
			subtype: sdl.WINDOWEVENT_LEAVE,
			check: func(t *testing.T, ev event.WindowEvent) {
				if _, ok := ev.(event.MouseExit); !ok {
					t.Errorf("got %T, want MouseExit", ev)
				}
			},
		},
		{
			name:    "exposed",
			subtype: sdl.WINDOWEVENT_EXPOSED,
			check: func(t *testing.T, ev event.WindowEvent) {
				if _, ok := ev.(event.Expose); !ok {
					t.Errorf("got %T, want Expose", ev)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := translate(&sdl.WindowEvent{
				WindowID: testWinID,
				Event:    tt.subtype,
				Data1:    tt.data1,
				Data2:    tt.data2,
			}, st)
			if !ok {
				t.Fatal("event dropped")
			}
			tt.check(t, ev)
		})
	}
}

func TestUnmappedWindowSubtypeDropped(t *testing.T) {
	st := &winState{id: testWinID}

	if _, ok := translate(&sdl.WindowEvent{
		WindowID: testWinID,
		Event:    sdl.WINDOWEVENT_MINIMIZED,
	}, st); ok {
		t.Error("minimize should be dropped")
	}
}

func TestClickUsesCachedCursor(t *testing.T) {
	st := &winState{id: testWinID}

	if _, ok := translate(&sdl.MouseMotionEvent{
		WindowID: testWinID,
		X:        60,
		Y:        25,
	}, st); !ok {
		t.Fatal("motion dropped")
	}

	// Native click coordinates differ from the cache; the cached position
	// wins on every backend.
	ev, ok := translate(&sdl.MouseButtonEvent{
		WindowID: testWinID,
		Button:   sdl.BUTTON_LEFT,
		State:    sdl.PRESSED,
		X:        999,
		Y:        999,
	}, st)
	if !ok {
		t.Fatal("click dropped")
	}

	click := ev.(event.MouseClick)
	if click.State != event.Pressed || click.Button != event.Left {
		t.Errorf("got %+v, want pressed Left", click)
	}
	if click.Pos != (event.Point{X: 60, Y: 25}) {
		t.Errorf("pos = %+v, want cached (60, 25)", click.Pos)
	}
}

func TestButtonMapping(t *testing.T) {
	tests := []struct {
		button uint8
		want   event.MouseButton
		ok     bool
	}{
		{sdl.BUTTON_LEFT, event.Left, true},
		{sdl.BUTTON_MIDDLE, event.Middle, true},
		{sdl.BUTTON_RIGHT, event.Right, true},
		{sdl.BUTTON_X1, 0, false},
		{sdl.BUTTON_X2, 0, false},
	}
	for _, tt := range tests {
		got, ok := mapButton(tt.button)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("mapButton(%d) = (%v, %v), want (%v, %v)",
				tt.button, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyboardScancode(t *testing.T) {
	st := &winState{id: testWinID}

	ev, ok := translate(&sdl.KeyboardEvent{
		WindowID: testWinID,
		State:    sdl.RELEASED,
		Keysym:   sdl.Keysym{Scancode: sdl.SCANCODE_A},
	}, st)
	if !ok {
		t.Fatal("key event dropped")
	}

	kb := ev.(event.Keyboard)
	if kb.State != event.Released {
		t.Errorf("state = %v, want Released", kb.State)
	}
	if kb.Keycode != uint32(sdl.SCANCODE_A) {
		t.Errorf("keycode = %d, want %d", kb.Keycode, sdl.SCANCODE_A)
	}
}

func TestOtherWindowEventsDropped(t *testing.T) {
	st := &winState{id: testWinID}

	if _, ok := translate(&sdl.MouseMotionEvent{
		WindowID: otherWinID,
		X:        1,
		Y:        1,
	}, st); ok {
		t.Error("motion for another window should be dropped")
	}
	if st.cursor != (event.Point{}) {
		t.Errorf("cursor cache mutated by foreign event: %+v", st.cursor)
	}
}
