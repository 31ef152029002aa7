package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/bryanchriswhite/sash/internal/event"
)

// winState carries the per-window cursor cache. SDL omits nothing from
// its button payloads, but the unified contract promises the cached
// MouseMove position on clicks, so the cache is authoritative here too.
type winState struct {
	id     uint32
	cursor event.Point
}

func mapButton(button uint8) (event.MouseButton, bool) {
	switch button {
	case sdl.BUTTON_LEFT:
		return event.Left, true
	case sdl.BUTTON_RIGHT:
		return event.Right, true
	case sdl.BUTTON_MIDDLE:
		return event.Middle, true
	default:
		return 0, false
	}
}

// translate converts one raw SDL event into a normalized event, dropping
// events for other windows, unmapped window-event subtypes, and unmapped
// button codes.
func translate(ev sdl.Event, st *winState) (event.WindowEvent, bool) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return event.CloseRequested{}, true

	case *sdl.WindowEvent:
		if ev.WindowID != st.id {
			return nil, false
		}
		switch ev.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return event.CloseRequested{}, true
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return event.ResizeHappened{Width: float64(ev.Data1), Height: float64(ev.Data2)}, true
		case sdl.WINDOWEVENT_ENTER:
			return event.MouseEnter{}, true
		case sdl.WINDOWEVENT_LEAVE:
			return event.MouseExit{}, true
		case sdl.WINDOWEVENT_EXPOSED:
			return event.Expose{}, true
		default:
			return nil, false
		}

	case *sdl.MouseMotionEvent:
		if ev.WindowID != st.id {
			return nil, false
		}
		st.cursor = event.Point{X: float64(ev.X), Y: float64(ev.Y)}
		return event.MouseMove{Pos: st.cursor}, true

	case *sdl.MouseButtonEvent:
		if ev.WindowID != st.id {
			return nil, false
		}
		button, ok := mapButton(ev.Button)
		if !ok {
			return nil, false
		}
		state := event.Released
		if ev.State == sdl.PRESSED {
			state = event.Pressed
		}
		return event.MouseClick{
			State:  state,
			Button: button,
			Pos:    st.cursor,
		}, true

	case *sdl.KeyboardEvent:
		if ev.WindowID != st.id {
			return nil, false
		}
		state := event.Released
		if ev.State == sdl.PRESSED {
			state = event.Pressed
		}
		return event.Keyboard{State: state, Keycode: uint32(ev.Keysym.Scancode)}, true

	default:
		return nil, false
	}
}
