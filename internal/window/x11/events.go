package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/bryanchriswhite/sash/internal/event"
)

// winState is the per-window translation state: the cursor cache that
// repairs click positions, and the last observed size used to filter
// ConfigureNotify noise. It lives exactly as long as the window and is
// only touched from the backend's own drain.
type winState struct {
	id     xproto.Window
	cursor event.Point
	lastW  uint16
	lastH  uint16
}

// mapButton maps an X button detail code to the normalized button set.
// Codes outside 1..3 (scroll wheel, side buttons) report ok=false and the
// whole event is dropped.
func mapButton(detail xproto.Button) (event.MouseButton, bool) {
	switch detail {
	case 1:
		return event.Left, true
	case 2:
		return event.Middle, true
	case 3:
		return event.Right, true
	default:
		return 0, false
	}
}

// translate converts one raw X event addressed to st's window into a
// normalized event. It returns ok=false for events that belong to other
// windows, unmapped event classes, and unmapped button codes; this lossy
// filtering is deliberate.
//
// Button events never use the native payload coordinates: click positions
// come from the cursor cache, which MotionNotify keeps current. X button
// events do carry coordinates, but the unified contract guarantees the
// cached position on every backend, including those whose protocols omit
// it.
func translate(ev xgb.Event, st *winState, wmProtocols, wmDeleteWindow xproto.Atom) (event.WindowEvent, bool) {
	switch ev := ev.(type) {
	case xproto.MotionNotifyEvent:
		if ev.Event != st.id {
			return nil, false
		}
		st.cursor = event.Point{X: float64(ev.EventX), Y: float64(ev.EventY)}
		return event.MouseMove{Pos: st.cursor}, true

	case xproto.ButtonPressEvent:
		if ev.Event != st.id {
			return nil, false
		}
		button, ok := mapButton(ev.Detail)
		if !ok {
			return nil, false
		}
		return event.MouseClick{
			State:  event.Pressed,
			Button: button,
			Pos:    st.cursor,
		}, true

	case xproto.ButtonReleaseEvent:
		if ev.Event != st.id {
			return nil, false
		}
		button, ok := mapButton(ev.Detail)
		if !ok {
			return nil, false
		}
		return event.MouseClick{
			State:  event.Released,
			Button: button,
			Pos:    st.cursor,
		}, true

	case xproto.EnterNotifyEvent:
		if ev.Event != st.id {
			return nil, false
		}
		return event.MouseEnter{}, true

	case xproto.LeaveNotifyEvent:
		if ev.Event != st.id {
			return nil, false
		}
		return event.MouseExit{}, true

	case xproto.KeyPressEvent:
		if ev.Event != st.id {
			return nil, false
		}
		return event.Keyboard{State: event.Pressed, Keycode: uint32(ev.Detail)}, true

	case xproto.KeyReleaseEvent:
		if ev.Event != st.id {
			return nil, false
		}
		return event.Keyboard{State: event.Released, Keycode: uint32(ev.Detail)}, true

	case xproto.ExposeEvent:
		if ev.Window != st.id {
			return nil, false
		}
		return event.Expose{}, true

	case xproto.ConfigureNotifyEvent:
		if ev.Window != st.id {
			return nil, false
		}
		// ConfigureNotify also fires on moves and stacking changes;
		// only a real size change becomes a resize event.
		if ev.Width == st.lastW && ev.Height == st.lastH {
			return nil, false
		}
		st.lastW = ev.Width
		st.lastH = ev.Height
		return event.ResizeHappened{Width: float64(ev.Width), Height: float64(ev.Height)}, true

	case xproto.DestroyNotifyEvent:
		if ev.Window != st.id {
			return nil, false
		}
		return event.CloseHappened{}, true

	case xproto.ClientMessageEvent:
		if ev.Window != st.id || ev.Type != wmProtocols || ev.Format != 32 {
			return nil, false
		}
		if xproto.Atom(ev.Data.Data32[0]) != wmDeleteWindow {
			return nil, false
		}
		return event.CloseRequested{}, true

	default:
		return nil, false
	}
}
