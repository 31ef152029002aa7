package x11

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
)

// ConfigValue is one ConfigureWindow parameter: a protocol mask bit paired
// with its value.
type ConfigValue struct {
	key   uint16
	value uint32
}

// ConfigX sets the window's x coordinate.
func ConfigX(x int32) ConfigValue {
	return ConfigValue{xproto.ConfigWindowX, uint32(x)}
}

// ConfigY sets the window's y coordinate.
func ConfigY(y int32) ConfigValue {
	return ConfigValue{xproto.ConfigWindowY, uint32(y)}
}

// ConfigWidth sets the window's width.
func ConfigWidth(w uint32) ConfigValue {
	return ConfigValue{xproto.ConfigWindowWidth, w}
}

// ConfigHeight sets the window's height.
func ConfigHeight(h uint32) ConfigValue {
	return ConfigValue{xproto.ConfigWindowHeight, h}
}

// ConfigBorderWidth sets the window's border width.
func ConfigBorderWidth(w uint32) ConfigValue {
	return ConfigValue{xproto.ConfigWindowBorderWidth, w}
}

// configArgs folds the values into the request mask and value list. The
// protocol requires the list ordered by mask bit position.
func configArgs(values []ConfigValue) (uint16, []uint32) {
	sorted := make([]ConfigValue, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })

	var mask uint16
	list := make([]uint32, 0, len(sorted))
	for _, v := range sorted {
		mask |= v.key
		list = append(list, v.value)
	}
	return mask, list
}

// configureWindow issues a checked ConfigureWindow request.
func (b *Backend) configureWindow(win xproto.Window, values ...ConfigValue) error {
	mask, list := configArgs(values)
	if err := xproto.ConfigureWindowChecked(b.conn, win, mask, list).Check(); err != nil {
		return fmt.Errorf("configure window: %w", err)
	}
	return nil
}
