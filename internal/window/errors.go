package window

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed reports that the backend could not reach its
	// windowing system at init. Fatal to the backend instance.
	ErrConnectionFailed = errors.New("connection to display server failed")

	// ErrWindowCreation reports that window or visual/colormap setup
	// failed. Fatal to that window; the backend remains usable.
	ErrWindowCreation = errors.New("window creation failed")

	// ErrForeignWindow reports a window handle that does not belong to the
	// backend it was passed to.
	ErrForeignWindow = errors.New("window does not belong to this backend")

	// ErrWindowClosed reports use of a handle after Close.
	ErrWindowClosed = errors.New("window has been closed")
)

// UnsupportedError reports an operation a particular backend cannot
// perform. Backends return it uniformly instead of aborting.
type UnsupportedError struct {
	Backend string
	Op      string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("operation %s unsupported on backend %s", e.Op, e.Backend)
}
