// Package drawing defines the capability contract an immediate-mode 2-D
// rendering engine must satisfy, against an opaque surface owned by the
// windowing side. The windowing backends produce surfaces; a drawing
// backend accumulates vector operations and composites them onto the
// surface on Present.
package drawing

import "image"

// Surface is an owned drawing target bound to a single native window.
// Implementations live in the windowing backends; the drawing side only
// hands finished frames to it.
type Surface interface {
	// Present blits a finished frame to the native window. The image must
	// match the surface's current size.
	Present(img *image.RGBA) error

	// Resize updates the surface's expected frame dimensions.
	Resize(width, height int) error

	// Size returns the current frame dimensions in physical pixels.
	Size() (width, height int)

	// Close releases native resources held by the surface.
	Close() error
}

// TextExtents describes the ink and advance of a rendered string.
type TextExtents struct {
	XBearing float64
	YBearing float64
	Width    float64
	Height   float64
	XAdvance float64
	YAdvance float64
}

// FontExtents describes the metrics of the configured font face.
type FontExtents struct {
	Ascent      float64
	Descent     float64
	Height      float64
	MaxXAdvance float64
	MaxYAdvance float64
}

// FontConfig selects the font face used for text operations. Face
// selection is construction configuration, not a backend default.
type FontConfig struct {
	// TTF holds the raw font file. Empty means the packaged default face.
	TTF []byte

	// Size is the face size in points. Zero means the default size.
	Size float64
}

// Backend is the drawing capability. All coordinates are physical pixels.
// Operations accumulate into a logical back buffer; Present composites the
// accumulated frame onto the surface and re-opens a fresh buffer, so
// drawing is double-buffered even though the surface is single.
type Backend interface {
	// ResizeSurface resizes the accumulation buffer and the underlying
	// surface to the given physical pixel dimensions.
	ResizeSurface(width, height float64)

	// Path construction.
	MoveTo(x, y float64)
	LineTo(x, y float64)
	NewPath()
	NewSubPath()
	Arc(xc, yc, radius, angle1, angle2 float64)
	Rect(x, y, width, height float64)

	// Paint state and realization.
	SetLineWidth(width float64)
	SetSourceRGBA(r, g, b, a float64)
	Stroke()
	Fill()
	Paint()
	Clear()

	// Text.
	FontExtents() FontExtents
	TextExtents(text string) TextExtents
	DrawText(text string)

	// Present composites the accumulated operations onto the surface and
	// starts a new accumulation buffer.
	Present()

	// Close releases the backend and its surface.
	Close() error
}
