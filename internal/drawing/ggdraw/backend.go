// Package ggdraw implements the drawing capability on the gogpu/gg
// vector engine. Operations accumulate into a software-rendered context;
// Present snapshots the context into an RGBA frame, hands it to the
// window surface, and clears the context for the next frame.
package ggdraw

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/logger"
)

// DefaultFontSize is used when FontConfig leaves Size zero.
const DefaultFontSize = 13.5

// Backend draws with a gg context and presents to a window surface.
type Backend struct {
	ctx     *gg.Context
	surface drawing.Surface
	source  *text.FontSource
	face    text.Face

	// current source color, needed because gg folds colors into its
	// brush state and Clear wants the raw components back.
	srcR, srcG, srcB, srcA float64
}

var _ drawing.Backend = (*Backend)(nil)

// New builds a drawing backend over the surface. The font face comes
// from cfg; an empty config selects the packaged Go Regular face.
func New(surface drawing.Surface, cfg drawing.FontConfig) (*Backend, error) {
	ttf := cfg.TTF
	if len(ttf) == 0 {
		ttf = goregular.TTF
	}
	size := cfg.Size
	if size <= 0 {
		size = DefaultFontSize
	}

	source, err := text.NewFontSource(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	w, h := surface.Size()
	ctx := gg.NewContext(w, h)
	face := source.Face(size)
	ctx.SetFont(face)

	logger.WithComponent("ggdraw").Debug().
		Int("width", w).
		Int("height", h).
		Str("font", source.Name()).
		Float64("size", size).
		Msg("Created drawing backend")

	return &Backend{
		ctx:     ctx,
		surface: surface,
		source:  source,
		face:    face,
		srcA:    1,
	}, nil
}

// ResizeSurface resizes the accumulation buffer and the surface. Errors
// are logged rather than returned; a failed resize leaves the previous
// buffer in place and the next Present reports the mismatch.
func (b *Backend) ResizeSurface(width, height float64) {
	w, h := int(width), int(height)
	if err := b.ctx.Resize(w, h); err != nil {
		logger.WithComponent("ggdraw").Error().Err(err).
			Int("width", w).
			Int("height", h).
			Msg("Buffer resize failed")
		return
	}
	b.ctx.SetFont(b.face)
	if err := b.surface.Resize(w, h); err != nil {
		logger.WithComponent("ggdraw").Error().Err(err).
			Int("width", w).
			Int("height", h).
			Msg("Surface resize failed")
	}
}

func (b *Backend) MoveTo(x, y float64) { b.ctx.MoveTo(x, y) }
func (b *Backend) LineTo(x, y float64) { b.ctx.LineTo(x, y) }
func (b *Backend) NewPath()            { b.ctx.ClearPath() }
func (b *Backend) NewSubPath()         { b.ctx.NewSubPath() }

func (b *Backend) Arc(xc, yc, radius, angle1, angle2 float64) {
	b.ctx.DrawArc(xc, yc, radius, angle1, angle2)
}

func (b *Backend) Rect(x, y, width, height float64) {
	b.ctx.DrawRectangle(x, y, width, height)
}

func (b *Backend) SetLineWidth(width float64) { b.ctx.SetLineWidth(width) }

func (b *Backend) SetSourceRGBA(r, g, bl, a float64) {
	b.srcR, b.srcG, b.srcB, b.srcA = r, g, bl, a
	b.ctx.SetRGBA(r, g, bl, a)
}

// Stroke realizes the current path as an outline and clears it.
func (b *Backend) Stroke() {
	if err := b.ctx.Stroke(); err != nil {
		logger.WithComponent("ggdraw").Error().Err(err).Msg("Stroke failed")
	}
}

// Fill realizes the current path as a filled region and clears it.
func (b *Backend) Fill() {
	if err := b.ctx.Fill(); err != nil {
		logger.WithComponent("ggdraw").Error().Err(err).Msg("Fill failed")
	}
}

// Paint floods the whole buffer with the current source, compositing
// over existing content. The current path is reset.
func (b *Backend) Paint() {
	b.ctx.ClearPath()
	b.ctx.DrawRectangle(0, 0, float64(b.ctx.Width()), float64(b.ctx.Height()))
	if err := b.ctx.Fill(); err != nil {
		logger.WithComponent("ggdraw").Error().Err(err).Msg("Paint failed")
	}
}

// Clear replaces the whole buffer with the current source, discarding
// existing content.
func (b *Backend) Clear() {
	b.ctx.ClearWithColor(gg.RGBA{R: b.srcR, G: b.srcG, B: b.srcB, A: b.srcA})
}

// FontExtents reports the configured face's vertical metrics.
func (b *Backend) FontExtents() drawing.FontExtents {
	m := b.face.Metrics()
	return drawing.FontExtents{
		Ascent:      m.Ascent,
		Descent:     m.Descent,
		Height:      m.LineHeight(),
		MaxXAdvance: b.face.Advance("W"),
	}
}

// TextExtents reports the advance and a metrics-derived ink box for the
// string at the configured face.
func (b *Backend) TextExtents(s string) drawing.TextExtents {
	m := b.face.Metrics()
	advance := b.face.Advance(s)
	return drawing.TextExtents{
		YBearing: -m.Ascent,
		Width:    advance,
		Height:   m.Ascent + m.Descent,
		XAdvance: advance,
	}
}

// DrawText renders the string with its baseline origin at the current
// point, then advances the current point past it.
func (b *Backend) DrawText(s string) {
	x, y, ok := b.ctx.GetCurrentPoint()
	if !ok {
		x, y = 0, 0
	}
	b.ctx.DrawString(s, x, y)
	b.ctx.MoveTo(x+b.face.Advance(s), y)
}

// Present composites the accumulated frame onto the surface and opens a
// fresh transparent buffer.
func (b *Backend) Present() {
	img, ok := b.ctx.Image().(*image.RGBA)
	if !ok {
		logger.WithComponent("ggdraw").Error().Msg("Unexpected frame image type")
		return
	}
	if err := b.surface.Present(img); err != nil {
		logger.WithComponent("ggdraw").Error().Err(err).Msg("Present failed")
	}
	b.ctx.Clear()
	b.ctx.ClearPath()
}

// Close releases the context, the font source, and the surface.
func (b *Backend) Close() error {
	if err := b.ctx.Close(); err != nil {
		return fmt.Errorf("close context: %w", err)
	}
	if err := b.source.Close(); err != nil {
		return fmt.Errorf("close font source: %w", err)
	}
	return b.surface.Close()
}
