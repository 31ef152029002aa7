package sdl

import (
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/logger"
	"github.com/bryanchriswhite/sash/internal/window"
)

// surface delivers finished frames through an ARGB8888 streaming texture
// copied to the window's renderer.
type surface struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int
	height int
}

// CreateSurface binds a renderer and streaming texture to the window.
func (b *Backend) CreateSurface(win window.Window) (drawing.Surface, error) {
	sw, err := b.window(win)
	if err != nil {
		return nil, err
	}

	w, h := sw.win.GetSize()

	renderer, err := sdl.CreateRenderer(sw.win, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		renderer, err = sdl.CreateRenderer(sw.win, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return nil, fmt.Errorf("create renderer: %w", err)
		}
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		w, h,
	)
	if err != nil {
		renderer.Destroy()
		return nil, fmt.Errorf("create texture: %w", err)
	}

	logger.WithComponent("sdl").Debug().
		Uint32("window", sw.id).
		Int32("width", w).
		Int32("height", h).
		Msg("Created surface")

	return &surface{
		renderer: renderer,
		texture:  texture,
		width:    int(w),
		height:   int(h),
	}, nil
}

func (s *surface) Size() (int, int) {
	return s.width, s.height
}

// Resize recreates the streaming texture at the new dimensions.
func (s *surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface dimensions %dx%d", width, height)
	}
	texture, err := s.renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height),
	)
	if err != nil {
		return fmt.Errorf("recreate texture: %w", err)
	}
	s.texture.Destroy()
	s.texture = texture
	s.width = width
	s.height = height
	return nil
}

// Present streams the frame into the texture (ARGB8888 is BGRA in memory
// on little-endian hosts) and flips it to the window.
func (s *surface) Present(img *image.RGBA) error {
	bounds := img.Bounds()
	if bounds.Dx() != s.width || bounds.Dy() != s.height {
		return fmt.Errorf("frame size mismatch: got %dx%d, surface is %dx%d",
			bounds.Dx(), bounds.Dy(), s.width, s.height)
	}

	pixels, pitch, err := s.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("lock texture: %w", err)
	}
	for y := 0; y < s.height; y++ {
		srcRow := img.Pix[y*img.Stride:]
		dstRow := pixels[y*pitch:]
		for x := 0; x < s.width; x++ {
			si := x * 4
			dstRow[si+0] = srcRow[si+2] // B
			dstRow[si+1] = srcRow[si+1] // G
			dstRow[si+2] = srcRow[si+0] // R
			dstRow[si+3] = srcRow[si+3] // A
		}
	}
	s.texture.Unlock()

	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clear renderer: %w", err)
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("copy texture: %w", err)
	}
	s.renderer.Present()
	return nil
}

func (s *surface) Close() error {
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	return nil
}
