package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/bryanchriswhite/sash/internal/drawing"
	"github.com/bryanchriswhite/sash/internal/logger"
	"github.com/bryanchriswhite/sash/internal/window"
)

// putImageChunk caps the pixel payload of a single PutImage request so
// large frames stay under the server's maximum request length.
const putImageChunk = 256 * 1024

// surface delivers finished frames to an X window with ZPixmap PutImage
// requests through a persistent graphics context.
type surface struct {
	backend *Backend
	win     xproto.Window
	gc      xproto.Gcontext

	width  int
	height int

	depth        byte
	bitsPerPixel byte
	scanlinePad  byte
}

// CreateSurface binds a drawing surface to the window's drawable. The
// pixel format is taken from the server's pixmap format for the window's
// depth; the 32-bit visual selected at init gives the engine its alpha
// channel.
func (b *Backend) CreateSurface(win window.Window) (drawing.Surface, error) {
	xw, err := b.window(win)
	if err != nil {
		return nil, err
	}

	w, h, err := b.Size(win)
	if err != nil {
		return nil, fmt.Errorf("surface size: %w", err)
	}

	gc, err := xproto.NewGcontextId(b.conn)
	if err != nil {
		return nil, fmt.Errorf("allocate gcontext id: %w", err)
	}
	if err := xproto.CreateGCChecked(b.conn, gc, xproto.Drawable(xw.id), 0, nil).Check(); err != nil {
		return nil, fmt.Errorf("create gcontext: %w", err)
	}

	var bpp, pad byte
	for _, format := range b.setup.PixmapFormats {
		if format.Depth == b.visualDepth {
			bpp = format.BitsPerPixel
			pad = format.ScanlinePad
			break
		}
	}
	if bpp == 0 {
		xproto.FreeGC(b.conn, gc)
		return nil, fmt.Errorf("no pixmap format for depth %d", b.visualDepth)
	}

	logger.WithComponent("x11").Debug().
		Uint32("window", uint32(xw.id)).
		Uint32("width", w).
		Uint32("height", h).
		Uint8("depth", b.visualDepth).
		Uint8("bpp", bpp).
		Msg("Created surface")

	return &surface{
		backend:      b,
		win:          xw.id,
		gc:           gc,
		width:        int(w),
		height:       int(h),
		depth:        b.visualDepth,
		bitsPerPixel: bpp,
		scanlinePad:  pad,
	}, nil
}

func (s *surface) Size() (int, int) {
	return s.width, s.height
}

func (s *surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface dimensions %dx%d", width, height)
	}
	s.width = width
	s.height = height
	return nil
}

// Present converts the frame to the server's ZPixmap layout (BGRx with
// scanline padding) and uploads it row-chunked to the window.
func (s *surface) Present(img *image.RGBA) error {
	bounds := img.Bounds()
	if bounds.Dx() != s.width || bounds.Dy() != s.height {
		return fmt.Errorf("frame size mismatch: got %dx%d, surface is %dx%d",
			bounds.Dx(), bounds.Dy(), s.width, s.height)
	}

	bytesPerPixel := int(s.bitsPerPixel) / 8
	if bytesPerPixel != 4 {
		return fmt.Errorf("unsupported bits per pixel: %d", s.bitsPerPixel)
	}
	padBytes := int(s.scanlinePad) / 8
	unpadded := s.width * bytesPerPixel
	stride := ((unpadded + padBytes - 1) / padBytes) * padBytes

	data := make([]byte, stride*s.height)
	for y := 0; y < s.height; y++ {
		srcRow := img.Pix[y*img.Stride:]
		dstRow := data[y*stride:]
		for x := 0; x < s.width; x++ {
			si := x * 4
			di := x * bytesPerPixel
			dstRow[di+0] = srcRow[si+2] // B
			dstRow[di+1] = srcRow[si+1] // G
			dstRow[di+2] = srcRow[si+0] // R
			if s.depth == 32 {
				dstRow[di+3] = srcRow[si+3] // A
			}
		}
	}

	rowsPerChunk := putImageChunk / stride
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}
	for y := 0; y < s.height; y += rowsPerChunk {
		rows := rowsPerChunk
		if y+rows > s.height {
			rows = s.height - y
		}
		err := xproto.PutImageChecked(
			s.backend.conn,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(s.win),
			s.gc,
			uint16(s.width),
			uint16(rows),
			0, int16(y),
			0,
			s.depth,
			data[y*stride:(y+rows)*stride],
		).Check()
		if err != nil {
			return fmt.Errorf("put image rows %d..%d: %w", y, y+rows, err)
		}
	}
	return nil
}

func (s *surface) Close() error {
	xproto.FreeGC(s.backend.conn, s.gc)
	return nil
}
