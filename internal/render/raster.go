package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// RasterOptions controls how a display buffer is turned into an image.
type RasterOptions struct {
	// Tile is the edge length in pixels of one cell.
	Tile int
	// GridLines draws a one pixel separator on the trailing edge of every
	// tile. Ignored for tiles smaller than three pixels.
	GridLines bool
	GridColor color.RGBA
}

// DefaultRasterOptions returns 8 pixel tiles with dark grid lines.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{Tile: 8, GridLines: true, GridColor: color.RGBA{R: 40, G: 40, B: 40, A: 255}}
}

// Raster paints a w x h display buffer into an RGBA image using palette.
func Raster(cells []uint8, w, h int, palette []color.RGBA, opts RasterOptions) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster size %dx%d must be positive", w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("raster expects %d cells, got %d", w*h, len(cells))
	}
	tile := opts.Tile
	if tile < 1 {
		tile = 1
	}
	lines := opts.GridLines && tile >= 3

	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)

	img := image.NewRGBA(image.Rect(0, 0, w*tile, h*tile))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * 4
			fill := color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
			for py := 0; py < tile; py++ {
				for px := 0; px < tile; px++ {
					c := fill
					if lines && (px == tile-1 || py == tile-1) {
						c = opts.GridColor
					}
					img.SetRGBA(x*tile+px, y*tile+py, c)
				}
			}
		}
	}
	return img, nil
}

// RotateForDisplay turns img clockwise by angle degrees so that a gravity
// angle of the same value points down the page. The canvas grows to hold the
// rotated corners.
func RotateForDisplay(img image.Image, angle float64) *image.RGBA {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a == 0 {
		return clone.AsRGBA(img)
	}
	return transform.Rotate(img, a, &transform.RotationOptions{ResizeBounds: true})
}

// SavePNG encodes img as a PNG file at path.
func SavePNG(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
