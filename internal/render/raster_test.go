package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
)

var testPalette = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 128, G: 128, B: 128, A: 255},
	{R: 230, G: 60, B: 50, A: 255},
}

func TestFillPaletteClampsIndex(t *testing.T) {
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []uint8{1, 9}, testPalette)
	if buf[0] != 128 || buf[4] != 230 || buf[7] != 255 {
		t.Fatalf("unexpected pixels %v", buf)
	}
	fillPaletteRGBA(buf, []uint8{1, 2}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want cleared buffer", i, b)
		}
	}
}

func TestRasterTilesAndGridLines(t *testing.T) {
	cells := []uint8{0, 1, 2, 0}
	img, err := Raster(cells, 2, 2, testPalette, RasterOptions{Tile: 4, GridLines: true, GridColor: color.RGBA{R: 9, A: 255}})
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.RGBAAt(5, 1); got != testPalette[1] {
		t.Fatalf("tile (0,1) interior = %v", got)
	}
	if got := img.RGBAAt(1, 5); got != testPalette[2] {
		t.Fatalf("tile (1,0) interior = %v", got)
	}
	if got := img.RGBAAt(3, 1); got.R != 9 {
		t.Fatalf("grid line pixel = %v", got)
	}
}

func TestRasterRejectsMismatchedBuffer(t *testing.T) {
	if _, err := Raster([]uint8{0, 1, 2}, 2, 2, testPalette, DefaultRasterOptions()); err == nil {
		t.Fatal("expected error for short buffer")
	}
	if _, err := Raster(nil, 0, 2, testPalette, DefaultRasterOptions()); err == nil {
		t.Fatal("expected error for empty size")
	}
}

func TestRotateForDisplay(t *testing.T) {
	img, err := Raster([]uint8{1, 2, 1, 2, 1, 2}, 3, 2, testPalette, RasterOptions{Tile: 1})
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	same := RotateForDisplay(img, 360)
	if same.Bounds() != img.Bounds() || same.RGBAAt(1, 0) != img.RGBAAt(1, 0) {
		t.Fatal("a full turn should return an identical copy")
	}
	same.SetRGBA(0, 0, color.RGBA{})
	if img.RGBAAt(0, 0) == (color.RGBA{}) {
		t.Fatal("RotateForDisplay must not alias its input")
	}

	turned := RotateForDisplay(img, 90)
	if b := turned.Bounds(); b.Dx() < 2 || b.Dy() < 3 {
		t.Fatalf("quarter turn should swap the aspect, got %v", b)
	}
}

func TestSavePNG(t *testing.T) {
	img, err := Raster([]uint8{0, 1, 2, 1}, 2, 2, testPalette, RasterOptions{Tile: 3})
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	back, err := imgio.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if back.Bounds().Dx() != 6 || back.Bounds().Dy() != 6 {
		t.Fatalf("decoded bounds = %v", back.Bounds())
	}
	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
