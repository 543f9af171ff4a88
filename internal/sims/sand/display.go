package sand

import "image/color"

const (
	displayEmpty    uint8 = 0
	displayObstacle uint8 = 1
	displayGrain    uint8 = 2
)

var grainColors = []color.RGBA{
	{R: 230, G: 60, B: 50, A: 255},
	{R: 70, G: 190, B: 80, A: 255},
	{R: 60, G: 110, B: 230, A: 255},
	{R: 70, G: 210, B: 220, A: 255},
	{R: 210, G: 70, B: 210, A: 255},
	{R: 235, G: 215, B: 70, A: 255},
	{R: 245, G: 160, B: 40, A: 255},
	{R: 250, G: 185, B: 200, A: 255},
}

var sandPalette = buildSandPalette()

// Palette exposes the color palette used for rendering the display buffer.
func (w *World) Palette() []color.RGBA {
	return sandPalette
}

// DisplayValue encodes a cell for the display buffer: 0 empty, 1 obstacle,
// 2+n grain color n.
func DisplayValue(c Cell) uint8 {
	switch c.Kind {
	case Obstacle:
		return displayObstacle
	case Grain:
		return displayGrain + c.Color%uint8(len(grainColors))
	default:
		return displayEmpty
	}
}

func buildSandPalette() []color.RGBA {
	palette := make([]color.RGBA, int(displayGrain)+len(grainColors))
	palette[displayEmpty] = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	palette[displayObstacle] = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	copy(palette[displayGrain:], grainColors)
	return palette
}

func (w *World) rebuildDisplay() {
	cells := w.display.Cells()
	for r := 0; r < w.grid.H(); r++ {
		for c := 0; c < w.grid.W(); c++ {
			cells[w.display.Index(c, r)] = DisplayValue(w.grid.At(r, c))
		}
	}
}
