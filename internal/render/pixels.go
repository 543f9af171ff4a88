package render

import "image/color"

// fillPaletteRGBA writes one RGBA quad per cell into buf. Indexes past the end
// of the palette take its last colour; an empty palette clears buf.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	last := uint8(min(len(palette)-1, 255))
	for i, c := range cells {
		col := palette[min(c, last)]
		p := buf[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
	}
}
