package render

import "image/color"

// Grayscale returns the snapshot palette: blank cells white, the highest
// color black, the rest evenly spaced in between.
func Grayscale(colors int) []color.RGBA {
	if colors < 1 {
		colors = 1
	}
	palette := make([]color.RGBA, colors)
	for c := range palette {
		v := uint8(255)
		if colors > 1 {
			v = uint8(255 - 255*c/(colors-1))
		}
		palette[c] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return palette
}

// fillPlaneRGBA converts a plane indexed x*h+y into row-major RGBA pixels
// of a w*h image, so grid x runs left to right. Values past the end of the
// palette use its last entry. When the palette is empty the buffer is
// cleared to transparent black.
func fillPlaneRGBA(buf []byte, cells []uint8, w, h int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:w*h*4])
		return
	}
	last := len(palette) - 1
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			idx := int(cells[x*h+y])
			if idx > last {
				idx = last
			}
			base := (y*w + x) * 4
			col := palette[idx]
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
