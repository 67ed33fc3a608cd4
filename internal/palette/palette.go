// Package palette holds the console's 32-entry display palette: the 16
// standard colors and the 16 extended ones selectable through the
// high-bit palette trick.
package palette

import "image/color"

var colors = [32]color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0x1d, 0x2b, 0x53, 0xff}, // dark blue
	{0x7e, 0x25, 0x53, 0xff}, // dark purple
	{0x00, 0x87, 0x51, 0xff}, // dark green
	{0xab, 0x52, 0x36, 0xff}, // brown
	{0x5f, 0x57, 0x4f, 0xff}, // dark grey
	{0xc2, 0xc3, 0xc7, 0xff}, // light grey
	{0xff, 0xf1, 0xe8, 0xff}, // white
	{0xff, 0x00, 0x4d, 0xff}, // red
	{0xff, 0xa3, 0x00, 0xff}, // orange
	{0xff, 0xec, 0x27, 0xff}, // yellow
	{0x00, 0xe4, 0x36, 0xff}, // green
	{0x29, 0xad, 0xff, 0xff}, // blue
	{0x83, 0x76, 0x9c, 0xff}, // lavender
	{0xff, 0x77, 0xa8, 0xff}, // pink
	{0xff, 0xcc, 0xaa, 0xff}, // light peach

	{0x29, 0x18, 0x14, 0xff},
	{0x11, 0x1d, 0x35, 0xff},
	{0x42, 0x21, 0x36, 0xff},
	{0x12, 0x53, 0x59, 0xff},
	{0x74, 0x2f, 0x29, 0xff},
	{0x49, 0x33, 0x3b, 0xff},
	{0xa2, 0x88, 0x79, 0xff},
	{0xf3, 0xef, 0x7d, 0xff},
	{0xbe, 0x12, 0x50, 0xff},
	{0xff, 0x6c, 0x24, 0xff},
	{0xa8, 0xe7, 0x2e, 0xff},
	{0x00, 0xb5, 0x43, 0xff},
	{0x06, 0x5a, 0xb5, 0xff},
	{0x75, 0x46, 0x65, 0xff},
	{0xff, 0x6e, 0x59, 0xff},
	{0xff, 0x9d, 0x81, 0xff},
}

// RGBA returns palette entry n. Only the low 5 bits of n are used.
func RGBA(n byte) color.RGBA {
	return colors[n&0x1f]
}

// Best returns the index of the palette entry nearest to c by squared
// RGB distance.
func Best(c color.RGBA) byte {
	best := 0
	bestDist := 1 << 30
	for i, p := range colors {
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return byte(best)
}
