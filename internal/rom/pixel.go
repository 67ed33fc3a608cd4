package rom

// rasterBit reports whether scanline y is set in the 128-bit raster
// mask at 0x5f70.
func (m *Memory) rasterBit(y int) bool {
	return m.data[RasterBitsOffset+y/8]>>(y%8)&1 != 0
}

// Pixel returns the final on-screen color index at (x, y), composing
// the screen-mode transform, the raster-mode recoloring and the screen
// palette. Coordinates are in the 0-127 range of the visible display.
func (m *Memory) Pixel(x, y int) byte {
	mode := m.data[ScreenModeReg]

	if mode&0xbc == 0x84 {
		// rotation modes 0x84-0x87
		if mode&1 != 0 {
			x, y = y, x
		}
		if mode&2 != 0 {
			x = 127 - x
		}
		if (mode+1)&2 != 0 {
			y = 127 - y
		}
	} else {
		switch {
		case mode&0xbd == 0x05: // horizontal mirror
			x = min(x, 127-x)
		case mode&0xbd == 0x01: // horizontal stretch
			x = x / 2
		case mode&0xbd == 0x81: // horizontal flip
			x = 127 - x
		}
		switch {
		case mode&0xbe == 0x06: // vertical mirror
			y = min(y, 127-y)
		case mode&0xbe == 0x02: // vertical stretch
			y = y / 2
		case mode&0xbe == 0x82: // vertical flip
			y = 127 - y
		}
	}

	c := m.ScreenPixel(x, y)

	raster := m.data[RasterModeReg]
	if raster == 0x10 {
		// alternate palette on masked scanlines
		if m.rasterBit(y) {
			return m.data[RasterPaletteOffset+int(c)]
		}
	} else if raster&0x30 == 0x30 {
		// gradient: remap one color keyed by the pixel's own value
		if raster&0x0f == c {
			c2 := y / 8
			if m.rasterBit(y) {
				c2++
			}
			return m.data[RasterPaletteOffset+c2%16]
		}
	}

	return m.data[ScreenPaletteOffset+int(c)]
}
