package cart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/smallcaps/picocart/internal/palette"
	"github.com/smallcaps/picocart/internal/rom"
)

// Carrier image geometry. The cartridge byte stream lives in the low
// 2 bits of each RGBA channel of the first MemorySize+5 pixels; the
// label is a visible sub-image rendered through the palette.
const (
	carrierWidth  = 160
	carrierHeight = 205

	LabelWidth  = 128
	LabelHeight = 128
	labelX      = 16
	labelY      = 24
)

// loadPNG decodes a carrier image: the byte stream from the channel
// low bits, the label by nearest-palette match of the visible pixels.
func (c *Cartridge) loadPNG(data []byte) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	if img.Bounds().Dx() != carrierWidth || img.Bounds().Dy() != carrierHeight {
		return fmt.Errorf("cart: %dx%d: %w",
			img.Bounds().Dx(), img.Bounds().Dy(), ErrBadDimensions)
	}
	pix := toNRGBA(img)

	bin := make([]byte, rom.MemorySize+binTrailerSize)
	for n := range bin {
		p := pix.Pix[n*4 : n*4+4]
		bin[n] = (p[3]&3)<<6 | (p[0]&3)<<4 | (p[1]&3)<<2 | p[2]&3
	}

	label := make([]byte, LabelWidth*LabelHeight)
	for y := 0; y < LabelHeight; y++ {
		for x := 0; x < LabelWidth; x++ {
			p := pix.NRGBAAt(x+labelX, y+labelY)
			label[y*LabelWidth+x] = palette.Best(color.RGBA{p.R, p.G, p.B, p.A})
		}
	}
	c.label = label

	return c.setBinary(bin)
}

// writePNG encodes the cartridge onto a blank carrier: label pixels by
// exact palette lookup, then the binary container into the channel low
// bits, leaving the carrier's upper 6 bits untouched.
func (c *Cartridge) writePNG(w io.Writer) error {
	img := blankCarrier()

	if len(c.label) >= LabelWidth*LabelHeight {
		for y := 0; y < LabelHeight; y++ {
			for x := 0; x < LabelWidth; x++ {
				p := palette.RGBA(c.label[y*LabelWidth+x] & 0x1f)
				img.SetNRGBA(x+labelX, y+labelY, color.NRGBA{p.R, p.G, p.B, 0xff})
			}
		}
	}

	bin, err := c.Binary()
	if err != nil {
		return err
	}
	for n, v := range bin {
		p := img.Pix[n*4 : n*4+4]
		p[0] = p[0]/4*4 + v>>4&3
		p[1] = p[1]/4*4 + v>>2&3
		p[2] = p[2]/4*4 + v&3
		p[3] = p[3]/4*4 + v>>6
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	return nil
}

// toNRGBA returns the image's pixels in non-premultiplied form. The
// low channel bits carry data, so the premultiplied RGBA path (which
// rescales channels by alpha) must be avoided.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == image.Pt(0, 0) {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// blankCarrier builds the fixed background image saved cartridges are
// written onto. Every channel value is a multiple of 4 so the low bits
// of unused pixels decode as zero.
func blankCarrier() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, carrierWidth, carrierHeight))
	frame := color.NRGBA{0x50, 0x50, 0x54, 0xfc}
	body := color.NRGBA{0xc4, 0xc4, 0xb4, 0xfc}
	slot := color.NRGBA{0x00, 0x00, 0x00, 0xfc}
	for y := 0; y < carrierHeight; y++ {
		for x := 0; x < carrierWidth; x++ {
			c := body
			if x < 8 || x >= carrierWidth-8 || y < 8 || y >= carrierHeight-8 {
				c = frame
			} else if x >= labelX-4 && x < labelX+LabelWidth+4 &&
				y >= labelY-4 && y < labelY+LabelHeight+4 {
				c = slot
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
