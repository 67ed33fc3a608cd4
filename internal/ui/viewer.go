// Package ui is a small windowed viewer for loaded cartridges: one
// page each for the label, the sprite sheet, the map and the screen.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smallcaps/picocart/internal/cart"
	"github.com/smallcaps/picocart/internal/palette"
)

type Config struct {
	Title string
	Scale int
}

const (
	pageLabel = iota
	pageSheet
	pageMap
	pageScreen
	numPages
)

var pageNames = [numPages]string{"label", "sprite sheet", "map", "screen"}

type App struct {
	cfg  Config
	c    *cart.Cartridge
	page int
	tex  *ebiten.Image
}

func NewApp(cfg Config, c *cart.Cartridge) *App {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(128*cfg.Scale, 128*cfg.Scale)
	return &App{cfg: cfg, c: c}
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.setPage((a.page + 1) % numPages)
	}
	for i := 0; i < numPages; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			a.setPage(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		_ = a.saveScreenshot()
	}
	return nil
}

func (a *App) setPage(p int) {
	if p != a.page {
		a.page = p
		a.tex = nil
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImageFromImage(a.render())
	}
	op := &ebiten.DrawImageOptions{}
	w, h := a.tex.Bounds().Dx(), a.tex.Bounds().Dy()
	op.GeoM.Scale(128/float64(w), 128/float64(h))
	screen.DrawImage(a.tex, op)
	ebitenutil.DebugPrint(screen, pageNames[a.page])
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 128, 128
}

// render rasterizes the current page through the display palette.
func (a *App) render() *image.NRGBA {
	m := a.c.Memory()
	switch a.page {
	case pageLabel:
		img := image.NewNRGBA(image.Rect(0, 0, cart.LabelWidth, cart.LabelHeight))
		for i := 0; i < cart.LabelWidth*cart.LabelHeight; i++ {
			img.Pix[i*4+3] = 0xff
		}
		label := a.c.Label()
		if len(label) > cart.LabelWidth*cart.LabelHeight {
			label = label[:cart.LabelWidth*cart.LabelHeight]
		}
		for i, idx := range label {
			p := palette.RGBA(idx)
			img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2] = p.R, p.G, p.B
		}
		return img
	case pageSheet:
		img := image.NewNRGBA(image.Rect(0, 0, 128, 128))
		for y := 0; y < 128; y++ {
			for x := 0; x < 128; x++ {
				setNRGBA(img, x, y, palette.RGBA(m.GfxPixel(x, y)))
			}
		}
		return img
	case pageMap:
		// full-resolution map render, scaled down when drawn
		img := image.NewNRGBA(image.Rect(0, 0, 128*8, 64*8))
		for cy := 0; cy < 64; cy++ {
			for cx := 0; cx < 128; cx++ {
				tile := int(m.MapAt(cx, cy))
				tx, ty := tile%16*8, tile/16*8
				for py := 0; py < 8; py++ {
					for px := 0; px < 8; px++ {
						setNRGBA(img, cx*8+px, cy*8+py,
							palette.RGBA(m.GfxPixel(tx+px, ty+py)))
					}
				}
			}
		}
		return img
	default:
		// screen page goes through the hardware pixel path, so the
		// screen-mode and raster registers are honored
		img := image.NewNRGBA(image.Rect(0, 0, 128, 128))
		for y := 0; y < 128; y++ {
			for x := 0; x < 128; x++ {
				setNRGBA(img, x, y, palette.RGBA(m.Pixel(x, y)))
			}
		}
		return img
	}
}

func setNRGBA(img *image.NRGBA, x, y int, p color.RGBA) {
	i := img.PixOffset(x, y)
	img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = p.R, p.G, p.B, 0xff
}

func (a *App) saveScreenshot() error {
	name := fmt.Sprintf("cart_%s_%d.png", pageNames[a.page], time.Now().Unix())
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, a.render())
}
