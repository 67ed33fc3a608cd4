package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/sqweek/dialog"

	"github.com/smallcaps/picocart/internal/cart"
	"github.com/smallcaps/picocart/internal/ui"
)

type CLIFlags struct {
	Cart  string
	Scale int
	Title string
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.Cart, "cart", "", "cartridge to open (.p8, .lua, .png, .js)")
	flag.IntVar(&f.Scale, "scale", 3, "window scale")
	flag.StringVar(&f.Title, "title", "", "window title (defaults to cartridge name)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	if f.Cart == "" {
		path, err := dialog.File().
			Title("Open cartridge").
			Filter("Cartridge files", "p8", "png", "lua", "js").
			Load()
		if err != nil {
			log.Fatalf("no cartridge selected: %v", err)
		}
		f.Cart = path
	}

	var c cart.Cartridge
	if err := c.Load(f.Cart); err != nil {
		log.Fatalf("load cart: %v", err)
	}

	title := f.Title
	if title == "" {
		title = filepath.Base(f.Cart)
	}
	app := ui.NewApp(ui.Config{Title: title, Scale: f.Scale}, &c)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
