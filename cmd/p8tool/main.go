package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/smallcaps/picocart/internal/cart"
	"github.com/smallcaps/picocart/internal/rom"
)

type CLIFlags struct {
	In     string
	Out    string // .p8 or .png, chosen by extension
	BinOut string // raw binary container dump
	Info   bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.In, "in", "", "cartridge to load (.p8, .lua, .png, .js)")
	flag.StringVar(&f.Out, "out", "", "save cartridge to path (.p8 or .png)")
	flag.StringVar(&f.BinOut, "binout", "", "write the binary container to path")
	flag.BoolVar(&f.Info, "info", false, "print cartridge summary")
	flag.Parse()
	return f
}

func printInfo(c *cart.Cartridge) {
	m := c.Memory()
	fmt.Printf("script:   %d chars\n", len(c.Script()))
	fmt.Printf("gfx:      %d/%d bytes used\n", countNonZero(m.Gfx()), rom.GfxSize)
	fmt.Printf("map:      %d/%d bytes used\n", countNonZero(m.Map()), rom.MapSize)
	fmt.Printf("flags:    %d/%d bytes used\n", countNonZero(m.GfxFlags()), rom.GfxFlagsSize)
	fmt.Printf("sfx:      %d/%d bytes used\n", countNonZero(m.SfxData()), rom.SfxSize)
	fmt.Printf("music:    %d/%d bytes used\n", countNonZero(m.SongData()), rom.SongSize)
	if c.Label() != nil {
		fmt.Printf("label:    %dx%d\n", cart.LabelWidth, cart.LabelHeight)
	} else {
		fmt.Printf("label:    none\n")
	}
}

func countNonZero(b []byte) int {
	n := 0
	for _, v := range b {
		if v != 0 {
			n++
		}
	}
	return n
}

func main() {
	f := parseFlags()
	if f.In == "" {
		flag.Usage()
		os.Exit(2)
	}

	var c cart.Cartridge
	if err := c.Load(f.In); err != nil {
		log.Fatalf("load %s: %v", f.In, err)
	}

	if f.Info {
		printInfo(&c)
	}

	if f.Out != "" {
		var err error
		switch strings.ToLower(filepath.Ext(f.Out)) {
		case ".p8":
			err = c.SaveP8(f.Out)
		case ".png":
			err = c.SavePNG(f.Out)
		default:
			err = fmt.Errorf("unsupported output extension %q", filepath.Ext(f.Out))
		}
		if err != nil {
			log.Fatalf("save %s: %v", f.Out, err)
		}
		log.Printf("wrote %s", f.Out)
	}

	if f.BinOut != "" {
		bin, err := c.Binary()
		if err != nil {
			log.Fatalf("binary container: %v", err)
		}
		if err := os.WriteFile(f.BinOut, bin, 0644); err != nil {
			log.Fatalf("write %s: %v", f.BinOut, err)
		}
		log.Printf("wrote %s (%d bytes)", f.BinOut, len(bin))
	}
}
