// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// uc1609 draws on a UC1609 LCD, or on an emulated one in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/GermanBionicSystems/uc1609"
	"golang.org/x/exp/slog"
)

func mainImpl() error {
	busType := flag.String("bus", "spi", "transport: spi, i2c or sim")
	spiName := flag.String("spi", "", "SPI port to use")
	i2cName := flag.String("i2c", "", "I²C bus to use")
	addr := flag.Uint("addr", uint(uc1609.DefaultAddr), "I²C address of the command channel")
	dcName := flag.String("dc", "GPIO24", "SPI D/C pin")
	csName := flag.String("cs", "GPIO8", "SPI CS pin")
	rstName := flag.String("rst", "GPIO25", "reset pin, empty to use the software reset")

	opts := uc1609.DefaultOpts
	flag.IntVar(&opts.W, "width", opts.W, "panel width")
	flag.IntVar(&opts.H, "height", opts.H, "panel height")
	flag.Var(&opts.Rotation, "rotation", "rotation: 0, 90, 180 or 270")
	flag.Var(&opts.Flush, "flush", "flush mode: full or page")
	flag.BoolVar(&opts.TrimScan, "trim", false, "end the COM scan at the panel height, for rotated panels under 64 rows")

	contrast := flag.Int("contrast", -1, "regulation ratio 0-7, -1 to keep the default")
	invert := flag.Bool("invert", false, "invert the display")
	text := flag.String("text", "", "text to draw")
	size := flag.Float64("size", 16, "font size in points; 0 selects the small fixed font")
	img := flag.String("image", "", "PNG or JPEG image to draw")
	demo := flag.Bool("demo", false, "draw the demo scene")
	preview := flag.Bool("preview", false, "mirror the display in the terminal")
	hold := flag.Duration("hold", 0, "turn the display off after this duration; 0 leaves it on")
	verbose := flag.Bool("v", false, "log every transaction")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts.Addr = uint16(*addr)

	b, err := openBoard(logger, &boardConfig{
		bus:     *busType,
		spi:     *spiName,
		i2c:     *i2cName,
		dc:      *dcName,
		cs:      *csName,
		rst:     *rstName,
		preview: *preview,
	}, &opts)
	if err != nil {
		return err
	}
	defer b.Close()
	d := b.dev
	logger.Info("initialized", "dev", d)

	if *contrast >= 0 {
		if err := d.SetContrast(byte(*contrast)); err != nil {
			return err
		}
	}
	if *invert {
		if err := d.Invert(true); err != nil {
			return err
		}
	}

	var scene image.Image
	switch {
	case *img != "":
		if scene, err = photoScene(d.Bounds(), *img); err != nil {
			return err
		}
	case *text != "" && *size == 0:
		smallText(d.Buffer(), *text)
	case *text != "":
		if scene, err = textScene(d.Bounds(), *text, *size); err != nil {
			return err
		}
	case *demo:
		scene = demoScene(d.Bounds())
	}
	if scene != nil {
		err = d.Draw(d.Bounds(), scene, image.Point{})
	} else {
		err = d.Flush()
	}
	if err != nil {
		return err
	}
	if err := b.refresh(); err != nil {
		return err
	}

	if *hold > 0 {
		time.Sleep(*hold)
		logger.Info("halting", "dev", d)
		if err := d.Halt(); err != nil {
			return err
		}
		return b.refresh()
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "uc1609: %s.\n", err)
		os.Exit(1)
	}
}
