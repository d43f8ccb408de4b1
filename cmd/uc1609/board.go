// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"io"

	"github.com/GermanBionicSystems/uc1609"
	"github.com/GermanBionicSystems/uc1609/lcdterm"
	"github.com/GermanBionicSystems/uc1609/uc1609sim"
	"golang.org/x/exp/slog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type boardConfig struct {
	bus         string
	spi, i2c    string
	dc, cs, rst string
	preview     bool
	// previewOut defaults to stdout.
	previewOut io.Writer
}

// board is an initialized display with the resources backing it.
type board struct {
	dev    *uc1609.Dev
	closer io.Closer
	// panel is set for the emulated bus.
	panel   *uc1609sim.Panel
	preview *lcdterm.Dev
}

func (b *board) Close() error {
	var err error
	if b.preview != nil {
		err = b.preview.Halt()
	}
	if b.closer != nil {
		if err2 := b.closer.Close(); err == nil {
			err = err2
		}
	}
	return err
}

// refresh mirrors the display in the terminal. The emulated glass is shown
// as is; for real hardware the framebuffer is shown upright.
func (b *board) refresh() error {
	if b.preview == nil {
		return nil
	}
	if b.panel != nil {
		return b.preview.Draw(b.preview.Bounds(), b.panel.Image(), image.Point{})
	}
	return b.preview.Draw(b.preview.Bounds(), b.dev.Buffer(), b.dev.Bounds().Min)
}

func openBoard(logger *slog.Logger, cfg *boardConfig, opts *uc1609.Opts) (*board, error) {
	if cfg.bus != "sim" {
		if _, err := host.Init(); err != nil {
			return nil, err
		}
	}
	b := &board{}
	var t uc1609.Transport
	var rst gpio.PinOut
	switch cfg.bus {
	case "spi":
		p, err := spireg.Open(cfg.spi)
		if err != nil {
			return nil, err
		}
		b.closer = p
		dc, cs := gpioreg.ByName(cfg.dc), gpioreg.ByName(cfg.cs)
		if dc == nil || cs == nil {
			p.Close()
			return nil, fmt.Errorf("unknown pin %q or %q", cfg.dc, cfg.cs)
		}
		if t, err = uc1609.NewSPITransport(p, dc, cs); err != nil {
			p.Close()
			return nil, err
		}
		if rst, err = optionalPin(cfg.rst); err != nil {
			p.Close()
			return nil, err
		}
	case "i2c":
		bus, err := i2creg.Open(cfg.i2c)
		if err != nil {
			return nil, err
		}
		b.closer = bus
		t = uc1609.NewI2CTransport(bus, opts.Addr)
		if rst, err = optionalPin(cfg.rst); err != nil {
			bus.Close()
			return nil, err
		}
	case "sim":
		p, err := uc1609sim.New(opts.W, opts.H, opts.Addr)
		if err != nil {
			return nil, err
		}
		b.closer = p
		b.panel = p
		t = uc1609.NewI2CTransport(p, opts.Addr)
	default:
		return nil, fmt.Errorf("unknown bus %q", cfg.bus)
	}

	dev, err := uc1609.New(&traceTransport{Transport: t, log: logger}, rst, opts)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.dev = dev
	if cfg.preview || b.panel != nil {
		r := dev.Bounds()
		if b.panel != nil {
			r = b.panel.Bounds()
		}
		b.preview = lcdterm.New(&lcdterm.Opts{W: r.Dx(), H: r.Dy(), Out: cfg.previewOut})
	}
	return b, nil
}

func optionalPin(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown pin %q", name)
	}
	return p, nil
}
