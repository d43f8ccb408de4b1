// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdterm implements a monochrome display.Drawer that outputs to the
// terminal using ANSI color codes.
//
// Useful to preview what a dot-matrix LCD will show, or to mirror an
// emulated panel.
package lcdterm

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	W, H int
	// On and Off are the colors of lit and unlit pixels. When both are zero a
	// dark on yellow-green STN look is used.
	On, Off color.NRGBA
	Palette *ansi256.Palette
	// Out defaults to a colorable stdout.
	Out io.Writer

	_ struct{}
}

// Dev is a dot-matrix LCD emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	on, off string

	img   *image1bit.VerticalLSB
	buf   bytes.Buffer
	drawn bool
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on, off := opts.On, opts.Off
	if on == (color.NRGBA{}) && off == (color.NRGBA{}) {
		on = color.NRGBA{R: 0x20, G: 0x28, B: 0x20, A: 255}
		off = color.NRGBA{R: 0x9C, G: 0xB0, B: 0x6C, A: 255}
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:   w,
		on:  p.Block(on),
		off: p.Block(off),
		img: image1bit.NewVerticalLSB(image.Rect(0, 0, opts.W, opts.H)),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("LCDTerm{%dx%d}", d.img.Rect.Dx(), d.img.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.img.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.img, r, src, sp)
	_, err := d.refresh()
	return err
}

// Write accepts a stream of pixels packed as image1bit.VerticalLSB and writes
// it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.img.Pix) {
		return 0, fmt.Errorf("lcdterm: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.img.Pix), len(pixels))
	}
	copy(d.img.Pix, pixels)
	return d.refresh()
}

func (d *Dev) refresh() (int, error) {
	b := d.img.Rect
	d.buf.Reset()
	if d.drawn {
		// Redraw in place.
		fmt.Fprintf(&d.buf, "\033[%dA", b.Dy())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		_, _ = d.buf.WriteString("\r")
		for x := b.Min.X; x < b.Max.X; x++ {
			if d.img.BitAt(x, y) {
				_, _ = d.buf.WriteString(d.on)
			} else {
				_, _ = d.buf.WriteString(d.off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return len(d.img.Pix), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
