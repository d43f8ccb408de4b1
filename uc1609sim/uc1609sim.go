// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package uc1609sim emulates a UC1609 class LCD controller and its glass.
//
// A Panel decodes the command and data stream it receives, keeps the display
// RAM with the controller's auto increment rules and renders what the glass
// would show. It is reachable as an i2c.Bus or as an spi.Port with its own D/C
// and CS lines, so the driver can be exercised without hardware.
//
// The emulated controller is sized to the glass: the RAM has exactly as many
// columns and pages as the panel.
package uc1609sim

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DefaultAddr is the I²C address of the command channel.
const DefaultAddr uint16 = 0x3C

const (
	maxColumns = 192
	maxRows    = 64
)

// RAM address control bits.
const (
	acWrapAround = 1 << 0
	acPageFirst  = 1 << 1
)

// Registers is a snapshot of the controller state.
type Registers struct {
	// Address counter.
	Column int
	Page   int

	StartLine int
	MirrorX   bool
	MirrorY   bool
	AddrCtrl  byte
	// Ratio is the 0x20-0x27 register. On the UC1609 proper, values 4 to 7
	// select the temperature compensation.
	Ratio         byte
	PowerControl  byte
	Bias          byte
	Potentiometer byte
	APC           [4]byte
	COMEnd        int

	AllPixelsOn bool
	Inverse     bool
	On          bool
}

func defaultRegisters() Registers {
	return Registers{AddrCtrl: acWrapAround, COMEnd: maxRows - 1}
}

// Panel is an emulated controller wired to a glass of w×h pixels.
//
// Panel is safe for concurrent use.
type Panel struct {
	w, h int
	addr uint16

	dc, cs *line

	mu sync.Mutex
	// ram holds the h/8 pages behind the glass. Writes to the other pages
	// are dropped. One byte per column per page, least
	// significant bit on top.
	ram []byte
	reg Registers
	// pending is a two byte opcode waiting for its parameter.
	pending byte
	// stalled is set when the address counter ran past the end of the RAM
	// without wrap-around. Further data is dropped until readdressed.
	stalled bool
}

// New returns an emulated panel of w×h pixels answering at addr on I²C.
// Use 0 for addr to select DefaultAddr.
//
// The RAM starts with a checkerboard, as real RAM content is undefined at
// power up.
func New(w, h int, addr uint16) (*Panel, error) {
	if w < 1 || w > maxColumns || h < 8 || h > maxRows || h&7 != 0 {
		return nil, fmt.Errorf("uc1609sim: invalid panel size %dx%d", w, h)
	}
	if addr == 0 {
		addr = DefaultAddr
	}
	p := &Panel{
		w:    w,
		h:    h,
		addr: addr,
		dc:   &line{name: "DC"},
		cs:   &line{name: "CS", l: gpio.High},
		ram:  make([]byte, w*h/8),
		reg:  defaultRegisters(),
	}
	for i := range p.ram {
		p.ram[i] = 0x55 << uint(i&1)
	}
	return p, nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("uc1609sim(%dx%d)", p.w, p.h)
}

// Bounds returns the glass size.
func (p *Panel) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.w, p.h)
}

// Registers returns a snapshot of the controller registers.
func (p *Panel) Registers() Registers {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reg
}

// RAM returns a copy of the display RAM, page major.
func (p *Panel) RAM() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.ram...)
}

// Command decodes c as a stream of commands.
func (p *Panel) Command(c []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range c {
		if err := p.command(b); err != nil {
			return err
		}
	}
	return nil
}

// Data writes d to the display RAM at the address counter.
func (p *Panel) Data(d []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending != 0 {
		return fmt.Errorf("uc1609sim: data while command %#02x awaits its parameter", p.pending)
	}
	for _, b := range d {
		p.write(b)
	}
	return nil
}

// Image renders what the glass shows.
func (p *Panel) Image() *image1bit.VerticalLSB {
	p.mu.Lock()
	defer p.mu.Unlock()
	img := image1bit.NewVerticalLSB(p.Bounds())
	if !p.reg.On {
		return img
	}
	for y := 0; y < p.h; y++ {
		// The glass is mounted with its COM lines reversed.
		com := p.h - 1 - y
		row := com
		if p.reg.MirrorY {
			row = p.h - 1 - com
		}
		row = (row + p.reg.StartLine) % p.h
		for x := 0; x < p.w; x++ {
			col := x
			if p.reg.MirrorX {
				col = p.w - 1 - col
			}
			on := p.ram[row/8*p.w+col]&(1<<uint(row&7)) != 0
			img.SetBit(x, y, image1bit.Bit(on != p.reg.Inverse || p.reg.AllPixelsOn))
		}
	}
	return img
}

var errUnknown = errors.New("uc1609sim: unknown command")

func (p *Panel) command(b byte) error {
	if p.pending != 0 {
		p.param(p.pending, b)
		p.pending = 0
		return nil
	}
	switch {
	case b == 0x81, b&0xFC == 0x30, b == 0xF1:
		p.pending = b
	case b <= 0x0F:
		p.reg.Column = p.reg.Column&0xF0 | int(b&0x0F)
		p.stalled = false
	case b <= 0x1F:
		p.reg.Column = int(b&0x0F)<<4 | p.reg.Column&0x0F
		p.stalled = false
	case b <= 0x27:
		p.reg.Ratio = b & 0x07
	case b <= 0x2F:
		p.reg.PowerControl = b & 0x07
	case b >= 0x40 && b <= 0x7F:
		p.reg.StartLine = int(b & 0x3F)
	case b >= 0x88 && b <= 0x8B:
		p.reg.AddrCtrl = b & 0x03
	case b == 0xA4, b == 0xA5:
		p.reg.AllPixelsOn = b&1 != 0
	case b == 0xA6, b == 0xA7:
		p.reg.Inverse = b&1 != 0
	case b == 0xAE, b == 0xAF:
		p.reg.On = b&1 != 0
	case b&0xF0 == 0xB0:
		p.reg.Page = int(b & 0x0F)
		p.stalled = false
	case b&0xF8 == 0xC0:
		p.reg.MirrorX = b&0x02 != 0
		p.reg.MirrorY = b&0x04 != 0
	case b == 0xE2:
		p.reg = defaultRegisters()
		p.stalled = false
	case b == 0xE3:
	case b&0xFC == 0xE8:
		p.reg.Bias = b & 0x03
	default:
		return fmt.Errorf("%w %#02x", errUnknown, b)
	}
	return nil
}

func (p *Panel) param(op, v byte) {
	switch {
	case op == 0x81:
		p.reg.Potentiometer = v
	case op&0xFC == 0x30:
		p.reg.APC[op&0x03] = v
	case op == 0xF1:
		p.reg.COMEnd = int(v & 0x7F)
	}
}

// pages is the number of pages the address counter cycles through.
func (p *Panel) pages() int {
	n := (p.reg.COMEnd + 1) / 8
	if n < 1 {
		n = 1
	}
	if n > maxRows/8 {
		n = maxRows / 8
	}
	return n
}

func (p *Panel) write(b byte) {
	if p.stalled {
		return
	}
	if p.reg.Page < p.h/8 && p.reg.Column < p.w {
		p.ram[p.reg.Page*p.w+p.reg.Column] = b
	}
	p.advance()
}

func (p *Panel) advance() {
	wrap := p.reg.AddrCtrl&acWrapAround != 0
	// inner is the counter incremented after every byte, outer the one
	// incremented when inner wraps.
	inner, innerN, outer, outerN := &p.reg.Column, p.w, &p.reg.Page, p.pages()
	if p.reg.AddrCtrl&acPageFirst != 0 {
		inner, innerN, outer, outerN = &p.reg.Page, p.pages(), &p.reg.Column, p.w
	}
	*inner++
	if *inner < innerN {
		return
	}
	if !wrap {
		p.stalled = true
		return
	}
	*inner = 0
	*outer++
	if *outer >= outerN {
		*outer = 0
	}
}
