// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"time"

	"github.com/GermanBionicSystems/uc1609/framebuffer"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	maxWidth  = 192
	maxHeight = 64
)

// Reset timing.
const (
	resetPreDelay = 10 * time.Millisecond
	resetHold     = 100 * time.Millisecond
	resetSettle   = 10 * time.Millisecond
)

// ErrInvalidSize is returned when Opts describe a panel the controller cannot
// drive.
var ErrInvalidSize = errors.New("uc1609: invalid display size")

// ErrBufferSize is returned by Write when the pixel stream does not match the
// framebuffer length.
var ErrBufferSize = errors.New("uc1609: invalid pixel stream length")

// FlushMode selects how the framebuffer is streamed to the controller.
type FlushMode uint8

// Supported FlushMode.
const (
	// FullFrame sends the whole framebuffer in one data transfer.
	FullFrame FlushMode = iota
	// PageWindow addresses every page explicitly and sends it on its own.
	// Slower, but survives a controller that lost its address counter. Only
	// valid for Rotate0 and Rotate180.
	PageWindow
)

// Set implements flag.Value.
func (m *FlushMode) Set(s string) error {
	switch s {
	case "full":
		*m = FullFrame
	case "page":
		*m = PageWindow
	default:
		return fmt.Errorf("unknown flush mode %q: expected full or page", s)
	}
	return nil
}

func (m FlushMode) String() string {
	switch m {
	case FullFrame:
		return "full"
	case PageWindow:
		return "page"
	default:
		return fmt.Sprintf("FlushMode(%d)", uint8(m))
	}
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the panel size in pixels. H must be a multiple of 8.
	W int
	H int
	// Rotation of the drawing surface. Rotate90 and Rotate270 swap the
	// logical width and height.
	Rotation Rotation
	// Addr is the I²C address of the command channel. 0 selects DefaultAddr.
	Addr uint16
	// Flush selects the framebuffer transfer strategy.
	Flush FlushMode
	// TrimScan ends the COM scan at row H-1 instead of 63. Panels shorter than
	// 64 rows need it for Rotate90 and Rotate270, as the page-first address
	// counter otherwise wraps into RAM past the glass.
	TrimScan bool
}

// DefaultOpts is the configuration of the common 192x64 module.
var DefaultOpts = Opts{
	W:        192,
	H:        64,
	Rotation: Rotate90,
	Addr:     DefaultAddr,
	Flush:    FullFrame,
}

func (o *Opts) validate() error {
	if o.W < 1 || o.W > maxWidth {
		return fmt.Errorf("%w: width %d", ErrInvalidSize, o.W)
	}
	if o.H < 8 || o.H > maxHeight || o.H&7 != 0 {
		return fmt.Errorf("%w: height %d", ErrInvalidSize, o.H)
	}
	switch o.Flush {
	case FullFrame:
	case PageWindow:
		if !layoutFor(o.Rotation).vertical {
			return fmt.Errorf("uc1609: flush mode %s requires rotation 0° or 180°, got %s", o.Flush, o.Rotation)
		}
	default:
		return fmt.Errorf("uc1609: invalid flush mode %s", o.Flush)
	}
	return nil
}

// Dev is an open handle to the display controller.
//
// Dev is not safe for concurrent use. Drawing into Buffer(), Flush() and the
// register setters must be serialized by the caller; concurrent flushes would
// interleave partial transfers on the bus.
type Dev struct {
	t Transport

	// Physical panel size.
	w, h     int
	rotation Rotation
	flush    FlushMode
	trimScan bool

	// buffer is allocated once; its layout is fixed by the rotation.
	buffer framebuffer.Image

	on       bool
	inverted bool
	// contrast is the last ratio sent, -1 until SetContrast is called.
	contrast int
}

// NewSPI returns a Dev object that communicates over 4-wire SPI.
//
// dc and cs are required. rst is optional: pass nil to use the software reset
// command instead.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	opts, err := checkOpts(opts)
	if err != nil {
		return nil, err
	}
	t, err := NewSPITransport(p, dc, cs)
	if err != nil {
		return nil, err
	}
	return New(t, rst, opts)
}

// NewI2C returns a Dev object that communicates over I²C at opts.Addr.
//
// rst is optional: pass nil to use the software reset command instead.
func NewI2C(b i2c.Bus, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	opts, err := checkOpts(opts)
	if err != nil {
		return nil, err
	}
	return New(NewI2CTransport(b, opts.Addr), rst, opts)
}

// New returns a Dev driving the controller through t and runs the whole
// initialization sequence. It either returns a powered on display with a
// blank screen, or an error; there is no partially initialized Dev.
//
// opts can be nil to use DefaultOpts.
func New(t Transport, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	opts, err := checkOpts(opts)
	if err != nil {
		return nil, err
	}
	l := layoutFor(opts.Rotation)
	d := &Dev{
		t:        t,
		w:        opts.W,
		h:        opts.H,
		rotation: opts.Rotation & 3,
		flush:    opts.Flush,
		trimScan: opts.TrimScan,
		buffer:   l.newBuffer(opts.W, opts.H),
		contrast: -1,
	}
	if err := d.init(rst, l); err != nil {
		return nil, fmt.Errorf("uc1609: init: %w", err)
	}
	return d, nil
}

func checkOpts(opts *Opts) (*Opts, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	return opts, opts.validate()
}

// init resets the controller, configures it, clears the RAM and turns the
// display on.
func (d *Dev) init(rst gpio.PinOut, l layout) error {
	eh := errorHandler{t: d.t}

	if rst == nil || rst == gpio.INVALID {
		eh.sendCommand(softReset)
	} else {
		eh.rstOut(rst, gpio.High)
		eh.wait(resetPreDelay)
		eh.rstOut(rst, gpio.Low)
		eh.wait(resetHold)
		eh.rstOut(rst, gpio.High)
	}
	eh.wait(resetSettle)

	cfg := baseConfig()
	if d.trimScan {
		cfg[len(cfg)-1] = comEndCmd(d.h)
	}
	for _, c := range cfg {
		eh.sendCommand(c...)
	}
	for _, c := range l.commands() {
		eh.sendCommand(c)
	}

	// Never show stale RAM.
	clear(framebuffer.Pix(d.buffer))
	d.flushInternal(&eh)

	eh.sendCommand(displayOn)
	if eh.err == nil {
		d.on = true
	}
	return eh.err
}

func (d *Dev) String() string {
	state := "off"
	if d.on {
		state = "on"
	}
	if d.inverted {
		state += ", inverted"
	}
	if d.contrast >= 0 {
		state += fmt.Sprintf(", contrast=%d", d.contrast)
	}
	return fmt.Sprintf("uc1609.Dev{%s, %dx%d, %s, %s}", d.t, d.w, d.h, d.rotation, state)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. It is the logical drawing area: width
// and height are swapped for Rotate90 and Rotate270. Min is always {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Buffer returns the framebuffer. Draw into it with image/draw or any
// library targeting draw.Image, then call Flush.
func (d *Dev) Buffer() framebuffer.Image {
	return d.buffer
}

// Draw implements display.Drawer.
//
// It draws src into the framebuffer and flushes synchronously.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if img, ok := src.(framebuffer.Image); ok && framebuffer.SameLayout(img, d.buffer) && r == d.Bounds() && img.Bounds() == r && sp == (image.Point{}) {
		// Exact size, full frame, same packing: fast path!
		copy(framebuffer.Pix(d.buffer), framebuffer.Pix(img))
	} else {
		draw.Src.Draw(d.buffer, r, src, sp)
	}
	return d.Flush()
}

// Write replaces the framebuffer with pixels and flushes.
//
// pixels must use the framebuffer layout and length, see Buffer.
func (d *Dev) Write(pixels []byte) (int, error) {
	buf := framebuffer.Pix(d.buffer)
	if len(pixels) != len(buf) {
		return 0, fmt.Errorf("%w; expected %d bytes, got %d bytes", ErrBufferSize, len(buf), len(pixels))
	}
	copy(buf, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Flush sends the whole framebuffer to the display RAM, starting at page 0,
// column 0.
func (d *Dev) Flush() error {
	eh := errorHandler{t: d.t}
	d.flushInternal(&eh)
	return eh.err
}

func (d *Dev) flushInternal(eh *errorHandler) {
	pix := framebuffer.Pix(d.buffer)
	if d.flush == PageWindow {
		for page := 0; page < d.h/8; page++ {
			eh.sendCommand(pageAddrCmd(page))
			eh.sendCommand(columnAddrCmd(0)...)
			eh.sendData(pix[page*d.w : (page+1)*d.w])
		}
		return
	}
	eh.sendCommand(pageAddrCmd(0))
	eh.sendCommand(columnAddrCmd(0)...)
	eh.sendData(pix)
}

// PowerOn turns the display on. The RAM content is kept while off.
func (d *Dev) PowerOn() error {
	if err := d.t.SendCommand(powerCmd(true)); err != nil {
		return err
	}
	d.on = true
	return nil
}

// PowerOff turns the display off.
func (d *Dev) PowerOff() error {
	if err := d.t.SendCommand(powerCmd(false)); err != nil {
		return err
	}
	d.on = false
	return nil
}

// On reports the last power state successfully sent.
func (d *Dev) On() bool {
	return d.on
}

// Halt implements conn.Resource. It turns the display off.
func (d *Dev) Halt() error {
	return d.PowerOff()
}

// SetContrast changes the regulation ratio. Only the 3 low bits of level are
// used, values above 7 are silently truncated.
func (d *Dev) SetContrast(level byte) error {
	if err := d.t.SendCommand(contrastCmd(level)); err != nil {
		return err
	}
	d.contrast = int(level & 0x07)
	return nil
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if err := d.t.SendCommand(inverseCmd(blackOnWhite)); err != nil {
		return err
	}
	d.inverted = blackOnWhite
	return nil
}

// AllPixelsOn lights every pixel regardless of the RAM content when on is
// true.
func (d *Dev) AllPixelsOn(on bool) error {
	return d.t.SendCommand(allPixelsOnCmd(on))
}

// SetStartLine scrolls the display vertically by mapping RAM row line to the
// first COM line. Only the 6 low bits are used.
func (d *Dev) SetStartLine(line int) error {
	return d.t.SendCommand(startLineCmd(line))
}

// SetPotentiometer sets the electronic volume, the fine contrast
// adjustment.
func (d *Dev) SetPotentiometer(pm byte) error {
	return d.t.SendCommand(setPotentiometer, pm)
}

var _ display.Drawer = &Dev{}
var _ io.Writer = &Dev{}
