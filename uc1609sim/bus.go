// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609sim

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// MaxSPISpeed is the fastest serial clock the emulated controller accepts.
const MaxSPISpeed = 8 * physic.MegaHertz

// Tx implements i2c.Bus.
//
// Writes at the panel address are commands, writes at the next address are
// display data. Any other address is not acknowledged.
func (p *Panel) Tx(addr uint16, w, r []byte) error {
	if len(r) != 0 {
		return errors.New("uc1609sim: reads are not supported")
	}
	switch addr {
	case p.addr:
		return p.Command(w)
	case p.addr + 1:
		return p.Data(w)
	default:
		return fmt.Errorf("uc1609sim: no device at %#x", addr)
	}
}

// SetSpeed implements i2c.Bus.
func (p *Panel) SetSpeed(f physic.Frequency) error {
	return nil
}

// LimitSpeed implements spi.PortCloser.
func (p *Panel) LimitSpeed(f physic.Frequency) error {
	return nil
}

// Close implements spi.PortCloser and i2c.BusCloser. It has no effect.
func (p *Panel) Close() error {
	return nil
}

// Connect implements spi.Port.
//
// Transfers are only decoded while CS is Low; DC selects command (Low) or
// data (High).
func (p *Panel) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if f > MaxSPISpeed {
		return nil, fmt.Errorf("uc1609sim: invalid speed %s; maximum supported clock is %s", f, MaxSPISpeed)
	}
	if m := mode &^ (spi.NoCS | spi.HalfDuplex); m != spi.Mode0 && m != spi.Mode3 {
		return nil, fmt.Errorf("uc1609sim: unsupported mode %s", mode)
	}
	if bits != 8 {
		return nil, fmt.Errorf("uc1609sim: unsupported %d bits per word", bits)
	}
	return &spiConn{p: p}, nil
}

// DC returns the data/command select line of the SPI interface.
func (p *Panel) DC() gpio.PinOut {
	return p.dc
}

// CS returns the chip select line of the SPI interface. It idles High.
func (p *Panel) CS() gpio.PinOut {
	return p.cs
}

type spiConn struct {
	p *Panel
}

func (c *spiConn) String() string {
	return c.p.String()
}

func (c *spiConn) Duplex() conn.Duplex {
	return conn.Half
}

func (c *spiConn) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("uc1609sim: reads are not supported")
	}
	if c.p.cs.Read() == gpio.High {
		// Not selected.
		return nil
	}
	if c.p.dc.Read() == gpio.Low {
		return c.p.Command(w)
	}
	return c.p.Data(w)
}

func (c *spiConn) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if err := c.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

// line is an input of the controller, driven by the host.
type line struct {
	name string

	mu sync.Mutex
	l  gpio.Level
}

func (l *line) String() string {
	return "uc1609sim." + l.name
}

// Halt implements conn.Resource.
func (l *line) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (l *line) Name() string {
	return l.name
}

// Number implements pin.Pin.
func (l *line) Number() int {
	return -1
}

// Function implements pin.Pin.
func (l *line) Function() string {
	return "Out/" + l.Read().String()
}

// Out implements gpio.PinOut.
func (l *line) Out(level gpio.Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l = level
	return nil
}

// PWM implements gpio.PinOut.
func (l *line) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("uc1609sim: PWM is not supported")
}

// Read returns the level last driven.
func (l *line) Read() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.l
}

var _ i2c.BusCloser = &Panel{}
var _ spi.PortCloser = &Panel{}
var _ spi.Conn = &spiConn{}
var _ gpio.PinOut = &line{}
