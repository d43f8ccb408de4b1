// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultAddr is the I²C address of the command channel. Display data is
// written to DefaultAddr+1.
const DefaultAddr uint16 = 0x3C

// MaxSPISpeed is the fastest serial clock the controller accepts.
const MaxSPISpeed = 8 * physic.MegaHertz

// ErrMissingPin is returned when the SPI transport is created without its
// D/C or CS line.
var ErrMissingPin = errors.New("uc1609: SPI requires both dc and cs pins")

// Transport carries command and data bytes to the controller.
//
// Each call is one framed transaction. Implementations do not retry, and
// errors of the underlying bus are returned as is.
type Transport interface {
	fmt.Stringer
	// SendCommand sends one command, possibly followed by its parameter bytes.
	SendCommand(c ...byte) error
	// SendData sends display RAM content.
	SendData(d []byte) error
}

// spiTransport frames each transfer with the D/C and CS lines.
type spiTransport struct {
	c  conn.Conn
	dc gpio.PinOut
	cs gpio.PinOut
}

// NewSPITransport returns a Transport over a 4-wire SPI port.
//
// dc selects command (Low) or data (High). cs is driven by the transport so
// that a command and its data never share one assertion; the port is
// connected with spi.NoCS.
func NewSPITransport(p spi.Port, dc, cs gpio.PinOut) (Transport, error) {
	if dc == nil || dc == gpio.INVALID || cs == nil || cs == gpio.INVALID {
		return nil, ErrMissingPin
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := cs.Out(gpio.High); err != nil {
		return nil, err
	}
	c, err := p.Connect(MaxSPISpeed, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		return nil, err
	}
	return &spiTransport{c: c, dc: dc, cs: cs}, nil
}

func (t *spiTransport) String() string {
	return fmt.Sprintf("SPI{%s, dc=%s, cs=%s}", t.c, t.dc, t.cs)
}

func (t *spiTransport) SendCommand(c ...byte) error {
	return t.tx(gpio.Low, c)
}

func (t *spiTransport) SendData(d []byte) error {
	return t.tx(gpio.High, d)
}

func (t *spiTransport) tx(dc gpio.Level, b []byte) error {
	if err := t.dc.Out(dc); err != nil {
		return err
	}
	if err := t.cs.Out(gpio.Low); err != nil {
		return err
	}
	err := t.c.Tx(b, nil)
	// Always release the chip, the first error wins.
	if err2 := t.cs.Out(gpio.High); err == nil {
		err = err2
	}
	return err
}

// i2cTransport writes commands at addr and data at addr+1.
type i2cTransport struct {
	cmd  i2c.Dev
	data i2c.Dev
}

// NewI2CTransport returns a Transport over I²C. Use 0 for addr to select
// DefaultAddr.
func NewI2CTransport(b i2c.Bus, addr uint16) Transport {
	if addr == 0 {
		addr = DefaultAddr
	}
	return &i2cTransport{
		cmd:  i2c.Dev{Bus: b, Addr: addr},
		data: i2c.Dev{Bus: b, Addr: addr + 1},
	}
}

func (t *i2cTransport) String() string {
	return fmt.Sprintf("I2C{%s}", &t.cmd)
}

func (t *i2cTransport) SendCommand(c ...byte) error {
	return t.cmd.Tx(c, nil)
}

func (t *i2cTransport) SendData(d []byte) error {
	return t.data.Tx(d, nil)
}
