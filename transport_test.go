// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// tapePort is a spi.Port whose transfers are logged on the same tape as the
// pins, to verify the framing order.
type tapePort struct {
	tape *[]string
	err  error

	f    physic.Frequency
	mode spi.Mode
	bits int
}

func (p *tapePort) String() string {
	return "tape"
}

func (p *tapePort) LimitSpeed(f physic.Frequency) error {
	return nil
}

func (p *tapePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.f, p.mode, p.bits = f, mode, bits
	return &tapeConn{p}, nil
}

type tapeConn struct {
	p *tapePort
}

func (c *tapeConn) String() string {
	return c.p.String()
}

func (c *tapeConn) Duplex() conn.Duplex {
	return conn.Full
}

func (c *tapeConn) Tx(w, r []byte) error {
	if c.p.err != nil {
		return c.p.err
	}
	*c.p.tape = append(*c.p.tape, fmt.Sprintf("tx % x", w))
	return nil
}

func (c *tapeConn) TxPackets(p []spi.Packet) error {
	return errors.New("not implemented")
}

func TestSPITransport(t *testing.T) {
	var tape []string
	dc := &tapePin{Pin: gpiotest.Pin{N: "dc"}, tape: &tape}
	cs := &tapePin{Pin: gpiotest.Pin{N: "cs"}, tape: &tape}
	port := &tapePort{tape: &tape}
	tr, err := NewSPITransport(port, dc, cs)
	if err != nil {
		t.Fatal(err)
	}
	if port.f != MaxSPISpeed || port.mode != spi.Mode0|spi.NoCS || port.bits != 8 {
		t.Errorf("Connect(%s, %s, %d)", port.f, port.mode, port.bits)
	}
	if err := tr.SendCommand(0x81, 0x42); err != nil {
		t.Fatal(err)
	}
	if err := tr.SendData([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		// Idle state.
		"dc Low",
		"cs High",
		// Command.
		"dc Low",
		"cs Low",
		"tx 81 42",
		"cs High",
		// Data.
		"dc High",
		"cs Low",
		"tx 01 02 03",
		"cs High",
	}
	if diff := cmp.Diff(tape, want); diff != "" {
		t.Errorf("framing difference (-got +want):\n%s", diff)
	}
	if s := tr.String(); s != "SPI{tape, dc=dc(0), cs=cs(0)}" {
		t.Errorf("String() = %q", s)
	}
}

func TestSPITransport_TxError(t *testing.T) {
	var tape []string
	dc := &tapePin{Pin: gpiotest.Pin{N: "dc"}, tape: &tape}
	cs := &tapePin{Pin: gpiotest.Pin{N: "cs"}, tape: &tape}
	port := &tapePort{tape: &tape}
	tr, err := NewSPITransport(port, dc, cs)
	if err != nil {
		t.Fatal(err)
	}
	errBus := errors.New("spi is gone")
	port.err = errBus
	if err := tr.SendCommand(0xAF); err != errBus {
		t.Fatalf("expected %v, got %v", errBus, err)
	}
	if cs.L != gpio.High {
		t.Error("chip must be released after a failed transfer")
	}
}

func TestSPITransport_PinError(t *testing.T) {
	var tape []string
	errPin := errors.New("pin is gone")
	dc := &tapePin{Pin: gpiotest.Pin{N: "dc"}, tape: &tape, err: errPin}
	cs := &tapePin{Pin: gpiotest.Pin{N: "cs"}, tape: &tape}
	port := &tapePort{tape: &tape}
	if _, err := NewSPITransport(port, dc, cs); err != errPin {
		t.Fatalf("expected %v, got %v", errPin, err)
	}
	if port.bits != 0 {
		t.Error("the port must not be connected")
	}
}

func TestSPITransport_MissingPin(t *testing.T) {
	pin := &gpiotest.Pin{N: "pin"}
	for _, tc := range []struct {
		dc, cs gpio.PinOut
	}{
		{nil, pin},
		{pin, nil},
		{gpio.INVALID, pin},
		{pin, gpio.INVALID},
	} {
		port := &tapePort{}
		if _, err := NewSPITransport(port, tc.dc, tc.cs); !errors.Is(err, ErrMissingPin) {
			t.Errorf("expected ErrMissingPin, got %v", err)
		}
	}
	if pin.L != gpio.Low {
		t.Error("pin must not be touched")
	}
}

func TestI2CTransport(t *testing.T) {
	bus := &i2ctest.Record{}
	tr := NewI2CTransport(bus, 0)
	if err := tr.SendCommand(0xE2); err != nil {
		t.Fatal(err)
	}
	if err := tr.SendData([]byte{0xAA, 0x55}); err != nil {
		t.Fatal(err)
	}
	want := []i2ctest.IO{
		{Addr: 0x3C, W: []byte{0xE2}},
		{Addr: 0x3D, W: []byte{0xAA, 0x55}},
	}
	if diff := cmp.Diff(bus.Ops, want); diff != "" {
		t.Errorf("I/O difference (-got +want):\n%s", diff)
	}
	if s := tr.String(); s != "I2C{record(60)}" {
		t.Errorf("String() = %q", s)
	}
}

func TestI2CTransport_Error(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: 0x3C, W: []byte{0xAF}}},
		DontPanic: true,
	}
	tr := NewI2CTransport(bus, 0x3C)
	if err := tr.SendCommand(0xAF); err != nil {
		t.Fatal(err)
	}
	if err := tr.SendData([]byte{0}); err == nil {
		t.Fatal("expected playback error")
	}
}
