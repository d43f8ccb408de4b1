// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/uc1609"
	"golang.org/x/exp/slog"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

type nopTransport struct {
	err error
}

func (n *nopTransport) String() string {
	return "nop"
}

func (n *nopTransport) SendCommand(c ...byte) error {
	return n.err
}

func (n *nopTransport) SendData(d []byte) error {
	return n.err
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func TestTraceTransport(t *testing.T) {
	var buf bytes.Buffer
	tr := &traceTransport{Transport: &nopTransport{}, log: newTestLogger(&buf)}
	if err := tr.SendCommand(0x81, 0xB4); err != nil {
		t.Fatal(err)
	}
	if err := tr.SendData(make([]byte, 12)); err != nil {
		t.Fatal(err)
	}
	want := "level=DEBUG msg=command bytes=\"81 B4\"\nlevel=DEBUG msg=data len=12\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()
	errBus := errors.New("nack")
	tr.Transport = &nopTransport{err: errBus}
	if err := tr.SendCommand(0xAF); err != errBus {
		t.Fatalf("expected %v, got %v", errBus, err)
	}
	if got := buf.String(); !strings.Contains(got, "err=nack") {
		t.Errorf("error not logged: %q", got)
	}
}

func countOn(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if image1bit.BitModel.Convert(img.At(x, y)).(image1bit.Bit) {
				n++
			}
		}
	}
	return n
}

func TestScenes(t *testing.T) {
	b := image.Rect(0, 0, 64, 192)
	img, err := textScene(b, "periph", 16)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != b {
		t.Errorf("text bounds = %v", img.Bounds())
	}
	if n := countOn(img); n == 0 {
		t.Error("no text drawn")
	}
	img = demoScene(b)
	if n := countOn(img); n == 0 || n == b.Dx()*b.Dy() {
		t.Errorf("demo has %d pixels set", n)
	}

	buf := image1bit.NewVerticalLSB(image.Rect(0, 0, 64, 16))
	smallText(buf, "Hi")
	if n := countOn(buf); n == 0 {
		t.Error("no small text drawn")
	}
}

func TestDither(t *testing.T) {
	// Black on the left half, white on the right half, twice the display
	// size.
	src := image.NewGray(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 32; x < 64; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "half.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	img, err := photoScene(image.Rect(0, 0, 32, 16), path)
	if err != nil {
		t.Fatal(err)
	}
	left := countOn(subImage(img, image.Rect(0, 0, 12, 16)))
	right := countOn(subImage(img, image.Rect(20, 0, 32, 16)))
	if left < 12*16*9/10 || right > 12*16/10 {
		t.Errorf("dark side has %d pixels set, bright side %d", left, right)
	}
	if _, err := photoScene(image.Rect(0, 0, 32, 16), filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error")
	}
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	return img.(interface {
		SubImage(image.Rectangle) image.Image
	}).SubImage(r)
}

func TestOpenBoard_Sim(t *testing.T) {
	var logs, out bytes.Buffer
	opts := uc1609.DefaultOpts
	opts.W, opts.H = 32, 16
	opts.TrimScan = true
	b, err := openBoard(newTestLogger(&logs), &boardConfig{bus: "sim", previewOut: &out}, &opts)
	if err != nil {
		t.Fatal(err)
	}
	d := b.dev
	smallText(d.Buffer(), "A")
	if err := d.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := b.refresh(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), "\n"); got != 16 {
		t.Errorf("preview has %d lines, want 16", got)
	}
	if n := countOn(b.panel.Image()); n == 0 {
		t.Error("nothing shown on the glass")
	}
	if !strings.Contains(logs.String(), "msg=command bytes=E2\n") {
		t.Errorf("soft reset not traced:\n%s", logs.String())
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenBoard_Invalid(t *testing.T) {
	var logs bytes.Buffer
	if _, err := openBoard(newTestLogger(&logs), &boardConfig{bus: "sim"}, &uc1609.Opts{W: 7, H: 7}); err == nil {
		t.Error("expected size error")
	}
	if err := (&board{}).Close(); err != nil {
		t.Error(err)
	}
}
