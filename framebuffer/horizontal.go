// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuffer

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// HorizontalLSB is a 1 bit image where each byte is 8 horizontal pixels, the
// least significant bit being the leftmost one.
//
// This is the layout MicroPython calls MONO_HMSB.
type HorizontalLSB struct {
	// Pix holds the image's pixels, as horizontally LSB-first packed bitmap.
	Pix []byte
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewHorizontalLSB returns an initialized HorizontalLSB instance. The width
// is rounded up to a multiple of 8.
func NewHorizontalLSB(r image.Rectangle) *HorizontalLSB {
	w := (r.Dx() + 7) / 8
	h := r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalLSB{Rect: r}
	}
	return &HorizontalLSB{Pix: make([]byte, w*h), Stride: w, Rect: r}
}

// ColorModel implements image.Image.
func (i *HorizontalLSB) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (i *HorizontalLSB) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *HorizontalLSB) At(x, y int) color.Color {
	return i.BitAt(x, y)
}

// BitAt is the optimized version of At().
func (i *HorizontalLSB) BitAt(x, y int) image1bit.Bit {
	if !(image.Pt(x, y).In(i.Rect)) {
		return image1bit.Off
	}
	offset, mask := i.PixOffset(x, y)
	return image1bit.Bit(i.Pix[offset]&mask != 0)
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (i *HorizontalLSB) Opaque() bool {
	return true
}

// PixOffset returns the index of the byte holding the pixel at (x, y) and the
// bit mask selecting it.
func (i *HorizontalLSB) PixOffset(x, y int) (int, byte) {
	x -= i.Rect.Min.X
	y -= i.Rect.Min.Y
	return y*i.Stride + x/8, 1 << uint(x&7)
}

// Set implements draw.Image.
func (i *HorizontalLSB) Set(x, y int, c color.Color) {
	i.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// SetBit is the optimized version of Set().
func (i *HorizontalLSB) SetBit(x, y int, b image1bit.Bit) {
	if !(image.Pt(x, y).In(i.Rect)) {
		return
	}
	offset, mask := i.PixOffset(x, y)
	if b {
		i.Pix[offset] |= mask
	} else {
		i.Pix[offset] &^= mask
	}
}

var _ Image = &HorizontalLSB{}
