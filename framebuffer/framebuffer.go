// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framebuffer holds the two 1 bit layouts a UC1609 class controller
// consumes.
//
// image1bit.VerticalLSB packs 8 vertically adjacent pixels per byte, least
// significant bit on top, in horizontal bands (pages) of 8 rows. This is the
// controller's native RAM layout.
//
// HorizontalLSB packs 8 horizontally adjacent pixels per byte, least
// significant bit on the left. Written to the controller with page-first
// address increment it lands in RAM transposed, which is how rotations by 90°
// are implemented without touching pixel data.
package framebuffer

import (
	"image"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Image is a 1 bit image whose pixels are stored in a single contiguous byte
// slice that can be sent to the controller as is.
//
// It is implemented by *image1bit.VerticalLSB and *HorizontalLSB.
type Image interface {
	draw.Image
	BitAt(x, y int) image1bit.Bit
	SetBit(x, y int, b image1bit.Bit)
}

// New returns the image layout matching vertical or horizontal packing.
func New(r image.Rectangle, vertical bool) Image {
	if vertical {
		return image1bit.NewVerticalLSB(r)
	}
	return NewHorizontalLSB(r)
}

// Pix returns the backing store of img. It is never reallocated.
//
// It returns nil for an Image implementation not created by this package.
func Pix(img Image) []byte {
	switch i := img.(type) {
	case *image1bit.VerticalLSB:
		return i.Pix
	case *HorizontalLSB:
		return i.Pix
	default:
		return nil
	}
}

// SameLayout reports whether a and b use the same packing.
func SameLayout(a, b Image) bool {
	switch a.(type) {
	case *image1bit.VerticalLSB:
		_, ok := b.(*image1bit.VerticalLSB)
		return ok
	case *HorizontalLSB:
		_, ok := b.(*HorizontalLSB)
		return ok
	default:
		return false
	}
}

var _ Image = &image1bit.VerticalLSB{}
