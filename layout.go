// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609

import (
	"fmt"
	"image"

	"github.com/GermanBionicSystems/uc1609/framebuffer"
)

// Rotation is the orientation of the logical drawing surface relative to the
// panel, in steps of 90°.
type Rotation uint8

// Supported Rotation.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Set sets the Rotation to a value represented by the string s. Set
// implements the flag.Value interface.
func (r *Rotation) Set(s string) error {
	switch s {
	case "0":
		*r = Rotate0
	case "1", "90":
		*r = Rotate90
	case "2", "180":
		*r = Rotate180
	case "3", "270":
		*r = Rotate270
	default:
		return fmt.Errorf("unknown rotation %q: expected 0, 90, 180 or 270", s)
	}
	return nil
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", 90*int(r&3))
}

// layout pairs the framebuffer packing with the scan direction commands that
// make the controller consume that packing. Keeping both in one entry keeps
// them from drifting apart.
type layout struct {
	// vertical selects image1bit.VerticalLSB, otherwise framebuffer.HorizontalLSB
	// with width and height swapped.
	vertical bool
	// mapping is the mapping control command (row/column mirroring).
	mapping byte
	// addrCtrl is the RAM address control command (increment direction).
	addrCtrl byte
}

// layouts is indexed by Rotation. The glass is mounted with its COM lines
// reversed, hence the row mirror on the upright orientation.
var layouts = [4]layout{
	Rotate0:   {vertical: true, mapping: setMapping | mapMirrorY, addrCtrl: setRAMAddrCtrl | acWrapAround},
	Rotate90:  {vertical: false, mapping: setMapping, addrCtrl: setRAMAddrCtrl | acWrapAround | acPageFirst},
	Rotate180: {vertical: true, mapping: setMapping | mapMirrorX, addrCtrl: setRAMAddrCtrl | acWrapAround},
	Rotate270: {vertical: false, mapping: setMapping | mapMirrorX | mapMirrorY, addrCtrl: setRAMAddrCtrl | acWrapAround | acPageFirst},
}

// layoutFor masks r to its two low bits, like the controller would.
func layoutFor(r Rotation) layout {
	return layouts[r&3]
}

// commands returns the orientation command pair.
func (l layout) commands() []byte {
	return []byte{l.mapping, l.addrCtrl}
}

// bounds returns the logical drawing area for a w×h panel.
func (l layout) bounds(w, h int) image.Rectangle {
	if l.vertical {
		return image.Rect(0, 0, w, h)
	}
	return image.Rect(0, 0, h, w)
}

// newBuffer allocates the framebuffer. Its length is always (h/8)*w.
func (l layout) newBuffer(w, h int) framebuffer.Image {
	return framebuffer.New(l.bounds(w, h), l.vertical)
}
