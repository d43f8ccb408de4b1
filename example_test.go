// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609_test

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/GermanBionicSystems/uc1609"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	dev, err := uc1609.NewSPI(p, gpioreg.ByName("GPIO24"), gpioreg.ByName("GPIO8"), gpioreg.ByName("GPIO25"), &uc1609.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize uc1609: %v", err)
	}
	fmt.Printf("device=%s\n", dev)

	// The framebuffer is rotated by the controller; draw upright.
	img := dev.Buffer()
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: f,
		Dot:  fixed.P(0, f.Ascent),
	}
	drawer.DrawString("periph")
	if err := dev.Flush(); err != nil {
		log.Fatal(err)
	}
	time.Sleep(5 * time.Second)

	_ = dev.Invert(true)
	for level := byte(0); level < 8; level++ {
		_ = dev.SetContrast(level)
		time.Sleep(500 * time.Millisecond)
	}
	_ = dev.Halt()
}
