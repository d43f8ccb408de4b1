// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package uc1609 controls a monochrome dot-matrix LCD via a UC1609
// controller. Register compatible ST7567 class controllers work as well.
//
// The device can be driven on either 4-wire SPI or I²C. On SPI, the D/C line
// selects command or data and the CS line frames every transfer. On I²C,
// commands are written at the device address and display data at the next
// address.
//
// The driver keeps a framebuffer in the controller's byte layout and sends it
// whole on Flush. Rotation is done in hardware: for 90° and 270° the
// framebuffer switches to horizontal byte packing and the controller to page
// first address increment, so pixel data is never transformed in software.
//
// Some boards expose a RST / Reset pin. If passed to the driver, it is pulsed
// during initialization; otherwise the software reset command is used.
//
// Dev is not safe for concurrent use.
package uc1609
