// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609

// Commands
const (
	setColumnLSB     byte = 0x00 // + CA[3:0]
	setColumnMSB     byte = 0x10 // + CA[7:4]
	setRatio         byte = 0x20 // + ratio[2:0]; contrast
	setTempComp      byte = 0x24 // + TC[1:0]
	setPowerControl  byte = 0x28 // + PC[2:0]
	setAPC           byte = 0x30 // + R[1:0], followed by APC[7:0]
	setStartLine     byte = 0x40 // + SL[5:0]
	setPotentiometer byte = 0x81 // followed by PM[7:0]
	setRAMAddrCtrl   byte = 0x88 // + AC[2:0]
	setAllPixelsOn   byte = 0xA4 // + 1 bit
	setInverse       byte = 0xA6 // + 1 bit
	displayOff       byte = 0xAE
	displayOn        byte = 0xAF
	setPageAddr      byte = 0xB0 // + PA[3:0]
	setMapping       byte = 0xC0 // + MY<<2 | MX<<1 | LC0
	softReset        byte = 0xE2
	nop              byte = 0xE3
	setBias          byte = 0xE8 // + BR[1:0]
	setCOMEnd        byte = 0xF1 // followed by CEN[6:0]
)

// RAM address control bits.
const (
	acWrapAround byte = 1 << 0
	acPageFirst  byte = 1 << 1
)

// Mapping control bits.
const (
	mapMirrorX byte = 1 << 1
	mapMirrorY byte = 1 << 2
)

// baseConfig returns the commands sent right after reset, before the
// orientation pair. The order matters: the analog settings assume the power
// and bias selection that precedes them.
func baseConfig() [][]byte {
	return [][]byte{
		{displayOff},
		{setTempComp | 0x00},
		{setPowerControl | 0x07},
		{setBias | 0x03},
		{setPotentiometer, 0xB4},
		{startLineCmd(0)},
		{setAPC | 0x03, 0x2A},
		{setMapping | mapMirrorY}, // LC[2:1]
		comEndCmd(maxHeight),
	}
}

// comEndCmd ends the COM scan, and the page-first wrap-around, after rows.
func comEndCmd(rows int) []byte {
	return []byte{setCOMEnd, byte(rows-1) & 0x7F}
}

func startLineCmd(line int) byte {
	return setStartLine | byte(line)&0x3F
}

func pageAddrCmd(page int) byte {
	return setPageAddr | byte(page)&0x0F
}

// columnAddrCmd returns the two byte column address command.
func columnAddrCmd(col int) []byte {
	return []byte{setColumnMSB | byte(col>>4)&0x0F, setColumnLSB | byte(col)&0x0F}
}

func contrastCmd(level byte) byte {
	return setRatio | level&0x07
}

func inverseCmd(inverted bool) byte {
	if inverted {
		return setInverse | 1
	}
	return setInverse
}

func allPixelsOnCmd(on bool) byte {
	if on {
		return setAllPixelsOn | 1
	}
	return setAllPixelsOn
}

func powerCmd(on bool) byte {
	if on {
		return displayOn
	}
	return displayOff
}
