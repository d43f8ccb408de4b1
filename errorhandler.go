// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package uc1609

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// sleep is replaced in tests.
var sleep = time.Sleep

// errorHandler is a wrapper for error management during long command
// sequences: after the first failure every further call is a no-op.
type errorHandler struct {
	t   Transport
	err error
}

func (eh *errorHandler) rstOut(rst gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = rst.Out(l)
}

func (eh *errorHandler) wait(d time.Duration) {
	if eh.err != nil {
		return
	}
	sleep(d)
}

func (eh *errorHandler) sendCommand(c ...byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.t.SendCommand(c...)
}

func (eh *errorHandler) sendData(d []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.t.SendData(d)
}
