// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/GermanBionicSystems/uc1609"
	"golang.org/x/exp/slog"
)

// traceTransport logs every transaction at debug level.
type traceTransport struct {
	uc1609.Transport
	log *slog.Logger
}

func (t *traceTransport) SendCommand(c ...byte) error {
	err := t.Transport.SendCommand(c...)
	args := []any{"bytes", fmt.Sprintf("% X", c)}
	if err != nil {
		args = append(args, "err", err)
	}
	t.log.Debug("command", args...)
	return err
}

func (t *traceTransport) SendData(d []byte) error {
	err := t.Transport.SendData(d)
	args := []any{"len", len(d)}
	if err != nil {
		args = append(args, "err", err)
	}
	t.log.Debug("data", args...)
	return err
}
