// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinygospi

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Line is the subset of machine.Pin used by Pin.
type Line interface {
	Set(high bool)
	Get() bool
}

// Pin is a gpio.PinIO backed by a TinyGo pin. The pin direction must be
// configured by the caller. Everything besides Out, Read and In behaves like
// gpio.INVALID.
type Pin struct {
	gpio.PinIO
	name string
	l    Line
}

// NewPin wraps l.
func NewPin(name string, l Line) *Pin {
	return &Pin{PinIO: gpio.INVALID, name: name, l: l}
}

func (p *Pin) String() string {
	return p.name
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.name
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// In implements gpio.PinIn. Edge detection is not supported.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return errors.New("tinygospi: edge detection is not supported")
	}
	return nil
}

// Read implements gpio.PinIn.
func (p *Pin) Read() gpio.Level {
	return gpio.Level(p.l.Get())
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	p.l.Set(bool(l))
	return nil
}

var _ gpio.PinIO = &Pin{}
