// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}

// parkDelay is the wait between parking DC/CS and releasing RESET at power
// off.
const parkDelay = 150 * time.Millisecond

// Dev is a handle to a Spectra panel.
//
// Dev is not safe for concurrent use. Each method runs to completion, busy
// waits included, before returning.
type Dev struct {
	c    conn.Conn
	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	delay Delay
	opts  *Opts
	name  string

	state State
	fault Fault
	err   error
}

// New opens a handle to a panel on SPI port p.
//
// A nil delay uses time.Sleep. opts is copied.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, delay Delay, opts *Opts) (*Dev, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	c, err := p.Connect(opts.maxSpeed(), spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("spectra: failed to connect over spi: %w", err)
	}
	return NewConn(c, dc, cs, rst, busy, delay, opts)
}

// NewConn opens a handle to a panel on an already configured connection.
// The connection must use SPI mode 0 with 8 bit words.
func NewConn(c conn.Conn, dc, cs, rst gpio.PinOut, busy gpio.PinIn, delay Delay, opts *Opts) (*Dev, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, &BusError{Op: "busy", Err: err}
	}
	if delay == nil {
		delay = DelayFunc(time.Sleep)
	}

	return &Dev{
		c:     c,
		dc:    dc,
		cs:    cs,
		rst:   rst,
		busy:  busy,
		delay: delay,
		opts:  opts.clone(),
		name:  fmt.Sprintf("%s, %s", c, dc),
		state: Uninitialized,
	}, nil
}

// State returns the current protocol state.
func (d *Dev) State() State {
	return d.state
}

// Fault returns why the device is Faulted and the error that caused it. It
// returns NoFault and nil in any other state.
func (d *Dev) Fault() (Fault, error) {
	if d.state != Faulted {
		return NoFault, nil
	}
	return d.fault, d.err
}

// Init resets and configures the panel. It is only accepted once, right
// after New. A timeout or transport error leaves the device Faulted; the
// caller decides whether to start over with a new Dev.
func (d *Dev) Init() error {
	if err := d.require("Init", Uninitialized); err != nil {
		return err
	}

	eh := errorHandler{d: d}

	eh.reset()
	initDisplay(&eh, d.opts)

	return d.finish(&eh, Ready)
}

// Update transfers fb to the panel and refreshes it. fb must have the
// panel's size. The whole panel is rewritten on every call.
//
// Update blocks for the physical refresh, which takes several seconds.
func (d *Dev) Update(fb *FrameBuffer) error {
	if err := d.require("Update", Ready); err != nil {
		return err
	}
	if fb == nil {
		return &SizeError{Want: d.size()}
	}
	if fb.Width() != d.opts.Width || fb.Height() != d.opts.Height {
		return &SizeError{Width: fb.Width(), Height: fb.Height(), Want: d.size()}
	}

	black, accent := fb.BlackPlane(), fb.AccentPlane()

	d.state = Refreshing

	eh := errorHandler{d: d}
	updateDisplay(&eh, d.opts, black, accent)

	return d.finish(&eh, Ready)
}

// PowerOff turns off the DC/DC converter and parks the control lines low.
//
// The device ends PoweredDown even when the panel does not acknowledge the
// command; that error is still returned. The connection and pins are
// released and every later call fails with ErrInvalidState.
func (d *Dev) PowerOff() error {
	if err := d.require("PowerOff", Ready); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	powerOff(&eh, d.opts)
	err := eh.err

	// Park the lines regardless of the outcome above.
	park := errorHandler{d: d}
	park.out(d.dc, gpio.Low, "dc")
	park.out(d.cs, gpio.Low, "cs")
	// BUSY is only driven when the pin can also be an output.
	if p, ok := d.busy.(gpio.PinOut); ok {
		park.out(p, gpio.Low, "busy")
	}
	park.sleep(parkDelay)
	park.out(d.rst, gpio.Low, "reset")
	if err == nil {
		err = park.err
	}

	d.c, d.dc, d.cs, d.rst, d.busy = nil, nil, nil, nil, nil
	d.state = PoweredDown

	return err
}

// NewFrameBuffer returns an all-White frame buffer of the panel's size.
func (d *Dev) NewFrameBuffer() *FrameBuffer {
	fb, _ := NewFrameBuffer(d.opts.Width, d.opts.Height)
	return fb
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return Palette
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: d.size()}
}

// Draw implements display.Drawer. Only full panel updates are supported.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if dstRect != d.Bounds() {
		return errors.New("spectra: partial updates are not supported")
	}
	fb := d.NewFrameBuffer()
	draw.Src.Draw(fb, dstRect, src, srcPts)
	return d.Update(fb)
}

// Halt implements conn.Resource. It powers the panel off when it is Ready
// and does nothing otherwise.
func (d *Dev) Halt() error {
	if d.state != Ready {
		return nil
	}
	return d.PowerOff()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("spectra.Dev{%s, Width: %d, Height: %d, State: %s}", d.name, d.opts.Width, d.opts.Height, d.state)
}

func (d *Dev) size() image.Point {
	return image.Pt(d.opts.Width, d.opts.Height)
}

func (d *Dev) require(op string, want State) error {
	if d.state != want {
		return &StateError{Op: op, Current: d.state, Required: want}
	}
	return nil
}

// finish moves to next, or to Faulted if the sequence failed.
func (d *Dev) finish(eh *errorHandler, next State) error {
	if eh.err == nil {
		d.state = next
		return nil
	}
	d.state = Faulted
	d.fault = eh.fault
	d.err = eh.err
	return eh.err
}
