// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

//go:generate go install golang.org/x/tools/cmd/stringer@latest
//go:generate stringer -type=Color,Plane,Model,State,Fault -output types_string.go
//go:generate stringer -type=Op -trimprefix=Op -output op_string.go

import (
	"fmt"
	"strings"
)

// Color is the color of one pixel of a tri-color panel.
//
// On the wire a color is two independent bits, one per plane:
//
//	White  = (black 0, accent 0)
//	Black  = (black 1, accent 0)
//	Accent = (black 0, accent 1)
//
// (1, 1) is reserved and never produced.
type Color uint8

// Valid Color.
const (
	White Color = iota
	Black
	Accent
)

// Set sets the Color to a value represented by the string s. Set implements the flag.Value interface.
func (c *Color) Set(s string) error {
	switch strings.ToLower(s) {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "accent", "red":
		*c = Accent
	default:
		return fmt.Errorf("unknown color %q: expected either white, black or accent", s)
	}
	return nil
}

func (c Color) valid() bool {
	return c <= Accent
}

// bits returns the (black, accent) plane bits for the color.
func (c Color) bits() (bool, bool) {
	switch c {
	case Black:
		return true, false
	case Accent:
		return false, true
	}
	return false, false
}

// Plane selects one of the two bit-planes transferred to the panel.
type Plane uint8

const (
	BlackPlane Plane = iota
	AccentPlane
)

// Model lists the supported panel models.
type Model int

// Supported Model. The number is the diagonal in hundredths of an inch.
const (
	EPD154 Model = iota
	EPD213
	EPD266
	EPD271
	EPD287
	EPD370
	EPD417
	EPD437
)

// Set sets the Model to a value represented by the string s. Set implements the flag.Value interface.
func (m *Model) Set(s string) error {
	for i := EPD154; i <= EPD437; i++ {
		if strings.EqualFold(s, i.String()) || s == i.String()[3:] {
			*m = i
			return nil
		}
	}
	return fmt.Errorf("unknown model %q: expected one of EPD154, EPD213, EPD266, EPD271, EPD287, EPD370, EPD417 or EPD437", s)
}

// State is the protocol state of a Dev.
type State uint8

const (
	// Uninitialized is the state right after New.
	Uninitialized State = iota
	// Ready accepts Update and PowerOff.
	Ready
	// Refreshing is held while an Update is in flight.
	Refreshing
	// PoweredDown is terminal; the hardware has been released.
	PoweredDown
	// Faulted is terminal; see Dev.Fault for the cause.
	Faulted
)

// Fault is the reason a Dev entered the Faulted state.
type Fault uint8

const (
	NoFault Fault = iota
	ResetTimeout
	ConfigTimeout
	RefreshTimeout
	BusFault
	// PowerOffTimeout is reported by PowerOff only. The device still ends
	// PoweredDown.
	PowerOffTimeout
)

// Op identifies a logical panel operation. Several operations may share an
// opcode; the Op records which one a Command encodes.
type Op uint8

const (
	OpSoftReset Op = iota
	OpSetResolution
	OpLoadWaveformTable
	OpActivateTemperature
	OpBeginDataTransfer
	OpPowerOn
	OpRefresh
	OpPowerDown
)
