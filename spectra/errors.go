// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Sentinel errors. The concrete errors returned by this package wrap one of
// these and can be matched with errors.Is.
var (
	ErrOutOfBounds  = errors.New("spectra: pixel out of bounds")
	ErrInvalidColor = errors.New("spectra: invalid color")
	ErrInvalidSize  = errors.New("spectra: invalid size")
	ErrInvalidState = errors.New("spectra: invalid state")
	ErrTimeout      = errors.New("spectra: timeout")
	ErrBusFault     = errors.New("spectra: bus fault")
)

// BoundsError reports a pixel coordinate outside the frame buffer.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("spectra: pixel (%d,%d) out of bounds %dx%d", e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// SizeError reports dimensions that cannot be used.
type SizeError struct {
	Width, Height int
	// Want is the panel size when the size had to match a panel.
	Want image.Point
}

func (e *SizeError) Error() string {
	if e.Want != (image.Point{}) {
		return fmt.Sprintf("spectra: frame buffer is %dx%d, panel is %dx%d", e.Width, e.Height, e.Want.X, e.Want.Y)
	}
	return fmt.Sprintf("spectra: invalid size %dx%d", e.Width, e.Height)
}

func (e *SizeError) Unwrap() error { return ErrInvalidSize }

// StateError reports an operation issued in a state that cannot accept it.
type StateError struct {
	Op       string
	Current  State
	Required State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("spectra: %s requires state %s, device is %s", e.Op, e.Required, e.Current)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// TimeoutError reports that the panel did not release its busy line in time.
type TimeoutError struct {
	// Fault names the wait that expired. It is NoFault when returned
	// directly by WaitReady.
	Fault   Fault
	Elapsed time.Duration
	Limit   time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Fault == NoFault {
		return fmt.Sprintf("spectra: panel still busy after %s (limit %s)", e.Elapsed, e.Limit)
	}
	return fmt.Sprintf("spectra: %s: panel still busy after %s (limit %s)", e.Fault, e.Elapsed, e.Limit)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// BusError wraps an error reported by the SPI connection or a control line.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("spectra: %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() []error { return []error{ErrBusFault, e.Err} }
