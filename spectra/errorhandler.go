// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. Once an error is recorded
// every later call is a no-op, so a sequence stops at its first failure.
type errorHandler struct {
	d     *Dev
	err   error
	fault Fault
}

func (eh *errorHandler) fail(f Fault, err error) {
	eh.err = err
	eh.fault = f
}

func (eh *errorHandler) out(p gpio.PinOut, l gpio.Level, name string) {
	if eh.err != nil {
		return
	}
	if err := p.Out(l); err != nil {
		eh.fail(BusFault, &BusError{Op: name, Err: err})
	}
}

func (eh *errorHandler) sleep(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.delay.Sleep(d)
}

// reset pulses the RESET line twice: a short wake pulse, then the reset
// pulse proper. The second low phase lasts at least minResetPulse.
func (eh *errorHandler) reset() {
	opts := eh.d.opts

	eh.out(eh.d.cs, gpio.High, "cs")
	eh.out(eh.d.dc, gpio.High, "dc")
	eh.out(eh.d.rst, gpio.Low, "reset")
	eh.sleep(wakePulse)
	eh.out(eh.d.rst, gpio.High, "reset")
	eh.sleep(opts.ResetSettle)
	eh.out(eh.d.rst, gpio.Low, "reset")
	eh.sleep(opts.resetPulse())
	eh.out(eh.d.rst, gpio.High, "reset")
	eh.sleep(opts.ResetSettle)
}

func (eh *errorHandler) sendCommand(cmd Command) {
	if eh.err != nil {
		return
	}
	if err := Transmit(eh.d.c, eh.d.dc, eh.d.cs, cmd); err != nil {
		eh.fail(BusFault, err)
	}
}

func (eh *errorHandler) waitUntilIdle(f Fault, limit time.Duration) {
	if eh.err != nil {
		return
	}
	opts := eh.d.opts
	if _, err := WaitReady(eh.d.busy, opts.IdleLevel, opts.PollInterval, limit, eh.d.delay); err != nil {
		var te *TimeoutError
		if errors.As(err, &te) {
			te.Fault = f
		}
		eh.fail(f, err)
	}
}
