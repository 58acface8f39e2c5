// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Delay blocks the caller for at least d.
type Delay interface {
	Sleep(d time.Duration)
}

// DelayFunc adapts a function to Delay.
type DelayFunc func(d time.Duration)

// Sleep implements Delay.
func (f DelayFunc) Sleep(d time.Duration) {
	f(d)
}

// WaitReady polls busy until it reads idle.
//
// The line is sampled immediately, then once after every poll interval. The
// returned duration is the sum of the delays requested, so it never exceeds
// limit. If the line is still busy once limit is reached a *TimeoutError is
// returned. A nil delay uses time.Sleep.
func WaitReady(busy gpio.PinIn, idle gpio.Level, poll, limit time.Duration, delay Delay) (time.Duration, error) {
	if delay == nil {
		delay = DelayFunc(time.Sleep)
	}
	if poll <= 0 {
		poll = time.Millisecond
	}

	var elapsed time.Duration
	for {
		if busy.Read() == idle {
			return elapsed, nil
		}
		if elapsed >= limit {
			return elapsed, &TimeoutError{Elapsed: elapsed, Limit: limit}
		}
		step := poll
		if rest := limit - elapsed; rest < step {
			step = rest
		}
		delay.Sleep(step)
		elapsed += step
	}
}
