// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import "time"

type controller interface {
	sendCommand(Command)
	waitUntilIdle(f Fault, limit time.Duration)
}

// initDisplay runs once the reset pulse has been released.
func initDisplay(ctrl controller, opts *Opts) {
	ctrl.waitUntilIdle(ResetTimeout, opts.InitTimeout)

	ctrl.sendCommand(opts.SoftReset())
	ctrl.waitUntilIdle(ResetTimeout, opts.InitTimeout)

	ctrl.sendCommand(opts.SetResolution())
	ctrl.sendCommand(opts.LoadWaveformTable())
	ctrl.sendCommand(opts.ActivateTemperature())
	ctrl.waitUntilIdle(ConfigTimeout, opts.InitTimeout)
}

// updateDisplay transfers both planes and refreshes the whole panel.
func updateDisplay(ctrl controller, opts *Opts, black, accent []byte) {
	ctrl.sendCommand(opts.BeginDataTransfer(BlackPlane, black))
	ctrl.sendCommand(opts.BeginDataTransfer(AccentPlane, accent))

	ctrl.sendCommand(opts.PowerOn())
	ctrl.waitUntilIdle(RefreshTimeout, opts.InitTimeout)

	ctrl.sendCommand(opts.Refresh())
	ctrl.waitUntilIdle(RefreshTimeout, opts.RefreshTimeout)
}

func powerOff(ctrl controller, opts *Opts) {
	ctrl.sendCommand(opts.PowerDown())
	ctrl.waitUntilIdle(PowerOffTimeout, opts.PowerOffTimeout)
}
