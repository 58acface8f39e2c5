// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// defaultMaxTxSize is used when the connection does not report its limit.
const defaultMaxTxSize = 4096

// Command is one opcode and its payload, ready for Transmit.
type Command struct {
	Op      Op
	Opcode  byte
	Payload []byte
}

// Frame builds a Command. The payload is copied.
func Frame(op Op, opcode byte, payload []byte) Command {
	cmd := Command{Op: op, Opcode: opcode}
	if len(payload) != 0 {
		cmd.Payload = append([]byte(nil), payload...)
	}
	return cmd
}

// SoftReset restarts the controller logic.
func (o *Opts) SoftReset() Command {
	return Frame(OpSoftReset, o.Opcodes.SoftReset, []byte{0x0E})
}

// SetResolution writes the panel settings, which carry the resolution.
func (o *Opts) SetResolution() Command {
	return Frame(OpSetResolution, o.Opcodes.PanelSettings, o.PanelSettings)
}

// LoadWaveformTable selects the waveform.
func (o *Opts) LoadWaveformTable() Command {
	return Frame(OpLoadWaveformTable, o.Opcodes.InputTemperature, o.Waveform)
}

// ActivateTemperature applies the waveform selected by LoadWaveformTable.
func (o *Opts) ActivateTemperature() Command {
	return Frame(OpActivateTemperature, o.Opcodes.ActiveTemperature, o.ActiveTemperature)
}

// BeginDataTransfer loads one bit-plane into panel memory.
func (o *Opts) BeginDataTransfer(p Plane, data []byte) Command {
	opcode := o.Opcodes.DataTransferBlack
	if p == AccentPlane {
		opcode = o.Opcodes.DataTransferAccent
	}
	return Frame(OpBeginDataTransfer, opcode, data)
}

// PowerOn starts the DC/DC converter.
func (o *Opts) PowerOn() Command {
	return Frame(OpPowerOn, o.Opcodes.PowerOn, []byte{0x00})
}

// Refresh updates the pixels from panel memory.
func (o *Opts) Refresh() Command {
	return Frame(OpRefresh, o.Opcodes.Refresh, nil)
}

// PowerDown stops the DC/DC converter.
func (o *Opts) PowerDown() Command {
	return Frame(OpPowerDown, o.Opcodes.PowerOff, []byte{0x00})
}

// Transmit sends cmd over c.
//
// CS is held low for the whole command. The opcode is sent with DC low, then
// the payload, if any, with DC high. Payloads larger than the connection's
// maximum transfer size are split without releasing CS. On error CS is
// released and the error is returned as a *BusError.
func Transmit(c conn.Conn, dc, cs gpio.PinOut, cmd Command) error {
	eh := txHandler{c: c}

	eh.out(dc, gpio.Low, "dc")
	eh.out(cs, gpio.Low, "cs")
	eh.tx([]byte{cmd.Opcode})

	if len(cmd.Payload) != 0 {
		eh.out(dc, gpio.High, "dc")
		limit := maxTxSize(c)
		for data := cmd.Payload; len(data) != 0; {
			n := len(data)
			if n > limit {
				n = limit
			}
			eh.tx(data[:n])
			data = data[n:]
		}
	}

	eh.out(cs, gpio.High, "cs")

	if eh.err != nil {
		_ = cs.Out(gpio.High)
	}
	return eh.err
}

// maxTxSize returns the largest single transfer c accepts.
func maxTxSize(c conn.Conn) int {
	if limits, ok := c.(conn.Limits); ok {
		if n := limits.MaxTxSize(); n > 0 {
			return n
		}
	}
	return defaultMaxTxSize
}

// txHandler keeps the first error of a transaction.
type txHandler struct {
	c   conn.Conn
	err error
}

func (eh *txHandler) out(p gpio.PinOut, l gpio.Level, name string) {
	if eh.err != nil {
		return
	}
	if err := p.Out(l); err != nil {
		eh.err = &BusError{Op: name, Err: err}
	}
}

func (eh *txHandler) tx(w []byte) {
	if eh.err != nil {
		return
	}
	if err := eh.c.Tx(w, nil); err != nil {
		eh.err = &BusError{Op: "tx", Err: err}
	}
}
