// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Commands of the Spectra small-size chip-on-glass controller.
const (
	softReset         byte = 0x00
	panelSettings     byte = 0x00
	dcdcPowerOff      byte = 0x02
	dcdcPowerOn       byte = 0x04
	dataTransfer1     byte = 0x10
	displayRefresh    byte = 0x12
	dataTransfer2     byte = 0x13
	activeTemperature byte = 0xE0
	inputTemperature  byte = 0xE5
)

// minResetPulse is the shortest RESET assertion the controller reliably
// latches. Opts.ResetPulse below this value is raised to it.
const minResetPulse = 10 * time.Millisecond

// wakePulse is the short RESET assertion preceding the reset pulse.
const wakePulse = time.Millisecond

// LUT selects the waveform used to drive the pixels. Spectra panels store
// their waveforms in OTP and pick one from the temperature written here, so
// the table is the payload of the input temperature command.
type LUT []byte

// Opcodes is the command opcode table of a panel.
type Opcodes struct {
	SoftReset          byte
	PanelSettings      byte
	InputTemperature   byte
	ActiveTemperature  byte
	DataTransferBlack  byte
	DataTransferAccent byte
	PowerOn            byte
	Refresh            byte
	PowerOff           byte
}

// Opts is the fixed configuration of one panel model.
type Opts struct {
	// Panel resolution in pixels. Width is the short side.
	Width  int
	Height int

	// MaxSpeed is the SPI clock used; it must not exceed the panel rating.
	MaxSpeed physic.Frequency

	// ResetPulse is how long RESET is held low. ResetSettle is the wait
	// after each release of RESET.
	ResetPulse  time.Duration
	ResetSettle time.Duration

	// IdleLevel is the BUSY level reported when the panel accepts commands.
	IdleLevel gpio.Level
	// PollInterval separates two samples of the BUSY line.
	PollInterval time.Duration

	InitTimeout     time.Duration
	RefreshTimeout  time.Duration
	PowerOffTimeout time.Duration

	// PanelSettings is the payload of the panel settings command; it
	// encodes the resolution and scan direction.
	PanelSettings []byte
	// Waveform is the payload of the input temperature command.
	Waveform LUT
	// ActiveTemperature is the payload of the active temperature command.
	ActiveTemperature []byte

	Opcodes Opcodes
}

// spectraOpcodes is shared by all small-size Spectra panels.
var spectraOpcodes = Opcodes{
	SoftReset:          softReset,
	PanelSettings:      panelSettings,
	InputTemperature:   inputTemperature,
	ActiveTemperature:  activeTemperature,
	DataTransferBlack:  dataTransfer1,
	DataTransferAccent: dataTransfer2,
	PowerOn:            dcdcPowerOn,
	Refresh:            displayRefresh,
	PowerOff:           dcdcPowerOff,
}

// small returns the configuration of a small-size Spectra panel. refresh is
// the nominal refresh time from the vendor table; the timeout doubles it.
func small(width, height int, refresh time.Duration) Opts {
	return Opts{
		Width:             width,
		Height:            height,
		MaxSpeed:          16 * physic.MegaHertz,
		ResetPulse:        10 * time.Millisecond,
		ResetSettle:       5 * time.Millisecond,
		IdleLevel:         gpio.High,
		PollInterval:      10 * time.Millisecond,
		InitTimeout:       5 * time.Second,
		RefreshTimeout:    2 * refresh,
		PowerOffTimeout:   5 * time.Second,
		PanelSettings:     []byte{0xCF, 0x8D},
		Waveform:          LUT{0x19}, // 25°C
		ActiveTemperature: []byte{0x02},
		Opcodes:           spectraOpcodes,
	}
}

var models = map[Model]Opts{
	EPD154: small(152, 152, 16*time.Second),
	EPD213: small(104, 212, 15*time.Second),
	EPD266: small(152, 296, 15*time.Second),
	EPD271: small(176, 264, 19*time.Second),
	EPD287: small(128, 296, 14*time.Second),
	EPD370: small(240, 416, 15*time.Second),
	EPD417: small(400, 300, 19*time.Second),
	EPD437: small(176, 480, 21*time.Second),
}

// Opts returns a copy of the configuration of the model.
func (m Model) Opts() (*Opts, error) {
	o, ok := models[m]
	if !ok {
		return nil, fmt.Errorf("spectra: unsupported model %v", m)
	}
	return o.clone(), nil
}

// clone returns a deep copy of o.
func (o *Opts) clone() *Opts {
	c := *o
	c.PanelSettings = append([]byte(nil), o.PanelSettings...)
	c.Waveform = append(LUT(nil), o.Waveform...)
	c.ActiveTemperature = append([]byte(nil), o.ActiveTemperature...)
	return &c
}

// FrameSize returns the number of bytes of one bit-plane.
func (o *Opts) FrameSize() int {
	return (o.Width + 7) / 8 * o.Height
}

func (o *Opts) validate() error {
	if o == nil {
		return fmt.Errorf("spectra: nil Opts")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return &SizeError{Width: o.Width, Height: o.Height}
	}
	if o.InitTimeout <= 0 || o.RefreshTimeout <= 0 || o.PowerOffTimeout <= 0 {
		return fmt.Errorf("spectra: timeouts must be positive")
	}
	return nil
}

func (o *Opts) resetPulse() time.Duration {
	if o.ResetPulse < minResetPulse {
		return minResetPulse
	}
	return o.ResetPulse
}

func (o *Opts) maxSpeed() physic.Frequency {
	if o.MaxSpeed <= 0 {
		return 8 * physic.MegaHertz
	}
	return o.MaxSpeed
}
