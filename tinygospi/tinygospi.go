// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygospi presents a TinyGo SPI bus and TinyGo pins as periph
// interfaces, so periph drivers can run on a microcontroller.
//
// The TinyGo bus is configured by the caller (machine.SPI.Configure) before
// it is wrapped; Connect only checks the requested parameters against what
// the wrapper can honor.
package tinygospi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"tinygo.org/x/drivers"
)

// Opts describes how the TinyGo bus was configured.
type Opts struct {
	Name string
	// Frequency is the clock the bus was configured with. Zero means
	// unknown; any requested speed is accepted.
	Frequency physic.Frequency
	Mode      spi.Mode
	// MaxTxSize bounds a single Tx. Zero means no limit.
	MaxTxSize int
}

// Port is a spi.Port backed by a tinygo drivers.SPI bus.
type Port struct {
	bus  drivers.SPI
	opts Opts
	c    *Conn
}

// New wraps bus. opts may be nil.
func New(bus drivers.SPI, opts *Opts) *Port {
	p := &Port{bus: bus}
	if opts != nil {
		p.opts = *opts
	}
	if p.opts.Name == "" {
		p.opts.Name = "tinygo-spi"
	}
	return p
}

func (p *Port) String() string {
	return p.opts.Name
}

// Connect implements spi.Port.
//
// Only 8 bit words and the mode the bus was configured with are supported.
// Connect can be called once.
func (p *Port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.c != nil {
		return nil, errors.New("tinygospi: Connect can only be called once")
	}
	if bits != 8 {
		return nil, fmt.Errorf("tinygospi: %d bits per word is not supported", bits)
	}
	if mode&^(spi.HalfDuplex|spi.NoCS) != p.opts.Mode {
		return nil, fmt.Errorf("tinygospi: bus is configured for %v, not %v", p.opts.Mode, mode)
	}
	if p.opts.Frequency != 0 && f != 0 && f < p.opts.Frequency {
		return nil, fmt.Errorf("tinygospi: bus runs at %s, above the requested %s", p.opts.Frequency, f)
	}
	p.c = &Conn{bus: p.bus, name: p.opts.Name, maxTx: p.opts.MaxTxSize}
	return p.c, nil
}

// Conn is a spi.Conn backed by a tinygo drivers.SPI bus.
type Conn struct {
	bus   drivers.SPI
	name  string
	maxTx int
}

func (c *Conn) String() string {
	return c.name
}

// Duplex implements conn.Conn.
func (c *Conn) Duplex() conn.Duplex {
	return conn.Full
}

// MaxTxSize implements conn.Limits.
func (c *Conn) MaxTxSize() int {
	return c.maxTx
}

// Tx implements conn.Conn.
func (c *Conn) Tx(w, r []byte) error {
	if r != nil && len(r) != len(w) {
		return errors.New("tinygospi: Tx with mismatched buffers")
	}
	if c.maxTx != 0 && len(w) > c.maxTx {
		return fmt.Errorf("tinygospi: Tx of %d bytes exceeds %d", len(w), c.maxTx)
	}
	return c.bus.Tx(w, r)
}

// TxPackets implements spi.Conn.
//
// Chip select is not driven by the TinyGo bus, so KeepCS has no effect.
func (c *Conn) TxPackets(p []spi.Packet) error {
	for i := range p {
		if p[i].BitsPerWord != 0 && p[i].BitsPerWord != 8 {
			return fmt.Errorf("tinygospi: %d bits per word is not supported", p[i].BitsPerWord)
		}
		if err := c.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

var _ spi.Port = &Port{}
var _ spi.Conn = &Conn{}
var _ conn.Limits = &Conn{}
