// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"errors"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// event is one observable action on the hardware.
type event struct {
	line  string
	level gpio.Level
	data  []byte
	delay time.Duration
}

type recorder struct {
	events []event
}

func (r *recorder) add(e event) {
	r.events = append(r.events, e)
}

// lines returns the events of the named lines only.
func (r *recorder) lines(names ...string) []event {
	var out []event
	for _, e := range r.events {
		for _, n := range names {
			if e.line == n {
				out = append(out, e)
			}
		}
	}
	return out
}

type record struct {
	cmd  byte
	data []byte
}

// commands decodes the bus traffic using the DC level seen by the panel.
func (r *recorder) commands() []record {
	var out []record
	dc := gpio.High
	for _, e := range r.events {
		switch e.line {
		case "dc":
			dc = e.level
		case "tx":
			if dc == gpio.Low {
				for _, b := range e.data {
					out = append(out, record{cmd: b})
				}
			} else if len(out) > 0 {
				cur := &out[len(out)-1]
				cur.data = append(cur.data, e.data...)
			}
		}
	}
	return out
}

type fakeLine struct {
	gpiotest.Pin
	rec *recorder
	err error
}

func newLine(rec *recorder, name string) *fakeLine {
	return &fakeLine{Pin: gpiotest.Pin{N: name}, rec: rec}
}

func (p *fakeLine) Out(l gpio.Level) error {
	if p.err != nil {
		return p.err
	}
	p.rec.add(event{line: p.N, level: l})
	return p.Pin.Out(l)
}

type fakeConn struct {
	rec     *recorder
	maxTx   int
	err     error
	txCount int
}

func (c *fakeConn) String() string {
	return "fakeConn"
}

func (c *fakeConn) Duplex() conn.Duplex {
	return conn.Half
}

func (c *fakeConn) MaxTxSize() int {
	return c.maxTx
}

func (c *fakeConn) Tx(w, r []byte) error {
	c.txCount++
	if c.err != nil {
		return c.err
	}
	c.rec.add(event{line: "tx", data: append([]byte(nil), w...)})
	return nil
}

func (c *fakeConn) TxPackets(p []spi.Packet) error {
	return errors.New("fakeConn: TxPackets not supported")
}

type fakePort struct {
	c    *fakeConn
	err  error
	freq physic.Frequency
	mode spi.Mode
	bits int
}

func (p *fakePort) String() string {
	return "fakePort"
}

func (p *fakePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.freq, p.mode, p.bits = f, mode, bits
	return p.c, nil
}

// fakeBusy reports busy for a number of samples after every bus transfer.
type fakeBusy struct {
	gpiotest.Pin
	idle gpio.Level
	// ticks is the number of busy samples after each transfer; negative
	// never clears.
	ticks int
	// stuckFrom makes the line stay busy once that many transfers happened;
	// zero disables it.
	stuckFrom int

	conn  *fakeConn
	rec   *recorder
	seen  int
	reads int
}

func (b *fakeBusy) Out(l gpio.Level) error {
	if b.rec != nil {
		b.rec.add(event{line: "busy", level: l})
	}
	return b.Pin.Out(l)
}

func (b *fakeBusy) Read() gpio.Level {
	tx := 0
	if b.conn != nil {
		tx = b.conn.txCount
	}
	if tx != b.seen {
		b.seen = tx
		b.reads = 0
	}
	if b.ticks < 0 || (b.stuckFrom > 0 && tx >= b.stuckFrom) || b.reads < b.ticks {
		b.reads++
		return !b.idle
	}
	return b.idle
}

type fakeDelay struct {
	rec   *recorder
	total time.Duration
	calls int
}

func (f *fakeDelay) Sleep(d time.Duration) {
	f.total += d
	f.calls++
	if f.rec != nil {
		f.rec.add(event{line: "sleep", delay: d})
	}
}

// fixture is a fully wired fake panel.
type fixture struct {
	rec   *recorder
	conn  *fakeConn
	dc    *fakeLine
	cs    *fakeLine
	rst   *fakeLine
	busy  *fakeBusy
	delay *fakeDelay
	opts  Opts
}

func testOpts() Opts {
	opts := small(3, 3, time.Second)
	opts.PollInterval = 10 * time.Millisecond
	opts.InitTimeout = 100 * time.Millisecond
	opts.RefreshTimeout = 500 * time.Millisecond
	opts.PowerOffTimeout = 50 * time.Millisecond
	return opts
}

func newFixture(ticks int) *fixture {
	rec := &recorder{}
	c := &fakeConn{rec: rec}
	opts := testOpts()
	return &fixture{
		rec:   rec,
		conn:  c,
		dc:    newLine(rec, "dc"),
		cs:    newLine(rec, "cs"),
		rst:   newLine(rec, "reset"),
		busy:  &fakeBusy{Pin: gpiotest.Pin{N: "busy"}, idle: opts.IdleLevel, ticks: ticks, conn: c, rec: rec},
		delay: &fakeDelay{rec: rec},
		opts:  opts,
	}
}

func (f *fixture) dev() (*Dev, error) {
	return NewConn(f.conn, f.dc, f.cs, f.rst, f.busy, f.delay, &f.opts)
}
