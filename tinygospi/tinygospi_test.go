// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinygospi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type fakeBus struct {
	writes [][]byte
	err    error
}

func (b *fakeBus) Tx(w, r []byte) error {
	if b.err != nil {
		return b.err
	}
	b.writes = append(b.writes, append([]byte(nil), w...))
	for i := range r {
		r[i] = ^w[i]
	}
	return nil
}

func (b *fakeBus) Transfer(w byte) (byte, error) {
	var r [1]byte
	err := b.Tx([]byte{w}, r[:])
	return r[0], err
}

func TestConnect(t *testing.T) {
	for _, tc := range []struct {
		name    string
		opts    *Opts
		f       physic.Frequency
		mode    spi.Mode
		bits    int
		wantErr bool
	}{
		{name: "defaults", f: 4 * physic.MegaHertz, mode: spi.Mode0, bits: 8},
		{name: "half duplex", mode: spi.Mode0 | spi.HalfDuplex, bits: 8},
		{name: "bits", mode: spi.Mode0, bits: 9, wantErr: true},
		{name: "mode", opts: &Opts{Mode: spi.Mode3}, mode: spi.Mode0, bits: 8, wantErr: true},
		{name: "too fast", opts: &Opts{Frequency: 16 * physic.MegaHertz}, f: 8 * physic.MegaHertz, mode: spi.Mode0, bits: 8, wantErr: true},
		{name: "slower", opts: &Opts{Frequency: 4 * physic.MegaHertz}, f: 8 * physic.MegaHertz, mode: spi.Mode0, bits: 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := New(&fakeBus{}, tc.opts)
			c, err := p.Connect(tc.f, tc.mode, tc.bits)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Connect() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && c.String() != "tinygo-spi" {
				t.Errorf("String() = %q", c.String())
			}
		})
	}
}

func TestConnectOnce(t *testing.T) {
	p := New(&fakeBus{}, &Opts{Name: "spi0"})
	if _, err := p.Connect(0, spi.Mode0, 8); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Connect(0, spi.Mode0, 8); err == nil {
		t.Error("second Connect() succeeded")
	}
	if p.String() != "spi0" {
		t.Errorf("String() = %q, want spi0", p.String())
	}
}

func TestTx(t *testing.T) {
	bus := &fakeBus{}
	c, err := New(bus, &Opts{MaxTxSize: 2}).Connect(0, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}

	r := make([]byte, 2)
	if err := c.Tx([]byte{0x12, 0x34}, r); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r, []byte{0xED, 0xCB}); diff != "" {
		t.Errorf("read difference (-got +want):\n%s", diff)
	}
	if err := c.Tx([]byte{1, 2, 3}, nil); err == nil {
		t.Error("Tx() above MaxTxSize succeeded")
	}
	if err := c.Tx([]byte{1}, make([]byte, 2)); err == nil {
		t.Error("Tx() with mismatched buffers succeeded")
	}

	if err := c.TxPackets([]spi.Packet{{W: []byte{0x10}}, {W: []byte{0xAA, 0xBB}, KeepCS: true}}); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{{0x12, 0x34}, {0x10}, {0xAA, 0xBB}}
	if diff := cmp.Diff(bus.writes, want, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("writes difference (-got +want):\n%s", diff)
	}

	if err := c.TxPackets([]spi.Packet{{W: []byte{1}, BitsPerWord: 16}}); err == nil {
		t.Error("TxPackets() with 16 bit words succeeded")
	}
}

func TestTxError(t *testing.T) {
	errBus := errors.New("bus")
	c, err := New(&fakeBus{err: errBus}, nil).Connect(0, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.TxPackets([]spi.Packet{{W: []byte{1}}}); !errors.Is(err, errBus) {
		t.Errorf("TxPackets() error = %v, want %v", err, errBus)
	}
}

type fakeLine struct {
	high bool
	sets []bool
}

func (l *fakeLine) Set(high bool) {
	l.high = high
	l.sets = append(l.sets, high)
}

func (l *fakeLine) Get() bool {
	return l.high
}

func TestPin(t *testing.T) {
	l := &fakeLine{}
	p := NewPin("GP17", l)

	if p.String() != "GP17" || p.Name() != "GP17" {
		t.Errorf("String() = %q, Name() = %q", p.String(), p.Name())
	}
	if err := p.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := p.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(l.sets, []bool{true, false}); diff != "" {
		t.Errorf("sets difference (-got +want):\n%s", diff)
	}

	l.high = true
	if p.Read() != gpio.High {
		t.Error("Read() = Low, want High")
	}
	if err := p.In(gpio.Float, gpio.NoEdge); err != nil {
		t.Errorf("In() = %v", err)
	}
	if err := p.In(gpio.Float, gpio.RisingEdge); err == nil {
		t.Error("In() with an edge succeeded")
	}
	if p.Number() != -1 {
		t.Errorf("Number() = %d, want -1", p.Number())
	}
}
