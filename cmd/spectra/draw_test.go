// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/epaper/spectra"
	"github.com/GermanBionicSystems/epaper/websink"
)

func mustOpts(t *testing.T, m spectra.Model) *spectra.Opts {
	t.Helper()
	opts, err := m.Opts()
	if err != nil {
		t.Fatal(err)
	}
	return opts
}

func pixel(t *testing.T, fb *spectra.FrameBuffer, x, y int) spectra.Color {
	t.Helper()
	c, err := fb.Pixel(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRenderPortrait(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Landscape = false
	opts := mustOpts(t, spectra.EPD266)

	fb, err := render(cfg, opts)
	if err != nil {
		t.Fatalf("render() failed: %v", err)
	}
	if fb.Width() != 152 || fb.Height() != 296 {
		t.Fatalf("size = %dx%d, want 152x296", fb.Width(), fb.Height())
	}
	if c := pixel(t, fb, 10, 10); c != spectra.Accent {
		t.Errorf("inside the filled rectangle = %v, want Accent", c)
	}
	if c := pixel(t, fb, 10, 100); c != spectra.Black {
		t.Errorf("single pixel = %v, want Black", c)
	}
	if c := pixel(t, fb, 140, 150); c != spectra.White {
		t.Errorf("background = %v, want White", c)
	}
}

func TestRenderLandscape(t *testing.T) {
	cfg := DefaultConfig()
	opts := mustOpts(t, spectra.EPD266)

	fb, err := render(cfg, opts)
	if err != nil {
		t.Fatalf("render() failed: %v", err)
	}
	if fb.Width() != 152 || fb.Height() != 296 {
		t.Fatalf("size = %dx%d, want 152x296", fb.Width(), fb.Height())
	}
	// (10, 100) in the landscape page.
	if c := pixel(t, fb, 151-100, 10); c != spectra.Black {
		t.Errorf("single pixel = %v, want Black", c)
	}
	// (10, 10) in the landscape page.
	if c := pixel(t, fb, 151-10, 10); c != spectra.Accent {
		t.Errorf("inside the filled rectangle = %v, want Accent", c)
	}
}

func TestRenderMissingImage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Image = "does-not-exist.png"
	if _, err := render(cfg, mustOpts(t, spectra.EPD154)); err == nil {
		t.Error("render() with a missing image succeeded")
	}
}

func TestRotate(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.Black)
	src.Set(2, 1, color.White)

	dst := rotate(src)
	if b := dst.Bounds(); b != image.Rect(0, 0, 2, 3) {
		t.Fatalf("Bounds() = %v", b)
	}
	if r, _, _, a := dst.At(1, 0).RGBA(); r != 0 || a == 0 {
		t.Errorf("top-left of the source did not land top-right")
	}
	if r, _, _, _ := dst.At(0, 2).RGBA(); r != 0xFFFF {
		t.Errorf("bottom-right of the source did not land bottom-left")
	}
}

func TestPreview(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.PreviewStep = 4
	fb, err := render(cfg, mustOpts(t, spectra.EPD154))
	if err != nil {
		t.Fatal(err)
	}
	if err := preview(cfg, fb, &buf); err != nil {
		t.Fatalf("preview() failed: %v", err)
	}
	// 152 rows, one out of four kept.
	if got := strings.Count(buf.String(), "\n"); got != 38 {
		t.Errorf("got %d rows, want 38", got)
	}
	if !strings.HasSuffix(buf.String(), "\033[0m") {
		t.Error("preview does not reset the terminal colors")
	}
}

func TestCycleMirrors(t *testing.T) {
	var buf bytes.Buffer
	opts := mustOpts(t, spectra.EPD213)
	a := &app{
		cfg:     DefaultConfig(),
		opts:    opts,
		preview: true,
		out:     &buf,
		sink:    websink.New(&websink.Options{Width: opts.Width, Height: opts.Height}),
	}
	if err := a.cycle(); err != nil {
		t.Fatalf("cycle() failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("nothing previewed")
	}

	fb, err := render(a.cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	mirror := a.sink.Snapshot()
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			want := pixel(t, fb, x, y)
			if got := spectra.Color(mirror.ColorIndexAt(x, y)); got != want {
				t.Fatalf("mirror At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
