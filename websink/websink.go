// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package websink mirrors a tri-color panel over HTTP.
//
// A request gets the current page as a PNG image. With the "stream"
// parameter the response is an endless "multipart/x-mixed-replace" stream
// (https://en.wikipedia.org/wiki/Motion_JPEG with PNG parts) that receives
// a new part on every Draw, so a browser tab follows the panel as it is
// refreshed.
//
// The page is kept in the panel palette: what is shown is what the panel
// receives, not the antialiased drawing that produced it.
package websink

import (
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"

	"github.com/GermanBionicSystems/epaper/spectra"
	"periph.io/x/conn/v3/display"
)

// maxScale bounds the "scale" parameter.
const maxScale = 8

// Options for websink devices.
type Options struct {
	// Width and height of the panel.
	Width, Height int

	// Scale enlarges each panel pixel to Scale×Scale image pixels. 0 means
	// 1.
	Scale int
}

// Sink is a display.Drawer that serves its content over HTTP.
type Sink struct {
	scale int

	mu       sync.Mutex
	page     *image.Paletted
	clients  map[*client]struct{}
	snapshot map[int][]byte
}

var _ display.Drawer = (*Sink)(nil)
var _ http.Handler = (*Sink)(nil)

// New creates a white page of the given size.
func New(opt *Options) *Sink {
	scale := opt.Scale
	if scale < 1 {
		scale = 1
	}
	if scale > maxScale {
		scale = maxScale
	}
	// Index 0 of the palette is White.
	page := image.NewPaletted(image.Rect(0, 0, opt.Width, opt.Height), spectra.Palette)

	return &Sink{
		scale:    scale,
		page:     page,
		clients:  map[*client]struct{}{},
		snapshot: map[int][]byte{},
	}
}

// String returns the name of the device.
func (s *Sink) String() string {
	return "WebSink"
}

// Halt implements conn.Resource and terminates all running streams
// asynchronously.
func (s *Sink) Halt() error {
	s.mu.Lock()
	s.terminateClientsLocked()
	s.mu.Unlock()

	return nil
}

// ColorModel implements display.Drawer.
func (s *Sink) ColorModel() color.Model {
	return spectra.Palette
}

// Bounds implements display.Drawer.
func (s *Sink) Bounds() image.Rectangle {
	return s.page.Bounds()
}

// Draw implements display.Drawer. Colors are quantized to the panel palette.
func (s *Sink) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	s.mu.Lock()
	draw.Draw(s.page, dstRect, src, srcPts, draw.Src)
	s.pageChangedLocked()
	s.mu.Unlock()

	return nil
}

// Snapshot returns a copy of the page.
func (s *Sink) Snapshot() *image.Paletted {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *s.page
	c.Pix = append([]uint8(nil), s.page.Pix...)
	return &c
}
