// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/draw"

	"github.com/GermanBionicSystems/epaper/spectra"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// render draws the demo page and quantizes it to the panel colors.
func render(cfg *Config, opts *spectra.Opts) (*spectra.FrameBuffer, error) {
	w, h := opts.Width, opts.Height
	if cfg.Landscape {
		w, h = h, w
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	black := spectra.Palette[spectra.Black]
	accent := spectra.Palette[spectra.Accent]

	dc.SetColor(black)
	dc.SetPixel(10, 100)

	dc.SetColor(accent)
	dc.DrawRectangle(5, 5, 10, 10)
	dc.Fill()

	dc.SetColor(black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, 20, 30)
	dc.Stroke()

	dc.DrawLine(0, 0, float64(w-1), float64(h-1))
	dc.Stroke()
	dc.SetColor(accent)
	dc.DrawLine(0, float64(h-1), float64(w-1), 0)
	dc.Stroke()

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: cfg.FontSize}))
	dc.SetColor(black)
	_, th := dc.MeasureString(cfg.Text)
	dc.DrawString(cfg.Text, 25, 10+th)

	if cfg.Image != "" {
		im, err := gg.LoadPNG(cfg.Image)
		if err != nil {
			return nil, err
		}
		dc.DrawImage(im, 25, 20+int(th))
	}

	fb, err := spectra.NewFrameBuffer(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	img := dc.Image()
	if cfg.Landscape {
		img = rotate(img)
	}
	draw.Src.Draw(fb, fb.Bounds(), img, image.Point{})
	return fb, nil
}

// rotate turns a landscape image a quarter turn clockwise; its top edge
// lands on the panel's right edge.
func rotate(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := 0; y < b.Dx(); y++ {
		for x := 0; x < b.Dy(); x++ {
			dst.Set(x, y, src.At(b.Min.X+y, b.Min.Y+b.Dy()-1-x))
		}
	}
	return dst
}
