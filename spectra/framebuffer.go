// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spectra

import (
	"image"
	"image/color"
	"image/draw"
)

var _ draw.Image = &FrameBuffer{}

// Palette maps each Color to the RGB value used when the frame buffer is
// seen as an image. The index of an entry is its Color.
var Palette = color.Palette{
	White:  color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	Black:  color.RGBA{0x00, 0x00, 0x00, 0xFF},
	Accent: color.RGBA{0xFF, 0x00, 0x00, 0xFF},
}

// FrameBuffer is an off-screen tri-color raster of fixed size.
//
// SetPixel is the mutation surface used by drawing code; Set adapts it to
// draw.Image so the image/draw and font packages can render into it.
type FrameBuffer struct {
	width  int
	height int
	pix    []Color
}

// NewFrameBuffer returns an all-White frame buffer.
func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &SizeError{Width: width, Height: height}
	}
	return &FrameBuffer{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}, nil
}

// Width returns the number of columns.
func (f *FrameBuffer) Width() int { return f.width }

// Height returns the number of rows.
func (f *FrameBuffer) Height() int { return f.height }

func (f *FrameBuffer) index(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, &BoundsError{X: x, Y: y, Width: f.width, Height: f.height}
	}
	return y*f.width + x, nil
}

// SetPixel overwrites one pixel. The frame buffer is left untouched on
// error.
func (f *FrameBuffer) SetPixel(x, y int, c Color) error {
	if !c.valid() {
		return ErrInvalidColor
	}
	i, err := f.index(x, y)
	if err != nil {
		return err
	}
	f.pix[i] = c
	return nil
}

// Pixel returns the color of one pixel.
func (f *FrameBuffer) Pixel(x, y int) (Color, error) {
	i, err := f.index(x, y)
	if err != nil {
		return White, err
	}
	return f.pix[i], nil
}

// Clear sets every pixel to c. Invalid colors clear to White.
func (f *FrameBuffer) Clear(c Color) {
	if !c.valid() {
		c = White
	}
	for i := range f.pix {
		f.pix[i] = c
	}
}

// rowBytes is the number of bytes of one packed plane row.
func (f *FrameBuffer) rowBytes() int {
	return (f.width + 7) / 8
}

// Plane packs one channel row-major, MSB first, each row padded to a whole
// byte. The returned slice is owned by the caller.
func (f *FrameBuffer) Plane(p Plane) []byte {
	stride := f.rowBytes()
	out := make([]byte, stride*f.height)
	for y := 0; y < f.height; y++ {
		row := f.pix[y*f.width : (y+1)*f.width]
		for x, c := range row {
			black, accent := c.bits()
			set := black
			if p == AccentPlane {
				set = accent
			}
			if set {
				out[y*stride+(x>>3)] |= 0x80 >> (x & 7)
			}
		}
	}
	return out
}

// BlackPlane returns the packed black channel.
func (f *FrameBuffer) BlackPlane() []byte {
	return f.Plane(BlackPlane)
}

// AccentPlane returns the packed accent channel.
func (f *FrameBuffer) AccentPlane() []byte {
	return f.Plane(AccentPlane)
}

// ColorModel implements image.Image.
func (f *FrameBuffer) ColorModel() color.Model {
	return Palette
}

// Bounds implements image.Image.
func (f *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At implements image.Image.
func (f *FrameBuffer) At(x, y int) color.Color {
	c, err := f.Pixel(x, y)
	if err != nil {
		return color.RGBA{}
	}
	return Palette[c]
}

// Set implements draw.Image. The color is quantized to the nearest Palette
// entry; points outside the bounds are ignored.
func (f *FrameBuffer) Set(x, y int, c color.Color) {
	_ = f.SetPixel(x, y, Color(Palette.Index(c)))
}
