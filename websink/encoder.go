// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package websink

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"
)

type pngEncoderBufferPool sync.Pool

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	buf, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return buf
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

// pngEncoder is shared by all sinks. Paletted pages compress well at the
// fastest level.
var pngEncoder = png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &pngEncoderBufferPool{},
}

// bufferPool stores reusable []byte instances.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return []byte(nil)
	},
}

// encode returns page as a PNG image enlarged by scale.
func encode(page *image.Paletted, scale int) ([]byte, error) {
	img := page
	if scale > 1 {
		b := page.Bounds()
		img = image.NewPaletted(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale), page.Palette)
		xdraw.NearestNeighbor.Scale(img, img.Bounds(), page, b, xdraw.Src, nil)
	}

	buf := bytes.NewBuffer(bufferPool.Get().([]byte)[:0])
	if err := pngEncoder.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
