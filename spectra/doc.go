// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package spectra controls Pervasive Displays Spectra tri-color (black,
// white and red) e-paper panels driven through an EXT3 extension board.
//
// The panel is fed two bit-planes per refresh: one for black pixels and one
// for the accent color. A refresh always transfers the whole panel; there is
// no partial update.
//
// Dev owns the SPI connection and the four control lines (CS, DC, RESET,
// BUSY) for its whole lifetime. It starts Uninitialized, becomes Ready after
// Init, and ends either PoweredDown (after PowerOff) or Faulted (after a
// timeout or transport error). A Faulted or PoweredDown Dev rejects every
// operation; create a new one with New to start over.
//
// Product page:
//
// EPD Pico Kit: https://www.pervasivedisplays.com/product/epd-pico-kit-epdk/
//
package spectra
