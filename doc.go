// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper is a container for the Spectra e-paper driver and its
// companions.
//
// spectra drives the panel; screen2d and websink preview a page without
// one; tinygospi runs the driver on a TinyGo SPI bus.
package epaper
