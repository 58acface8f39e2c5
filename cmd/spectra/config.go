// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GermanBionicSystems/epaper/spectra"
	"gopkg.in/yaml.v3"
)

// Pins names the control lines as known to gpioreg.
type Pins struct {
	DC    string `yaml:"dc"`
	CS    string `yaml:"cs"`
	Reset string `yaml:"reset"`
	Busy  string `yaml:"busy"`
}

// Config is the demo configuration file.
type Config struct {
	// Model is one of EPD154 ... EPD437, or the bare size ("266").
	Model string `yaml:"model"`
	// SPI is the port name given to spireg; empty selects the first one.
	SPI  string `yaml:"spi"`
	Pins Pins   `yaml:"pins"`

	// Text is printed in black under the accent bar.
	Text string `yaml:"text"`
	// Image is an optional PNG drawn below the text.
	Image string `yaml:"image,omitempty"`
	// Landscape draws with the long side horizontal.
	Landscape bool    `yaml:"landscape"`
	FontSize  float64 `yaml:"font_size"`

	// Schedule is a standard cron expression. Empty refreshes once.
	Schedule string `yaml:"schedule,omitempty"`

	// PreviewStep keeps one pixel out of PreviewStep in the terminal
	// preview.
	PreviewStep int `yaml:"preview_step"`
}

// DefaultConfig returns the EPD Pico Kit wiring on a Raspberry Pi header.
func DefaultConfig() *Config {
	return &Config{
		Model: "EPD266",
		Pins: Pins{
			DC:    "GPIO25",
			CS:    "GPIO8",
			Reset: "GPIO17",
			Busy:  "GPIO24",
		},
		Text:        "hello world",
		Landscape:   true,
		FontSize:    16,
		PreviewStep: 2,
	}
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.Pins.DC == "" {
		c.Pins.DC = def.Pins.DC
	}
	if c.Pins.CS == "" {
		c.Pins.CS = def.Pins.CS
	}
	if c.Pins.Reset == "" {
		c.Pins.Reset = def.Pins.Reset
	}
	if c.Pins.Busy == "" {
		c.Pins.Busy = def.Pins.Busy
	}
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.PreviewStep <= 0 {
		c.PreviewStep = def.PreviewStep
	}
}

// Opts returns the panel configuration of the configured model.
func (c *Config) Opts() (*spectra.Opts, error) {
	var m spectra.Model
	if err := m.Set(c.Model); err != nil {
		return nil, err
	}
	return m.Opts()
}

// Load reads the YAML file at path. A missing file is created with the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path through a temporary file in the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".spectra-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
