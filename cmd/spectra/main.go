// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// spectra draws a demo page on a Pervasive Displays Spectra panel wired
// through an EXT3 extension board.
//
// The page is redrawn on every cron tick when a schedule is configured.
// -preview prints the page to the terminal without touching the hardware.
// -serve mirrors the page over HTTP until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/epaper/screen2d"
	"github.com/GermanBionicSystems/epaper/spectra"
	"github.com/GermanBionicSystems/epaper/websink"
	"github.com/robfig/cron/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type flagConfig struct {
	configPath string
	model      string
	text       string
	serve      string
	preview    bool
	once       bool
}

func parseFlags() flagConfig {
	var f flagConfig
	flag.StringVar(&f.configPath, "config", "spectra.yaml", "Path to config file, created if missing")
	flag.StringVar(&f.model, "model", "", "Panel model (overrides config if set)")
	flag.StringVar(&f.text, "text", "", "Text to print (overrides config if set)")
	flag.BoolVar(&f.preview, "preview", false, "Print the page to the terminal; do not touch the panel")
	flag.StringVar(&f.serve, "serve", "", "HTTP address mirroring the page, e.g. :8080")
	flag.BoolVar(&f.once, "once", false, "Refresh once even if a schedule is configured")
	flag.Parse()
	return f
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if err := mainImpl(parseFlags()); err != nil {
		log.Fatalf("spectra: %v", err)
	}
}

func mainImpl(flags flagConfig) error {
	cfg, err := Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.text != "" {
		cfg.Text = flags.text
	}
	opts, err := cfg.Opts()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, opts: opts, preview: flags.preview}
	if flags.serve != "" {
		a.sink = websink.New(&websink.Options{Width: opts.Width, Height: opts.Height, Scale: 2})
		srv := &http.Server{Addr: flags.serve, Handler: a.sink}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("serve: %v", err)
				stop()
			}
		}()
		defer func() {
			_ = a.sink.Halt()
			_ = srv.Shutdown(context.Background())
		}()
		log.Printf("mirroring the page on %s", flags.serve)
	}

	if !flags.preview {
		if _, err := host.Init(); err != nil {
			return err
		}
	}
	if cfg.Schedule == "" || flags.once {
		if err := a.cycle(); err != nil {
			return err
		}
		if a.sink != nil {
			<-ctx.Done()
		}
		return nil
	}
	return a.schedule(ctx)
}

// app holds what a refresh cycle needs.
type app struct {
	cfg     *Config
	opts    *spectra.Opts
	preview bool
	// out receives the terminal preview; nil is stdout.
	out  io.Writer
	sink *websink.Sink
}

// cycle renders the page and sends it to the panel, or to the terminal in
// preview mode, and to the web mirror if any.
func (a *app) cycle() error {
	fb, err := render(a.cfg, a.opts)
	if err != nil {
		return err
	}
	if a.sink != nil {
		if err := a.sink.Draw(fb.Bounds(), fb, image.Point{}); err != nil {
			return err
		}
	}
	if a.preview {
		return preview(a.cfg, fb, a.out)
	}
	return refresh(a.cfg, a.opts, fb)
}

// preview prints fb to w, a colorable stdout when nil.
func preview(cfg *Config, fb *spectra.FrameBuffer, w io.Writer) error {
	s := screen2d.New(&screen2d.Opts{
		Width:  fb.Width(),
		Height: fb.Height(),
		Step:   cfg.PreviewStep,
		W:      w,
	})
	if err := s.Draw(fb.Bounds(), fb, image.Point{}); err != nil {
		return err
	}
	return s.Halt()
}

// schedule runs a cycle on every tick of the configured schedule until ctx
// is canceled. A tick is skipped while the previous refresh is running.
func (a *app) schedule(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(a.cfg.Schedule, func() {
		if err := a.cycle(); err != nil {
			log.Printf("refresh failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", a.cfg.Schedule, err)
	}

	log.Printf("refreshing %s on %q", a.cfg.Model, a.cfg.Schedule)
	c.Start()
	<-ctx.Done()
	log.Printf("stopping")
	<-c.Stop().Done()
	return nil
}

// refresh shows fb on a fresh handle: Init, Update, PowerOff.
func refresh(cfg *Config, opts *spectra.Opts, fb *spectra.FrameBuffer) error {
	p, err := spireg.Open(cfg.SPI)
	if err != nil {
		return err
	}
	defer p.Close()

	dc, err := lookup(cfg.Pins.DC)
	if err != nil {
		return err
	}
	cs, err := lookup(cfg.Pins.CS)
	if err != nil {
		return err
	}
	rst, err := lookup(cfg.Pins.Reset)
	if err != nil {
		return err
	}
	busy, err := lookup(cfg.Pins.Busy)
	if err != nil {
		return err
	}

	dev, err := spectra.New(p, dc, cs, rst, busy, nil, opts)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := dev.Init(); err != nil {
		return err
	}
	if err := dev.Update(fb); err != nil {
		return err
	}
	if err := dev.PowerOff(); err != nil {
		return err
	}
	log.Printf("%s refreshed in %s", cfg.Model, time.Since(start).Round(time.Millisecond))
	return nil
}

func lookup(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no gpio pin named %q", name)
	}
	return p, nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: spectra [flags]\n\n")
		flag.PrintDefaults()
	}
}
