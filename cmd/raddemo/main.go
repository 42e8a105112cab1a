// Command raddemo runs a radiation transport simulation on a built-in or
// JSON-described world, writes the picture as PNG, optionally a Geiger
// counter click track and a history record, and prints the energy
// deposited per region.
//
// Usage:
//
//	raddemo -scene Detector -species Proton -energy 50 -n 20
//	raddemo -scene Phantom -preset "Cosmic muon" -n 100 -dose -lang de
//
// Every flag can also be set through a RAD_* environment variable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/canvas"
	"github.com/gogpu/rad/geiger"
	"github.com/gogpu/rad/geometry"
	"github.com/gogpu/rad/history"
	"github.com/gogpu/rad/material"
	"github.com/gogpu/rad/particle"
	"github.com/gogpu/rad/scene"
	"github.com/gogpu/rad/source"
	"github.com/gogpu/rad/transport"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "raddemo:", err)
		os.Exit(2)
	}
	if cfg.Version {
		fmt.Println("raddemo", rad.Version)
		return
	}
	if cfg.Verbose {
		rad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "raddemo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer) error {
	tag, err := parseLang(cfg.Lang)
	if err != nil {
		return err
	}
	lib, err := material.Builtin()
	if err != nil {
		return err
	}
	world, err := loadWorld(cfg, lib)
	if err != nil {
		return err
	}
	gun, markerSize, err := loadGun(cfg)
	if err != nil {
		return err
	}

	var rng particle.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}

	d, err := transport.New(world,
		transport.WithRand(rng),
		transport.WithSteps(cfg.Steps),
		transport.WithDoseEquivalent(cfg.Dose),
	)
	if err != nil {
		return err
	}
	if _, err := gun.Shoot(d, cfg.Count, rng); err != nil {
		return err
	}

	c := canvas.New(world, cfg.Width, cfg.Height, canvas.WithMarkerSize(markerSize))
	g := geiger.NewCounter(cfg.Interval)
	ticks, err := simulate(ctx, d, cfg, func(r transport.Report) {
		c.Update(r)
		g.Update(r)
	})
	if err != nil {
		return err
	}
	rad.Logger().Info("raddemo: done", "version", rad.Version, "ticks", ticks, "active", d.Active(),
		"markers", c.Markers(), "clicks", g.Clicks())

	if cfg.Output != "" {
		if err := c.SavePNG(cfg.Output); err != nil {
			return err
		}
	}
	if cfg.WAV != "" {
		if err := g.SaveWAV(cfg.WAV); err != nil {
			return err
		}
	}
	if cfg.DB != "" {
		if err := record(ctx, cfg, gun, ticks, d.Deposits()); err != nil {
			return err
		}
	}

	_, err = canvas.Rows(d.Deposits(), tag, cfg.Dose).WriteTo(stdout)
	return err
}

func record(ctx context.Context, cfg config, gun source.Gun, ticks int, rows []transport.Row) error {
	store, err := history.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	name := cfg.Scene
	if cfg.SceneFile != "" {
		name = cfg.SceneFile
	}
	_, err = store.Save(ctx, history.Run{
		Scene:     name,
		Source:    gun.String(),
		Particles: cfg.Count,
		Ticks:     ticks,
		Dose:      cfg.Dose,
		Rows:      rows,
	})
	return err
}

func loadWorld(cfg config, lib *material.Library) (*geometry.Composite, error) {
	if cfg.SceneFile != "" {
		return scene.Load(cfg.SceneFile, lib)
	}
	return scene.Preset(cfg.Scene, lib)
}

func loadGun(cfg config) (source.Gun, float64, error) {
	if cfg.Preset != "" {
		p, err := source.LookupPreset(cfg.Preset)
		if err != nil {
			return source.Gun{}, 0, err
		}
		return p.Gun, p.MarkerSize, nil
	}
	spectrum, err := source.ParseSpectrum(cfg.Energy)
	if err != nil {
		return source.Gun{}, 0, err
	}
	if _, err := particle.Lookup(cfg.Species); err != nil {
		return source.Gun{}, 0, err
	}
	if _, err := source.LookupGenerator(cfg.Generator); err != nil {
		return source.Gun{}, 0, err
	}
	return source.Gun{Species: cfg.Species, Spectrum: spectrum, Generator: cfg.Generator}, canvas.DefaultMarkerSize, nil
}

// simulate advances d until every particle is gone or MaxTicks is reached.
// A positive interval paces the ticks through Driver.Run.
func simulate(ctx context.Context, d *transport.Driver, cfg config, fn func(transport.Report)) (int, error) {
	if cfg.Interval > 0 {
		rctx, cancel := context.WithCancel(ctx)
		defer cancel()
		err := d.Run(rctx, cfg.Interval, func(r transport.Report) {
			fn(r)
			if r.Tick >= cfg.MaxTicks {
				cancel()
			}
		})
		if err != nil && !(errors.Is(err, context.Canceled) && ctx.Err() == nil) {
			return d.Ticks(), err
		}
		return d.Ticks(), nil
	}

	for d.Ticks() < cfg.MaxTicks {
		if err := ctx.Err(); err != nil {
			return d.Ticks(), err
		}
		r := d.Tick()
		fn(r)
		if r.Finished {
			break
		}
	}
	return d.Ticks(), nil
}
