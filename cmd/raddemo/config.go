package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// config holds the demo settings. Environment variables provide the
// defaults; flags override them.
type config struct {
	Scene     string `env:"RAD_SCENE" envDefault:"Detector"`
	SceneFile string `env:"RAD_SCENE_FILE"`

	Preset    string `env:"RAD_PRESET"`
	Species   string `env:"RAD_SPECIES" envDefault:"Proton"`
	Energy    string `env:"RAD_ENERGY" envDefault:"50"`
	Generator string `env:"RAD_GENERATOR" envDefault:"Beam from top"`
	Count     int    `env:"RAD_COUNT" envDefault:"10"`

	Steps    int           `env:"RAD_STEPS" envDefault:"100"`
	Dose     bool          `env:"RAD_DOSE"`
	Seed     uint64        `env:"RAD_SEED"`
	Interval time.Duration `env:"RAD_INTERVAL"`
	MaxTicks int           `env:"RAD_MAX_TICKS" envDefault:"100000"`

	Width  int    `env:"RAD_WIDTH" envDefault:"800"`
	Height int    `env:"RAD_HEIGHT" envDefault:"800"`
	Output string `env:"RAD_OUTPUT" envDefault:"rad.png"`
	WAV    string `env:"RAD_WAV"`
	DB     string `env:"RAD_DB"`
	Lang   string `env:"RAD_LANG" envDefault:"en"`

	Verbose bool `env:"RAD_VERBOSE"`
	Version bool
}

// parseConfig loads the environment and then parses args.
func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("raddemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "built-in world: Phantom, Detector, Tumor or RPiRENA")
	fs.StringVar(&cfg.SceneFile, "scene-file", cfg.SceneFile, "JSON world description, overrides -scene")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "radiation preset, overrides -species, -energy and -generator")
	fs.StringVar(&cfg.Species, "species", cfg.Species, "particle species")
	fs.StringVar(&cfg.Energy, "energy", cfg.Energy, "energy in MeV, or a range such as 1-10")
	fs.StringVar(&cfg.Generator, "generator", cfg.Generator, "start point generator")
	fs.IntVar(&cfg.Count, "n", cfg.Count, "number of particles")
	fs.IntVar(&cfg.Steps, "steps", cfg.Steps, "ticks needed to cross the world width")
	fs.BoolVar(&cfg.Dose, "dose", cfg.Dose, "weight deposits with the quality factor")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a random run")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "tick period for a paced run, 0 ticks as fast as possible")
	fs.IntVar(&cfg.MaxTicks, "max-ticks", cfg.MaxTicks, "stop after this many ticks")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "maximum image width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "maximum image height")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output PNG file, empty to skip")
	fs.StringVar(&cfg.WAV, "wav", cfg.WAV, "Geiger counter click track, empty to skip")
	fs.StringVar(&cfg.DB, "db", cfg.DB, "SQLite run history to append to, empty to skip")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "table language: en or de")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging to stderr")
	fs.BoolVar(&cfg.Version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch {
	case cfg.Count <= 0:
		return cfg, fmt.Errorf("particle count %d must be positive", cfg.Count)
	case cfg.Width <= 0 || cfg.Height <= 0:
		return cfg, fmt.Errorf("image size %dx%d must be positive", cfg.Width, cfg.Height)
	case cfg.MaxTicks <= 0:
		return cfg, fmt.Errorf("max ticks %d must be positive", cfg.MaxTicks)
	}
	if _, err := parseLang(cfg.Lang); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseLang(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("language %q: %w", s, err)
	}
	return tag, nil
}
