package source

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad/particle"
	"github.com/gogpu/rad/transport"
)

// ErrUnknownPreset is returned for preset names not in the table.
var ErrUnknownPreset = errors.New("source: unknown preset")

// Gun fires particles of one species with energies from a spectrum and
// start points from a named generator.
type Gun struct {
	Species   string
	Spectrum  Spectrum
	Generator string
}

// String describes the gun, e.g. "Proton 50 MeV, Beam from top".
func (g Gun) String() string {
	return fmt.Sprintf("%s %s MeV, %s", g.Species, g.Spectrum, g.Generator)
}

// Fire creates one unbound particle starting on the edge of bounds.
func (g Gun) Fire(bounds r2.Box, rng particle.Rand) (*particle.Particle, error) {
	gen, err := LookupGenerator(g.Generator)
	if err != nil {
		return nil, err
	}
	s, err := particle.Lookup(g.Species)
	if err != nil {
		return nil, err
	}
	pos, dir := gen(bounds, rng)
	return particle.NewSpecies(s, g.Spectrum.Sample(rng), pos, dir)
}

// Shoot fires n particles into the driver's world.
func (g Gun) Shoot(d *transport.Driver, n int, rng particle.Rand) ([]transport.Handle, error) {
	bounds := d.World().Bounds()
	handles := make([]transport.Handle, 0, n)
	for range n {
		p, err := g.Fire(bounds, rng)
		if err != nil {
			return handles, err
		}
		h, err := d.Add(p)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// Preset is a ready-made radiation setting.
type Preset struct {
	Gun

	// MarkerSize scales deposit markers: radius = E[MeV]·MarkerSize/100 px.
	MarkerSize float64
}

func mustSpectrum(lo, hi string) Spectrum {
	s, err := ParseSpectrum(lo + "-" + hi)
	if err != nil {
		panic(err)
	}
	return s
}

var presets = map[string]Preset{
	particle.CosmicMuon: {Gun{particle.CosmicMuon, mustSpectrum("1000", "10000"), Cosmic}, 1000},
	particle.GammaDecay: {Gun{particle.GammaDecay, mustSpectrum("0.1", "3"), Isotropic}, 1000},
	particle.AlphaDecay: {Gun{particle.AlphaDecay, mustSpectrum("1", "6"), Isotropic}, 100},
	particle.XRay:       {Gun{particle.XRay, mustSpectrum("0.01", "0.25"), Isotropic}, 4000},
}

// LookupPreset returns the preset named name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Presets returns the preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
