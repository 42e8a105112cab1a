package particle

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/material"
)

// Particle errors.
var (
	// ErrAlreadyBound is returned when a particle is bound a second time.
	ErrAlreadyBound = errors.New("particle: already bound to a medium")

	// ErrInvalidParticle is returned for negative or non-finite energies,
	// positions or directions, and for binding a nil medium.
	ErrInvalidParticle = errors.New("particle: invalid particle")
)

// AbsorptionThreshold is the kinetic energy at or below which a particle
// is stopped.
const AbsorptionThreshold = 1 * rad.ElectronVolt

// Medium is the geometry a particle travels through.
type Medium interface {
	// MaterialAt returns the material at p, or nil outside any region.
	MaterialAt(p r2.Vec) *material.Material

	// MeanFreePaths returns one mean free path per channel at p.
	MeanFreePaths(p r2.Vec, energy float64, kind material.Interaction) []float64
}

// Particle is the mutable transport state of one particle.
type Particle struct {
	species Species
	energy  float64
	pos     r2.Vec
	dir     float64
	medium  Medium
}

// New creates a particle of the named species with the given kinetic
// energy (J), position and direction (radians, counterclockwise from +x).
func New(name string, energy float64, pos r2.Vec, dir float64) (*Particle, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewSpecies(s, energy, pos, dir)
}

// NewSpecies creates a particle of species s.
func NewSpecies(s Species, energy float64, pos r2.Vec, dir float64) (*Particle, error) {
	switch {
	case !(energy >= 0) || math.IsInf(energy, 0):
		return nil, fmt.Errorf("%w: %s energy %g", ErrInvalidParticle, s.Name, energy)
	case !finite(pos.X) || !finite(pos.Y):
		return nil, fmt.Errorf("%w: %s position %v", ErrInvalidParticle, s.Name, pos)
	case !finite(dir):
		return nil, fmt.Errorf("%w: %s direction %g", ErrInvalidParticle, s.Name, dir)
	}
	return &Particle{species: s, energy: energy, pos: pos, dir: dir}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Bind attaches the particle to the medium it travels through. A particle
// can be bound once.
func (p *Particle) Bind(m Medium) error {
	if m == nil {
		return fmt.Errorf("%w: nil medium", ErrInvalidParticle)
	}
	if p.medium != nil {
		return ErrAlreadyBound
	}
	p.medium = m
	return nil
}

// Bound reports whether Bind succeeded.
func (p *Particle) Bound() bool { return p.medium != nil }

// Species returns the particle's species.
func (p *Particle) Species() Species { return p.species }

// Name returns the species name.
func (p *Particle) Name() string { return p.species.Name }

// Energy returns the kinetic energy in joule.
func (p *Particle) Energy() float64 { return p.energy }

// Position returns the current position.
func (p *Particle) Position() r2.Vec { return p.pos }

// Direction returns the travel direction in radians.
func (p *Particle) Direction() float64 { return p.dir }

// Terminal reports whether the particle is absorbed.
func (p *Particle) Terminal() bool { return p.energy <= AbsorptionThreshold }

// Velocity returns the speed in m/s. Photons travel at c.
func (p *Particle) Velocity() float64 {
	if p.species.Mass == 0 {
		if p.energy > 0 {
			return rad.SpeedOfLight
		}
		return 0
	}
	return math.Sqrt(material.Beta2(p.energy, p.species.Mass)) * rad.SpeedOfLight
}

// String implements fmt.Stringer.
func (p *Particle) String() string {
	return fmt.Sprintf("%s(%.4g MeV at (%.4g, %.4g) m, %.1f°)",
		p.species.Name, p.energy/rad.MeV, p.pos.X, p.pos.Y, p.dir/rad.Degree)
}
