package particle

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/material"
)

// DefaultSubStep is the sub-step length used when Step is given none.
const DefaultSubStep = 0.1 * rad.Millimeter

// Stochastic interaction constants.
const (
	maxEventDeposit = 20 * rad.MeV
	deflectAbove    = 10 * rad.KeV
	deflectWindow   = 80 * rad.Degree
	photoAbsorption = 0.1 * rad.MeV
	comptonBand     = 3 * rad.MeV
)

// maxSubSteps bounds the work of a single Step call.
const maxSubSteps = 1 << 20

// Rand is the source of uniform random numbers in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Global is a Rand backed by the math/rand/v2 top-level functions.
var Global Rand = globalRand{}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Step is the outcome of advancing a particle by one macroscopic step.
type Step struct {
	// Positions holds the position after every sub-step.
	Positions []r2.Vec

	// Deposits holds the energy lost in every sub-step, in joule.
	Deposits []float64

	// SubStep is the sub-step length used.
	SubStep float64
}

// Len returns the number of sub-steps taken.
func (s Step) Len() int { return len(s.Deposits) }

// Total returns the energy lost over the whole step.
func (s Step) Total() float64 { return floats.Sum(s.Deposits) }

// Mean returns the mean sub-step position. ok is false for an empty step.
func (s Step) Mean() (p r2.Vec, ok bool) {
	if len(s.Positions) == 0 {
		return r2.Vec{}, false
	}
	xs := make([]float64, len(s.Positions))
	ys := make([]float64, len(s.Positions))
	for i, q := range s.Positions {
		xs[i], ys[i] = q.X, q.Y
	}
	return r2.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}, true
}

// Step advances the particle by ds in sub-steps of about sub (DefaultSubStep
// when sub is not positive). The distance is split into N = ⌊ds/sub⌋ equal
// sub-steps, at least one. Stepping stops early once the particle is
// absorbed. A nil rng uses the math/rand/v2 global source.
//
// An unbound particle moves in a straight line without losing energy.
func (p *Particle) Step(ds, sub float64, rng Rand) Step {
	if !(ds > 0) || math.IsInf(ds, 0) {
		return Step{}
	}
	if !(sub > 0) {
		sub = DefaultSubStep
	}
	if rng == nil {
		rng = Global
	}

	n := int(min(math.Floor(ds/sub), maxSubSteps))
	if n < 1 {
		n = 1
	}
	l := ds / float64(n)

	out := Step{
		Positions: make([]r2.Vec, 0, n),
		Deposits:  make([]float64, 0, n),
		SubStep:   l,
	}
	for range n {
		if p.Terminal() {
			break
		}
		de := p.energyLoss(l, rng)
		if !(de > 0) {
			de = 0
		} else if de > p.energy {
			de = p.energy
		}
		p.energy -= de
		p.pos = r2.Add(p.pos, r2.Vec{X: math.Cos(p.dir) * l, Y: math.Sin(p.dir) * l})

		out.Positions = append(out.Positions, p.pos)
		out.Deposits = append(out.Deposits, de)
	}
	return out
}

func (p *Particle) energyLoss(l float64, rng Rand) float64 {
	if p.medium == nil {
		return 0
	}
	switch p.species.Class {
	case Charged:
		m := p.medium.MaterialAt(p.pos)
		if m == nil {
			return 0
		}
		return m.StoppingPower(p.energy, p.species.Mass, p.species.Charge) * l
	case NeutralHadron:
		return p.scatter(l, material.Neutron, rng, neutronDeposit)
	case Photon:
		return p.scatter(l, material.Gamma, rng, gammaDeposit)
	default:
		return 0
	}
}

// scatter samples every channel once: a channel interacts when l/mfp
// exceeds a uniform variate. A sub-step deposit above deflectAbove turns
// the particle by a random angle within ±deflectWindow/2.
func (p *Particle) scatter(l float64, kind material.Interaction, rng Rand, deposit func(e, u float64) float64) float64 {
	var de float64
	for _, mfp := range p.medium.MeanFreePaths(p.pos, p.energy, kind) {
		if mfp >= material.Unbounded {
			continue
		}
		if l/mfp > rng.Float64() {
			de += deposit(p.energy, rng.Float64())
		}
	}
	if de > deflectAbove {
		p.dir += (rng.Float64() - 0.5) * deflectWindow
	}
	return de
}

func neutronDeposit(e, u float64) float64 {
	return min(maxEventDeposit, e*u)
}

func gammaDeposit(e, u float64) float64 {
	switch {
	case e < photoAbsorption:
		return e
	case e < comptonBand:
		return e * (0.5 + u/2)
	default:
		return min(maxEventDeposit, e*u/2)
	}
}
