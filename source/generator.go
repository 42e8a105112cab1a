package source

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/particle"
)

// ErrUnknownGenerator is returned for generator names not in the registry.
var ErrUnknownGenerator = errors.New("source: unknown generator")

// Generator picks a start position on the edge of bounds and a direction
// pointing into it.
type Generator func(bounds r2.Box, rng particle.Rand) (pos r2.Vec, dir float64)

// Generator names.
const (
	Isotropic = "Isotropic"
	BeamTop   = "Beam from top"
	BeamLeft  = "Beam from left"
	BeamRight = "Beam from right"
	Cosmic    = "Cosmic"
)

// beamWidth is the beam width as a fraction of the illuminated edge.
const beamWidth = 0.2

var generators = map[string]Generator{
	Isotropic: GenIsotropic,
	BeamTop:   GenBeamTop,
	BeamLeft:  GenBeamLeft,
	BeamRight: GenBeamRight,
	Cosmic:    GenCosmic,
}

// LookupGenerator returns the generator registered under name.
func LookupGenerator(name string) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return g, nil
}

// Generators returns the registered generator names, sorted.
func Generators() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GenBeamTop starts particles on the central 20 % of the top edge, heading
// down.
func GenBeamTop(b r2.Box, rng particle.Rand) (r2.Vec, float64) {
	rng = orGlobal(rng)
	c := b.Center()
	w := b.Max.X - b.Min.X
	return r2.Vec{X: c.X + beamWidth*w*(rng.Float64()-0.5), Y: b.Max.Y}, 270 * rad.Degree
}

// GenBeamLeft starts particles on the central 20 % of the left edge,
// heading right.
func GenBeamLeft(b r2.Box, rng particle.Rand) (r2.Vec, float64) {
	rng = orGlobal(rng)
	c := b.Center()
	h := b.Max.Y - b.Min.Y
	return r2.Vec{X: b.Min.X, Y: c.Y + beamWidth*h*(rng.Float64()-0.5)}, 0
}

// GenBeamRight starts particles on the central 20 % of the right edge,
// heading left.
func GenBeamRight(b r2.Box, rng particle.Rand) (r2.Vec, float64) {
	rng = orGlobal(rng)
	c := b.Center()
	h := b.Max.Y - b.Min.Y
	return r2.Vec{X: b.Max.X, Y: c.Y + beamWidth*h*(rng.Float64()-0.5)}, 180 * rad.Degree
}

// GenIsotropic starts particles anywhere on the perimeter with a cosine-law
// angle around the inward normal. Every unit of perimeter is equally
// likely.
func GenIsotropic(b r2.Box, rng particle.Rand) (r2.Vec, float64) {
	rng = orGlobal(rng)
	w := b.Max.X - b.Min.X
	h := b.Max.Y - b.Min.Y
	side := rng.Float64() * (2*w + 2*h)
	theta := cosLaw(rng)

	switch {
	case side < h:
		return r2.Vec{X: b.Min.X, Y: b.Min.Y + rng.Float64()*h}, theta
	case side < h+w:
		return r2.Vec{X: b.Min.X + rng.Float64()*w, Y: b.Max.Y}, theta + 270*rad.Degree
	case side < 2*h+w:
		return r2.Vec{X: b.Max.X, Y: b.Min.Y + rng.Float64()*h}, theta + 180*rad.Degree
	default:
		return r2.Vec{X: b.Min.X + rng.Float64()*w, Y: b.Min.Y}, theta + 90*rad.Degree
	}
}

// GenCosmic starts particles on the central 60 % of the top edge with a
// cos² zenith angle distribution.
func GenCosmic(b r2.Box, rng particle.Rand) (r2.Vec, float64) {
	rng = orGlobal(rng)
	w := b.Max.X - b.Min.X
	theta := cosSquare(rng)
	return r2.Vec{X: b.Min.X + (0.2+0.6*rng.Float64())*w, Y: b.Max.Y}, theta + 270*rad.Degree
}

// cosLaw samples θ ∈ (-π/2, π/2) with density ∝ cos θ·|sin θ|.
func cosLaw(rng particle.Rand) float64 {
	theta := math.Asin(math.Sqrt(rng.Float64()))
	return randomSign(rng, theta)
}

// maxRejections bounds the cos² rejection loop; the acceptance rate is ½.
const maxRejections = 64

// cosSquare samples θ ∈ (-π/2, π/2) with density ∝ cos² θ.
func cosSquare(rng particle.Rand) float64 {
	var theta float64
	for range maxRejections {
		theta = 0.5 * math.Pi * rng.Float64()
		c := math.Cos(theta)
		if rng.Float64() < c*c {
			break
		}
	}
	return randomSign(rng, theta)
}

func randomSign(rng particle.Rand, v float64) float64 {
	if rng.Float64() >= 0.5 {
		return -v
	}
	return v
}

func orGlobal(rng particle.Rand) particle.Rand {
	if rng == nil {
		return particle.Global
	}
	return rng
}
