package transport

import (
	"github.com/gogpu/rad"
	"github.com/gogpu/rad/particle"
)

// Driver defaults.
const (
	// DefaultSteps is the number of ticks needed to cross the world width.
	DefaultSteps = 100

	// DefaultDepositCutoff is the smallest per-tick deposit that is
	// reported and accumulated.
	DefaultDepositCutoff = 1 * rad.KeV
)

// Option configures a Driver during creation.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	d, err := transport.New(world,
//	    transport.WithRand(rng),
//	    transport.WithSteps(200),
//	)
type Option func(*options)

type options struct {
	rng    particle.Rand
	steps  int
	sub    float64
	cutoff float64
	dose   bool
}

func defaultOptions() options {
	return options{
		steps:  DefaultSteps,
		sub:    particle.DefaultSubStep,
		cutoff: DefaultDepositCutoff,
	}
}

// WithRand sets the random source for stochastic species. Without it the
// math/rand/v2 global source is used.
func WithRand(r particle.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSteps sets how many ticks a particle needs to cross the world
// horizontally. Non-positive values are ignored.
func WithSteps(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.steps = n
		}
	}
}

// WithSubStep sets the sub-step length. Non-positive values are ignored.
func WithSubStep(l float64) Option {
	return func(o *options) {
		if l > 0 {
			o.sub = l
		}
	}
}

// WithDepositCutoff sets the per-tick deposit below which nothing is
// reported or accumulated. Negative values are ignored.
func WithDepositCutoff(e float64) Option {
	return func(o *options) {
		if e >= 0 {
			o.cutoff = e
		}
	}
}

// WithDoseEquivalent weights every sub-step deposit by the quality factor
// of its linear energy transfer, turning absorbed energy into
// dose-equivalent energy.
func WithDoseEquivalent(on bool) Option {
	return func(o *options) {
		o.dose = on
	}
}
