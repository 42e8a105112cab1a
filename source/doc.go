// Package source generates the particles that enter a world.
//
// A Gun combines a species, an energy Spectrum and a Generator that places
// particles on the edge of the world bounds:
//
//	gun := source.Gun{
//	    Species:   particle.Proton,
//	    Spectrum:  source.Fixed(50 * rad.MeV),
//	    Generator: source.BeamLeft,
//	}
//	handles, err := gun.Shoot(driver, 10, rng)
//
// Presets bundle the usual settings for cosmic muons, gamma and alpha
// decay and X-rays.
package source
