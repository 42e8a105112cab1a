// Package transport drives particles through a world tick by tick.
//
// A Driver owns the active particles of one world. Every Tick moves each
// particle ds = width/steps further, turns the energy it lost into at most
// one deposit event located at the mean of its sub-step positions, adds
// that energy to the region found there and drops absorbed or escaped
// particles:
//
//	d, err := transport.New(world, transport.WithRand(rng))
//	if err != nil {
//	    return err
//	}
//	d.AddParticle(particle.Proton, 50*rad.MeV, r2.Vec{Y: 1}, 0)
//	for r := d.Tick(); !r.Finished; r = d.Tick() {
//	    draw(r.Tracks, r.Deposits)
//	}
//	rows := d.Deposits()
//
// Run does the same on a ticker until transport is finished, the context
// is done or Clear is called.
package transport
