// Package particle implements the particle species and their stepping.
//
// A Particle is created from the species table by name, bound once to the
// medium it travels through and then advanced with Step. Each step is cut
// into short sub-steps; in every sub-step the species class decides the
// energy loss:
//
//   - Charged particles lose the Bethe stopping power times the sub-step
//     length and never change direction.
//   - Neutrons and gammas sample every interaction channel of the local
//     material once. Interactions deposit part of the energy and large
//     deposits deflect the particle.
//
// All randomness comes from the Rand passed to Step, so a seeded source
// makes transport reproducible.
package particle
