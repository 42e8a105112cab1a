// Package material describes the substances radiation travels through.
//
// A Material carries the atomic number, mass number and density of an
// element, or the weighted aggregate of several elements for a compound,
// together with optional tabulated neutron cross sections and photon mass
// attenuation coefficients. From these it derives:
//
//   - the Bethe stopping power of charged particles (StoppingPower),
//   - one mean free path per interaction channel for neutrons and gammas.
//
// Tables are read once from whitespace separated text files (ReadTable,
// LoadTable) and interpolated piecewise linearly. All values are SI, see
// package rad for unit constants.
//
// Materials are immutable after construction and safe for concurrent use.
package material
