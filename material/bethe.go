package material

import (
	"math"

	"github.com/gogpu/rad"
)

// β² is kept inside [minBeta2, maxBeta2] so that neither the 1/β² prefactor
// nor the 1/(1-β²) term of the Bethe formula can blow up.
const (
	minBeta2 = 1e-14
	maxBeta2 = 1 - 1e-12
)

// coulomb2 is (e²/4πε₀)², in J²·m².
var coulomb2 = math.Pow(rad.ElementaryCharge*rad.ElementaryCharge/(4*math.Pi*rad.VacuumPermittivity), 2)

var electronRest = rad.RestEnergy(rad.ElectronMass)

// Beta2 returns β² = (v/c)² of a particle with the given kinetic energy
// and rest mass, clamped away from 0 and 1. Zero or negative energy or
// mass returns 0.
func Beta2(kinetic, mass float64) float64 {
	if !(kinetic > 0) || !(mass > 0) {
		return 0
	}
	// x(x+2)/(x+1)² equals 1-1/γ² without cancellation for small x.
	x := kinetic / rad.RestEnergy(mass)
	b2 := x * (x + 2) / ((x + 1) * (x + 1))
	switch {
	case math.IsNaN(b2):
		return 0
	case b2 < minBeta2:
		return minBeta2
	case b2 > maxBeta2:
		return maxBeta2
	}
	return b2
}

// StoppingPower returns the Bethe mean energy loss per unit path length in
// J/m of a particle with the given kinetic energy (J), rest mass (kg) and
// charge number z.
//
// States where the formula is undefined report zero loss: zero energy or
// mass, a non-positive logarithm argument, a negative bracket (very low
// energies just before absorption) and any non-finite intermediate.
func (m *Material) StoppingPower(kinetic, mass, z float64) float64 {
	if z == 0 {
		return 0
	}
	b2 := Beta2(kinetic, mass)
	if b2 == 0 {
		return 0
	}

	arg := 2 * electronRest * b2 / (m.excitation * (1 - b2))
	if !(arg > 0) || math.IsInf(arg, 0) {
		return 0
	}
	bracket := math.Log(arg) - b2
	if !(bracket > 0) {
		return 0
	}

	s := 4 * math.Pi * m.electrons * z * z / (electronRest * b2) * coulomb2 * bracket
	if !(s > 0) || math.IsInf(s, 0) {
		return 0
	}
	return s
}
