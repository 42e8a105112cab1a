package rad

import (
	"math"

	"gonum.org/v1/gonum/unit/constant"
)

// Length units.
const (
	Meter      = 1.0
	Centimeter = 1e-2 * Meter
	Millimeter = 1e-3 * Meter
	Micrometer = 1e-6 * Meter
)

// Area and volume units.
const (
	SquareCentimeter = Centimeter * Centimeter
	CubicMeter       = Meter * Meter * Meter
	CubicCentimeter  = Centimeter * Centimeter * Centimeter

	// Barn is the unit of nuclear cross sections, 1e-28 m².
	Barn = 1e-28 * Meter * Meter
)

// Mass and density units.
const (
	Kilogram = 1.0
	Gram     = 1e-3 * Kilogram

	GramPerCubicCentimeter = Gram / CubicCentimeter

	// SquareCentimeterPerGram is the unit of tabulated mass attenuation
	// coefficients.
	SquareCentimeterPerGram = SquareCentimeter / Gram
)

// Physical constants in SI units.
const (
	ElementaryCharge   = float64(constant.ElementaryCharge)
	AtomicMass         = float64(constant.AtomicMass)
	SpeedOfLight       = float64(constant.LightSpeedInVacuum)
	VacuumPermittivity = float64(constant.ElectricConstant)

	ElectronMass = 9.1093837015e-31 * Kilogram
	MuonMass     = 1.883531627e-28 * Kilogram
	ProtonMass   = 1.67262192369e-27 * Kilogram
	NeutronMass  = 1.67492749804e-27 * Kilogram
)

// Energy units.
const (
	Joule        = 1.0
	ElectronVolt = ElementaryCharge * Joule
	KeV          = 1e3 * ElectronVolt
	MeV          = 1e6 * ElectronVolt
)

// Angle units.
const (
	Radian = 1.0
	Degree = math.Pi / 180 * Radian
)

// RestEnergy returns m·c² for a rest mass in kilograms.
func RestEnergy(mass float64) float64 {
	return mass * SpeedOfLight * SpeedOfLight
}
