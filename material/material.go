package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/rad"
)

// Errors returned by material constructors and lookups.
var (
	// ErrInvalidMaterial is returned for non-positive Z, A or density and
	// for malformed compounds.
	ErrInvalidMaterial = errors.New("material: invalid material")

	// ErrUnknownMaterial is returned when a name is not registered in a Library.
	ErrUnknownMaterial = errors.New("material: unknown material")
)

// Unbounded is the mean free path reported when no interaction can happen:
// no tabulated data, a zero cross section or a numerically unusable one.
const Unbounded = 1e30 * rad.Meter

// Interaction selects the kind of mean free path data.
type Interaction uint8

const (
	// Neutron selects tabulated neutron cross sections.
	Neutron Interaction = iota

	// Gamma selects tabulated photon mass attenuation coefficients.
	Gamma
)

// String returns the interaction name.
func (i Interaction) String() string {
	switch i {
	case Neutron:
		return "neutron"
	case Gamma:
		return "gamma"
	default:
		return fmt.Sprintf("Interaction(%d)", i)
	}
}

// channel is one independent interaction channel. The macroscopic cross
// section is scale·table(E): a number density times a microscopic cross
// section for neutrons, a partial density times a mass attenuation
// coefficient for gammas.
type channel struct {
	scale float64
	table *Table
}

func (c channel) meanFreePath(e float64) float64 {
	if c.table == nil {
		return Unbounded
	}
	sigma := c.scale * c.table.At(e)
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Unbounded
	}
	mfp := 1 / sigma
	if !(mfp > 0) || math.IsInf(mfp, 0) {
		return Unbounded
	}
	return mfp
}

// Component is one constituent of a compound with its multiplicity in the
// formula unit, e.g. {Hydrogen, 2} and {Oxygen, 1} for water.
type Component struct {
	Material *Material
	Count    int
}

// Material is an immutable description of a substance: atomic number,
// mass number, density and optional tabulated interaction data.
//
// A compound Material aggregates elemental constituents sharing one bulk
// density. Its neutron and gamma mean free paths are reported per
// constituent and compete as independent channels.
type Material struct {
	name       string
	z, a       float64
	density    float64
	excitation float64
	electrons  float64
	numberDens float64

	neutronTable *Table
	gammaTable   *Table

	neutron    []channel
	gamma      []channel
	components []Component
}

// New creates an elemental material.
//
// z is the atomic number, a the mass number in amu and density the mass
// density in kg/m³. The mean excitation potential defaults to 10·Z eV and
// the electron density to Z·ρ/(A·amu).
func New(name string, z, a, density float64, opts ...Option) (*Material, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidMaterial)
	}
	if !(z > 0) || !(a > 0) || !(density > 0) {
		return nil, fmt.Errorf("%w: %s: Z=%g A=%g density=%g must be positive", ErrInvalidMaterial, name, z, a, density)
	}
	o := applyOptions(opts)

	m := &Material{
		name:         name,
		z:            z,
		a:            a,
		density:      density,
		numberDens:   density / (rad.AtomicMass * a),
		neutronTable: o.neutron,
		gammaTable:   o.gamma,
	}
	m.neutron = []channel{{scale: m.numberDens, table: o.neutron}}
	m.gamma = []channel{{scale: density, table: o.gamma}}
	m.derive(o)
	return m, nil
}

// NewCompound creates a compound of elemental constituents with a single
// bulk density in kg/m³.
//
// Z and A are the count-weighted means of the constituents. Neutron
// channels use the molecule number density ρ/(amu·ΣA) times each
// constituent's count; gamma channels use the constituent's mass share of
// the bulk density. WithGammaTable replaces the per-constituent gamma
// channels with a single bulk channel; WithNeutronTable is ignored.
func NewCompound(name string, density float64, parts []Component, opts ...Option) (*Material, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidMaterial)
	}
	if !(density > 0) {
		return nil, fmt.Errorf("%w: %s: density=%g must be positive", ErrInvalidMaterial, name, density)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %s: compound without components", ErrInvalidMaterial, name)
	}

	var count, sumZ, sumA float64
	for i, p := range parts {
		switch {
		case p.Material == nil:
			return nil, fmt.Errorf("%w: %s: component %d has no material", ErrInvalidMaterial, name, i)
		case p.Count <= 0:
			return nil, fmt.Errorf("%w: %s: component %s has count %d", ErrInvalidMaterial, name, p.Material.name, p.Count)
		case p.Material.IsCompound():
			return nil, fmt.Errorf("%w: %s: component %s is itself a compound", ErrInvalidMaterial, name, p.Material.name)
		}
		c := float64(p.Count)
		count += c
		sumZ += c * p.Material.z
		sumA += c * p.Material.a
	}
	o := applyOptions(opts)

	m := &Material{
		name:       name,
		z:          sumZ / count,
		a:          sumA / count,
		density:    density,
		numberDens: density / (rad.AtomicMass * sumA),
		gammaTable: o.gamma,
		components: append([]Component(nil), parts...),
	}
	for _, p := range parts {
		c := float64(p.Count)
		m.neutron = append(m.neutron, channel{scale: c * m.numberDens, table: p.Material.neutronTable})
		if o.gamma == nil {
			m.gamma = append(m.gamma, channel{scale: density * c * p.Material.a / sumA, table: p.Material.gammaTable})
		}
	}
	if o.gamma != nil {
		m.gamma = []channel{{scale: density, table: o.gamma}}
	}
	m.derive(o)
	return m, nil
}

func (m *Material) derive(o options) {
	m.excitation = 10 * rad.ElectronVolt * m.z
	if o.excitation > 0 {
		m.excitation = o.excitation
	}
	m.electrons = m.z * m.density / (m.a * rad.AtomicMass)
	if o.electrons > 0 {
		m.electrons = o.electrons
	}
}

// Name returns the material name.
func (m *Material) Name() string { return m.name }

// Z returns the (mean) atomic number.
func (m *Material) Z() float64 { return m.z }

// A returns the (mean) mass number in amu.
func (m *Material) A() float64 { return m.a }

// Density returns the mass density in kg/m³.
func (m *Material) Density() float64 { return m.density }

// MeanExcitation returns the mean excitation potential I in joule.
func (m *Material) MeanExcitation() float64 { return m.excitation }

// ElectronDensity returns the electron number density in m⁻³.
func (m *Material) ElectronDensity() float64 { return m.electrons }

// NumberDensity returns atoms (or formula units for compounds) per m³.
func (m *Material) NumberDensity() float64 { return m.numberDens }

// IsCompound reports whether m was built by NewCompound.
func (m *Material) IsCompound() bool { return len(m.components) > 0 }

// Components returns a copy of the compound's constituents, nil for
// elemental materials.
func (m *Material) Components() []Component {
	if len(m.components) == 0 {
		return nil
	}
	return append([]Component(nil), m.components...)
}

// NeutronMeanFreePaths returns one mean free path per neutron channel at
// kinetic energy e.
func (m *Material) NeutronMeanFreePaths(e float64) []float64 {
	return meanFreePaths(m.neutron, e)
}

// GammaMeanFreePaths returns one mean free path per photon channel at
// energy e.
func (m *Material) GammaMeanFreePaths(e float64) []float64 {
	return meanFreePaths(m.gamma, e)
}

// MeanFreePaths dispatches to the neutron or gamma channels.
func (m *Material) MeanFreePaths(kind Interaction, e float64) []float64 {
	switch kind {
	case Neutron:
		return m.NeutronMeanFreePaths(e)
	case Gamma:
		return m.GammaMeanFreePaths(e)
	default:
		return nil
	}
}

func meanFreePaths(chs []channel, e float64) []float64 {
	out := make([]float64, len(chs))
	for i, c := range chs {
		out[i] = c.meanFreePath(e)
	}
	return out
}

// String implements fmt.Stringer.
func (m *Material) String() string {
	return fmt.Sprintf("%s(Z=%.4g, A=%.4g, ρ=%.4g kg/m³)", m.name, m.z, m.a, m.density)
}
