package particle

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/rad"
)

// ErrUnknownSpecies is returned for species names not in the table.
var ErrUnknownSpecies = errors.New("particle: unknown species")

// Class selects the energy-loss rule of a species.
type Class uint8

const (
	// Charged particles slow down continuously by the Bethe formula.
	Charged Class = iota

	// Neutral hadrons interact stochastically per neutron channel.
	NeutralHadron

	// Photons interact stochastically per gamma channel.
	Photon
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Charged:
		return "Charged"
	case NeutralHadron:
		return "Neutron"
	case Photon:
		return "Gamma"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// Species is one row of the particle table.
type Species struct {
	Name   string
	Class  Class
	Mass   float64 // rest mass in kg
	Charge float64 // charge number z
}

// Species names.
const (
	Proton     = "Proton"
	Alpha      = "Alpha"
	Carbon     = "Carbon"
	Electron   = "Electron"
	Muon       = "Muon"
	CosmicMuon = "Cosmic muon"
	Neutron    = "Neutron"
	Gamma      = "Gamma"
	XRay       = "X-ray"
	GammaDecay = "Gamma decay"
	AlphaDecay = "Alpha decay"
)

var table = map[string]Species{
	Proton:     {Proton, Charged, rad.ProtonMass, 1},
	Alpha:      {Alpha, Charged, 4 * rad.AtomicMass, 2},
	Carbon:     {Carbon, Charged, 12 * rad.AtomicMass, 6},
	Electron:   {Electron, Charged, rad.ElectronMass, -1},
	Muon:       {Muon, Charged, rad.MuonMass, -1},
	CosmicMuon: {CosmicMuon, Charged, rad.MuonMass, -1},
	Neutron:    {Neutron, NeutralHadron, rad.NeutronMass, 0},
	Gamma:      {Gamma, Photon, 0, 0},
	XRay:       {XRay, Photon, 0, 0},
	GammaDecay: {GammaDecay, Photon, 0, 0},
	AlphaDecay: {AlphaDecay, Charged, 4 * rad.AtomicMass, 2},
}

// Lookup returns the species registered under name.
func Lookup(name string) (Species, error) {
	s, ok := table[name]
	if !ok {
		return Species{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
	}
	return s, nil
}

// Names returns the registered species names, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
