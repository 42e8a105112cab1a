package material

import (
	"embed"
	"fmt"
	"sync"

	"github.com/gogpu/rad"
)

//go:embed data/*.txt
var dataFS embed.FS

// iodineFormat skips the two line header of the iodine listing.
var iodineFormat = Format{
	SkipRows:   2,
	Columns:    NeutronFormat.Columns,
	EnergyUnit: NeutronFormat.EnergyUnit,
	ValueUnit:  NeutronFormat.ValueUnit,
}

// Names of the built-in materials.
const (
	Water        = "H2O"
	CesiumIodide = "CsI"
	Silicon      = "Silicon"
	Vacuum       = "Vacuum"
)

// Builtin returns the library of built-in materials: H2O, CsI, Silicon,
// Vacuum and the elements they are made of (H, O, Cs, I).
//
// The library is built once from embedded data files on first use and
// shared afterwards. Callers must not Add to it.
func Builtin() (*Library, error) {
	return builtin()
}

var builtin = sync.OnceValues(buildBuiltin)

func buildBuiltin() (*Library, error) {
	load := func(name string, f Format) (*Table, error) {
		fh, err := dataFS.Open("data/" + name)
		if err != nil {
			return nil, fmt.Errorf("material: builtin %s: %w", name, err)
		}
		defer func() { _ = fh.Close() }()
		t, err := ReadTable(fh, f)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", name, err)
		}
		return t, nil
	}

	tables := map[string]*Table{}
	for _, entry := range []struct {
		file string
		f    Format
	}{
		{"n_H.txt", NeutronFormat},
		{"n_O.txt", NeutronFormat},
		{"n_Si.txt", NeutronFormat},
		{"n_Cs.txt", NeutronFormat},
		{"n_I.txt", iodineFormat},
		{"g_H2O.txt", GammaFormat},
		{"g_Si.txt", GammaFormat},
		{"g_CsI.txt", GammaFormat},
	} {
		t, err := load(entry.file, entry.f)
		if err != nil {
			return nil, err
		}
		tables[entry.file] = t
	}

	gcm3 := rad.GramPerCubicCentimeter
	h, err := New("H", 1, 1.008, 0.0899e-3*gcm3, WithNeutronTable(tables["n_H.txt"]))
	if err != nil {
		return nil, err
	}
	o, err := New("O", 8, 15.999, 1.429e-3*gcm3, WithNeutronTable(tables["n_O.txt"]))
	if err != nil {
		return nil, err
	}
	cs, err := New("Cs", 55, 132.905, 1.93*gcm3, WithNeutronTable(tables["n_Cs.txt"]))
	if err != nil {
		return nil, err
	}
	iod, err := New("I", 53, 126.904, 4.93*gcm3, WithNeutronTable(tables["n_I.txt"]))
	if err != nil {
		return nil, err
	}
	si, err := New(Silicon, 14, 28.085, 2.336*gcm3,
		WithNeutronTable(tables["n_Si.txt"]),
		WithGammaTable(tables["g_Si.txt"]),
	)
	if err != nil {
		return nil, err
	}
	water, err := NewCompound(Water, 1*gcm3,
		[]Component{{Material: h, Count: 2}, {Material: o, Count: 1}},
		WithMeanExcitation(75*rad.ElectronVolt),
		WithElectronDensity(3.3456e29/rad.CubicMeter),
		WithGammaTable(tables["g_H2O.txt"]),
	)
	if err != nil {
		return nil, err
	}
	csi, err := NewCompound(CesiumIodide, 4.51*gcm3,
		[]Component{{Material: cs, Count: 1}, {Material: iod, Count: 1}},
		WithGammaTable(tables["g_CsI.txt"]),
	)
	if err != nil {
		return nil, err
	}
	vacuum, err := New(Vacuum, 1, 1.008, 1e-10*gcm3)
	if err != nil {
		return nil, err
	}

	lib, err := NewLibrary(h, o, cs, iod, si, water, csi, vacuum)
	if err != nil {
		return nil, err
	}
	rad.Logger().Debug("material: builtin library ready", "materials", lib.Len())
	return lib, nil
}
