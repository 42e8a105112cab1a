package material

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/rad"
)

func TestBuiltin(t *testing.T) {
	lib, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	names := lib.Names()
	for _, want := range []string{Water, CesiumIodide, Silicon, Vacuum, "H", "O", "Cs", "I"} {
		if !slices.Contains(names, want) {
			t.Errorf("Builtin() missing %q, have %v", want, names)
		}
	}

	again, _ := Builtin()
	if again != lib {
		t.Error("Builtin() should return the shared library")
	}
}

func TestBuiltinWater(t *testing.T) {
	lib, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	w, err := lib.Lookup(Water)
	if err != nil {
		t.Fatalf("Lookup(H2O) error = %v", err)
	}

	if got := w.MeanExcitation() / rad.ElectronVolt; !approx(got, 75, 1e-12) {
		t.Errorf("MeanExcitation() = %g eV, want 75", got)
	}
	// molecules per m³ of liquid water
	if got := w.NumberDensity(); !approx(got, 3.3429e28, 1e-3) {
		t.Errorf("NumberDensity() = %g, want ~3.3429e28", got)
	}

	nm := w.NeutronMeanFreePaths(1 * rad.MeV)
	if len(nm) != 2 {
		t.Fatalf("NeutronMeanFreePaths() = %v, want H and O channels", nm)
	}
	for i, mfp := range nm {
		if !(mfp > 0) || mfp >= Unbounded {
			t.Errorf("channel %d mfp = %g, want finite positive", i, mfp)
		}
	}

	// μ/ρ(1 MeV) = 0.07072 cm²/g ⇒ 14.1 cm
	gm := w.GammaMeanFreePaths(1 * rad.MeV)
	if len(gm) != 1 || !approx(gm[0], 14.14*rad.Centimeter, 1e-2) {
		t.Errorf("GammaMeanFreePaths(1 MeV) = %v, want [~0.1414 m]", gm)
	}
}

func TestBuiltinCsIHasKEdge(t *testing.T) {
	lib, _ := Builtin()
	csi, err := lib.Lookup(CesiumIodide)
	if err != nil {
		t.Fatalf("Lookup(CsI) error = %v", err)
	}
	below := csi.GammaMeanFreePaths(33.1 * rad.KeV)[0]
	above := csi.GammaMeanFreePaths(33.3 * rad.KeV)[0]
	if !(above < below) {
		t.Errorf("mfp above K edge = %g, want < %g", above, below)
	}
}

func TestBuiltinVacuumHasNoInteractions(t *testing.T) {
	lib, _ := Builtin()
	v, err := lib.Lookup(Vacuum)
	if err != nil {
		t.Fatalf("Lookup(Vacuum) error = %v", err)
	}
	if got := v.NeutronMeanFreePaths(rad.MeV); got[0] != Unbounded {
		t.Errorf("vacuum neutron mfp = %v, want Unbounded", got)
	}
	if got := v.StoppingPower(50*rad.MeV, rad.AtomicMass, 1) / (rad.MeV / rad.Meter); got > 1e-6 {
		t.Errorf("vacuum stopping power = %g MeV/m, want negligible", got)
	}
}

func TestBuiltinUnknown(t *testing.T) {
	lib, _ := Builtin()
	if _, err := lib.Lookup("Unobtainium"); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Lookup() error = %v, want ErrUnknownMaterial", err)
	}
}
