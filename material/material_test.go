package material

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/rad"
)

func approx(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Abs(b)
}

func mustTable(t *testing.T, e, v []float64) *Table {
	t.Helper()
	tbl, err := NewTable(e, v)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mname   string
		z, a, d float64
	}{
		{"empty name", "", 1, 1, 1},
		{"zero Z", "x", 0, 1, 1},
		{"negative A", "x", 1, -1, 1},
		{"zero density", "x", 1, 1, 0},
		{"nan density", "x", 1, 1, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mname, tt.z, tt.a, tt.d)
			if !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("New() error = %v, want ErrInvalidMaterial", err)
			}
		})
	}
}

func TestDerivedQuantities(t *testing.T) {
	rho := 2.336 * rad.GramPerCubicCentimeter
	m, err := New("Si", 14, 28.085, rho)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got, want := m.MeanExcitation(), 140*rad.ElectronVolt; !approx(got, want, 1e-12) {
		t.Errorf("MeanExcitation() = %g, want %g", got, want)
	}
	if got, want := m.ElectronDensity(), 14*rho/(28.085*rad.AtomicMass); !approx(got, want, 1e-12) {
		t.Errorf("ElectronDensity() = %g, want %g", got, want)
	}
	if m.IsCompound() || m.Components() != nil {
		t.Error("elemental material reports components")
	}
}

func TestOverrides(t *testing.T) {
	m, err := New("w", 8, 16, 1000,
		WithMeanExcitation(75*rad.ElectronVolt),
		WithElectronDensity(3.3456e29),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := m.MeanExcitation() / rad.ElectronVolt; !approx(got, 75, 1e-12) {
		t.Errorf("MeanExcitation() = %g eV, want 75 eV", got)
	}
	if got := m.ElectronDensity(); got != 3.3456e29 {
		t.Errorf("ElectronDensity() = %g, want 3.3456e29", got)
	}
}

func TestMeanFreePathsWithoutData(t *testing.T) {
	m, err := New("x", 6, 12, 2000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, kind := range []Interaction{Neutron, Gamma} {
		got := m.MeanFreePaths(kind, rad.MeV)
		if len(got) != 1 || got[0] != Unbounded {
			t.Errorf("MeanFreePaths(%v) = %v, want [Unbounded]", kind, got)
		}
	}
}

func TestElementalMeanFreePaths(t *testing.T) {
	sigma := mustTable(t, []float64{0, 10 * rad.MeV}, []float64{2 * rad.Barn, 2 * rad.Barn})
	mu := mustTable(t, []float64{0, 10 * rad.MeV}, []float64{0.1 * rad.SquareCentimeterPerGram, 0.1 * rad.SquareCentimeterPerGram})
	rho := 2 * rad.GramPerCubicCentimeter
	m, err := New("x", 6, 12, rho, WithNeutronTable(sigma), WithGammaTable(mu))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	n := rho / (12 * rad.AtomicMass)
	if got, want := m.NeutronMeanFreePaths(rad.MeV)[0], 1/(n*2*rad.Barn); !approx(got, want, 1e-12) {
		t.Errorf("neutron mfp = %g, want %g", got, want)
	}
	// 1/(0.1 cm²/g · 2 g/cm³) = 5 cm
	if got := m.GammaMeanFreePaths(rad.MeV)[0]; !approx(got, 5*rad.Centimeter, 1e-12) {
		t.Errorf("gamma mfp = %g m, want 0.05 m", got)
	}
}

func TestZeroCrossSectionIsUnbounded(t *testing.T) {
	zero := mustTable(t, []float64{0, 1}, []float64{0, 0})
	m, err := New("x", 1, 1, 1, WithNeutronTable(zero))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := m.NeutronMeanFreePaths(0.5)[0]; got != Unbounded {
		t.Errorf("mfp with zero cross section = %g, want Unbounded", got)
	}
}

func TestCompound(t *testing.T) {
	sigmaH := mustTable(t, []float64{0, 1}, []float64{20 * rad.Barn, 20 * rad.Barn})
	sigmaO := mustTable(t, []float64{0, 1}, []float64{4 * rad.Barn, 4 * rad.Barn})
	muH := mustTable(t, []float64{0, 1}, []float64{0.2, 0.2})
	muO := mustTable(t, []float64{0, 1}, []float64{0.01, 0.01})
	h, _ := New("H", 1, 1, 1, WithNeutronTable(sigmaH), WithGammaTable(muH))
	o, _ := New("O", 8, 16, 1, WithNeutronTable(sigmaO), WithGammaTable(muO))

	rho := 1 * rad.GramPerCubicCentimeter
	w, err := NewCompound("water", rho, []Component{{Material: h, Count: 2}, {Material: o, Count: 1}})
	if err != nil {
		t.Fatalf("NewCompound() error = %v", err)
	}

	if !w.IsCompound() || len(w.Components()) != 2 {
		t.Fatalf("Components() = %v, want 2 entries", w.Components())
	}
	if got, want := w.Z(), 10.0/3; !approx(got, want, 1e-12) {
		t.Errorf("Z() = %g, want %g", got, want)
	}
	if got, want := w.A(), 18.0/3; !approx(got, want, 1e-12) {
		t.Errorf("A() = %g, want %g", got, want)
	}

	n := rho / (rad.AtomicMass * 18)
	if !approx(w.NumberDensity(), n, 1e-12) {
		t.Errorf("NumberDensity() = %g, want %g", w.NumberDensity(), n)
	}

	nm := w.NeutronMeanFreePaths(0.5)
	if len(nm) != 2 {
		t.Fatalf("NeutronMeanFreePaths() len = %d, want 2", len(nm))
	}
	if want := 1 / (2 * n * 20 * rad.Barn); !approx(nm[0], want, 1e-12) {
		t.Errorf("H channel mfp = %g, want %g", nm[0], want)
	}
	if want := 1 / (n * 4 * rad.Barn); !approx(nm[1], want, 1e-12) {
		t.Errorf("O channel mfp = %g, want %g", nm[1], want)
	}

	gm := w.GammaMeanFreePaths(0.5)
	if len(gm) != 2 {
		t.Fatalf("GammaMeanFreePaths() len = %d, want 2", len(gm))
	}
	if want := 1 / (0.2 * rho * 2 / 18); !approx(gm[0], want, 1e-12) {
		t.Errorf("H gamma mfp = %g, want %g", gm[0], want)
	}
	if want := 1 / (0.01 * rho * 16 / 18); !approx(gm[1], want, 1e-12) {
		t.Errorf("O gamma mfp = %g, want %g", gm[1], want)
	}
}

func TestCompoundBulkGammaTable(t *testing.T) {
	h, _ := New("H", 1, 1, 1)
	o, _ := New("O", 8, 16, 1)
	mu := mustTable(t, []float64{0, 1}, []float64{0.007, 0.007})
	w, err := NewCompound("water", 1000, []Component{{Material: h, Count: 2}, {Material: o, Count: 1}}, WithGammaTable(mu))
	if err != nil {
		t.Fatalf("NewCompound() error = %v", err)
	}
	gm := w.GammaMeanFreePaths(0.5)
	if len(gm) != 1 {
		t.Fatalf("GammaMeanFreePaths() len = %d, want 1", len(gm))
	}
	if want := 1 / (0.007 * 1000); !approx(gm[0], want, 1e-12) {
		t.Errorf("bulk gamma mfp = %g, want %g", gm[0], want)
	}
	// constituents without neutron data give unbounded channels
	for i, mfp := range w.NeutronMeanFreePaths(0.5) {
		if mfp != Unbounded {
			t.Errorf("neutron channel %d = %g, want Unbounded", i, mfp)
		}
	}
}

func TestNewCompoundInvalid(t *testing.T) {
	h, _ := New("H", 1, 1, 1)
	inner, _ := NewCompound("h2", 1, []Component{{Material: h, Count: 2}})

	tests := []struct {
		name  string
		parts []Component
		rho   float64
	}{
		{"no parts", nil, 1},
		{"nil material", []Component{{Count: 1}}, 1},
		{"zero count", []Component{{Material: h}}, 1},
		{"nested compound", []Component{{Material: inner, Count: 1}}, 1},
		{"zero density", []Component{{Material: h, Count: 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompound("c", tt.rho, tt.parts)
			if !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("NewCompound() error = %v, want ErrInvalidMaterial", err)
			}
		})
	}
}

func TestLibrary(t *testing.T) {
	a, _ := New("a", 1, 1, 1)
	b, _ := New("b", 1, 1, 1)
	lib, err := NewLibrary(b, a)
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	if got := lib.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", got)
	}
	if m, err := lib.Lookup("a"); err != nil || m != a {
		t.Errorf("Lookup(a) = %v, %v", m, err)
	}
	if _, err := lib.Lookup("c"); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Lookup(c) error = %v, want ErrUnknownMaterial", err)
	}
	if err := lib.Add(a); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("Add(duplicate) error = %v, want ErrInvalidMaterial", err)
	}
}

func TestInteractionString(t *testing.T) {
	if Neutron.String() != "neutron" || Gamma.String() != "gamma" {
		t.Errorf("String() = %q, %q", Neutron, Gamma)
	}
	if got := Interaction(7).String(); got != "Interaction(7)" {
		t.Errorf("String() = %q, want Interaction(7)", got)
	}
}
