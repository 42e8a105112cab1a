package particle

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/material"
)

// uniform is a medium filled everywhere with one material and fixed mean
// free paths.
type uniform struct {
	mat  *material.Material
	mfps []float64
}

func (u *uniform) MaterialAt(r2.Vec) *material.Material { return u.mat }

func (u *uniform) MeanFreePaths(r2.Vec, float64, material.Interaction) []float64 {
	return u.mfps
}

// fixedRand returns the same value forever.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func water(t testing.TB) *material.Material {
	t.Helper()
	lib, err := material.Builtin()
	if err != nil {
		t.Fatalf("material.Builtin() error = %v", err)
	}
	m, err := lib.Lookup(material.Water)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	return m
}

func bound(t testing.TB, name string, energy float64, m Medium) *Particle {
	t.Helper()
	p, err := New(name, energy, r2.Vec{}, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := p.Bind(m); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	return p
}

func TestStepSubdivision(t *testing.T) {
	tests := []struct {
		name  string
		ds    float64
		sub   float64
		n     int
		subLn float64
	}{
		{"exact", 1 * rad.Millimeter, 0.25 * rad.Millimeter, 4, 0.25 * rad.Millimeter},
		{"remainder spread", 1 * rad.Millimeter, 0.3 * rad.Millimeter, 3, rad.Millimeter / 3},
		{"shorter than sub-step", 0.05 * rad.Millimeter, 0.1 * rad.Millimeter, 1, 0.05 * rad.Millimeter},
		{"default sub-step", 1 * rad.Millimeter, 0, 10, 0.1 * rad.Millimeter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := bound(t, Gamma, rad.MeV, &uniform{})
			s := p.Step(tt.ds, tt.sub, nil)
			if s.Len() != tt.n || len(s.Positions) != tt.n {
				t.Fatalf("Step() took %d sub-steps, want %d", s.Len(), tt.n)
			}
			if math.Abs(s.SubStep-tt.subLn) > 1e-15 {
				t.Errorf("SubStep = %g, want %g", s.SubStep, tt.subLn)
			}
			if got := p.Position().X; math.Abs(got-tt.ds) > 1e-12 {
				t.Errorf("x after Step() = %g, want %g", got, tt.ds)
			}
		})
	}
}

func TestStepInvalidDistance(t *testing.T) {
	p := bound(t, Proton, rad.MeV, &uniform{})
	for _, ds := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if s := p.Step(ds, 0, nil); s.Len() != 0 {
			t.Errorf("Step(%g) took %d sub-steps, want 0", ds, s.Len())
		}
	}
}

func TestChargedStepIsMonotonicAndStraight(t *testing.T) {
	const dir = 30 * rad.Degree
	p, _ := New(Proton, 50*rad.MeV, r2.Vec{}, dir)
	if err := p.Bind(&uniform{mat: water(t)}); err != nil {
		t.Fatal(err)
	}

	last := p.Energy()
	for i := 0; i < 20 && !p.Terminal(); i++ {
		before := p.Position()
		s := p.Step(5*rad.Millimeter, 0, fixedRand(0.5))

		if p.Energy() > last {
			t.Fatalf("step %d: energy rose from %g to %g", i, last, p.Energy())
		}
		if got := last - p.Energy(); math.Abs(got-s.Total()) > 1e-9*last {
			t.Errorf("step %d: energy drop %g != Total() %g", i, got, s.Total())
		}
		last = p.Energy()

		if p.Direction() != dir {
			t.Fatalf("step %d: direction changed to %g", i, p.Direction())
		}
		d := r2.Sub(p.Position(), before)
		if !(r2.Norm(d) > 0) || math.Abs(math.Atan2(d.Y, d.X)-dir) > 1e-9 {
			t.Errorf("step %d: moved by %v, want forward along %g rad", i, d, dir)
		}
	}
	if last >= 50*rad.MeV {
		t.Error("proton in water did not lose energy")
	}
}

func TestChargedStepOutsideMaterial(t *testing.T) {
	p := bound(t, Alpha, 5*rad.MeV, &uniform{})
	s := p.Step(rad.Millimeter, 0, nil)
	if s.Total() != 0 || p.Energy() != 5*rad.MeV {
		t.Errorf("Step() in vacuum lost %g J, want 0", s.Total())
	}
}

func TestStepStopsAtThreshold(t *testing.T) {
	// Every channel interacts and takes the whole energy.
	p := bound(t, Gamma, 50*rad.KeV, &uniform{mfps: []float64{1e-9}})
	s := p.Step(rad.Millimeter, 0, fixedRand(0.5))
	if s.Len() != 1 {
		t.Errorf("Step() took %d sub-steps, want 1", s.Len())
	}
	if !p.Terminal() || p.Energy() != 0 {
		t.Errorf("energy after photo absorption = %g, want 0", p.Energy())
	}
	if got := s.Total(); got != 50*rad.KeV {
		t.Errorf("Total() = %g, want %g", got, 50*rad.KeV)
	}
}

func TestDepositClampedToEnergy(t *testing.T) {
	// Two channels each depositing E·0.9 would exceed E.
	p := bound(t, Neutron, rad.MeV, &uniform{mfps: []float64{1e-9, 1e-9}})
	s := p.Step(0.1*rad.Millimeter, 0, fixedRand(0.9))
	if got := s.Total(); got != rad.MeV {
		t.Errorf("Total() = %g, want clamp to %g", got, rad.MeV)
	}
	if p.Energy() != 0 {
		t.Errorf("Energy() = %g, want 0", p.Energy())
	}
}

func TestGammaDeposit(t *testing.T) {
	tests := []struct {
		name string
		e, u float64
		want float64
	}{
		{"photo absorption", 50 * rad.KeV, 0.3, 50 * rad.KeV},
		{"compton band", 1 * rad.MeV, 0.5, 0.75 * rad.MeV},
		{"high energy", 10 * rad.MeV, 0.5, 2.5 * rad.MeV},
		{"high energy capped", 100 * rad.MeV, 0.9, 20 * rad.MeV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gammaDeposit(tt.e, tt.u); math.Abs(got-tt.want) > 1e-9*tt.want {
				t.Errorf("gammaDeposit(%g, %g) = %g, want %g", tt.e, tt.u, got, tt.want)
			}
		})
	}
}

func TestNeutronDeposit(t *testing.T) {
	if got := neutronDeposit(rad.MeV, 0.25); got != 0.25*rad.MeV {
		t.Errorf("neutronDeposit() = %g, want %g", got, 0.25*rad.MeV)
	}
	if got := neutronDeposit(100*rad.MeV, 0.5); got != 20*rad.MeV {
		t.Errorf("neutronDeposit() = %g, want cap %g", got, 20*rad.MeV)
	}
}

func TestScatterDeflection(t *testing.T) {
	// u = 0.75 interacts, deposits 0.75 MeV and turns by +20°.
	p := bound(t, Neutron, rad.MeV, &uniform{mfps: []float64{1e-9}})
	p.Step(0.1*rad.Millimeter, 0, fixedRand(0.75))
	if got := p.Direction() / rad.Degree; math.Abs(got-20) > 1e-9 {
		t.Errorf("Direction() = %g°, want 20°", got)
	}

	// No interaction, no deflection.
	q := bound(t, Neutron, rad.MeV, &uniform{mfps: []float64{material.Unbounded}})
	q.Step(rad.Millimeter, 0, fixedRand(0.75))
	if q.Direction() != 0 || q.Energy() != rad.MeV {
		t.Errorf("without interactions: dir %g energy %g", q.Direction(), q.Energy())
	}
}

func TestScatterSkipsUnboundedChannel(t *testing.T) {
	// A zero variate must not trigger a channel without cross section.
	p := bound(t, XRay, 0.05*rad.MeV, &uniform{mfps: []float64{material.Unbounded, material.Unbounded}})
	s := p.Step(rad.Millimeter, 0, fixedRand(0))
	if s.Total() != 0 || p.Energy() != 0.05*rad.MeV {
		t.Errorf("Step() Total() = %g, Energy() = %g, want no interaction", s.Total(), p.Energy())
	}
}

func TestNeutronInteractionRate(t *testing.T) {
	const (
		n   = 10000
		mfp = 50 * rad.Millimeter
		ds  = 5 * rad.Millimeter
	)
	rng := rand.New(rand.NewPCG(1, 2))
	medium := &uniform{mfps: []float64{mfp}}

	hits := 0
	for range n {
		p := bound(t, Neutron, rad.MeV, medium)
		if s := p.Step(ds, ds, rng); s.Total() > 0 {
			hits++
		}
	}
	rate := float64(hits) / n
	if math.Abs(rate-ds/mfp) > 0.015 {
		t.Errorf("interaction rate = %.4f, want %.2f ± 0.015", rate, ds/mfp)
	}
}

func TestStepMean(t *testing.T) {
	s := Step{Positions: []r2.Vec{{X: 1, Y: 2}, {X: 3, Y: 6}}}
	got, ok := s.Mean()
	if !ok || got != (r2.Vec{X: 2, Y: 4}) {
		t.Errorf("Mean() = %v, %v, want (2, 4), true", got, ok)
	}
	if _, ok := (Step{}).Mean(); ok {
		t.Error("Mean() of empty step ok = true")
	}
}

func TestUnboundParticleDrifts(t *testing.T) {
	p, _ := New(Neutron, rad.MeV, r2.Vec{}, math.Pi/2)
	p.Step(rad.Millimeter, 0, nil)
	if p.Energy() != rad.MeV {
		t.Errorf("unbound Energy() = %g, want unchanged", p.Energy())
	}
	if got := p.Position().Y; math.Abs(got-rad.Millimeter) > 1e-12 {
		t.Errorf("unbound y = %g, want %g", got, rad.Millimeter)
	}
}

func BenchmarkChargedStep(b *testing.B) {
	m := &uniform{mat: water(b)}
	for b.Loop() {
		p := bound(b, Proton, 50*rad.MeV, m)
		p.Step(12*rad.Millimeter, 0, nil)
	}
}
