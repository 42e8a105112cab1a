package transport

import (
	"math"
	"testing"
)

func TestQualityFactor(t *testing.T) {
	tests := []struct {
		let  float64 // keV/µm
		want float64
	}{
		{0, 1},
		{5, 1},
		{9.99, 1},
		{20, 4.2},
		{50, 13.8},
		{99, 29.48},
		{400, 15},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		got := QualityFactor(tt.let * keVPerMicrometer)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("QualityFactor(%g keV/µm) = %g, want %g", tt.let, got, tt.want)
		}
	}
}

func TestDoseEquivalentSum(t *testing.T) {
	const sub = 1e-6 // 1 µm
	// 5 keV/µm counts once, 50 keV/µm counts 13.8 times.
	deps := []float64{5 * keVPerMicrometer * sub, 50 * keVPerMicrometer * sub}
	want := deps[0] + 13.8*deps[1]
	if got := doseEquivalent(deps, sub); math.Abs(got-want) > 1e-9*want {
		t.Errorf("doseEquivalent() = %g, want %g", got, want)
	}
}
