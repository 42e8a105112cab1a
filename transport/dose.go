package transport

import (
	"math"

	"github.com/gogpu/rad"
)

// keVPerMicrometer is the customary unit of linear energy transfer.
const keVPerMicrometer = rad.KeV / rad.Micrometer

// QualityFactor returns the radiation weighting Q(L) for unrestricted
// linear energy transfer let in J/m:
//
//	L < 10 keV/µm         Q = 1
//	10 ≤ L ≤ 100 keV/µm   Q = 0.32·L − 2.2
//	L > 100 keV/µm        Q = 300/√L
func QualityFactor(let float64) float64 {
	l := let / keVPerMicrometer
	switch {
	case !(l >= 10):
		return 1
	case l <= 100:
		return 0.32*l - 2.2
	default:
		return 300 / math.Sqrt(l)
	}
}

// doseEquivalent weights every sub-step deposit with the quality factor of
// its own energy transfer per length.
func doseEquivalent(deposits []float64, sub float64) float64 {
	var sum float64
	for _, de := range deposits {
		sum += QualityFactor(de/sub) * de
	}
	return sum
}
