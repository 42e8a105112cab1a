package source

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/particle"
)

// ErrInvalidSpectrum is returned for malformed or non-positive energies.
var ErrInvalidSpectrum = errors.New("source: invalid spectrum")

// Spectrum is a kinetic energy distribution: a single energy, or a range
// [Lo, Hi] sampled with a 1/E power law. Energies are in joule.
type Spectrum struct {
	Lo, Hi float64
}

// Fixed returns a single-energy spectrum.
func Fixed(e float64) Spectrum { return Spectrum{Lo: e, Hi: e} }

// NewSpectrum returns the range [lo, hi]. The bounds may be given in any
// order but must be positive and finite.
func NewSpectrum(lo, hi float64) (Spectrum, error) {
	if !(lo > 0) || !(hi > 0) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Spectrum{}, fmt.Errorf("%w: %g-%g J", ErrInvalidSpectrum, lo, hi)
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return Spectrum{Lo: lo, Hi: hi}, nil
}

// ParseSpectrum parses a spectrum in MeV: "50" for a fixed energy or
// "1-6" for a range. A comma is accepted as decimal separator.
func ParseSpectrum(s string) (Spectrum, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	lo, hi, ok := cutRange(s)
	if !ok {
		e, err := parseMeV(s)
		if err != nil {
			return Spectrum{}, err
		}
		return Fixed(e), nil
	}
	e1, err := parseMeV(lo)
	if err != nil {
		return Spectrum{}, err
	}
	e2, err := parseMeV(hi)
	if err != nil {
		return Spectrum{}, err
	}
	return NewSpectrum(e1, e2)
}

// cutRange splits at the first '-' that is neither leading nor part of an
// exponent.
func cutRange(s string) (lo, hi string, ok bool) {
	for i := 1; i < len(s); i++ {
		if s[i] == '-' && s[i-1] != 'e' && s[i-1] != 'E' {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
		}
	}
	return s, "", false
}

func parseMeV(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidSpectrum, s, err)
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidSpectrum, s)
	}
	return v * rad.MeV, nil
}

// IsFixed reports whether the spectrum has a single energy.
func (s Spectrum) IsFixed() bool { return s.Lo == s.Hi }

// Sample draws an energy: Lo·(Hi/Lo)^u for uniform u.
func (s Spectrum) Sample(rng particle.Rand) float64 {
	if s.IsFixed() {
		return s.Lo
	}
	u := orGlobal(rng).Float64()
	return s.Lo * math.Pow(s.Hi/s.Lo, u)
}

// String formats the spectrum in MeV the way ParseSpectrum reads it.
func (s Spectrum) String() string {
	f := func(e float64) string { return strconv.FormatFloat(e/rad.MeV, 'g', 6, 64) }
	if s.IsFixed() {
		return f(s.Lo)
	}
	return f(s.Lo) + "-" + f(s.Hi)
}
