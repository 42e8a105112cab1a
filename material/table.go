package material

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/interp"

	"github.com/gogpu/rad"
)

// ErrInvalidTable is returned when tabulated data cannot be interpolated.
var ErrInvalidTable = errors.New("material: invalid table")

// Format describes the column layout of a whitespace separated numeric
// data file.
//
// Each row contributes one point per entry in Columns, read in column
// order, so a six-column listing with three energy/value pairs per row is
// flattened row by row.
type Format struct {
	// SkipRows is the number of leading lines ignored before parsing.
	SkipRows int

	// Columns lists the (energy, value) column index pairs read per row.
	Columns [][2]int

	// EnergyUnit converts the energy column into joule.
	EnergyUnit float64

	// ValueUnit converts the value column into SI.
	ValueUnit float64
}

// Predefined formats for the built-in data files.
var (
	// NeutronFormat reads ENDF-style listings: three (eV, barn) pairs per row.
	NeutronFormat = Format{
		Columns:    [][2]int{{0, 1}, {2, 3}, {4, 5}},
		EnergyUnit: rad.ElectronVolt,
		ValueUnit:  rad.Barn,
	}

	// GammaFormat reads attenuation listings: photon energy in MeV and
	// the mass attenuation coefficient in cm²/g, after a three line header.
	GammaFormat = Format{
		SkipRows:   3,
		Columns:    [][2]int{{0, 1}},
		EnergyUnit: rad.MeV,
		ValueUnit:  rad.SquareCentimeterPerGram,
	}
)

// Table is a piecewise linear function of kinetic energy built from
// tabulated points. Outside the tabulated range the first or last value is
// returned. A Table is immutable once built.
type Table struct {
	pl     interp.PiecewiseLinear
	lo, hi float64
	n      int
}

// NewTable builds a Table from energies and values.
//
// Energies must be non-decreasing; exactly repeated energies keep the first
// point. At least two distinct points are required and every value must be
// finite and non-negative.
func NewTable(energies, values []float64) (*Table, error) {
	if len(energies) != len(values) {
		return nil, fmt.Errorf("%w: %d energies for %d values", ErrInvalidTable, len(energies), len(values))
	}

	xs := make([]float64, 0, len(energies))
	ys := make([]float64, 0, len(values))
	for i, e := range energies {
		v := values[i]
		if math.IsNaN(e) || math.IsInf(e, 0) || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite point %d", ErrInvalidTable, i)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: negative value %g at point %d", ErrInvalidTable, v, i)
		}
		if n := len(xs); n > 0 {
			switch last := xs[n-1]; {
			case e == last:
				continue
			case e < last:
				return nil, fmt.Errorf("%w: energy %g after %g at point %d", ErrInvalidTable, e, last, i)
			}
		}
		xs = append(xs, e)
		ys = append(ys, v)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 distinct points, got %d", ErrInvalidTable, len(xs))
	}

	t := &Table{lo: xs[0], hi: xs[len(xs)-1], n: len(xs)}
	if err := t.pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return t, nil
}

// ReadTable parses a Table from r using the layout in f.
func ReadTable(r io.Reader, f Format) (*Table, error) {
	if len(f.Columns) == 0 {
		return nil, fmt.Errorf("%w: format has no columns", ErrInvalidTable)
	}
	eu, vu := f.EnergyUnit, f.ValueUnit
	if eu == 0 {
		eu = 1
	}
	if vu == 0 {
		vu = 1
	}

	var energies, values []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line <= f.SkipRows {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		for _, c := range f.Columns {
			// Short trailing rows are common in ENDF listings.
			if c[0] >= len(fields) {
				continue
			}
			if c[1] >= len(fields) {
				return nil, fmt.Errorf("%w: line %d: missing column %d", ErrInvalidTable, line, c[1])
			}
			e, err := parseField(fields[c[0]])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidTable, line, err)
			}
			v, err := parseField(fields[c[1]])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidTable, line, err)
			}
			energies = append(energies, e*eu)
			values = append(values, v*vu)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("material: read table: %w", err)
	}
	return NewTable(energies, values)
}

// LoadTable reads a Table from the file at path.
func LoadTable(path string, f Format) (*Table, error) {
	fh, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("material: open table: %w", err)
	}
	defer func() { _ = fh.Close() }()

	t, err := ReadTable(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rad.Logger().Debug("material: table loaded", "path", path, "points", t.Len())
	return t, nil
}

// parseField accepts Fortran style exponents ("1.0D+03") besides Go floats.
func parseField(s string) (float64, error) {
	s = strings.NewReplacer("D", "E", "d", "e").Replace(s)
	return strconv.ParseFloat(s, 64)
}

// At returns the interpolated value at energy e.
func (t *Table) At(e float64) float64 {
	return t.pl.Predict(e)
}

// Range returns the first and last tabulated energy.
func (t *Table) Range() (lo, hi float64) {
	return t.lo, t.hi
}

// Len returns the number of distinct tabulated points.
func (t *Table) Len() int {
	return t.n
}
