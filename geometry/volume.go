package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad/material"
)

// Geometry errors.
var (
	// ErrInvalidVolume is returned for volumes without name, material,
	// positive cell size or mask, and for malformed composites.
	ErrInvalidVolume = errors.New("geometry: invalid volume")

	// ErrFrozen is returned when a child is added to a frozen composite.
	ErrFrozen = errors.New("geometry: composite is frozen")

	// ErrUnknownRegion is returned when no leaf volume has the requested name.
	ErrUnknownRegion = errors.New("geometry: unknown region")
)

// Node is a part of the world that can resolve points to leaf volumes.
// Points are in the node's own coordinate system.
type Node interface {
	// Bounds returns the bounding box of the node.
	Bounds() r2.Box

	// Locate returns the leaf volume containing p, if any.
	Locate(p r2.Vec) (*Volume, bool)

	// Regions returns the unique leaf names in insertion order.
	Regions() []string

	// Leaves returns every leaf volume with its offset relative to the node.
	Leaves() []Leaf
}

// Leaf is a leaf volume placed at an offset.
type Leaf struct {
	Volume *Volume
	Offset r2.Vec
}

// Volume is a named region filled with one material. Its shape is an
// occupancy mask whose cells are cellSize world units wide; the region
// spans [0, width·cellSize] × [0, height·cellSize] with mask row 0 at the
// top.
type Volume struct {
	name   string
	mask   *Mask
	cell   float64
	mat    *material.Material
	bounds r2.Box
}

// NewVolume creates a leaf volume. The mask is copied.
func NewVolume(name string, mask *Mask, cellSize float64, mat *material.Material) (*Volume, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: empty name", ErrInvalidVolume)
	case mat == nil:
		return nil, fmt.Errorf("%w: %s: no material", ErrInvalidVolume, name)
	case !(cellSize > 0) || math.IsInf(cellSize, 0):
		return nil, fmt.Errorf("%w: %s: cell size %g", ErrInvalidVolume, name, cellSize)
	case mask == nil || mask.Empty():
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidVolume, name, ErrEmptyMask)
	}
	return &Volume{
		name: name,
		mask: mask.Clone(),
		cell: cellSize,
		mat:  mat,
		bounds: r2.Box{
			Max: r2.Vec{X: float64(mask.Width()) * cellSize, Y: float64(mask.Height()) * cellSize},
		},
	}, nil
}

// Name returns the region name.
func (v *Volume) Name() string { return v.name }

// Material returns the material filling the volume.
func (v *Volume) Material() *material.Material { return v.mat }

// Mask returns the occupancy mask. Callers must not modify it.
func (v *Volume) Mask() *Mask { return v.mask }

// CellSize returns the world size of one mask cell.
func (v *Volume) CellSize() float64 { return v.cell }

// Bounds returns the bounding box of the mask in world units.
func (v *Volume) Bounds() r2.Box { return v.bounds }

// Area returns the filled area in world units squared.
func (v *Volume) Area() float64 {
	return float64(v.mask.Count()) * v.cell * v.cell
}

// Contains reports whether p lies inside the bounds on a filled mask cell.
// Fractional coordinates select the cell that contains them.
func (v *Volume) Contains(p r2.Vec) bool {
	if !(p.X >= 0 && p.Y >= 0 && p.X < v.bounds.Max.X && p.Y < v.bounds.Max.Y) {
		return false
	}
	col := int(math.Floor(p.X / v.cell))
	row := int(math.Floor(p.Y / v.cell))
	return v.mask.Filled(col, v.mask.Height()-1-row)
}

// Locate returns v when it contains p.
func (v *Volume) Locate(p r2.Vec) (*Volume, bool) {
	if v.Contains(p) {
		return v, true
	}
	return nil, false
}

// MaterialAt returns the volume's material when p is inside, else nil.
func (v *Volume) MaterialAt(p r2.Vec) *material.Material {
	if v.Contains(p) {
		return v.mat
	}
	return nil
}

// RegionAt returns the volume's name when p is inside.
func (v *Volume) RegionAt(p r2.Vec) (string, bool) {
	if v.Contains(p) {
		return v.name, true
	}
	return "", false
}

// MeanFreePaths returns the material's mean free paths at p, or nil
// outside the volume.
func (v *Volume) MeanFreePaths(p r2.Vec, energy float64, kind material.Interaction) []float64 {
	return meanFreePaths(v.MaterialAt(p), energy, kind)
}

// Regions returns the volume's name.
func (v *Volume) Regions() []string { return []string{v.name} }

// Leaves returns v at the origin.
func (v *Volume) Leaves() []Leaf { return []Leaf{{Volume: v}} }

// String implements fmt.Stringer.
func (v *Volume) String() string {
	return fmt.Sprintf("Volume(%s, %dx%d, %s)", v.name, v.mask.Width(), v.mask.Height(), v.mat.Name())
}

func meanFreePaths(m *material.Material, energy float64, kind material.Interaction) []float64 {
	if m == nil {
		return nil
	}
	return m.MeanFreePaths(kind, energy)
}
