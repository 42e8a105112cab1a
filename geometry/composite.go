package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/material"
)

// Composite is a mother volume: an ordered list of placed children.
//
// Children may overlap. The child added last has the highest priority, so
// a detector drawn after a background occludes it. Children can be added
// until the composite is frozen; a frozen composite is immutable and safe
// for concurrent readers.
type Composite struct {
	name     string
	children []child
	bounds   r2.Box
	extent   bool
	frozen   bool
}

type child struct {
	node   Node
	offset r2.Vec
}

// NewComposite creates an empty composite.
func NewComposite(name string) *Composite {
	return &Composite{name: name}
}

// Name returns the composite name.
func (c *Composite) Name() string { return c.name }

// Add appends n placed at offset. It takes priority over every child added
// before it.
func (c *Composite) Add(n Node, offset r2.Vec) error {
	if c.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, c.name)
	}
	if n == nil {
		return fmt.Errorf("%w: %s: nil child", ErrInvalidVolume, c.name)
	}
	if sub, ok := n.(*Composite); ok && sub.reaches(c) {
		return fmt.Errorf("%w: %s: child %s contains its parent", ErrInvalidVolume, c.name, sub.name)
	}

	c.children = append(c.children, child{node: n, offset: offset})
	return nil
}

// reaches reports whether target is c or one of its descendants.
func (c *Composite) reaches(target *Composite) bool {
	if c == target {
		return true
	}
	for _, ch := range c.children {
		if sub, ok := ch.node.(*Composite); ok && sub.reaches(target) {
			return true
		}
	}
	return false
}

// Freeze makes c and every nested composite immutable.
func (c *Composite) Freeze() {
	if c.frozen {
		return
	}
	for _, ch := range c.children {
		if sub, ok := ch.node.(*Composite); ok {
			sub.Freeze()
		}
	}
	c.bounds, c.extent = c.union()
	c.frozen = true
	rad.Logger().Info("geometry: world frozen", "name", c.name,
		"children", len(c.children), "regions", len(c.Regions()))
}

// Frozen reports whether Freeze has been called.
func (c *Composite) Frozen() bool { return c.frozen }

// Len returns the number of direct children.
func (c *Composite) Len() int { return len(c.children) }

// Bounds returns the union of the children's placed bounds. Nested
// composites contribute their current bounds, so children added to them
// after placement are included. Empty composites contribute nothing.
func (c *Composite) Bounds() r2.Box {
	b, _ := c.box()
	return b
}

func (c *Composite) box() (r2.Box, bool) {
	if c.frozen {
		return c.bounds, c.extent
	}
	return c.union()
}

func (c *Composite) union() (r2.Box, bool) {
	var (
		b  r2.Box
		ok bool
	)
	for _, ch := range c.children {
		nb, has := ch.node.Bounds(), true
		if sub, isComposite := ch.node.(*Composite); isComposite {
			nb, has = sub.box()
		}
		if !has {
			continue
		}
		nb = nb.Add(ch.offset)
		if ok {
			b = b.Union(nb)
		} else {
			b, ok = nb, true
		}
	}
	return b, ok
}

// Locate resolves p to a leaf volume. Children are tried from the last
// added to the first, each with its offset subtracted from p; the first
// child containing the point wins.
func (c *Composite) Locate(p r2.Vec) (*Volume, bool) {
	for i := len(c.children) - 1; i >= 0; i-- {
		ch := c.children[i]
		if v, ok := ch.node.Locate(r2.Sub(p, ch.offset)); ok {
			return v, true
		}
	}
	return nil, false
}

// Contains reports whether any child contains p.
func (c *Composite) Contains(p r2.Vec) bool {
	_, ok := c.Locate(p)
	return ok
}

// InBounds reports whether p lies inside the bounding box, borders
// included.
func (c *Composite) InBounds(p r2.Vec) bool {
	b, ok := c.box()
	return ok && b.Contains(p)
}

// MaterialAt returns the material of the leaf resolved for p, or nil.
func (c *Composite) MaterialAt(p r2.Vec) *material.Material {
	if v, ok := c.Locate(p); ok {
		return v.mat
	}
	return nil
}

// RegionAt returns the name of the leaf resolved for p. It always agrees
// with MaterialAt.
func (c *Composite) RegionAt(p r2.Vec) (string, bool) {
	if v, ok := c.Locate(p); ok {
		return v.name, true
	}
	return "", false
}

// MeanFreePaths returns the mean free paths of the material at p, or nil
// when no material is there.
func (c *Composite) MeanFreePaths(p r2.Vec, energy float64, kind material.Interaction) []float64 {
	return meanFreePaths(c.MaterialAt(p), energy, kind)
}

// Regions returns the unique leaf names in insertion order.
func (c *Composite) Regions() []string {
	var names []string
	seen := make(map[string]bool)
	for _, ch := range c.children {
		for _, name := range ch.node.Regions() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Leaves returns all leaf volumes with absolute offsets, in priority order
// from lowest to highest.
func (c *Composite) Leaves() []Leaf {
	var out []Leaf
	for _, ch := range c.children {
		for _, l := range ch.node.Leaves() {
			l.Offset = r2.Add(l.Offset, ch.offset)
			out = append(out, l)
		}
	}
	return out
}

// Find returns the first leaf volume named name.
func (c *Composite) Find(name string) (*Volume, error) {
	for _, l := range c.Leaves() {
		if l.Volume.name == name {
			return l.Volume, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrUnknownRegion, name, c.name)
}
