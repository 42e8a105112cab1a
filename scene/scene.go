package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/geometry"
	"github.com/gogpu/rad/material"
)

// Scene errors.
var (
	// ErrInvalidScene is returned for descriptions that cannot be built.
	ErrInvalidScene = errors.New("scene: invalid scene")

	// ErrUnknownScene is returned for preset names not in the table.
	ErrUnknownScene = errors.New("scene: unknown scene")
)

// Shapes a volume can be drawn with instead of a mask image.
const (
	ShapeRect    = "rect"
	ShapeEllipse = "ellipse"
)

// Description is a declarative world: leaf volumes in priority order, the
// last one winning where they overlap. Lengths are in millimetres.
type Description struct {
	Name    string   `json:"name"`
	Volumes []Volume `json:"volumes"`
}

// Volume describes one leaf volume. Its shape comes either from a mask
// image (Mask, relative paths resolve against the description's
// directory) or from a Shape filling Size cells.
type Volume struct {
	Name     string     `json:"name"`
	Material string     `json:"material"`
	Mask     string     `json:"mask,omitempty"`
	Alpha    bool       `json:"alpha,omitempty"`
	Shape    string     `json:"shape,omitempty"`
	Size     [2]int     `json:"size,omitempty"`
	CellSize float64    `json:"cell_size_mm"`
	Offset   [2]float64 `json:"offset_mm,omitempty"`
}

// Decode reads a JSON description. Unknown fields are errors.
func Decode(r io.Reader) (*Description, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidScene, err)
	}
	return &d, nil
}

// Load reads and builds the description at path with materials from lib.
func Load(path string, lib *material.Library) (*geometry.Composite, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	d, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w, err := Build(d, lib, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Build turns a description into an unfrozen world. Nothing is returned
// unless every volume builds.
func Build(d *Description, lib *material.Library, baseDir string) (*geometry.Composite, error) {
	if d == nil || d.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidScene)
	}
	if len(d.Volumes) == 0 {
		return nil, fmt.Errorf("%w: %s: no volumes", ErrInvalidScene, d.Name)
	}
	if lib == nil {
		return nil, fmt.Errorf("%w: %s: no material library", ErrInvalidScene, d.Name)
	}

	world := geometry.NewComposite(d.Name)
	for i, vd := range d.Volumes {
		v, err := buildVolume(vd, lib, baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: volume %d: %w", ErrInvalidScene, d.Name, i, err)
		}
		offset := r2.Vec{X: vd.Offset[0] * rad.Millimeter, Y: vd.Offset[1] * rad.Millimeter}
		if err := world.Add(v, offset); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScene, d.Name, err)
		}
	}
	rad.Logger().Debug("scene: built", "name", d.Name, "volumes", len(d.Volumes),
		"regions", len(world.Regions()))
	return world, nil
}

func buildVolume(vd Volume, lib *material.Library, baseDir string) (*geometry.Volume, error) {
	if vd.Name == "" {
		return nil, errors.New("missing name")
	}
	m, err := lib.Lookup(vd.Material)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vd.Name, err)
	}
	if !(vd.CellSize > 0) || math.IsInf(vd.CellSize, 0) {
		return nil, fmt.Errorf("%s: cell size %g mm", vd.Name, vd.CellSize)
	}
	mask, err := volumeMask(vd, baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vd.Name, err)
	}
	return geometry.NewVolume(vd.Name, mask, vd.CellSize*rad.Millimeter, m)
}

func volumeMask(vd Volume, baseDir string) (*geometry.Mask, error) {
	switch {
	case vd.Mask != "" && vd.Shape != "":
		return nil, errors.New("both mask and shape given")
	case vd.Mask != "":
		path := vd.Mask
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		ch := geometry.ChannelColor
		if vd.Alpha {
			ch = geometry.ChannelAlpha
		}
		return geometry.LoadMask(path, ch)
	}

	w, h := vd.Size[0], vd.Size[1]
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("shape size %dx%d", w, h)
	}
	mask := geometry.NewMask(w, h)
	switch vd.Shape {
	case ShapeRect:
		mask.Fill(255)
	case ShapeEllipse:
		mask.FillEllipse(image.Rect(0, 0, w, h), 255)
	default:
		return nil, fmt.Errorf("unknown shape %q", vd.Shape)
	}
	return mask, nil
}
