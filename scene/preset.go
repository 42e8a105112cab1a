package scene

import (
	"fmt"
	"slices"

	"github.com/gogpu/rad/geometry"
	"github.com/gogpu/rad/material"
)

// Built-in world names.
const (
	Phantom  = "Phantom"
	Detector = "Detector"
	Tumor    = "Tumor"
	RPiRENA  = "RPiRENA"
)

// Plastic scintillator is modelled as water.
const plastic = material.Water

func rect(name, mat string, w, h int, cell, x, y float64) Volume {
	return Volume{Name: name, Material: mat, Shape: ShapeRect, Size: [2]int{w, h}, CellSize: cell, Offset: [2]float64{x, y}}
}

func ellipse(name, mat string, w, h int, cell, x, y float64) Volume {
	return Volume{Name: name, Material: mat, Shape: ShapeEllipse, Size: [2]int{w, h}, CellSize: cell, Offset: [2]float64{x, y}}
}

var presets = map[string]Description{
	// An 800×1200 mm water body: torso and head.
	Phantom: {Name: Phantom, Volumes: []Volume{
		ellipse("Body", material.Water, 80, 90, 10, 0, 0),
		ellipse("Body", material.Water, 30, 36, 10, 250, 860),
	}},

	// A particle telescope: three silicon detectors, a CsI calorimeter and
	// two plastic anticoincidence layers in vacuum, 160 mm wide.
	Detector: {Name: Detector, Volumes: []Volume{
		rect("Background", material.Vacuum, 160, 160, 1, 0, 0),
		rect("A (Si)", material.Silicon, 80, 2, 1, 40, 130),
		rect("B (Si)", material.Silicon, 80, 2, 1, 40, 120),
		rect("C (Si)", material.Silicon, 80, 2, 1, 40, 110),
		rect("D (CsI)", material.CesiumIodide, 80, 40, 1, 40, 60),
		rect("E (BC430)", plastic, 100, 8, 1, 30, 45),
		rect("F (BC430)", plastic, 120, 8, 1, 20, 140),
	}},

	// Healthy tissue with a tumour, 160 mm across.
	Tumor: {Name: Tumor, Volumes: []Volume{
		ellipse("Healthy tissue", material.Water, 160, 120, 1, 0, 0),
		ellipse("Tumor", material.Water, 30, 24, 1, 90, 55),
	}},

	// A compact silicon + CsI spectrometer.
	RPiRENA: {Name: RPiRENA, Volumes: []Volume{
		rect("Background", material.Vacuum, 100, 100, 1, 0, 0),
		rect("Si", material.Silicon, 60, 1, 1, 20, 70),
		rect("CsI", material.CesiumIodide, 60, 30, 1, 20, 30),
	}},
}

// Preset builds the built-in world named name with materials from lib.
func Preset(name string, lib *material.Library) (*geometry.Composite, error) {
	d, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return Build(&d, lib, "")
}

// PresetDescription returns a copy of the description of a built-in world.
func PresetDescription(name string) (*Description, error) {
	d, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	d.Volumes = slices.Clone(d.Volumes)
	return &d, nil
}

// Presets returns the built-in world names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
