// Package scene builds worlds from declarative descriptions.
//
// A description lists leaf volumes in priority order. Each volume names a
// material from a material.Library and takes its shape from a mask image
// or from a filled rectangle or ellipse:
//
//	{
//	  "name": "Phantom",
//	  "volumes": [
//	    {"name": "Body", "material": "H2O", "mask": "torso.png", "cell_size_mm": 1},
//	    {"name": "Tumor", "material": "H2O", "shape": "ellipse", "size": [30, 24],
//	     "cell_size_mm": 1, "offset_mm": [390, 700]}
//	  ]
//	}
//
// Built-in worlds are available through Preset.
package scene
