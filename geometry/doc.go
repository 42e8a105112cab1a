// Package geometry describes the 2-D world as regions of material.
//
// A Volume is a leaf region: an occupancy Mask scaled by a cell size and
// filled with one material. A Composite places Volumes and other Composites
// at offsets; where children overlap, the one added last wins. World
// coordinates grow to the right and upward, while mask row 0 is the top
// row, so images drawn in any paint program load the right way up.
//
//	water, _ := geometry.NewVolume("Body", body, 1*rad.Millimeter, h2o)
//	tumor, _ := geometry.NewVolume("Tumor", spot, 1*rad.Millimeter, h2o)
//	world := geometry.NewComposite("Phantom")
//	_ = world.Add(water, r2.Vec{})
//	_ = world.Add(tumor, r2.Vec{X: 0.4, Y: 0.9})
//	world.Freeze()
//
// Masks are loaded from PNG, JPEG, GIF, BMP, TIFF or WebP images with
// LoadMask and DecodeMask.
package geometry
