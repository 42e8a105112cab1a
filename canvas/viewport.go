package canvas

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps world coordinates (metres, y up) to canvas pixels (y down).
// The world is scaled uniformly to fit a maximum canvas size.
type Viewport struct {
	world r2.Box
	scale float64
	size  image.Point
}

// NewViewport fits world into at most maxW×maxH pixels.
func NewViewport(world r2.Box, maxW, maxH int) Viewport {
	w := world.Max.X - world.Min.X
	h := world.Max.Y - world.Min.Y
	if !(w > 0) || !(h > 0) || maxW <= 0 || maxH <= 0 {
		return Viewport{world: world, scale: 1, size: image.Pt(1, 1)}
	}
	s := math.Min(float64(maxW)/w, float64(maxH)/h)
	return Viewport{
		world: world,
		scale: s,
		size: image.Pt(
			max(1, min(maxW, int(math.Round(w*s)))),
			max(1, min(maxH, int(math.Round(h*s)))),
		),
	}
}

// Scale returns pixels per metre.
func (v Viewport) Scale() float64 { return v.scale }

// Size returns the canvas size in pixels.
func (v Viewport) Size() image.Point { return v.size }

// Bounds returns the canvas rectangle.
func (v Viewport) Bounds() image.Rectangle { return image.Rectangle{Max: v.size} }

// ToCanvas converts a world point to canvas coordinates.
func (v Viewport) ToCanvas(p r2.Vec) (x, y float64) {
	return (p.X - v.world.Min.X) * v.scale, (v.world.Max.Y - p.Y) * v.scale
}

// ToWorld converts canvas coordinates to a world point.
func (v Viewport) ToWorld(x, y float64) r2.Vec {
	return r2.Vec{X: v.world.Min.X + x/v.scale, Y: v.world.Max.Y - y/v.scale}
}

// Rect returns the canvas rectangle covering the world box b.
func (v Viewport) Rect(b r2.Box) image.Rectangle {
	x0, y0 := v.ToCanvas(r2.Vec{X: b.Min.X, Y: b.Max.Y})
	x1, y1 := v.ToCanvas(r2.Vec{X: b.Max.X, Y: b.Min.Y})
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
}
