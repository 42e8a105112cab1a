package geometry

import "image"

// Mask is a binary occupancy grid. A cell is filled when its value is
// non-zero. Row 0 is the top row, as in images.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
// All cells are initialized to 0 (empty).
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// NewMaskFromAlpha creates a mask from an image's alpha channel.
// Any non-zero alpha fills the cell.
func NewMaskFromAlpha(img image.Image) *Mask {
	return newMaskFromImage(img, func(_, _, _, a uint32) bool { return a > 0 })
}

// NewMaskFromImage creates a mask from an image's colors: a pixel fills its
// cell when it is neither fully transparent nor black. Drawings with a
// black background and colored regions convert directly.
func NewMaskFromImage(img image.Image) *Mask {
	return newMaskFromImage(img, func(r, g, b, a uint32) bool {
		return a > 0 && (r|g|b) > 0
	})
}

func newMaskFromImage(img image.Image, filled func(r, g, b, a uint32) bool) *Mask {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if filled(img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()) {
				mask.data[y*w+x] = 255
			}
		}
	}

	return mask
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Empty reports whether the mask has no cells.
func (m *Mask) Empty() bool { return m.width == 0 || m.height == 0 }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Filled reports whether the cell at (x, y) is occupied.
// Coordinates outside the mask are never filled.
func (m *Mask) Filled(x, y int) bool {
	return m.At(x, y) != 0
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// FillRect sets every cell of r that lies inside the mask to value.
func (m *Mask) FillRect(r image.Rectangle, value uint8) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.data[y*m.width : (y+1)*m.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = value
		}
	}
}

// FillEllipse sets every cell whose center lies inside the ellipse
// inscribed in r to value.
func (m *Mask) FillEllipse(r image.Rectangle, value uint8) {
	if r.Empty() {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2

	clip := r.Intersect(m.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				m.data[y*m.width+x] = value
			}
		}
	}
}

// Count returns the number of filled cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Image returns the mask as an alpha image, filled cells opaque.
func (m *Mask) Image() *image.Alpha {
	img := image.NewAlpha(m.Bounds())
	for i, v := range m.data {
		if v != 0 {
			img.Pix[i] = 0xff
		}
	}
	return img
}
