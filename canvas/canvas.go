package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/geometry"
	"github.com/gogpu/rad/transport"
)

// Canvas renders a world, the energy deposited in it and the active
// particles into an RGBA image.
//
// Deposits persist across updates until Clear; tracks show only the
// particles of the latest report. A Canvas is not safe for concurrent use.
type Canvas struct {
	vp   Viewport
	opts options

	background *image.RGBA
	deposits   *image.RGBA
	img        *image.RGBA
	tracks     []transport.Track
	markers    int
}

// New creates a canvas of at most maxW×maxH pixels showing world.
func New(world geometry.Node, maxW, maxH int, opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	vp := NewViewport(world.Bounds(), maxW, maxH)
	c := &Canvas{
		vp:         vp,
		opts:       o,
		background: image.NewRGBA(vp.Bounds()),
		deposits:   image.NewRGBA(vp.Bounds()),
		img:        image.NewRGBA(vp.Bounds()),
	}
	c.drawWorld(world)
	c.compose()
	rad.Logger().Debug("canvas: created", "width", vp.Size().X, "height", vp.Size().Y,
		"scale", vp.Scale())
	return c
}

// Viewport returns the world-to-canvas mapping.
func (c *Canvas) Viewport() Viewport { return c.vp }

// Image returns the composed image. It is updated in place.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Markers returns the number of deposit markers drawn since the last Clear.
func (c *Canvas) Markers() int { return c.markers }

func (c *Canvas) drawWorld(world geometry.Node) {
	draw.Draw(c.background, c.background.Bounds(), image.White, image.Point{}, draw.Src)

	index := make(map[string]int)
	for i, name := range world.Regions() {
		index[name] = i
	}
	leaves := world.Leaves()
	for _, l := range leaves {
		v := l.Volume
		r := c.vp.Rect(v.Bounds().Add(l.Offset))
		if r.Empty() {
			continue
		}
		scaled := image.NewAlpha(r)
		src := v.Mask().Image()
		xdraw.NearestNeighbor.Scale(scaled, r, src, src.Bounds(), xdraw.Src, nil)
		col := c.opts.palette[index[v.Name()]%len(c.opts.palette)]
		draw.DrawMask(c.background, r, image.NewUniform(col), image.Point{}, scaled, r.Min, draw.Over)
	}

	if !c.opts.labels {
		return
	}
	labelled := make(map[string]bool)
	for _, l := range leaves {
		name := l.Volume.Name()
		if labelled[name] {
			continue
		}
		labelled[name] = true
		r := c.vp.Rect(l.Volume.Bounds().Add(l.Offset))
		c.label(name, r.Min.X+3, r.Min.Y+basicfont.Face7x13.Ascent+3)
	}
}

func (c *Canvas) label(s string, x, y int) {
	d := &font.Drawer{
		Dst:  c.background,
		Src:  image.NewUniform(LabelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Update draws the deposits of r as persistent markers and replaces the
// track dots with the particles still active.
func (c *Canvas) Update(r transport.Report) {
	src := image.NewUniform(DepositColor)
	for _, dep := range r.Deposits {
		x, y := c.vp.ToCanvas(dep.Position)
		c.disc(c.deposits, src, x, y, MarkerRadius(dep.Energy, c.opts.markerSize))
		c.markers++
	}
	c.tracks = append(c.tracks[:0], r.Tracks...)
	c.compose()
}

// Clear removes every marker and track.
func (c *Canvas) Clear() {
	draw.Draw(c.deposits, c.deposits.Bounds(), image.Transparent, image.Point{}, draw.Src)
	c.tracks = c.tracks[:0]
	c.markers = 0
	c.compose()
}

func (c *Canvas) compose() {
	b := c.img.Bounds()
	draw.Draw(c.img, b, c.background, b.Min, draw.Src)
	draw.Draw(c.img, b, c.deposits, b.Min, draw.Over)
	src := image.NewUniform(TrackColor)
	for _, t := range c.tracks {
		x, y := c.vp.ToCanvas(t.Position)
		c.disc(c.img, src, x, y, TrackRadius)
	}
}

func (c *Canvas) disc(dst draw.Image, src image.Image, x, y float64, r int) {
	m := circle{center: image.Pt(int(math.Round(x)), int(math.Round(y))), r: r}
	b := m.Bounds()
	draw.DrawMask(dst, b, src, image.Point{}, m, b.Min, draw.Over)
}

// MarkerRadius returns the marker radius in pixels for a deposit of e MeV.
func MarkerRadius(e, size float64) int {
	r := int(math.Round(e * size / 100))
	return max(minMarkerRadius, min(maxMarkerRadius, r))
}

// circle is an opaque disc mask.
type circle struct {
	center image.Point
	r      int
}

func (c circle) ColorModel() color.Model { return color.AlphaModel }

func (c circle) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.r, c.center.Y-c.r, c.center.X+c.r+1, c.center.Y+c.r+1)
}

func (c circle) At(x, y int) color.Color {
	dx, dy := x-c.center.X, y-c.center.Y
	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// EncodePNG writes the composed image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the composed image to a PNG file.
func (c *Canvas) SavePNG(path string) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("canvas: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("canvas: close %s: %w", path, cerr)
		}
	}()
	return c.EncodePNG(f)
}
