package canvas

import "image/color"

// DefaultMarkerSize scales deposit markers: a deposit of E MeV is drawn
// with a radius of E·size/100 pixels.
const DefaultMarkerSize = 1000

// Marker radius limits in pixels.
const (
	minMarkerRadius = 1
	maxMarkerRadius = 60
)

// TrackRadius is the radius of active particle dots in pixels.
const TrackRadius = 5

// Default colours.
var (
	// DepositColor is translucent red.
	DepositColor color.Color = color.NRGBA{R: 0xff, A: 100}

	// TrackColor is opaque blue.
	TrackColor color.Color = color.NRGBA{B: 0xff, A: 0xff}

	// LabelColor is used for region names.
	LabelColor color.Color = color.Black

	// DefaultPalette colours regions in order of first appearance.
	DefaultPalette = []color.Color{
		color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
		color.NRGBA{R: 0x9e, G: 0xc9, B: 0xe2, A: 0xff},
		color.NRGBA{R: 0xf4, G: 0xc7, B: 0x8f, A: 0xff},
		color.NRGBA{R: 0xa8, G: 0xd5, B: 0x9a, A: 0xff},
		color.NRGBA{R: 0xd7, G: 0xa9, B: 0xe3, A: 0xff},
		color.NRGBA{R: 0xf2, G: 0xe2, B: 0x8c, A: 0xff},
		color.NRGBA{R: 0xb8, G: 0xb0, B: 0xa5, A: 0xff},
	}
)

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	markerSize float64
	labels     bool
	palette    []color.Color
}

func defaultOptions() options {
	return options{
		markerSize: DefaultMarkerSize,
		labels:     true,
		palette:    DefaultPalette,
	}
}

// WithMarkerSize sets the deposit marker scale. Non-positive values are
// ignored.
func WithMarkerSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.markerSize = size
		}
	}
}

// WithLabels enables or disables region name labels.
func WithLabels(on bool) Option {
	return func(o *options) {
		o.labels = on
	}
}

// WithPalette sets the region colours. An empty palette is ignored.
func WithPalette(p []color.Color) Option {
	return func(o *options) {
		if len(p) > 0 {
			o.palette = p
		}
	}
}
