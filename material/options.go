package material

// Option configures a Material during creation.
//
// Example:
//
//	water, err := material.NewCompound("H2O", 1*rad.GramPerCubicCentimeter,
//	    []material.Component{{Material: h, Count: 2}, {Material: o, Count: 1}},
//	    material.WithMeanExcitation(75*rad.ElectronVolt),
//	    material.WithGammaTable(attenuation),
//	)
type Option func(*options)

// options holds optional configuration for Material creation.
type options struct {
	neutron    *Table
	gamma      *Table
	excitation float64
	electrons  float64
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithNeutronTable sets the microscopic neutron cross section σ(E) in m².
func WithNeutronTable(t *Table) Option {
	return func(o *options) {
		o.neutron = t
	}
}

// WithGammaTable sets the photon mass attenuation coefficient μ(E) in m²/kg.
func WithGammaTable(t *Table) Option {
	return func(o *options) {
		o.gamma = t
	}
}

// WithMeanExcitation overrides the 10·Z eV estimate of the mean
// excitation potential. Non-positive values are ignored.
func WithMeanExcitation(i float64) Option {
	return func(o *options) {
		o.excitation = i
	}
}

// WithElectronDensity overrides the Z·ρ/(A·amu) estimate of the electron
// density in m⁻³. Non-positive values are ignored.
func WithElectronDensity(n float64) Option {
	return func(o *options) {
		o.electrons = n
	}
}
