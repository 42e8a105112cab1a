// Package rad is a 2-D radiation transport engine for visualizing how
// ionizing radiation propagates through a cross section of a body or a
// detector stack and where it deposits energy.
//
// # Overview
//
// The engine is split into small packages that build on each other:
//
//   - material: substances, compounds, tabulated cross sections and the
//     Bethe stopping power
//   - geometry: occupancy masks, volumes and layered composites
//   - particle: species, kinematic state and per-species stepping rules
//   - transport: the driver that ticks all particles and books energy
//     deposits per region
//   - source, scene, canvas: particle guns, world descriptions and
//     presentation adapters
//   - geiger, history: a click track of the deposits and a SQLite record
//     of finished runs
//
// This package holds what they share: the package logger and the unit
// system.
//
// # Quick Start
//
//	world, _ := scene.Preset(scene.Phantom, materials)
//	drv, _ := transport.New(world)
//	drv.AddParticle("Proton", 50*rad.MeV, r2.Vec{X: 0, Y: 1000 * rad.Millimeter}, 0)
//	for {
//	    if rep := drv.Tick(); rep.Finished {
//	        break
//	    }
//	}
//	for _, row := range drv.Deposits() {
//	    fmt.Println(row.Region, row.Energy)
//	}
//
// # Units
//
// All quantities are SI internally: metre, joule, kilogram. Multiply by the
// unit constants to convert into the internal system and divide to convert
// out of it, e.g. 50*rad.MeV or e/rad.MeV.
//
// # Coordinate System
//
// World coordinates have the origin at the lower-left corner, x increases
// to the right and y increases upward. Angles are in radians, 0 points
// along +x and increases counter-clockwise.
package rad

// Version is the current version of the library.
const Version = "0.1.0"
