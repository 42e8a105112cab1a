// Package canvas draws a transport run as a raster image and formats the
// deposit table.
//
// A Canvas maps the world's bounding box onto at most maxW×maxH pixels,
// keeping the aspect ratio, with y pointing up in the world and down on the
// canvas. Each leaf volume is painted with a palette colour for its region
// and labelled with its name. Report deposits become translucent red
// markers whose radius grows with the deposited energy; active particles
// are blue dots.
//
//	c := canvas.New(world, 800, 800)
//	_ = d.Run(ctx, 0, c.Update)
//	_ = c.SavePNG("run.png")
//	_, _ = canvas.Rows(d.Deposits(), language.German, false).WriteTo(os.Stdout)
package canvas
