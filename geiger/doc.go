// Package geiger turns transport reports into the click track of a Geiger
// counter.
//
// Every deposit in a watched region produces one click during the tick that
// reported it. Louder clicks mean larger deposits. The track can be streamed
// with beep or written as a mono WAV file:
//
//	g := geiger.NewCounter(transport.DefaultInterval, geiger.WithRegions("CsI"))
//	_ = d.Run(ctx, 0, g.Update)
//	_ = g.SaveWAV("run.wav")
package geiger
