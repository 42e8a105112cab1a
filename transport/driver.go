package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/particle"
)

// Driver errors.
var (
	// ErrInvalidWorld is returned for a nil world or one without extent.
	ErrInvalidWorld = errors.New("transport: invalid world")

	// ErrUnknownRegion is returned by Deposit for names that are not leaf
	// regions of the world.
	ErrUnknownRegion = errors.New("transport: unknown region")

	// ErrRunning is returned when Run is called while another Run is active.
	ErrRunning = errors.New("transport: already running")

	// ErrCleared is returned by Run when Clear stopped it.
	ErrCleared = errors.New("transport: cleared")
)

// DefaultInterval is the tick period Run uses when given none.
const DefaultInterval = 20 * time.Millisecond

// World is the geometry transported through. *geometry.Composite
// implements it.
type World interface {
	particle.Medium

	// Bounds returns the bounding box; particles leaving it escape.
	Bounds() r2.Box

	// RegionAt names the leaf region at p.
	RegionAt(p r2.Vec) (string, bool)

	// Regions returns the unique leaf region names.
	Regions() []string
}

// Handle identifies a particle for the lifetime of a Driver.
type Handle uint64

// Track is the state of an active particle after a tick.
type Track struct {
	Handle   Handle
	Species  string
	Position r2.Vec
	Energy   float64 // J
}

// Deposit is the energy one particle left during one tick, located at the
// mean of its sub-step positions.
type Deposit struct {
	Handle   Handle
	Position r2.Vec
	Energy   float64 // MeV
	Region   string  // empty outside any region
}

// Report is the outcome of one tick.
type Report struct {
	Tick     int
	Tracks   []Track
	Deposits []Deposit
	Removed  []Handle

	// Finished is true once no particle is left.
	Finished bool
}

// Row is one line of the deposit table.
type Row struct {
	Region string
	Energy float64 // MeV
}

type track struct {
	handle Handle
	p      *particle.Particle
}

// Driver advances particles through a world and sums the energy they
// deposit per region.
//
// All methods are safe for concurrent use; Clear may be called while Run
// ticks from another goroutine.
type Driver struct {
	world  World
	bounds r2.Box
	ds     float64
	opts   options

	mu      sync.Mutex
	tracks  []track
	next    Handle
	regions []string
	index   map[string]int
	totals  []float64
	tick    int
	cancel  context.CancelCauseFunc
}

// New creates a driver for world. Worlds with a Freeze method are frozen.
func New(world World, opts ...Option) (*Driver, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: nil world", ErrInvalidWorld)
	}
	if f, ok := world.(interface{ Freeze() }); ok {
		f.Freeze()
	}
	b := world.Bounds()
	if !(b.Max.X > b.Min.X) || !(b.Max.Y > b.Min.Y) {
		return nil, fmt.Errorf("%w: bounds %v", ErrInvalidWorld, b)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	regions := world.Regions()
	d := &Driver{
		world:   world,
		bounds:  b,
		ds:      (b.Max.X - b.Min.X) / float64(o.steps),
		opts:    o,
		regions: regions,
		index:   make(map[string]int, len(regions)),
		totals:  make([]float64, len(regions)),
	}
	for i, name := range regions {
		d.index[name] = i
	}
	return d, nil
}

// World returns the transported world.
func (d *Driver) World() World { return d.world }

// StepLength returns the distance a particle travels per tick.
func (d *Driver) StepLength() float64 { return d.ds }

// AddParticle creates a particle of the named species and adds it.
func (d *Driver) AddParticle(name string, energy float64, pos r2.Vec, dir float64) (Handle, error) {
	p, err := particle.New(name, energy, pos, dir)
	if err != nil {
		return 0, err
	}
	return d.Add(p)
}

// Add binds p to the world and adds it to the active set.
func (d *Driver) Add(p *particle.Particle) (Handle, error) {
	if err := p.Bind(d.world); err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.tracks = append(d.tracks, track{handle: d.next, p: p})
	rad.Logger().Debug("transport: particle added", "handle", d.next,
		"species", p.Name(), "energy_mev", p.Energy()/rad.MeV)
	return d.next, nil
}

// Tick advances every active particle by one step. Each particle yields at
// most one deposit event: the summed loss of its sub-steps at their mean
// position, reported when it exceeds the deposit cutoff. Absorbed particles
// and particles outside the world bounds are removed. A tick without
// particles changes nothing and reports Finished.
func (d *Driver) Tick() Report {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tickLocked()
}

func (d *Driver) tickLocked() Report {
	if len(d.tracks) == 0 {
		return Report{Tick: d.tick, Finished: true}
	}
	d.tick++
	r := Report{Tick: d.tick}

	kept := d.tracks[:0]
	for _, t := range d.tracks {
		s := t.p.Step(d.ds, d.opts.sub, d.opts.rng)
		if pos, ok := s.Mean(); ok {
			e := s.Total()
			if d.opts.dose {
				e = doseEquivalent(s.Deposits, s.SubStep)
			}
			if e > d.opts.cutoff && e > 0 {
				r.Deposits = append(r.Deposits, d.deposit(t.handle, pos, e))
			}
		}

		if t.p.Terminal() || !d.bounds.Contains(t.p.Position()) {
			r.Removed = append(r.Removed, t.handle)
			rad.Logger().Debug("transport: particle removed", "handle", t.handle,
				"species", t.p.Name(), "absorbed", t.p.Terminal())
			continue
		}
		kept = append(kept, t)
		r.Tracks = append(r.Tracks, t.snapshot())
	}
	clear(d.tracks[len(kept):])
	d.tracks = kept
	r.Finished = len(d.tracks) == 0
	return r
}

func (d *Driver) deposit(h Handle, pos r2.Vec, e float64) Deposit {
	mev := e / rad.MeV
	dep := Deposit{Handle: h, Position: pos, Energy: mev}
	if name, ok := d.world.RegionAt(pos); ok {
		dep.Region = name
		if i, ok := d.index[name]; ok {
			d.totals[i] += mev
		}
	}
	return dep
}

func (t track) snapshot() Track {
	return Track{
		Handle:   t.handle,
		Species:  t.p.Name(),
		Position: t.p.Position(),
		Energy:   t.p.Energy(),
	}
}

// Clear stops a running Run, drops all particles and zeroes the region
// totals.
func (d *Driver) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel(ErrCleared)
	}
	clear(d.tracks)
	d.tracks = d.tracks[:0]
	clear(d.totals)
	d.tick = 0
}

// Active returns the number of active particles.
func (d *Driver) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tracks)
}

// Ticks returns the number of ticks since creation or the last Clear.
func (d *Driver) Ticks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tick
}

// Tracks returns the active particles.
func (d *Driver) Tracks() []Track {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Track, len(d.tracks))
	for i, t := range d.tracks {
		out[i] = t.snapshot()
	}
	return out
}

// Deposits returns the accumulated energy per region in MeV, in region
// order.
func (d *Driver) Deposits() []Row {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows := make([]Row, len(d.regions))
	for i, name := range d.regions {
		rows[i] = Row{Region: name, Energy: d.totals[i]}
	}
	return rows
}

// Deposit returns the accumulated energy of one region in MeV.
func (d *Driver) Deposit(region string) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.index[region]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return d.totals[i], nil
}

// Run calls Tick every interval (DefaultInterval when not positive) and
// passes each report to fn, until the last particle is gone, ctx is done
// or Clear is called. It returns nil when transport finished, ErrCleared
// after Clear and the context's error otherwise.
func (d *Driver) Run(ctx context.Context, interval time.Duration, fn func(Report)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d.mu.Lock()
	if d.cancel != nil {
		d.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancelCause(ctx)
	d.cancel = cancel
	active := len(d.tracks)
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.cancel = nil
		d.mu.Unlock()
		cancel(nil)
	}()

	log := rad.Logger()
	log.Info("transport: run started", "particles", active, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-ticker.C:
		}

		d.mu.Lock()
		if ctx.Err() != nil {
			d.mu.Unlock()
			return context.Cause(ctx)
		}
		r := d.tickLocked()
		d.mu.Unlock()

		if fn != nil {
			fn(r)
		}
		if r.Finished {
			log.Info("transport: run finished", "ticks", r.Tick)
			return nil
		}
	}
}
