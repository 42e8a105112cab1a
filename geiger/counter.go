package geiger

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/gogpu/rad"
	"github.com/gogpu/rad/transport"
)

// DefaultSampleRate is the sample rate of the click track.
const DefaultSampleRate = beep.SampleRate(44100)

// ClickDuration is the length of one click.
const ClickDuration = 2 * time.Millisecond

// Option configures a Counter during creation.
type Option func(*Counter)

// WithSampleRate sets the track sample rate. Non-positive rates are
// ignored.
func WithSampleRate(sr beep.SampleRate) Option {
	return func(c *Counter) {
		if sr > 0 {
			c.rate = sr
		}
	}
}

// WithRegions restricts clicks to deposits in the named regions. Without
// it every deposit inside a region clicks.
func WithRegions(names ...string) Option {
	return func(c *Counter) {
		c.regions = slices.Clone(names)
	}
}

// WithVolume sets the track volume on a base-2 scale: 0 keeps the level,
// -1 halves it.
func WithVolume(v float64) Option {
	return func(c *Counter) {
		c.volume = v
	}
}

type click struct {
	at  int // sample index
	amp float64
}

// Counter collects clicks from reports. It is not safe for concurrent use.
type Counter struct {
	rate    beep.SampleRate
	tick    time.Duration
	regions []string
	volume  float64

	clicks []click
	ticks  int
}

// NewCounter creates a counter for reports spaced tick apart.
func NewCounter(tick time.Duration, opts ...Option) *Counter {
	if tick <= 0 {
		tick = transport.DefaultInterval
	}
	c := &Counter{rate: DefaultSampleRate, tick: tick}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Update adds the clicks of r. Clicks of one tick are spread evenly over
// it.
func (c *Counter) Update(r transport.Report) {
	if r.Tick <= 0 {
		return
	}
	c.ticks = max(c.ticks, r.Tick)

	var hits []transport.Deposit
	for _, d := range r.Deposits {
		if c.watched(d.Region) {
			hits = append(hits, d)
		}
	}
	if len(hits) == 0 {
		return
	}
	per := c.rate.N(c.tick)
	start := (r.Tick - 1) * per
	for i, d := range hits {
		c.clicks = append(c.clicks, click{at: start + i*per/len(hits), amp: Loudness(d.Energy)})
	}
	rad.Logger().Debug("geiger: clicks", "tick", r.Tick, "n", len(hits))
}

func (c *Counter) watched(region string) bool {
	if region == "" {
		return false
	}
	return len(c.regions) == 0 || slices.Contains(c.regions, region)
}

// Clicks returns the number of clicks collected.
func (c *Counter) Clicks() int { return len(c.clicks) }

// Duration returns the track length: one tick per report seen.
func (c *Counter) Duration() time.Duration { return time.Duration(c.ticks) * c.tick }

// Format returns the mono 16-bit format of the track.
func (c *Counter) Format() beep.Format {
	return beep.Format{SampleRate: c.rate, NumChannels: 1, Precision: 2}
}

// Reset drops every click.
func (c *Counter) Reset() {
	c.clicks = c.clicks[:0]
	c.ticks = 0
}

// Streamer returns the click track. Each call starts a new stream.
func (c *Counter) Streamer() beep.Streamer {
	cs := slices.Clone(c.clicks)
	slices.SortStableFunc(cs, func(a, b click) int { return a.at - b.at })
	t := &track{
		clicks: cs,
		n:      c.ticks * c.rate.N(c.tick),
		width:  max(1, c.rate.N(ClickDuration)),
	}
	return &effects.Volume{Streamer: t, Base: 2, Volume: c.volume}
}

// WriteWAV encodes the track as WAV.
func (c *Counter) WriteWAV(w io.WriteSeeker) error {
	if err := wav.Encode(w, c.Streamer(), c.Format()); err != nil {
		return fmt.Errorf("geiger: encode wav: %w", err)
	}
	return nil
}

// SaveWAV writes the track to a WAV file.
func (c *Counter) SaveWAV(path string) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("geiger: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("geiger: close %s: %w", path, cerr)
		}
	}()
	return c.WriteWAV(f)
}

// Loudness maps a deposit in MeV to a click amplitude in (0, 1]. It grows
// with the decade of the energy: 1 keV is faint, 100 MeV is full scale.
func Loudness(mev float64) float64 {
	if !(mev > 0) {
		return minLoudness
	}
	a := minLoudness + 0.15*math.Log10(1+mev*1000)
	return min(1, a)
}

const minLoudness = 0.2

// track renders clicks as decaying square bursts.
type track struct {
	clicks []click
	n      int
	pos    int
	width  int
	first  int
}

func (t *track) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.n {
		return 0, false
	}
	n := min(len(samples), t.n-t.pos)
	for i := range n {
		v := t.sample(t.pos + i)
		samples[i] = [2]float64{v, v}
	}
	t.pos += n
	return n, true
}

func (t *track) Err() error { return nil }

func (t *track) sample(k int) float64 {
	for t.first < len(t.clicks) && t.clicks[t.first].at+t.width <= k {
		t.first++
	}
	var v float64
	for _, c := range t.clicks[t.first:] {
		if c.at > k {
			break
		}
		j := k - c.at
		if j >= t.width {
			continue
		}
		sign := 1.0
		if j%2 == 1 {
			sign = -1
		}
		v += sign * c.amp * math.Exp(-4*float64(j)/float64(t.width))
	}
	return max(-1, min(1, v))
}
