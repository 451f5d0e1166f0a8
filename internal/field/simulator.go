// Package field simulates the drifting particle background: a fixed number of
// points bouncing inside the render surface, pushed away from the pointer and
// joined by fading lines when they come close to each other.
package field

import (
	"errors"
	"image/color"
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

const (
	DefaultCount           = 80
	DefaultConnectDistance = 120.0
	DefaultInfluenceRadius = 100.0
	DefaultMaxForce        = 2.0
	DefaultLineWidth       = 0.5

	MinRadius = 1.0
	MaxRadius = 3.5
	MaxSpeed  = 0.3
)

var (
	DefaultParticleColor = MustParseColor("rgba(200, 220, 255, 0.8)")
	DefaultLineColor     = MustParseColor("rgba(200, 220, 255, 0.2)")
)

// ErrNoSurface is returned by New when there is nothing to draw onto.
var ErrNoSurface = errors.New("field: render surface not available")

// Surface is the drawing target the simulator paints every frame.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillCircle(x, y, radius float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Source supplies uniform numbers in [0, 1).
type Source interface {
	Float64() float64
}

type Options struct {
	Count           int
	ConnectDistance float64
	InfluenceRadius float64
	MaxForce        float64
	LineWidth       float64
	// nil colours take the package defaults; a set colour is used as is,
	// fully transparent included.
	ParticleColor *RGBA
	LineColor     *RGBA

	// Rand defaults to a freshly seeded generator.
	Rand Source
}

func DefaultOptions() Options {
	return Options{
		Count:           DefaultCount,
		ConnectDistance: DefaultConnectDistance,
		InfluenceRadius: DefaultInfluenceRadius,
		MaxForce:        DefaultMaxForce,
		LineWidth:       DefaultLineWidth,
		ParticleColor:   ptr(DefaultParticleColor),
		LineColor:       ptr(DefaultLineColor),
	}
}

// Link is a drawn connection between particles A and B.
type Link struct {
	A, B     int
	Distance float64
	Opacity  float64
}

type Simulator struct {
	opts    Options
	surface Surface
	rng     Source

	particleColor, lineColor RGBA

	mu            sync.Mutex
	width, height float64
	particles     []Particle
	links         []Link

	pointer atomic.Pointer[Vec]
}

// New sizes the field to the surface and populates it with opts.Count
// particles. Zero-valued options take their defaults.
func New(surface Surface, opts Options) (*Simulator, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	def := DefaultOptions()
	if opts.Count <= 0 {
		opts.Count = def.Count
	}
	if opts.ConnectDistance <= 0 {
		opts.ConnectDistance = def.ConnectDistance
	}
	if opts.InfluenceRadius <= 0 {
		opts.InfluenceRadius = def.InfluenceRadius
	}
	if opts.MaxForce <= 0 {
		opts.MaxForce = def.MaxForce
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if opts.ParticleColor == nil {
		opts.ParticleColor = def.ParticleColor
	}
	if opts.LineColor == nil {
		opts.LineColor = def.LineColor
	}

	s := &Simulator{
		opts:          opts,
		surface:       surface,
		rng:           opts.Rand,
		particleColor: *opts.ParticleColor,
		lineColor:     *opts.LineColor,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	w, h := surface.Size()
	s.Resize(w, h)
	s.Initialize(opts.Count)
	return s, nil
}

func (s *Simulator) Options() Options { return s.opts }

func ptr[T any](v T) *T { return &v }

// Resize records new surface dimensions. Particles are left where they are;
// one already outside the new bounds flips its velocity every frame.
func (s *Simulator) Resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = float64(width), float64(height)
	s.mu.Unlock()
}

func (s *Simulator) Size() (width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Initialize replaces the whole field with count fresh random particles.
func (s *Simulator) Initialize(count int) {
	if count < 0 {
		count = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = Particle{
			Pos: Vec{
				X: s.rng.Float64() * s.width,
				Y: s.rng.Float64() * s.height,
			},
			Vel: Vec{
				X: s.rng.Float64()*2*MaxSpeed - MaxSpeed,
				Y: s.rng.Float64()*2*MaxSpeed - MaxSpeed,
			},
			Radius: s.rng.Float64()*(MaxRadius-MinRadius) + MinRadius,
			Color:  s.particleColor,
		}
	}
	s.particles = particles
}

// SetPointer records the latest pointer position; nil means no pointer.
func (s *Simulator) SetPointer(p *Vec) {
	if p == nil {
		s.pointer.Store(nil)
		return
	}
	v := *p
	s.pointer.Store(&v)
}

func (s *Simulator) ClearPointer() { s.pointer.Store(nil) }

func (s *Simulator) Pointer() (Vec, bool) {
	p := s.pointer.Load()
	if p == nil {
		return Vec{}, false
	}
	return *p, true
}

// AdvanceFrame moves every particle one step.
func (s *Simulator) AdvanceFrame() {
	pointer := s.pointer.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.particles {
		s.particles[i].update(s.width, s.height, pointer, s.opts.InfluenceRadius, s.opts.MaxForce)
	}
}

// Render paints the current state onto the simulator's surface.
func (s *Simulator) Render() {
	s.Snapshot(s.surface)
}

// Snapshot paints the current state onto dst without advancing it.
func (s *Simulator) Snapshot(dst Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draw(dst)
}

// Step advances one frame and renders it.
func (s *Simulator) Step() {
	s.AdvanceFrame()
	s.Render()
}

// Particles returns a copy of the field.
func (s *Simulator) Particles() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Links returns every pair closer than the connection distance.
func (s *Simulator) Links() []Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	links := s.connect()
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

func (s *Simulator) draw(dst Surface) {
	dst.Clear()

	for _, p := range s.particles {
		dst.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, p.Color.NRGBA())
	}

	for _, l := range s.connect() {
		a, b := s.particles[l.A].Pos, s.particles[l.B].Pos
		c := s.lineColor.WithAlpha(l.Opacity).NRGBA()
		dst.StrokeLine(a.X, a.Y, b.X, b.Y, s.opts.LineWidth, c)
	}
}

// connect checks every unordered pair, so cost grows with the square of the
// particle count. At the default 80 that is 3160 checks per frame; a much
// denser field wants a uniform grid keyed by ConnectDistance instead.
// The returned slice is reused between calls.
func (s *Simulator) connect() []Link {
	s.links = s.links[:0]
	maxDist := s.opts.ConnectDistance
	for a := 0; a < len(s.particles); a++ {
		for b := a + 1; b < len(s.particles); b++ {
			dist := s.particles[a].Pos.Sub(s.particles[b].Pos).Len()
			if dist < maxDist {
				s.links = append(s.links, Link{
					A:        a,
					B:        b,
					Distance: dist,
					Opacity:  opacity(dist, maxDist),
				})
			}
		}
	}
	return s.links
}

func opacity(dist, maxDist float64) float64 {
	return clamp01(1 - dist/maxDist)
}
