package ambient

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Particle is one point mass of the ambient field.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Color   Color
}

// ParticleCount returns how many particles a viewport of the given width
// gets: one per WidthDivisor pixels, capped at MaxParticles.
func (c FieldConfig) ParticleCount(width float64) int {
	if width <= 0 || c.WidthDivisor <= 0 {
		return 0
	}
	return min(c.MaxParticles, int(math.Floor(width/c.WidthDivisor)))
}

// ParticleField is the pointer-reactive point-mass simulation drawn to a
// Surface. Each Step clears the surface, links nearby particles using their
// positions from before the step, integrates every particle and then draws
// it as a disc.
//
// The field is disabled (Step does nothing) when reduced motion is set or
// there is no surface.
type ParticleField struct {
	cfg     FieldConfig
	bus     *SignalBus
	surface Surface
	rng     *rand.Rand
	log     *zap.Logger

	enabled       bool
	width, height float64
	particles     []Particle
	seeds         int
}

// NewParticleField creates the field and seeds it to the bus viewport. Later
// debounced resize notifications re-seed it.
func NewParticleField(bus *SignalBus, surface Surface, cfg FieldConfig, rng *rand.Rand, logger *zap.Logger) *ParticleField {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &ParticleField{
		cfg:     cfg,
		bus:     bus,
		surface: surface,
		rng:     rng,
		log:     logger,
	}
	switch {
	case bus.ReducedMotion():
		logger.Debug("particle field disabled", zap.String("reason", "reduced motion"))
		return f
	case surface == nil:
		logger.Debug("particle field disabled", zap.String("reason", "no canvas"))
		return f
	}
	f.enabled = true
	st := bus.State()
	f.Seed(st.Width, st.Height)
	bus.OnResize(f.Seed)
	return f
}

// Enabled reports whether the field simulates at all.
func (f *ParticleField) Enabled() bool {
	return f.enabled
}

// Particles returns the live particle set. The slice is owned by the field.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Seeds returns how many times the particle set has been (re)created.
func (f *ParticleField) Seeds() int {
	return f.seeds
}

// Seed resizes the surface and replaces the particle set with a fresh one
// for a viewport of width x height. The previous set is discarded.
func (f *ParticleField) Seed(width, height float64) {
	if !f.enabled {
		return
	}
	f.width, f.height = width, height
	f.surface.Resize(int(width), int(height))

	n := f.cfg.ParticleCount(width)
	f.particles = f.particles[:0]
	for range n {
		f.particles = append(f.particles, f.newParticle())
	}
	f.seeds++
	f.log.Debug("particle field seeded",
		zap.Int("count", n),
		zap.Float64("width", width),
		zap.Float64("height", height),
	)
}

// newParticle draws one particle from the warm accent palette:
// rgb(255, 107..157, 53..153).
func (f *ParticleField) newParticle() Particle {
	return Particle{
		X:       f.rng.Float64() * f.width,
		Y:       f.rng.Float64() * f.height,
		VX:      f.cfg.Speed.Random(f.rng),
		VY:      f.cfg.Speed.Random(f.rng),
		Radius:  f.cfg.Radius.Random(f.rng),
		Opacity: f.cfg.Opacity.Random(f.rng),
		Color: Color{
			R: 1,
			G: (107 + f.rng.Float64()*50) / 255,
			B: (53 + f.rng.Float64()*100) / 255,
			A: 1,
		},
	}
}

// Step advances the simulation by one tick and redraws the surface.
func (f *ParticleField) Step() {
	if !f.enabled {
		return
	}
	f.surface.Clear()
	f.drawLinks()

	px, py := f.bus.Pointer()
	for i := range f.particles {
		f.integrate(&f.particles[i], px, py)
	}
	for i := range f.particles {
		p := &f.particles[i]
		f.surface.FillCircle(p.X, p.Y, p.Radius, p.Color.WithAlpha(p.Opacity))
	}
}

// drawLinks connects every unordered pair closer than LinkDistance, fading
// linearly to zero at the threshold.
func (f *ParticleField) drawLinks() {
	limit := f.cfg.LinkDistance
	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= limit {
				continue
			}
			alpha := f.cfg.LinkAlpha * (1 - d/limit)
			f.surface.StrokeLine(a.X, a.Y, b.X, b.Y, 0.5, ColorAccent.WithAlpha(alpha))
		}
	}
}

// integrate moves p by its velocity, bounces it off the surface edges and
// nudges it toward the pointer when inside the attraction radius. The nudge
// has no damping, so particles may settle into orbits around a still
// pointer.
func (f *ParticleField) integrate(p *Particle, px, py float64) {
	p.X += p.VX
	p.Y += p.VY
	if p.X < 0 || p.X > f.width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > f.height {
		p.VY = -p.VY
	}

	dx := px - p.X
	dy := py - p.Y
	d := math.Hypot(dx, dy)
	if r := f.cfg.AttractRadius; d < r {
		force := (r - d) / r
		p.VX += dx * force * f.cfg.AttractGain
		p.VY += dy * force * f.cfg.AttractGain
	}
}
