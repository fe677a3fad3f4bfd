package ambient

import (
	"math"
	"math/rand/v2"
	"testing"
)

// recordingSurface is a Surface that logs every draw call.
type recordingSurface struct {
	width, height int
	ops           []string
	lines         []recordedLine
	discs         int
}

type recordedLine struct {
	width float64
	color Color
}

func (s *recordingSurface) Resize(w, h int) { s.width, s.height = w, h }
func (s *recordingSurface) Clear()          { s.ops = append(s.ops, "clear") }

func (s *recordingSurface) StrokeLine(_, _, _, _, width float64, c Color) {
	s.ops = append(s.ops, "line")
	s.lines = append(s.lines, recordedLine{width: width, color: c})
}

func (s *recordingSurface) FillCircle(_, _, _ float64, _ Color) {
	s.ops = append(s.ops, "disc")
	s.discs++
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestField(reduced bool, surface Surface) (*Scheduler, *SignalBus, *ParticleField) {
	s, _, b := newTestBus(reduced)
	f := NewParticleField(b, surface, DefaultConfig().Field, testRand(), nil)
	return s, b, f
}

func TestParticleCount(t *testing.T) {
	cfg := DefaultConfig().Field
	tests := []struct {
		width float64
		want  int
	}{
		{0, 0},
		{-10, 0},
		{29, 0},
		{299, 9},
		{800, 26},
		{1500, 50},
		{3000, 50},
	}
	for _, tt := range tests {
		if got := cfg.ParticleCount(tt.width); got != tt.want {
			t.Errorf("ParticleCount(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestParticleFieldSeedsWithinViewport(t *testing.T) {
	surf := &recordingSurface{}
	_, _, f := newTestField(false, surf)
	if !f.Enabled() {
		t.Fatal("field disabled")
	}
	ps := f.Particles()
	if len(ps) != 26 {
		t.Fatalf("seeded %d particles, want 26", len(ps))
	}
	if surf.width != 800 || surf.height != 600 {
		t.Errorf("surface = %dx%d, want 800x600", surf.width, surf.height)
	}
	cfg := DefaultConfig().Field
	for i, p := range ps {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Errorf("particle %d at (%v, %v) outside viewport", i, p.X, p.Y)
		}
		if math.Abs(p.VX) > cfg.Speed.Max || math.Abs(p.VY) > cfg.Speed.Max {
			t.Errorf("particle %d velocity (%v, %v) out of range", i, p.VX, p.VY)
		}
		if p.Radius < 1 || p.Radius >= 3 || p.Opacity < 0.1 || p.Opacity >= 0.4 {
			t.Errorf("particle %d radius %v opacity %v out of range", i, p.Radius, p.Opacity)
		}
		if p.Color.R != 1 {
			t.Errorf("particle %d red channel = %v, want 1", i, p.Color.R)
		}
	}
}

func TestParticleFieldDrawOrder(t *testing.T) {
	surf := &recordingSurface{}
	_, _, f := newTestField(false, surf)
	f.particles = []Particle{
		{X: 100, Y: 100, Radius: 1, Opacity: 0.2},
		{X: 150, Y: 100, Radius: 1, Opacity: 0.2},
		{X: 400, Y: 400, Radius: 1, Opacity: 0.2},
	}
	surf.ops = nil
	f.Step()

	want := []string{"clear", "line", "disc", "disc", "disc"}
	if len(surf.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", surf.ops, want)
	}
	for i := range want {
		if surf.ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", surf.ops, want)
		}
	}
	l := surf.lines[0]
	if l.width != 0.5 {
		t.Errorf("link width = %v, want 0.5", l.width)
	}
	if math.Abs(l.color.A-0.05) > 1e-9 {
		t.Errorf("link alpha = %v, want 0.05 at half the link distance", l.color.A)
	}
}

func TestParticleFieldLinksUsePreStepPositions(t *testing.T) {
	surf := &recordingSurface{}
	_, _, f := newTestField(false, surf)
	// 99.9 apart before the step, farther apart after it.
	f.particles = []Particle{
		{X: 100, Y: 300, VX: -5},
		{X: 199.9, Y: 300, VX: 5},
	}
	surf.lines = nil
	f.Step()
	if len(surf.lines) != 1 {
		t.Errorf("links = %d, want 1", len(surf.lines))
	}
}

func TestParticleFieldBounce(t *testing.T) {
	_, _, f := newTestField(false, &recordingSurface{})
	f.particles = []Particle{
		{X: 799.9, Y: 300, VX: 0.25},
		{X: 400, Y: 0.1, VY: -0.25},
	}
	f.Step()
	if f.particles[0].VX != -0.25 {
		t.Errorf("VX = %v, want reversed", f.particles[0].VX)
	}
	if f.particles[1].VY != 0.25 {
		t.Errorf("VY = %v, want reversed", f.particles[1].VY)
	}
}

func TestParticleFieldAttraction(t *testing.T) {
	_, b, f := newTestField(false, &recordingSurface{})
	f.particles = []Particle{
		{X: 100, Y: 100},
		{X: 600, Y: 500},
	}
	b.PointerMove(200, 100)
	f.Step()

	near := f.particles[0]
	wantVX := 100 * (50.0 / 150) * 0.0001
	if math.Abs(near.VX-wantVX) > 1e-12 || near.VY != 0 {
		t.Errorf("near velocity = (%v, %v), want (%v, 0)", near.VX, near.VY, wantVX)
	}
	far := f.particles[1]
	if far.VX != 0 || far.VY != 0 {
		t.Errorf("far particle nudged: (%v, %v)", far.VX, far.VY)
	}
}

func TestParticleFieldReseedsOnResize(t *testing.T) {
	surf := &recordingSurface{}
	s, b, f := newTestField(false, surf)
	if f.Seeds() != 1 {
		t.Fatalf("Seeds = %d, want 1", f.Seeds())
	}
	b.Resize(1500, 700)
	s.Advance(100 * ms)
	if f.Seeds() != 1 {
		t.Fatal("reseeded before the debounce period")
	}
	s.Advance(150 * ms)
	if f.Seeds() != 2 {
		t.Fatalf("Seeds = %d, want 2", f.Seeds())
	}
	if len(f.Particles()) != 50 {
		t.Errorf("particles = %d, want 50", len(f.Particles()))
	}
	if surf.width != 1500 || surf.height != 700 {
		t.Errorf("surface = %dx%d, want 1500x700", surf.width, surf.height)
	}
}

func TestParticleFieldDisabled(t *testing.T) {
	tests := []struct {
		name    string
		reduced bool
		surface Surface
	}{
		{"reduced motion", true, &recordingSurface{}},
		{"no surface", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, b, f := newTestField(tt.reduced, tt.surface)
			if f.Enabled() {
				t.Fatal("field enabled")
			}
			f.Step()
			b.Resize(1000, 1000)
			s.Advance(300 * ms)
			if len(f.Particles()) != 0 || f.Seeds() != 0 {
				t.Errorf("disabled field seeded %d particles", len(f.Particles()))
			}
			if rs, ok := tt.surface.(*recordingSurface); ok && len(rs.ops) != 0 {
				t.Errorf("disabled field drew: %v", rs.ops)
			}
		})
	}
}
