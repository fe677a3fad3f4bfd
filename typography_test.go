package ambient

import (
	"testing"
	"time"
)

func newTitleDoc(reduced bool) (*Scheduler, *Document, *TypographySequencer) {
	s, d, b := newTestBus(reduced)
	title := NewKineticTitle("hero-title",
		TitleCluster{Text: "Hi", Physics: "explode"},
		TitleCluster{Text: "go", Physics: "orbit"},
		TitleCluster{Text: "a b", Physics: "wave"},
		TitleCluster{Text: "M", Physics: "magnetize"},
		TitleCluster{Text: "z", Physics: "sideways"},
	)
	title.SetBox(40, 40, title.Width, title.Height)
	d.Body().AddChild(title)

	icon := NewNode("icon-2", "floating-icon")
	icon.SetAttr("data-orbit", "2")
	bad := NewNode("icon-x", "floating-icon")
	bad.SetAttr("data-orbit", "x")
	d.Body().AddChild(icon)
	d.Body().AddChild(bad)

	seq := NewTypographySequencer(s, b, d, DefaultConfig().Typography, nil)
	return s, d, seq
}

func TestParsePhysics(t *testing.T) {
	tests := []struct {
		in   string
		want Physics
	}{
		{"explode", PhysicsExplode},
		{"orbit", PhysicsOrbit},
		{"wave", PhysicsWave},
		{"magnetize", PhysicsMagnetize},
		{"", PhysicsNone},
		{"bounce", PhysicsNone},
	}
	for _, tt := range tests {
		if got := ParsePhysics(tt.in); got != tt.want {
			t.Errorf("ParsePhysics(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTypographyTasksResolved(t *testing.T) {
	_, _, seq := newTitleDoc(false)
	tasks := seq.Tasks()
	want := []Physics{
		PhysicsExplode, PhysicsExplode,
		PhysicsOrbit, PhysicsOrbit,
		PhysicsWave, PhysicsWave,
		PhysicsMagnetize,
		PhysicsNone,
	}
	if len(tasks) != len(want) {
		t.Fatalf("tasks = %d, want %d", len(tasks), len(want))
	}
	for i, task := range tasks {
		if task.Index != i {
			t.Errorf("task %d has index %d", i, task.Index)
		}
		if task.Physics != want[i] {
			t.Errorf("task %d physics = %v, want %v", i, task.Physics, want[i])
		}
	}
}

func TestTypographyStaggeredReveal(t *testing.T) {
	s, _, seq := newTitleDoc(false)
	tasks := seq.Tasks()
	if seq.Revealed() != 0 || tasks[0].Node.Alpha != 0 {
		t.Fatal("glyph visible before the first frame")
	}

	s.Advance(0)
	if seq.Revealed() != 1 {
		t.Fatalf("Revealed = %d after first frame, want 1", seq.Revealed())
	}
	if g := tasks[0].Node; g.Alpha != 1 || g.TranslateY != 0 {
		t.Errorf("first glyph alpha %v ty %v, want 1/0", g.Alpha, g.TranslateY)
	}
	if tasks[1].Node.Alpha != 0 {
		t.Error("second glyph revealed too early")
	}

	s.Advance(99 * ms)
	if seq.Revealed() != 1 {
		t.Errorf("Revealed = %d at 99ms, want 1", seq.Revealed())
	}
	s.Advance(1 * ms)
	if seq.Revealed() != 2 {
		t.Errorf("Revealed = %d at 100ms, want 2", seq.Revealed())
	}
	s.Advance(time.Second)
	if seq.Revealed() != len(tasks) {
		t.Errorf("Revealed = %d, want all %d", seq.Revealed(), len(tasks))
	}
}

func TestTypographyVariantAnimations(t *testing.T) {
	s, _, seq := newTitleDoc(false)
	s.Advance(time.Second)
	tasks := seq.Tasks()

	explode := tasks[1].Node.Animation
	if explode == nil || explode.Keyframes != ExplodeKeyframes {
		t.Fatal("explode glyph has no explode animation")
	}
	if explode.Delay != 50*ms || !explode.FillForwards || explode.Duration != 1500*ms {
		t.Errorf("explode delay %v fill %v duration %v", explode.Delay, explode.FillForwards, explode.Duration)
	}

	orbit := tasks[3].Node.Animation
	if orbit == nil || orbit.Keyframes != OrbitKeyframes || orbit.Iterations != Infinite {
		t.Fatal("orbit glyph not looping the orbit keyframes")
	}
	if orbit.Delay != 300*ms || orbit.Duration != 3*time.Second {
		t.Errorf("orbit delay %v duration %v", orbit.Delay, orbit.Duration)
	}

	wave := tasks[4].Node.Animation
	if wave == nil || wave.Keyframes != WaveKeyframes || wave.Duration != 2*time.Second {
		t.Fatal("wave glyph not running the wave keyframes")
	}

	if tasks[6].Node.Animation != nil || tasks[7].Node.Animation != nil {
		t.Error("magnetize and unknown glyphs should not animate")
	}
	if tasks[7].Node.Alpha != 1 {
		t.Error("unknown physics glyph not revealed")
	}
}

func TestTypographyMagnetizeHover(t *testing.T) {
	s, d, seq := newTitleDoc(false)
	s.Advance(time.Second)
	g := seq.Tasks()[6].Node
	rest := g.Color

	b := g.Bounds()
	c := b.Center()
	d.PointerMove(0, c.X, c.Y)
	if g.ScaleX != 1.2 || g.TranslateY != -5 || g.Color != ColorAccent {
		t.Errorf("hover pose scale %v ty %v color %v", g.ScaleX, g.TranslateY, g.Color)
	}
	d.PointerMove(0, 1, 1)
	if g.ScaleX != 1 || g.TranslateY != 0 || g.Color != rest {
		t.Errorf("leave pose scale %v ty %v color %v", g.ScaleX, g.TranslateY, g.Color)
	}
}

func TestTypographyFloatingIcons(t *testing.T) {
	_, d, seq := newTitleDoc(false)
	icons := seq.Icons()
	if len(icons) != 1 || icons[0].Name != "icon-2" {
		t.Fatalf("icons = %v, want only icon-2", icons)
	}
	a := icons[0].Animation
	if a.Duration != 19*time.Second || a.Delay != 4*time.Second || a.Iterations != Infinite {
		t.Errorf("icon animation duration %v delay %v iterations %d", a.Duration, a.Delay, a.Iterations)
	}
	if d.ByName("icon-x").Animation != nil {
		t.Error("icon without a numeric orbit was animated")
	}
}

func TestTypographyReducedMotion(t *testing.T) {
	_, d, seq := newTitleDoc(true)
	if seq.Revealed() != len(seq.Tasks()) {
		t.Fatalf("Revealed = %d, want all glyphs at once", seq.Revealed())
	}
	for _, task := range seq.Tasks() {
		if task.Node.Alpha != 1 || task.Node.Animation != nil {
			t.Errorf("glyph %d alpha %v animated %v", task.Index, task.Node.Alpha, task.Node.Animation != nil)
		}
	}
	if d.ByName("icon-2").Animation != nil {
		t.Error("icon animated under reduced motion")
	}
}

func TestTypographyNoTitle(t *testing.T) {
	s, d, b := newTestBus(false)
	seq := NewTypographySequencer(s, b, d, DefaultConfig().Typography, nil)
	if len(seq.Tasks()) != 0 || s.Pending() != 0 {
		t.Errorf("tasks %d pending %d, want none", len(seq.Tasks()), s.Pending())
	}
}
