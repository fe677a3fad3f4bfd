package ambient

import (
	"strconv"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Physics is the animation variant of a word cluster.
type Physics uint8

const (
	PhysicsNone Physics = iota
	PhysicsExplode
	PhysicsOrbit
	PhysicsWave
	PhysicsMagnetize
)

// ParsePhysics resolves a data-physics value. Unknown or empty values give
// PhysicsNone: the glyph is revealed without motion.
func ParsePhysics(s string) Physics {
	switch s {
	case "explode":
		return PhysicsExplode
	case "orbit":
		return PhysicsOrbit
	case "wave":
		return PhysicsWave
	case "magnetize":
		return PhysicsMagnetize
	default:
		return PhysicsNone
	}
}

func (p Physics) String() string {
	switch p {
	case PhysicsExplode:
		return "explode"
	case PhysicsOrbit:
		return "orbit"
	case PhysicsWave:
		return "wave"
	case PhysicsMagnetize:
		return "magnetize"
	default:
		return "none"
	}
}

// GlyphTask is one glyph's place in the title sequence.
type GlyphTask struct {
	Node    *Node
	Index   int
	Physics Physics
}

// TypographySequencer reveals the glyphs of the kinetic title one after
// another and gives each its cluster's physics variant. It runs once.
type TypographySequencer struct {
	cfg   TypographyConfig
	sched *Scheduler
	log   *zap.Logger

	title    *Node
	tasks    []GlyphTask
	icons    []*Node
	revealed int
}

// NewTypographySequencer resolves every .char glyph under .kinetic-title
// and starts the sequence. Under reduced motion every glyph is made visible
// at once and nothing animates.
func NewTypographySequencer(sched *Scheduler, bus *SignalBus, doc *Document, cfg TypographyConfig, logger *zap.Logger) *TypographySequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TypographySequencer{cfg: cfg, sched: sched, log: logger}
	s.title = doc.Find(Class("kinetic-title"))
	if s.title == nil {
		logger.Debug("kinetic title absent")
		return s
	}

	for i, g := range s.title.FindAll(Class("char")) {
		var phys Physics
		if cluster := g.Closest(Class("word-cluster")); cluster != nil {
			v, _ := cluster.Attr("data-physics")
			phys = ParsePhysics(v)
		}
		s.tasks = append(s.tasks, GlyphTask{Node: g, Index: i, Physics: phys})
	}

	if bus.ReducedMotion() {
		for _, t := range s.tasks {
			showGlyph(t.Node)
		}
		s.revealed = len(s.tasks)
		logger.Debug("kinetic title shown without motion", zap.Int("glyphs", len(s.tasks)))
		return s
	}

	for _, t := range s.tasks {
		s.sched.After(time.Duration(t.Index)*cfg.Stagger.Duration(), func() { s.reveal(t) })
	}
	s.floatIcons(doc)
	logger.Debug("kinetic title started", zap.Int("glyphs", len(s.tasks)), zap.Int("icons", len(s.icons)))
	return s
}

// Tasks returns the resolved glyph tasks in sequence order.
func (s *TypographySequencer) Tasks() []GlyphTask {
	return s.tasks
}

// Revealed returns how many glyphs have been made visible so far.
func (s *TypographySequencer) Revealed() int {
	return s.revealed
}

// Icons returns the floating icons that were given an animation.
func (s *TypographySequencer) Icons() []*Node {
	return s.icons
}

func showGlyph(n *Node) {
	n.Visible = true
	n.Alpha = 1
	n.TranslateY = 0
}

func (s *TypographySequencer) reveal(t GlyphTask) {
	if t.Node.IsDisposed() {
		return
	}
	showGlyph(t.Node)
	s.revealed++

	i := time.Duration(t.Index)
	switch t.Physics {
	case PhysicsExplode:
		t.Node.SetAnimation(NewAnimation(ExplodeKeyframes, s.cfg.ExplodeDuration.Duration(), ease.OutQuad).
			WithDelay(i * s.cfg.ExplodeStagger.Duration()).
			Forwards())
	case PhysicsOrbit:
		t.Node.SetAnimation(NewAnimation(OrbitKeyframes, s.cfg.OrbitDuration.Duration(), ease.InOutQuad).
			WithDelay(i * s.cfg.LoopStagger.Duration()).
			Loop())
	case PhysicsWave:
		t.Node.SetAnimation(NewAnimation(WaveKeyframes, s.cfg.WaveDuration.Duration(), ease.InOutQuad).
			WithDelay(i * s.cfg.LoopStagger.Duration()).
			Loop())
	case PhysicsMagnetize:
		s.magnetize(t.Node)
	}
}

// magnetize scales, lifts and recolors the glyph while hovered.
func (s *TypographySequencer) magnetize(n *Node) {
	rest := n.Color
	n.OnPointerEnter = chainPointer(n.OnPointerEnter, func(PointerContext) {
		n.SetScale(s.cfg.HoverScale, s.cfg.HoverScale)
		n.TranslateY = s.cfg.HoverLift
		n.Color = ColorAccent
	})
	n.OnPointerLeave = chainPointer(n.OnPointerLeave, func(PointerContext) {
		n.SetScale(1, 1)
		n.TranslateY = 0
		n.Color = rest
	})
}

// floatIcons loops every .floating-icon. An icon with orbit index k floats
// for 15+2k seconds per loop after a 2k second delay. Icons without a
// numeric data-orbit are left alone.
func (s *TypographySequencer) floatIcons(doc *Document) {
	for _, icon := range doc.FindAll(Class("floating-icon")) {
		v, _ := icon.Attr("data-orbit")
		orbit, err := strconv.Atoi(v)
		if err != nil {
			s.log.Debug("floating icon skipped", zap.String("node", icon.Name), zap.String("orbit", v))
			continue
		}
		dur := time.Duration(15+orbit*2) * time.Second
		icon.SetAnimation(NewAnimation(IconFloatKeyframes, dur, ease.InOutQuad).
			WithDelay(time.Duration(orbit*2) * time.Second).
			Loop())
		s.icons = append(s.icons, icon)
	}
}
