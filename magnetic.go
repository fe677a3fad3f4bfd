package ambient

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Strength is the magnetic tier of an element.
type Strength uint8

const (
	StrengthWeak Strength = iota
	StrengthStrong
)

// ParseStrength maps a data-magnetic value to a tier. Anything other than
// "strong" is weak.
func ParseStrength(s string) Strength {
	if s == "strong" {
		return StrengthStrong
	}
	return StrengthWeak
}

// MaxRadius returns the interaction radius of the tier.
func (s Strength) MaxRadius(cfg MagneticConfig) float64 {
	if s == StrengthStrong {
		return cfg.StrongRadius
	}
	return cfg.WeakRadius
}

func (s Strength) String() string {
	if s == StrengthStrong {
		return "strong"
	}
	return "weak"
}

// Falloff returns the linear attraction factor at distance d: 1 at the
// center, 0 at and beyond maxRadius.
func Falloff(d, maxRadius float64) float64 {
	if maxRadius <= 0 || d >= maxRadius {
		return 0
	}
	return (maxRadius - d) / maxRadius
}

// Displacement returns the translation of an element whose center is offset
// (dx, dy) from the pointer toward it: the offset scaled by pull and by the
// linear falloff.
func Displacement(dx, dy, maxRadius, pull float64) (float64, float64) {
	f := Falloff(math.Hypot(dx, dy), maxRadius)
	if f == 0 {
		return 0, 0
	}
	return dx * f * pull, dy * f * pull
}

type magneticElement struct {
	node     *Node
	strength Strength
}

type chargedParticle struct {
	node *Node
	sign float64
}

// MagneticField pulls registered elements toward the pointer and shifts the
// charged decorative particles of the magnetic-field container.
type MagneticField struct {
	cfg MagneticConfig
	log *zap.Logger

	enabled   bool
	elements  []magneticElement
	container *Node
	charged   []chargedParticle
}

// NewMagneticField registers every [data-magnetic] element and every
// magnetic-particle in doc. Under reduced motion nothing is registered.
func NewMagneticField(bus *SignalBus, doc *Document, cfg MagneticConfig, rng *rand.Rand, logger *zap.Logger) *MagneticField {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &MagneticField{cfg: cfg, log: logger}
	if bus.ReducedMotion() {
		logger.Debug("magnetic field disabled", zap.String("reason", "reduced motion"))
		return m
	}
	m.enabled = true

	for _, n := range doc.FindAll(HasAttr("data-magnetic")) {
		v, _ := n.Attr("data-magnetic")
		m.elements = append(m.elements, magneticElement{node: n, strength: ParseStrength(v)})
	}

	m.container = doc.Find(Class("magnetic-field"))
	for _, n := range doc.FindAll(Class("magnetic-particle")) {
		area := n.Parent
		if area == nil || (area.Width == 0 && area.Height == 0) {
			area = m.container
		}
		if area != nil {
			n.X = rng.Float64() * area.Width
			n.Y = rng.Float64() * area.Height
		}
		sign := -1.0
		if v, _ := n.Attr("data-charge"); v == "positive" {
			sign = 1
		}
		m.charged = append(m.charged, chargedParticle{node: n, sign: sign})
	}

	logger.Debug("magnetic field ready",
		zap.Int("elements", len(m.elements)),
		zap.Int("charged", len(m.charged)),
		zap.Bool("container", m.container != nil),
	)
	bus.OnPointer(m.update)
	return m
}

// Enabled reports whether the controller reacts to the pointer.
func (m *MagneticField) Enabled() bool {
	return m.enabled
}

// Register adds an element after construction.
func (m *MagneticField) Register(n *Node, s Strength) {
	if !m.enabled || n == nil {
		return
	}
	m.elements = append(m.elements, magneticElement{node: n, strength: s})
}

func (m *MagneticField) update(x, y float64) {
	live := m.elements[:0]
	for _, e := range m.elements {
		if e.node.IsDisposed() {
			continue
		}
		live = append(live, e)
		// The rest position is used so the element's own pull does not feed
		// back into the next measurement.
		c := e.node.RestBounds().Center()
		e.node.TranslateX, e.node.TranslateY = Displacement(x-c.X, y-c.Y, e.strength.MaxRadius(m.cfg), m.cfg.Pull)
	}
	m.elements = live

	if m.container == nil || len(m.charged) == 0 {
		return
	}
	r := m.container.Bounds()
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	nx := (x-r.X)/r.Width - 0.5
	ny := (y-r.Y)/r.Height - 0.5
	for _, p := range m.charged {
		p.node.TranslateX = nx * p.sign * m.cfg.ChargeDistance
		p.node.TranslateY = ny * p.sign * m.cfg.ChargeDistance
	}
}
