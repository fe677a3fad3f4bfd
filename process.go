package ambient

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	processStagger      = 5 * time.Second
	processHoverScale   = 1.1
	processPulseFast    = 500 * time.Millisecond
	processPulseRest    = 1500 * time.Millisecond
	organicPoints       = 8
	organicCenter       = 200.0
	organicRadius       = 150.0
	organicCurveSamples = 8
)

// ProcessMotion staggers the process diagram's node animations, reacts to
// hovering a node and keeps the organic backdrop shape changing.
type ProcessMotion struct {
	rng   *rand.Rand
	log   *zap.Logger
	nodes []*Node
	shape *Node
	timer *Timer
}

// NewProcessMotion wires the process diagram. It does nothing under reduced
// motion or when the document has no .process-stage.
func NewProcessMotion(sched *Scheduler, bus *SignalBus, doc *Document, period time.Duration, rng *rand.Rand, logger *zap.Logger) *ProcessMotion {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &ProcessMotion{rng: rng, log: logger}
	if bus.ReducedMotion() {
		logger.Debug("process motion disabled", zap.String("reason", "reduced motion"))
		return p
	}
	if doc.Find(Class("process-stage")) == nil {
		logger.Debug("process motion disabled", zap.String("reason", "no process stage"))
		return p
	}

	p.nodes = doc.FindAll(Class("process-node"))
	for i, n := range p.nodes {
		if n.Animation != nil {
			n.Animation.Delay = time.Duration(i) * processStagger
		}
		content := n.Find(Class("node-content"))
		pulse := n.Find(Class("node-pulse"))
		n.OnPointerEnter = chainPointer(n.OnPointerEnter, func(PointerContext) {
			if content != nil {
				content.SetScale(processHoverScale, processHoverScale)
			}
			setDuration(pulse, processPulseFast)
		})
		n.OnPointerLeave = chainPointer(n.OnPointerLeave, func(PointerContext) {
			if content != nil {
				content.SetScale(1, 1)
			}
			setDuration(pulse, processPulseRest)
		})
	}

	p.shape = doc.ByName("organic-path")
	if p.shape != nil {
		p.Regenerate()
		p.timer = sched.Every(period, p.Regenerate)
	}
	logger.Debug("process motion ready", zap.Int("nodes", len(p.nodes)), zap.Bool("organic", p.shape != nil))
	return p
}

// Nodes returns the process nodes that were wired.
func (p *ProcessMotion) Nodes() []*Node {
	return p.nodes
}

func setDuration(n *Node, d time.Duration) {
	if n == nil || n.Animation == nil {
		return
	}
	n.Animation.Duration = d
}

// Regenerate gives the organic shape a new random outline: eight points
// around a fixed center at 30-70% of the base radius, joined by quadratic
// curves into a closed path.
func (p *ProcessMotion) Regenerate() {
	if p.shape == nil || p.shape.IsDisposed() {
		p.timer.Stop()
		return
	}
	var pts [organicPoints]Vec2
	for i := range pts {
		angle := float64(i) / organicPoints * math.Pi * 2
		r := organicRadius * (0.3 + p.rng.Float64()*0.4)
		pts[i] = Vec2{X: organicCenter + math.Cos(angle)*r, Y: organicCenter + math.Sin(angle)*r}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "M %g %g", pts[0].X, pts[0].Y)
	poly := append(p.shape.Path[:0], pts[0])
	prev := pts[0]
	for i := 1; i < organicPoints; i++ {
		cur := pts[i]
		next := pts[(i+1)%organicPoints]
		ctrl := Vec2{X: cur.X + (next.X-cur.X)*0.3, Y: cur.Y + (next.Y-cur.Y)*0.3}
		fmt.Fprintf(&sb, " Q %g %g %g %g", ctrl.X, ctrl.Y, next.X, next.Y)
		poly = appendQuad(poly, prev, ctrl, next)
		prev = next
	}
	sb.WriteString(" Z")

	p.shape.SetAttr("d", sb.String())
	p.shape.Path = poly
	p.shape.PathClosed = true
}

// appendQuad flattens the quadratic curve from a through control c to b,
// excluding a.
func appendQuad(dst []Vec2, a, c, b Vec2) []Vec2 {
	for s := 1; s <= organicCurveSamples; s++ {
		t := float64(s) / organicCurveSamples
		u := 1 - t
		dst = append(dst, Vec2{
			X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
			Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
		})
	}
	return dst
}
