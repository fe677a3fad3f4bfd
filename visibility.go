package ambient

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Category selects what happens when an observed element first becomes
// visible.
type Category uint8

const (
	// CategoryPlain only marks the element in-view.
	CategoryPlain Category = iota
	// CategoryReveal settles a focus card into its resting pose.
	CategoryReveal
	// CategoryCounter counts a stat number up to its target.
	CategoryCounter
	// CategoryCaseStudy starts a case study's growth graph.
	CategoryCaseStudy
)

func (c Category) String() string {
	switch c {
	case CategoryReveal:
		return "reveal"
	case CategoryCounter:
		return "counter"
	case CategoryCaseStudy:
		return "case-study"
	default:
		return "plain"
	}
}

// categoryOf resolves the category of an element watched by the reveal
// profile from its classes, once.
func categoryOf(n *Node) Category {
	switch {
	case n.HasClass("focus-card"):
		return CategoryReveal
	case n.HasClass("stat-item"):
		return CategoryCounter
	case n.HasClass("case-item"):
		return CategoryCaseStudy
	default:
		return CategoryPlain
	}
}

// Profile is a visibility threshold: an element is visible under it once at
// least Threshold of its area lies inside the viewport grown by Margin.
type Profile struct {
	Name      string
	Threshold float64
	Margin    Margin
	// Mark is the class added to an element each time it is seen.
	Mark string
}

// ObservedTarget is one element watched for one category. It fires at most
// once.
type ObservedTarget struct {
	Node     *Node
	Category Category
	fired    bool
}

// Fired reports whether the target's action has run.
func (t *ObservedTarget) Fired() bool {
	return t.fired
}

type observation struct {
	target  *ObservedTarget
	profile *Profile
}

// CounterTask ramps a stat number's text from 0 to Target.
type CounterTask struct {
	Node    *Node
	Target  int
	Current float64

	step  float64
	frame FrameHandle
	done  bool
}

// Done reports whether the counter reached its target.
func (c *CounterTask) Done() bool {
	return c.done
}

// advance adds one increment, clamping at the target. The displayed value is
// the truncated accumulator.
func (c *CounterTask) advance() {
	c.Current += c.step
	if c.Current >= float64(c.Target) {
		c.Current = float64(c.Target)
		c.done = true
		c.frame.Stop()
	}
	c.Node.Text = strconv.Itoa(int(c.Current))
}

// VisibilityController fires one-shot actions on elements as they scroll
// into view. Elements are collected once at construction. Visibility is
// re-evaluated on the first frame and on every delivered scroll and resize
// notification.
type VisibilityController struct {
	cfg     VisibilityConfig
	sched   *Scheduler
	doc     *Document
	rng     *rand.Rand
	log     *zap.Logger
	metrics *Metrics
	instant bool

	reveal   Profile
	counter  Profile
	watching []observation
	targets  map[*Node][]*ObservedTarget
	counters []*CounterTask
}

// NewVisibilityController collects the observed elements and schedules the
// initial check. Under reduced motion reveals still fire, without their
// random delay, and counters jump straight to their target.
func NewVisibilityController(sched *Scheduler, bus *SignalBus, doc *Document, cfg VisibilityConfig, rng *rand.Rand, metrics *Metrics, logger *zap.Logger) *VisibilityController {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &VisibilityController{
		cfg:     cfg,
		sched:   sched,
		doc:     doc,
		rng:     rng,
		log:     logger,
		metrics: metrics,
		instant: bus.ReducedMotion(),
		reveal: Profile{
			Name:      "reveal",
			Threshold: cfg.RevealThreshold,
			Margin:    cfg.RevealMargin,
			Mark:      "in-view",
		},
		counter: Profile{
			Name:      "counter",
			Threshold: cfg.CounterThreshold,
			Mark:      "counted",
		},
		targets: make(map[*Node][]*ObservedTarget),
	}

	revealed := doc.FindAll(AnyOf(
		Class("focus-card"),
		Class("stat-item"),
		Class("case-item"),
		Class("value-item"),
		HasAttr("data-split"),
	))
	for _, n := range revealed {
		v.observe(n, categoryOf(n), &v.reveal)
	}
	for _, n := range doc.FindAll(AttrEquals("data-counter", "true")) {
		v.observe(n, CategoryCounter, &v.counter)
	}
	logger.Debug("visibility observers ready",
		zap.Int("reveal", len(revealed)),
		zap.Int("observations", len(v.watching)),
	)

	sched.After(0, v.Check)
	bus.OnScroll(func(float64) { v.Check() })
	bus.OnResize(func(float64, float64) { v.Check() })
	return v
}

// observe watches n under profile p. An element observed for the same
// category by both profiles shares one target, so it fires only once.
func (v *VisibilityController) observe(n *Node, c Category, p *Profile) {
	for _, t := range v.targets[n] {
		if t.Category == c {
			v.watching = append(v.watching, observation{target: t, profile: p})
			return
		}
	}
	t := &ObservedTarget{Node: n, Category: c}
	v.targets[n] = append(v.targets[n], t)
	v.watching = append(v.watching, observation{target: t, profile: p})
}

// Target returns the observed target of n for category c, or nil.
func (v *VisibilityController) Target(n *Node, c Category) *ObservedTarget {
	for _, t := range v.targets[n] {
		if t.Category == c {
			return t
		}
	}
	return nil
}

// Counters returns every counter task started so far.
func (v *VisibilityController) Counters() []*CounterTask {
	return v.counters
}

// IntersectionRatio returns the fraction of r inside root. A degenerate r
// counts as fully visible when its origin lies in root.
func IntersectionRatio(r, root Rect) float64 {
	area := r.Area()
	if area <= 0 {
		if root.Contains(r.X, r.Y) {
			return 1
		}
		return 0
	}
	if !r.Intersects(root) {
		return 0
	}
	return r.Intersection(root).Area() / area
}

// Check evaluates every unfired observation against the current viewport.
func (v *VisibilityController) Check() {
	vp := v.doc.Viewport()
	for _, o := range v.watching {
		n := o.target.Node
		if n.IsDisposed() {
			continue
		}
		root := o.profile.Margin.Apply(vp)
		ratio := IntersectionRatio(n.Bounds(), root)
		if ratio <= 0 || ratio < o.profile.Threshold {
			continue
		}
		if o.profile.Mark != "" {
			n.AddClass(o.profile.Mark)
		}
		if o.target.fired {
			continue
		}
		o.target.fired = true
		v.fire(o.target)
	}
}

func (v *VisibilityController) fire(t *ObservedTarget) {
	v.metrics.targetFired(t.Category)
	v.log.Debug("target fired",
		zap.String("node", t.Node.Name),
		zap.Stringer("category", t.Category),
	)
	switch t.Category {
	case CategoryReveal:
		v.revealCard(t.Node)
	case CategoryCounter:
		v.startCounter(t.Node)
	case CategoryCaseStudy:
		StartGrowth(t.Node)
	}
}

// revealCard settles a focus card after a random delay and starts its pulse.
func (v *VisibilityController) revealCard(card *Node) {
	settle := func() {
		card.TranslateY = 0
		card.Alpha = 1
	}
	if v.instant || v.cfg.RevealJitter <= 0 {
		settle()
	} else {
		delay := time.Duration(v.rng.Int64N(int64(v.cfg.RevealJitter.Duration())))
		v.sched.After(delay, settle)
	}
	startNow(card.Find(Class("card-pulse")))
}

// startCounter counts the card's stat number up to data-count-to, one
// increment per frame. The first increment happens immediately.
func (v *VisibilityController) startCounter(item *Node) {
	num := item.Find(Class("stat-number"))
	if num == nil {
		return
	}
	raw, _ := num.Attr("data-count-to")
	target := leadingInt(raw)
	if target == 0 {
		return
	}
	c := &CounterTask{Node: num, Target: target, step: float64(target) / float64(v.cfg.CounterSteps)}
	v.counters = append(v.counters, c)
	if v.instant {
		c.Current = float64(target)
		c.done = true
		num.Text = strconv.Itoa(target)
	} else {
		c.advance()
		if !c.done {
			c.frame = v.sched.OnFrame(func(time.Duration) {
				c.advance()
				if c.done {
					v.log.Debug("counter finished", zap.String("node", num.Name), zap.Int("target", target))
				}
			})
		}
	}
	startNow(item.Find(Class("stat-energy")))
}

// StartGrowth starts the growth graph of a case study immediately.
func StartGrowth(caseItem *Node) {
	startNow(caseItem.Find(AttrEquals("data-animate", "growth")))
}

// startNow drops the start delay of n's animation. Nil is a no-op.
func startNow(n *Node) {
	if n == nil || n.Animation == nil {
		return
	}
	n.Animation.Delay = 0
}

// leadingInt parses the leading decimal integer of s, ignoring surrounding
// space and any trailing text. It returns 0 when there is none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch == '-' || ch == '+') && end == 0 {
			end++
			continue
		}
		if ch < '0' || ch > '9' {
			break
		}
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
