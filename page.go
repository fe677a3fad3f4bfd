package ambient

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Parallax shifts every [data-parallax] element against the scroll offset by
// its speed factor.
type Parallax struct {
	nodes  []*Node
	speeds []float64
}

// NewParallax collects the parallax elements and follows throttled scroll
// notifications. An empty or unparsable factor means defaultSpeed.
func NewParallax(bus *SignalBus, doc *Document, defaultSpeed float64) *Parallax {
	p := &Parallax{}
	for _, n := range doc.FindAll(HasAttr("data-parallax")) {
		v, _ := n.Attr("data-parallax")
		speed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			speed = defaultSpeed
		}
		p.nodes = append(p.nodes, n)
		p.speeds = append(p.speeds, speed)
	}
	if len(p.nodes) > 0 {
		bus.OnScroll(p.Apply)
	}
	return p
}

// Apply positions every element for scroll offset y.
func (p *Parallax) Apply(y float64) {
	for i, n := range p.nodes {
		n.TranslateY = -(y * p.speeds[i])
	}
}

// Cursor mirrors the pointer into the --cursor-x and --cursor-y custom
// properties of the body, for a styled cursor to follow.
type Cursor struct {
	body *Node
}

// NewCursor initializes the cursor properties on the root and, unless
// reduced motion is set, updates the body on every pointer move.
func NewCursor(bus *SignalBus, doc *Document) *Cursor {
	root := doc.Root()
	root.SetStyle("--cursor-x", "0px")
	root.SetStyle("--cursor-y", "0px")
	root.SetStyle("--cursor-opacity", "0")
	c := &Cursor{body: doc.Body()}
	if !bus.ReducedMotion() {
		bus.OnPointer(c.Move)
	}
	return c
}

// Move places the cursor at (x, y) and shows it.
func (c *Cursor) Move(x, y float64) {
	c.body.SetStyle("--cursor-x", px(x))
	c.body.SetStyle("--cursor-y", px(y))
	c.body.SetStyle("--cursor-opacity", "1")
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + "px"
}

// CaseNavigation links the i-th .nav-dot to the i-th .case-item: clicking a
// dot makes both active and replays the case study's growth graph.
type CaseNavigation struct {
	dots  []*Node
	items []*Node
	log   *zap.Logger
}

// NewCaseNavigation attaches click handlers to every nav dot.
func NewCaseNavigation(doc *Document, logger *zap.Logger) *CaseNavigation {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CaseNavigation{
		dots:  doc.FindAll(Class("nav-dot")),
		items: doc.FindAll(Class("case-item")),
		log:   logger,
	}
	for i, dot := range c.dots {
		dot.OnClick = chainClick(dot.OnClick, func(ClickContext) { c.Select(i) })
	}
	return c
}

// Select activates dot i and its case item.
func (c *CaseNavigation) Select(i int) {
	if i < 0 || i >= len(c.dots) {
		return
	}
	for _, d := range c.dots {
		d.RemoveClass("active")
	}
	for _, it := range c.items {
		it.RemoveClass("active")
	}
	c.dots[i].AddClass("active")
	if i < len(c.items) {
		c.items[i].AddClass("active")
		StartGrowth(c.items[i])
	}
	c.log.Debug("case selected", zap.Int("index", i))
}
