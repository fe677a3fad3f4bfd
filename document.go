package ambient

// Document is the top-level object that owns the element tree, viewport,
// scroll offset and pointer state.
//
// The root node is translated by the negative scroll offset, so world
// coordinates of every element are viewport (client) coordinates: the same
// space pointer positions arrive in.
type Document struct {
	root *Node
	body *Node

	width, height float64
	scrollY       float64

	// Input state
	handlers    handlerRegistry
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
}

// NewDocument creates a document with a root and an empty body sized to the
// given viewport.
func NewDocument(width, height float64) *Document {
	root := NewNode("root")
	body := NewNode("body")
	root.AddChild(body)
	return &Document{
		root:   root,
		body:   body,
		width:  width,
		height: height,
	}
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

// Body returns the body node. Page content is added beneath it.
func (d *Document) Body() *Node {
	return d.body
}

// Viewport returns the visible area in world coordinates.
func (d *Document) Viewport() Rect {
	return Rect{Width: d.width, Height: d.height}
}

// SetViewport resizes the visible area.
func (d *Document) SetViewport(width, height float64) {
	d.width = width
	d.height = height
}

// ScrollY returns the current vertical scroll offset.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// SetScrollY scrolls the document; negative offsets clamp to zero.
func (d *Document) SetScrollY(y float64) {
	if y < 0 {
		y = 0
	}
	d.scrollY = y
	d.root.Y = -y
}

// Find returns the first element accepted by m, or nil.
func (d *Document) Find(m Matcher) *Node {
	return d.root.Find(m)
}

// FindAll returns every element accepted by m in document order.
func (d *Document) FindAll(m Matcher) []*Node {
	return d.root.FindAll(m)
}

// ByName returns the element with the given Name (its id), or nil.
func (d *Document) ByName(name string) *Node {
	return d.Find(Named(name))
}
