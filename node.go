package ambient

import "slices"

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	PointerID int
}

// ClickContext carries click event data. Target is the node that was hit;
// Node is the node whose handler is running (an ancestor while bubbling).
type ClickContext struct {
	Node      *Node
	Target    *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	PointerID int
}

// nodeIDCounter is a plain counter (not atomic: the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a document element. A single flat struct is used for every kind of
// element to avoid interface dispatch on the hot path.
//
// X, Y, Width and Height describe the layout box relative to the parent.
// The motion fields (TranslateX, TranslateY, ScaleX, ScaleY, Rotation, Alpha,
// Color) are what the engine writes; scale and rotation pivot on the box
// center.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Declarative surface
	classes []string
	attrs   map[string]string
	style   map[string]string

	// Layout (local)
	X, Y          float64
	Width, Height float64

	// Motion
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	Rotation               float64
	Alpha                  float64
	Color                  Color

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Filled draws the box (or a HitCircle) in Color when rendered.
	Filled bool

	// Content
	Text       string
	Path       []Vec2 // local-space polyline written by path generators
	PathClosed bool

	// Animation is the keyframe animation currently assigned to the node.
	// Assigning a new one replaces (restarts) the previous.
	Animation *Animation

	// Hit testing
	HitShape HitShape

	// Metadata
	UserData any

	// Per-node callbacks (nil by default; zero cost when unused)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)

	disposed bool
}

// NewNode creates an element with the given name and classes.
func NewNode(name string, classes ...string) *Node {
	n := &Node{
		ID:           nextNodeID(),
		Name:         name,
		ScaleX:       1,
		ScaleY:       1,
		Alpha:        1,
		Color:        ColorWhite,
		Visible:      true,
		Interactable: true,
	}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// SetBox sets the layout box relative to the parent.
func (n *Node) SetBox(x, y, w, h float64) {
	n.X, n.Y = x, y
	n.Width, n.Height = w, h
}

// SetTranslate sets the engine-owned translation offset.
func (n *Node) SetTranslate(x, y float64) {
	n.TranslateX = x
	n.TranslateY = y
}

// SetScale sets ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// --- Classes, attributes, style ---

// AddClass adds class c if not already present.
func (n *Node) AddClass(c string) {
	if c == "" || n.HasClass(c) {
		return
	}
	n.classes = append(n.classes, c)
}

// RemoveClass removes class c. No-op when absent.
func (n *Node) RemoveClass(c string) {
	if i := slices.Index(n.classes, c); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// Classes returns the class list. The returned slice MUST NOT be mutated.
func (n *Node) Classes() []string {
	return n.classes
}

// SetAttr sets a declarative attribute.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// Attr returns an attribute value and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// SetStyle sets an inline style property (e.g. "--cursor-x", "box-shadow").
// An empty value removes the property.
func (n *Node) SetStyle(key, value string) {
	if value == "" {
		delete(n.style, key)
		return
	}
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[key] = value
}

// Style returns an inline style property, or "" when unset.
func (n *Node) Style(key string) string {
	return n.style[key]
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("ambient: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("ambient: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("ambient: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Animation = nil
	n.Path = nil
	n.UserData = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnPointerMove = nil
	n.OnClick = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Queries ---

// Matcher selects nodes in tree queries.
type Matcher func(*Node) bool

// Class matches nodes carrying class c.
func Class(c string) Matcher {
	return func(n *Node) bool { return n.HasClass(c) }
}

// HasAttr matches nodes carrying attribute key, whatever its value.
func HasAttr(key string) Matcher {
	return func(n *Node) bool {
		_, ok := n.attrs[key]
		return ok
	}
}

// AttrEquals matches nodes whose attribute key equals value.
func AttrEquals(key, value string) Matcher {
	return func(n *Node) bool {
		v, ok := n.attrs[key]
		return ok && v == value
	}
}

// Named matches nodes by Name (the element id).
func Named(name string) Matcher {
	return func(n *Node) bool { return n.Name == name }
}

// AnyOf matches nodes accepted by at least one of ms.
func AnyOf(ms ...Matcher) Matcher {
	return func(n *Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// Find returns the first descendant (depth-first, document order) accepted
// by m, or nil.
func (n *Node) Find(m Matcher) *Node {
	for _, c := range n.children {
		if m(c) {
			return c
		}
		if found := c.Find(m); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant accepted by m in document order.
func (n *Node) FindAll(m Matcher) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if m(c) {
			out = append(out, c)
		}
	})
	return out
}

// Closest returns n or its nearest ancestor accepted by m, or nil.
func (n *Node) Closest(m Matcher) *Node {
	for p := n; p != nil; p = p.Parent {
		if m(p) {
			return p
		}
	}
	return nil
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
