package ambient

import "slices"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	x, y  float64
	hover []*Node // hovered node followed by its ancestors
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered document-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = slices.DeleteFunc(h.reg.click, func(c clickHandler) bool { return c.id == h.id })
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	return slices.DeleteFunc(s, func(p pointerHandler) bool { return p.id == id })
}

// OnPointerMove registers a document-level callback for pointer move events.
func (d *Document) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerMove = append(d.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventPointerMove}
}

// OnPointerEnter registers a document-level callback fired for every node
// the pointer enters.
func (d *Document) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerEnter = append(d.handlers.pointerEnter, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventPointerEnter}
}

// OnPointerLeave registers a document-level callback fired for every node
// the pointer leaves.
func (d *Document) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.pointerLeave = append(d.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventPointerLeave}
}

// OnClick registers a document-level callback for click events.
func (d *Document) OnClick(fn func(ClickContext)) CallbackHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.click = append(d.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &d.handlers, event: EventClick}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the layout box. Zero-sized nodes without a
// HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, document order),
// appending hit-testable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Width != 0 || n.Height != 0 {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// HitTest finds the topmost interactable node at world point (x, y).
// Returns nil if nothing is hit.
func (d *Document) HitTest(x, y float64) *Node {
	d.hitBuf = collectInteractable(d.root, d.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(d.hitBuf) - 1; i >= 0; i-- {
		n := d.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// hoverChain returns target followed by its ancestors.
func hoverChain(target *Node, buf []*Node) []*Node {
	buf = buf[:0]
	for p := target; p != nil; p = p.Parent {
		buf = append(buf, p)
	}
	return buf
}

// --- Pointer processing ---

// PointerMove runs the hover state machine for a pointer at viewport
// coordinates (x, y). Nodes that left the hovered chain receive
// pointer-leave (innermost first); nodes that joined it receive
// pointer-enter (outermost first), matching browser enter/leave semantics.
func (d *Document) PointerMove(pointerID int, x, y float64) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &d.pointers[pointerID]
	target := d.HitTest(x, y)
	chain := hoverChain(target, nil)

	for _, old := range ps.hover {
		if old.disposed || slices.Contains(chain, old) {
			continue
		}
		d.firePointer(EventPointerLeave, old, pointerID, x, y)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if slices.Contains(ps.hover, chain[i]) {
			continue
		}
		d.firePointer(EventPointerEnter, chain[i], pointerID, x, y)
	}
	ps.hover = chain

	if x != ps.x || y != ps.y {
		d.firePointer(EventPointerMove, target, pointerID, x, y)
		ps.x = x
		ps.y = y
	}
}

// Click hit-tests (x, y) and dispatches a click that bubbles from the hit
// node through its ancestors. Document-level handlers run first, once.
func (d *Document) Click(pointerID int, x, y float64) {
	target := d.HitTest(x, y)
	ctx := ClickContext{Target: target, GlobalX: x, GlobalY: y, PointerID: pointerID}
	if target != nil {
		ctx.Node = target
		ctx.UserData = target.UserData
		ctx.LocalX, ctx.LocalY = target.WorldToLocal(x, y)
	}
	for _, h := range d.handlers.click {
		h.fn(ctx)
	}
	for n := target; n != nil; n = n.Parent {
		if n.OnClick == nil {
			continue
		}
		c := ctx
		c.Node = n
		c.UserData = n.UserData
		c.LocalX, c.LocalY = n.WorldToLocal(x, y)
		n.OnClick(c)
	}
}

// Hovered returns the node currently under the given pointer, or nil.
func (d *Document) Hovered(pointerID int) *Node {
	if pointerID < 0 || pointerID >= maxPointers || len(d.pointers[pointerID].hover) == 0 {
		return nil
	}
	return d.pointers[pointerID].hover[0]
}

func (d *Document) firePointer(ev EventType, node *Node, pointerID int, x, y float64) {
	ctx := PointerContext{Node: node, GlobalX: x, GlobalY: y, PointerID: pointerID}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(x, y)
		ctx.UserData = node.UserData
	}
	switch ev {
	case EventPointerEnter:
		for _, h := range d.handlers.pointerEnter {
			h.fn(ctx)
		}
		if node != nil && node.OnPointerEnter != nil {
			node.OnPointerEnter(ctx)
		}
	case EventPointerLeave:
		for _, h := range d.handlers.pointerLeave {
			h.fn(ctx)
		}
		if node != nil && node.OnPointerLeave != nil {
			node.OnPointerLeave(ctx)
		}
	case EventPointerMove:
		for _, h := range d.handlers.pointerMove {
			h.fn(ctx)
		}
		if node != nil && node.OnPointerMove != nil {
			node.OnPointerMove(ctx)
		}
	}
}

// chainPointer composes two pointer callbacks; either may be nil.
func chainPointer(prev, next func(PointerContext)) func(PointerContext) {
	if prev == nil {
		return next
	}
	return func(ctx PointerContext) {
		prev(ctx)
		next(ctx)
	}
}

// chainClick composes two click callbacks; either may be nil.
func chainClick(prev, next func(ClickContext)) func(ClickContext) {
	if prev == nil {
		return next
	}
	return func(ctx ClickContext) {
		prev(ctx)
		next(ctx)
	}
}
