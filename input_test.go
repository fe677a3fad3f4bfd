package ambient

import (
	"slices"
	"testing"
)

func newInputDoc() (*Document, *Node, *Node) {
	d := NewDocument(800, 600)
	card := NewNode("card", "focus-card")
	card.SetBox(100, 100, 200, 100)
	icon := NewNode("icon")
	icon.SetBox(10, 10, 20, 20)
	card.AddChild(icon)
	d.Body().AddChild(card)
	return d, card, icon
}

// --- HitShape ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{0, 0, true},
		{10, 10, true},
		{-1, 5, false},
		{5, 11, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 5, CenterY: 5, Radius: 5}
	if !c.Contains(5, 0) {
		t.Error("edge point should be inside")
	}
	if c.Contains(0, 0) {
		t.Error("corner should be outside")
	}
}

// --- HitTest ---

func TestHitTest_TopmostWins(t *testing.T) {
	d, card, icon := newInputDoc()
	if got := d.HitTest(115, 115); got != icon {
		t.Errorf("HitTest over icon = %v, want icon", got)
	}
	if got := d.HitTest(250, 150); got != card {
		t.Errorf("HitTest over card = %v, want card", got)
	}
	if got := d.HitTest(10, 10); got != nil {
		t.Errorf("HitTest over empty space = %v, want nil", got)
	}
}

func TestHitTest_SkipsHiddenAndNonInteractable(t *testing.T) {
	d, card, icon := newInputDoc()
	icon.Interactable = false
	if got := d.HitTest(115, 115); got != card {
		t.Errorf("non-interactable icon still hit: %v", got)
	}
	card.Visible = false
	if got := d.HitTest(115, 115); got != nil {
		t.Errorf("hidden subtree still hit: %v", got)
	}
}

func TestHitTest_FollowsScroll(t *testing.T) {
	d, card, _ := newInputDoc()
	d.SetScrollY(100)
	if got := d.HitTest(250, 50); got != card {
		t.Errorf("HitTest after scroll = %v, want card", got)
	}
}

func TestHitTest_CustomShape(t *testing.T) {
	d := NewDocument(800, 600)
	dot := NewNode("dot")
	dot.SetBox(50, 50, 0, 0)
	dot.HitShape = HitCircle{Radius: 10}
	d.Body().AddChild(dot)
	if d.HitTest(55, 55) != dot {
		t.Error("circle hit shape missed")
	}
	if d.HitTest(65, 65) != nil {
		t.Error("point outside circle hit")
	}
}

// --- Hover chain ---

func TestPointerMove_EnterLeaveOrder(t *testing.T) {
	d, card, icon := newInputDoc()
	var log []string
	card.OnPointerEnter = func(PointerContext) { log = append(log, "enter card") }
	card.OnPointerLeave = func(PointerContext) { log = append(log, "leave card") }
	icon.OnPointerEnter = func(PointerContext) { log = append(log, "enter icon") }
	icon.OnPointerLeave = func(PointerContext) { log = append(log, "leave icon") }

	d.PointerMove(0, 115, 115) // straight onto the icon
	d.PointerMove(0, 250, 150) // icon -> card only
	d.PointerMove(0, 10, 10)   // out

	want := []string{"enter card", "enter icon", "leave icon", "leave card"}
	if !slices.Equal(log, want) {
		t.Errorf("events = %v, want %v", log, want)
	}
	if d.Hovered(0) != nil {
		t.Errorf("Hovered = %v after leaving", d.Hovered(0))
	}
}

func TestPointerMove_MoveWithinNodeNoReenter(t *testing.T) {
	d, card, _ := newInputDoc()
	enters, moves := 0, 0
	card.OnPointerEnter = func(PointerContext) { enters++ }
	card.OnPointerMove = func(PointerContext) { moves++ }
	d.PointerMove(0, 200, 150)
	d.PointerMove(0, 210, 150)
	d.PointerMove(0, 210, 150) // same position: no move event
	if enters != 1 {
		t.Errorf("enters = %d, want 1", enters)
	}
	if moves != 2 {
		t.Errorf("moves = %d, want 2", moves)
	}
	if d.Hovered(0) != card {
		t.Errorf("Hovered = %v, want card", d.Hovered(0))
	}
}

func TestPointerMove_InvalidPointerIgnored(t *testing.T) {
	d, card, _ := newInputDoc()
	card.OnPointerEnter = func(PointerContext) { t.Error("enter fired for invalid pointer") }
	d.PointerMove(-1, 200, 150)
	d.PointerMove(maxPointers, 200, 150)
	if d.Hovered(maxPointers) != nil {
		t.Error("Hovered for invalid pointer should be nil")
	}
}

func TestPointerContextLocalCoords(t *testing.T) {
	d, card, _ := newInputDoc()
	var ctx PointerContext
	card.OnPointerEnter = func(c PointerContext) { ctx = c }
	d.PointerMove(0, 250, 160)
	if ctx.Node != card || ctx.LocalX != 150 || ctx.LocalY != 60 {
		t.Errorf("ctx = %+v", ctx)
	}
}

// --- Click ---

func TestClick_Bubbles(t *testing.T) {
	d, card, icon := newInputDoc()
	var log []string
	d.OnClick(func(c ClickContext) { log = append(log, "doc") })
	icon.OnClick = func(c ClickContext) {
		if c.Target != icon {
			t.Errorf("Target = %v, want icon", c.Target)
		}
		log = append(log, "icon")
	}
	card.OnClick = func(c ClickContext) {
		if c.Node != card || c.Target != icon {
			t.Errorf("bubbled ctx Node=%v Target=%v", c.Node, c.Target)
		}
		log = append(log, "card")
	}
	d.Click(0, 115, 115)
	want := []string{"doc", "icon", "card"}
	if !slices.Equal(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestClick_Miss(t *testing.T) {
	d, _, _ := newInputDoc()
	var got ClickContext
	calls := 0
	d.OnClick(func(c ClickContext) { got = c; calls++ })
	d.Click(0, 5, 5)
	if calls != 1 || got.Target != nil {
		t.Errorf("calls=%d target=%v", calls, got.Target)
	}
}

// --- Document handlers ---

func TestCallbackHandleRemove(t *testing.T) {
	d, _, _ := newInputDoc()
	n := 0
	h := d.OnPointerEnter(func(PointerContext) { n++ })
	d.PointerMove(0, 250, 150)
	h.Remove()
	d.PointerMove(0, 10, 10)
	d.PointerMove(0, 250, 150)
	if n != 3 {
		t.Errorf("n = %d, want 3 (root, body and card on the first pass only)", n)
	}
	CallbackHandle{}.Remove() // zero handle is a no-op
}

func TestChainPointer(t *testing.T) {
	var log []string
	a := func(PointerContext) { log = append(log, "a") }
	b := func(PointerContext) { log = append(log, "b") }
	chainPointer(nil, b)(PointerContext{})
	chainPointer(a, b)(PointerContext{})
	if !slices.Equal(log, []string{"b", "a", "b"}) {
		t.Errorf("log = %v", log)
	}
}
