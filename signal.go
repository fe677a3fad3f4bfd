package ambient

import (
	"time"

	"go.uber.org/zap"
)

// SignalState is the latest normalized host input. Reactive components read
// it; only the SignalBus writes it.
type SignalState struct {
	PointerX, PointerY float64
	ScrollY            float64 // offset of the last delivered scroll notification
	Width, Height      float64 // viewport of the last delivered resize notification
	ReducedMotion      bool    // sampled once at construction
	Loaded             bool    // set once, never cleared
}

// Signal is one normalized notification, as forwarded to a SignalSink.
type Signal struct {
	Type EventType
	X, Y float64 // pointer position, scroll offset in Y, or viewport size
	Node *Node   // focus target for EventFocusIn/EventFocusOut
}

// SignalSink receives every notification the bus delivers. The ecs package
// provides a donburi-backed sink.
type SignalSink interface {
	EmitSignal(Signal)
}

// SignalBus normalizes raw pointer, scroll, resize and focus input.
//
// Pointer updates are delivered unconditionally. Scroll notifications are
// throttled: the first event in a quiet period is delivered at once, later
// ones are coalesced and the latest value is delivered when the interval
// ends. Resize notifications are debounced: delivered once input has been
// quiet for the configured period, each new event restarting the wait.
type SignalBus struct {
	sched *Scheduler
	doc   *Document
	log   *zap.Logger

	state    SignalState
	throttle time.Duration
	quiet    time.Duration

	pointerSubs []func(x, y float64)
	scrollSubs  []func(y float64)
	resizeSubs  []func(w, h float64)
	focusSubs   []func(n *Node, focused bool)
	loadedSubs  []func()
	sinks       []SignalSink

	throttleTimer *Timer
	scrollPending bool
	latestScroll  float64

	resizeTimer        *Timer
	pendingW, pendingH float64
}

// NewSignalBus creates a bus on sched. doc may be nil; when set, raw scroll
// and resize input is applied to it immediately and pointer input drives its
// hover and click dispatch.
func NewSignalBus(sched *Scheduler, doc *Document, reducedMotion bool, throttle, quiet time.Duration, logger *zap.Logger) *SignalBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &SignalBus{
		sched:    sched,
		doc:      doc,
		log:      logger,
		throttle: throttle,
		quiet:    quiet,
	}
	b.state.ReducedMotion = reducedMotion
	if doc != nil {
		vp := doc.Viewport()
		b.state.Width, b.state.Height = vp.Width, vp.Height
		b.state.ScrollY = doc.ScrollY()
	}
	return b
}

// State returns a copy of the current signal state.
func (b *SignalBus) State() SignalState {
	return b.state
}

// ReducedMotion reports the reduced-motion preference sampled at construction.
func (b *SignalBus) ReducedMotion() bool {
	return b.state.ReducedMotion
}

// Pointer returns the latest pointer position.
func (b *SignalBus) Pointer() (x, y float64) {
	return b.state.PointerX, b.state.PointerY
}

// AddSink forwards every delivered notification to sink.
func (b *SignalBus) AddSink(sink SignalSink) {
	b.sinks = append(b.sinks, sink)
}

// OnPointer subscribes to pointer updates.
func (b *SignalBus) OnPointer(fn func(x, y float64)) {
	b.pointerSubs = append(b.pointerSubs, fn)
}

// OnScroll subscribes to throttled scroll notifications.
func (b *SignalBus) OnScroll(fn func(y float64)) {
	b.scrollSubs = append(b.scrollSubs, fn)
}

// OnResize subscribes to debounced resize notifications.
func (b *SignalBus) OnResize(fn func(w, h float64)) {
	b.resizeSubs = append(b.resizeSubs, fn)
}

// OnFocus subscribes to focus changes.
func (b *SignalBus) OnFocus(fn func(n *Node, focused bool)) {
	b.focusSubs = append(b.focusSubs, fn)
}

// OnLoaded subscribes to the one-time loaded transition. Subscribing after
// the transition runs fn immediately.
func (b *SignalBus) OnLoaded(fn func()) {
	if b.state.Loaded {
		fn()
		return
	}
	b.loadedSubs = append(b.loadedSubs, fn)
}

// --- Raw input ---

// PointerMove records a pointer position in viewport coordinates and
// notifies subscribers immediately.
func (b *SignalBus) PointerMove(x, y float64) {
	b.state.PointerX = x
	b.state.PointerY = y
	if b.doc != nil {
		b.doc.PointerMove(0, x, y)
	}
	for _, fn := range b.pointerSubs {
		fn(x, y)
	}
	b.emit(Signal{Type: EventPointerMove, X: x, Y: y})
}

// Click dispatches a click at (x, y) into the document.
func (b *SignalBus) Click(x, y float64) {
	b.PointerMove(x, y)
	if b.doc != nil {
		b.doc.Click(0, x, y)
	}
	b.emit(Signal{Type: EventClick, X: x, Y: y})
}

// Scroll records a raw scroll offset. Notification is throttled.
func (b *SignalBus) Scroll(y float64) {
	if b.doc != nil {
		b.doc.SetScrollY(y)
		y = b.doc.ScrollY()
	}
	b.latestScroll = y
	if !b.throttleTimer.Stopped() {
		b.scrollPending = true
		return
	}
	b.deliverScroll(y)
	b.throttleTimer = b.sched.After(b.throttle, b.endThrottle)
}

func (b *SignalBus) endThrottle() {
	if !b.scrollPending {
		return
	}
	b.scrollPending = false
	b.deliverScroll(b.latestScroll)
	b.throttleTimer = b.sched.After(b.throttle, b.endThrottle)
}

func (b *SignalBus) deliverScroll(y float64) {
	b.state.ScrollY = y
	for _, fn := range b.scrollSubs {
		fn(y)
	}
	b.emit(Signal{Type: EventScroll, Y: y})
}

// Resize records a raw viewport size. Notification is debounced; a pending
// notification is cancelled by every new call.
func (b *SignalBus) Resize(w, h float64) {
	if b.doc != nil {
		b.doc.SetViewport(w, h)
	}
	b.pendingW, b.pendingH = w, h
	b.resizeTimer.Stop()
	b.resizeTimer = b.sched.After(b.quiet, b.deliverResize)
}

func (b *SignalBus) deliverResize() {
	w, h := b.pendingW, b.pendingH
	b.state.Width, b.state.Height = w, h
	b.log.Debug("resize delivered", zap.Float64("width", w), zap.Float64("height", h))
	for _, fn := range b.resizeSubs {
		fn(w, h)
	}
	b.emit(Signal{Type: EventResize, X: w, Y: h})
}

// FocusIn marks n as focused.
func (b *SignalBus) FocusIn(n *Node) {
	b.focus(n, true)
}

// FocusOut clears the focused mark from n.
func (b *SignalBus) FocusOut(n *Node) {
	b.focus(n, false)
}

func (b *SignalBus) focus(n *Node, focused bool) {
	if n == nil {
		return
	}
	ev := EventFocusOut
	if focused {
		n.AddClass("focused")
		ev = EventFocusIn
	} else {
		n.RemoveClass("focused")
	}
	for _, fn := range b.focusSubs {
		fn(n, focused)
	}
	b.emit(Signal{Type: ev, Node: n})
}

// MarkLoaded sets the loaded flag. Only the first call has any effect.
func (b *SignalBus) MarkLoaded() {
	if b.state.Loaded {
		return
	}
	b.state.Loaded = true
	if b.doc != nil {
		b.doc.Body().AddClass("loaded")
	}
	subs := b.loadedSubs
	b.loadedSubs = nil
	for _, fn := range subs {
		fn()
	}
}

func (b *SignalBus) emit(s Signal) {
	for _, sink := range b.sinks {
		sink.EmitSignal(s)
	}
}
