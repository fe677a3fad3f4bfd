package ambient

// syntheticPointerEvent represents a single injected pointer event in
// viewport coordinates, identical to real pointer input once consumed.
type syntheticPointerEvent struct {
	x, y  float64
	click bool
}

// InjectMove queues a pointer move to (x, y). The event is consumed on the
// next Engine.Update.
func (d *Document) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a move to (x, y) followed by a click there.
// Consumes two frames.
func (d *Document) InjectClick(x, y float64) {
	d.InjectMove(x, y)
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{x: x, y: y, click: true})
}

// InjectPath queues linearly interpolated moves from (fromX, fromY) to
// (toX, toY) over the given number of frames (minimum 2).
func (d *Document) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		d.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// pendingInjections reports how many synthetic events are still queued.
func (d *Document) pendingInjections() int {
	return len(d.injectQueue)
}

// popInjected removes and returns the oldest queued event.
func (d *Document) popInjected() (syntheticPointerEvent, bool) {
	if len(d.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
	return evt, true
}
