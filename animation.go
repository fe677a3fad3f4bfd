package ambient

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenTranslate, TweenScale,
// TweenColor, TweenAlpha) and call Update(dt) each frame. If the target node
// is disposed, the group stops immediately.
//
// There is no global tween manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenTranslate creates a TweenGroup that animates node.TranslateX and
// node.TranslateY to the given offsets.
func TweenTranslate(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.TranslateX), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.TranslateY), float32(toY), duration, fn)
	g.fields[0] = &node.TranslateX
	g.fields[1] = &node.TranslateY
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// --- Keyframe animations ---

// PoseField selects which node properties a keyframe set drives.
type PoseField uint8

const (
	PoseTranslateX PoseField = 1 << iota
	PoseTranslateY
	PoseScale
	PoseRotation
	PoseAlpha
)

// Pose is a snapshot of the animatable node properties. Rotation is in radians.
type Pose struct {
	TranslateX, TranslateY float64
	Scale                  float64
	Rotation               float64
	Alpha                  float64
}

// Keyframe is a pose at a fractional offset in [0, 1] of one iteration.
type Keyframe struct {
	Offset float64
	Pose   Pose
}

// Keyframes is a named keyframe set. Frames must be sorted by Offset and
// start at 0 and end at 1.
type Keyframes struct {
	Name   string
	Fields PoseField
	Frames []Keyframe
}

// sample returns the pose at progress p in [0, 1]. fn eases each segment
// between adjacent keyframes.
func (k *Keyframes) sample(p float64, fn ease.TweenFunc) Pose {
	frames := k.Frames
	if len(frames) == 0 {
		return Pose{}
	}
	if p <= frames[0].Offset {
		return frames[0].Pose
	}
	for i := 1; i < len(frames); i++ {
		b := frames[i]
		if p > b.Offset {
			continue
		}
		a := frames[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Pose
		}
		t := (p - a.Offset) / span
		if fn != nil {
			t = float64(fn(float32(t), 0, 1, 1))
		}
		return Pose{
			TranslateX: lerp(a.Pose.TranslateX, b.Pose.TranslateX, t),
			TranslateY: lerp(a.Pose.TranslateY, b.Pose.TranslateY, t),
			Scale:      lerp(a.Pose.Scale, b.Pose.Scale, t),
			Rotation:   lerp(a.Pose.Rotation, b.Pose.Rotation, t),
			Alpha:      lerp(a.Pose.Alpha, b.Pose.Alpha, t),
		}
	}
	return frames[len(frames)-1].Pose
}

// Infinite makes an animation loop until replaced.
const Infinite = -1

// Animation plays a keyframe set on a node: a delay, then Iterations runs of
// Duration each (or forever), with optional fill-forwards of the last frame.
// Without fill-forwards the node's pre-animation pose is restored on finish.
type Animation struct {
	Keyframes    *Keyframes
	Duration     time.Duration
	Delay        time.Duration
	Iterations   int // 0 and 1 both mean a single run; Infinite loops
	Ease         ease.TweenFunc
	FillForwards bool

	elapsed time.Duration
	started bool
	done    bool
	base    Pose
}

// NewAnimation creates a single-run animation with no delay.
func NewAnimation(kf *Keyframes, duration time.Duration, fn ease.TweenFunc) *Animation {
	return &Animation{Keyframes: kf, Duration: duration, Ease: fn}
}

// WithDelay sets the start delay and returns a for chaining.
func (a *Animation) WithDelay(d time.Duration) *Animation {
	a.Delay = d
	return a
}

// Loop makes the animation repeat forever and returns a for chaining.
func (a *Animation) Loop() *Animation {
	a.Iterations = Infinite
	return a
}

// Forwards keeps the last frame applied after finishing and returns a.
func (a *Animation) Forwards() *Animation {
	a.FillForwards = true
	return a
}

// Started reports whether the delay has elapsed.
func (a *Animation) Started() bool { return a.started }

// Done reports whether a finite animation has completed.
func (a *Animation) Done() bool { return a.done }

// Elapsed returns the time advanced so far, delay included.
func (a *Animation) Elapsed() time.Duration { return a.elapsed }

// Restart rewinds the animation to before its delay.
func (a *Animation) Restart() {
	a.elapsed = 0
	a.started = false
	a.done = false
}

// advance moves the animation forward by dt and writes the resulting pose
// into n.
func (a *Animation) advance(n *Node, dt time.Duration) {
	if a.done || a.Keyframes == nil {
		return
	}
	a.elapsed += dt
	local := a.elapsed - a.Delay
	if local < 0 {
		return
	}
	if !a.started {
		a.started = true
		a.base = poseOf(n)
	}

	runs := a.Iterations
	if runs == 0 {
		runs = 1
	}
	if a.Duration <= 0 || (runs != Infinite && local >= time.Duration(runs)*a.Duration) {
		a.done = true
		if a.FillForwards {
			a.apply(n, a.Keyframes.sample(1, a.Ease))
		} else {
			a.apply(n, a.base)
		}
		return
	}
	p := float64(local%a.Duration) / float64(a.Duration)
	a.apply(n, a.Keyframes.sample(p, a.Ease))
}

func (a *Animation) apply(n *Node, p Pose) {
	f := a.Keyframes.Fields
	if f&PoseTranslateX != 0 {
		n.TranslateX = p.TranslateX
	}
	if f&PoseTranslateY != 0 {
		n.TranslateY = p.TranslateY
	}
	if f&PoseScale != 0 {
		n.ScaleX = p.Scale
		n.ScaleY = p.Scale
	}
	if f&PoseRotation != 0 {
		n.Rotation = p.Rotation
	}
	if f&PoseAlpha != 0 {
		n.Alpha = p.Alpha
	}
}

func poseOf(n *Node) Pose {
	return Pose{
		TranslateX: n.TranslateX,
		TranslateY: n.TranslateY,
		Scale:      n.ScaleX,
		Rotation:   n.Rotation,
		Alpha:      n.Alpha,
	}
}

// SetAnimation replaces the node's animation and starts a from the beginning.
// Passing nil clears it.
func (n *Node) SetAnimation(a *Animation) {
	if a != nil {
		a.Restart()
	}
	n.Animation = a
}

// animateTree advances every assigned animation in the subtree by dt.
func animateTree(n *Node, dt time.Duration) {
	if n.Animation != nil {
		n.Animation.advance(n, dt)
	}
	for _, c := range n.children {
		animateTree(c, dt)
	}
}
