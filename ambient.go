package ambient

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorAccent is the warm accent (#FF6B35) used by links, glyph hover and ripples.
var ColorAccent = Color{R: 1, G: 107.0 / 255, B: 53.0 / 255, A: 1}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping area of r and other. The result has
// zero width or height when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Range is a general-purpose min/max range.
// Used by the particle field seeding and effect jitter.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Margin insets (negative values) or outsets a rectangle per edge. Values
// are fractions of the rectangle's size, like a percentage root margin.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Apply grows r by the margin. A Bottom of -0.1 pulls the bottom edge up by
// 10% of the height.
func (m Margin) Apply(r Rect) Rect {
	top := m.Top * r.Height
	bottom := m.Bottom * r.Height
	left := m.Left * r.Width
	right := m.Right * r.Width
	return Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerMove  EventType = iota // fires when the pointer moves
	EventPointerEnter                  // fires when the pointer enters a node's bounds
	EventPointerLeave                  // fires when the pointer leaves a node's bounds
	EventClick                         // fires on click over a node (bubbles to ancestors)
	EventScroll                        // throttled scroll notification
	EventResize                        // debounced resize notification
	EventFocusIn                       // a node gained focus
	EventFocusOut                      // a node lost focus
)

// String returns the event name used in logs and scripts.
func (e EventType) String() string {
	switch e {
	case EventPointerMove:
		return "pointermove"
	case EventPointerEnter:
		return "pointerenter"
	case EventPointerLeave:
		return "pointerleave"
	case EventClick:
		return "click"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	case EventFocusIn:
		return "focusin"
	case EventFocusOut:
		return "focusout"
	default:
		return "unknown"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
