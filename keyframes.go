package ambient

import "math"

func deg(d float64) float64 { return d * math.Pi / 180 }

// ExplodeKeyframes moves a glyph up from below through an overshoot, then
// settles it at rest.
var ExplodeKeyframes = &Keyframes{
	Name:   "letterExplode",
	Fields: PoseTranslateY | PoseScale | PoseAlpha,
	Frames: []Keyframe{
		{Offset: 0, Pose: Pose{TranslateY: 20, Scale: 0.8, Alpha: 0}},
		{Offset: 0.5, Pose: Pose{TranslateY: -10, Scale: 1.2, Alpha: 1}},
		{Offset: 1, Pose: Pose{TranslateY: 0, Scale: 1, Alpha: 1}},
	},
}

// OrbitKeyframes cycles a glyph through four rotation and vertical-offset
// phases. The last frame returns to 0deg, so the final quarter unwinds.
var OrbitKeyframes = &Keyframes{
	Name:   "letterOrbit",
	Fields: PoseTranslateY | PoseRotation,
	Frames: []Keyframe{
		{Offset: 0, Pose: Pose{}},
		{Offset: 0.25, Pose: Pose{TranslateY: -5, Rotation: deg(90)}},
		{Offset: 0.5, Pose: Pose{TranslateY: 0, Rotation: deg(180)}},
		{Offset: 0.75, Pose: Pose{TranslateY: 5, Rotation: deg(270)}},
		{Offset: 1, Pose: Pose{}},
	},
}

// WaveKeyframes bobs a glyph up and back down.
var WaveKeyframes = &Keyframes{
	Name:   "letterWave",
	Fields: PoseTranslateY,
	Frames: []Keyframe{
		{Offset: 0, Pose: Pose{}},
		{Offset: 0.5, Pose: Pose{TranslateY: -10}},
		{Offset: 1, Pose: Pose{}},
	},
}

// IconFloatKeyframes drifts a decorative icon around a small loop.
var IconFloatKeyframes = &Keyframes{
	Name:   "iconFloat",
	Fields: PoseTranslateX | PoseTranslateY | PoseRotation | PoseScale,
	Frames: []Keyframe{
		{Offset: 0, Pose: Pose{Scale: 1}},
		{Offset: 0.25, Pose: Pose{TranslateX: 10, TranslateY: -15, Rotation: deg(90), Scale: 1.05}},
		{Offset: 0.5, Pose: Pose{TranslateX: 0, TranslateY: -20, Rotation: deg(180), Scale: 0.95}},
		{Offset: 0.75, Pose: Pose{TranslateX: -10, TranslateY: -5, Rotation: deg(270), Scale: 1.02}},
		{Offset: 1, Pose: Pose{Scale: 1}},
	},
}

// PulseKeyframes is the breathing glow used by card pulses, stat energy bars
// and process nodes. Pages may declare their own instead.
var PulseKeyframes = &Keyframes{
	Name:   "pulse",
	Fields: PoseScale | PoseAlpha,
	Frames: []Keyframe{
		{Offset: 0, Pose: Pose{Scale: 1, Alpha: 0.6}},
		{Offset: 0.5, Pose: Pose{Scale: 1.08, Alpha: 1}},
		{Offset: 1, Pose: Pose{Scale: 1, Alpha: 0.6}},
	},
}

// GrowthKeyframes grows a case-study graph in from nothing.
var GrowthKeyframes = &Keyframes{
	Name:   "growth",
	Fields: PoseScale | PoseAlpha,
	Frames: []Keyframe{
		{Offset: 0, Pose: Pose{Scale: 0, Alpha: 0}},
		{Offset: 1, Pose: Pose{Scale: 1, Alpha: 1}},
	},
}

// energySweepKeyframes slides a highlight from one control-width left of
// its rest position to one control-width right of it.
func energySweepKeyframes(width float64) *Keyframes {
	return &Keyframes{
		Name:   "energySweep",
		Fields: PoseTranslateX,
		Frames: []Keyframe{
			{Offset: 0, Pose: Pose{TranslateX: -width}},
			{Offset: 1, Pose: Pose{TranslateX: width}},
		},
	}
}
