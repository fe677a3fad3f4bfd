package ambient

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// WaveGenerator redraws the signature curve every frame. Each sample's
// offset from the center line is the product of a traveling sine and a
// slower fixed sine, so the wave swells and fades along its length.
//
// It runs regardless of the reduced-motion preference.
type WaveGenerator struct {
	cfg   WaveConfig
	log   *zap.Logger
	path  *Node
	phase float64
	pts   []Vec2
	sb    strings.Builder
	frame FrameHandle
}

// NewWaveGenerator draws the initial curve into the signature-path node
// and starts advancing it each frame. Without that node the generator is
// idle.
func NewWaveGenerator(sched *Scheduler, doc *Document, cfg WaveConfig, logger *zap.Logger) *WaveGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &WaveGenerator{cfg: cfg, log: logger}
	w.path = doc.ByName("signature-path")
	if w.path == nil {
		logger.Debug("signature wave disabled", zap.String("reason", "no signature-path"))
		return w
	}
	w.generate()
	w.frame = sched.OnFrame(func(time.Duration) { w.Tick() })
	return w
}

// Phase returns the accumulated phase.
func (w *WaveGenerator) Phase() float64 {
	return w.phase
}

// Points returns the last sampled curve. The slice is reused on every tick.
func (w *WaveGenerator) Points() []Vec2 {
	return w.pts
}

// Tick advances the phase by one step and resamples the curve.
func (w *WaveGenerator) Tick() {
	w.phase += w.cfg.Step
	w.generate()
}

// Stop ends the per-frame regeneration.
func (w *WaveGenerator) Stop() {
	w.frame.Stop()
}

// SampleCount returns the number of samples over [0, width] at the given
// interval, both ends included.
func SampleCount(width, interval float64) int {
	if interval <= 0 || width < 0 {
		return 0
	}
	return int(math.Floor(width/interval)) + 1
}

func (w *WaveGenerator) generate() {
	c := w.cfg
	center := c.Height / 2
	n := SampleCount(c.Width, c.Interval)

	w.pts = w.pts[:0]
	for i := range n {
		x := float64(i) * c.Interval
		y := center + math.Sin(x*c.Frequency+w.phase)*c.Amplitude*math.Sin(x*c.ModFrequency)
		w.pts = append(w.pts, Vec2{X: x, Y: y})
	}
	if w.path == nil {
		return
	}

	w.sb.Reset()
	w.sb.WriteString("M 0 ")
	w.sb.WriteString(strconv.FormatFloat(center, 'g', -1, 64))
	for _, p := range w.pts {
		w.sb.WriteString(" L ")
		w.sb.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		w.sb.WriteByte(' ')
		w.sb.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	w.path.SetAttr("d", w.sb.String())
	w.path.Path = append(w.path.Path[:0], w.pts...)
	w.path.PathClosed = false
}
