package ambient

import (
	"math"
	"strings"
	"testing"
)

func TestSampleCount(t *testing.T) {
	tests := []struct {
		width, interval float64
		want            int
	}{
		{800, 5, 161},
		{801, 5, 161},
		{0, 5, 1},
		{800, 0, 0},
		{-1, 5, 0},
	}
	for _, tt := range tests {
		if got := SampleCount(tt.width, tt.interval); got != tt.want {
			t.Errorf("SampleCount(%v, %v) = %d, want %d", tt.width, tt.interval, got, tt.want)
		}
	}
}

func newWaveDoc() (*Scheduler, *Node, *WaveGenerator) {
	s := NewScheduler()
	d := NewDocument(800, 600)
	path := NewNode("signature-path")
	d.Body().AddChild(path)
	return s, path, NewWaveGenerator(s, d, DefaultConfig().Wave, nil)
}

func TestWaveInitialCurve(t *testing.T) {
	_, path, w := newWaveDoc()
	pts := w.Points()
	if len(pts) != 161 {
		t.Fatalf("points = %d, want 161", len(pts))
	}
	if pts[0].X != 0 || pts[160].X != 800 {
		t.Errorf("x range = [%v, %v], want [0, 800]", pts[0].X, pts[160].X)
	}
	for i, p := range pts {
		if math.Abs(p.Y-100) > 50+1e-9 {
			t.Errorf("point %d y = %v, outside the amplitude band", i, p.Y)
		}
	}
	d, ok := path.Attr("d")
	if !ok || !strings.HasPrefix(d, "M 0 100 L 0 100 L 5 ") {
		t.Errorf("d = %.40q", d)
	}
	if got := strings.Count(d, " L "); got != 161 {
		t.Errorf("d has %d line segments, want 161", got)
	}
	if len(path.Path) != 161 || path.PathClosed {
		t.Errorf("node path len %d closed %v", len(path.Path), path.PathClosed)
	}
}

func TestWavePhaseAdvancesEveryFrame(t *testing.T) {
	s, path, w := newWaveDoc()
	before, _ := path.Attr("d")
	prev := w.Phase()
	for i := range 10 {
		s.Advance(16 * ms)
		if w.Phase() <= prev {
			t.Fatalf("frame %d: phase %v did not increase from %v", i, w.Phase(), prev)
		}
		prev = w.Phase()
	}
	if math.Abs(w.Phase()-0.5) > 1e-9 {
		t.Errorf("phase = %v, want 0.5 after 10 frames", w.Phase())
	}
	if after, _ := path.Attr("d"); after == before {
		t.Error("path not redrawn")
	}
}

func TestWaveStop(t *testing.T) {
	s, _, w := newWaveDoc()
	s.Advance(16 * ms)
	w.Stop()
	p := w.Phase()
	s.Advance(16 * ms)
	if w.Phase() != p {
		t.Error("phase advanced after Stop")
	}
}

func TestWaveWithoutPath(t *testing.T) {
	s := NewScheduler()
	w := NewWaveGenerator(s, NewDocument(800, 600), DefaultConfig().Wave, nil)
	s.Advance(16 * ms)
	if w.Phase() != 0 || len(w.Points()) != 0 || s.Pending() != 0 {
		t.Error("generator active without a signature path")
	}
}
