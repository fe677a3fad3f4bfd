package ambient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	frames         prometheus.Counter
	frameSeconds   prometheus.Histogram
	particles      prometheus.Gauge
	effectsActive  prometheus.Gauge
	effectsSpawned *prometheus.CounterVec
	targetsFired   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg when it is not
// nil. Registration failures (for example a second engine on the same
// registry) leave the collectors working but unexported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ambient_frames_total",
			Help: "Number of engine frames advanced.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ambient_frame_seconds",
			Help:    "Wall time spent in one engine update.",
			Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033},
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ambient_particles",
			Help: "Live particles in the ambient field.",
		}),
		effectsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ambient_effects_active",
			Help: "Transient effects currently in the document.",
		}),
		effectsSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ambient_effects_spawned_total",
			Help: "Transient effects spawned, by kind.",
		}, []string{"kind"}),
		targetsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ambient_targets_fired_total",
			Help: "Observed targets that fired, by category.",
		}, []string{"category"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{
			m.frames, m.frameSeconds, m.particles,
			m.effectsActive, m.effectsSpawned, m.targetsFired,
		} {
			_ = reg.Register(c)
		}
	}
	return m
}

func (m *Metrics) frame(took time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameSeconds.Observe(took.Seconds())
}

func (m *Metrics) setParticles(n int) {
	if m == nil {
		return
	}
	m.particles.Set(float64(n))
}

func (m *Metrics) setEffects(n int) {
	if m == nil {
		return
	}
	m.effectsActive.Set(float64(n))
}

func (m *Metrics) effectSpawned(kind EffectKind) {
	if m == nil {
		return
	}
	m.effectsSpawned.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) targetFired(c Category) {
	if m == nil {
		return
	}
	m.targetsFired.WithLabelValues(c.String()).Inc()
}
