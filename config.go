package ambient

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Millis is a duration expressed in whole milliseconds in JSON.
type Millis int64

// Duration converts m to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// FieldConfig tunes the particle field.
type FieldConfig struct {
	// MaxParticles caps the seeded count.
	MaxParticles int `json:"maxParticles"`
	// WidthDivisor sets the density: one particle per WidthDivisor pixels of width.
	WidthDivisor float64 `json:"widthDivisor"`
	// LinkDistance is the distance below which two particles are connected.
	LinkDistance float64 `json:"linkDistance"`
	// LinkAlpha is the link opacity at distance zero.
	LinkAlpha float64 `json:"linkAlpha"`
	// AttractRadius is the pointer attraction radius.
	AttractRadius float64 `json:"attractRadius"`
	// AttractGain scales the per-tick velocity nudge toward the pointer.
	AttractGain float64 `json:"attractGain"`
	// Speed bounds each initial velocity component.
	Speed Range `json:"speed"`
	// Radius bounds the disc radius.
	Radius Range `json:"radius"`
	// Opacity bounds the disc opacity.
	Opacity Range `json:"opacity"`
}

// MagneticConfig tunes the magnetic field controller.
type MagneticConfig struct {
	WeakRadius     float64 `json:"weakRadius"`
	StrongRadius   float64 `json:"strongRadius"`
	Pull           float64 `json:"pull"`
	ChargeDistance float64 `json:"chargeDistance"`
}

// TypographyConfig tunes the kinetic title sequencer.
type TypographyConfig struct {
	Stagger         Millis  `json:"stagger"`
	ExplodeStagger  Millis  `json:"explodeStagger"`
	ExplodeDuration Millis  `json:"explodeDuration"`
	OrbitDuration   Millis  `json:"orbitDuration"`
	WaveDuration    Millis  `json:"waveDuration"`
	LoopStagger     Millis  `json:"loopStagger"`
	HoverScale      float64 `json:"hoverScale"`
	HoverLift       float64 `json:"hoverLift"`
}

// VisibilityConfig tunes the viewport-triggered controller.
type VisibilityConfig struct {
	RevealThreshold  float64 `json:"revealThreshold"`
	RevealMargin     Margin  `json:"revealMargin"`
	CounterThreshold float64 `json:"counterThreshold"`
	RevealJitter     Millis  `json:"revealJitter"`
	CounterSteps     int     `json:"counterSteps"`
}

// EffectsConfig tunes the transient effect spawner.
type EffectsConfig struct {
	RippleLifetime    Millis  `json:"rippleLifetime"`
	RippleSize        float64 `json:"rippleSize"`
	RippleScale       float64 `json:"rippleScale"`
	ClickWaveLifetime Millis  `json:"clickWaveLifetime"`
	ClickWaveScale    float64 `json:"clickWaveScale"`
	SweepDuration     Millis  `json:"sweepDuration"`
}

// WaveConfig tunes the procedural wave generator.
type WaveConfig struct {
	Step         float64 `json:"step"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Interval     float64 `json:"interval"`
	Amplitude    float64 `json:"amplitude"`
	Frequency    float64 `json:"frequency"`
	ModFrequency float64 `json:"modFrequency"`
}

// Config holds every tunable of the engine. Start from DefaultConfig.
type Config struct {
	ScrollThrottle Millis  `json:"scrollThrottle"`
	ResizeDebounce Millis  `json:"resizeDebounce"`
	LoadedAfter    Millis  `json:"loadedAfter"`
	ParallaxSpeed  float64 `json:"parallaxSpeed"`
	OrganicPeriod  Millis  `json:"organicPeriod"`

	Field      FieldConfig      `json:"field"`
	Magnetic   MagneticConfig   `json:"magnetic"`
	Typography TypographyConfig `json:"typography"`
	Visibility VisibilityConfig `json:"visibility"`
	Effects    EffectsConfig    `json:"effects"`
	Wave       WaveConfig       `json:"wave"`

	// ReducedMotion is the user's motion preference, sampled once by New.
	ReducedMotion bool `json:"reducedMotion"`
	// Seed makes all randomness reproducible. Zero picks a fixed default.
	Seed uint64 `json:"seed"`

	// Logger receives structured logs. Nil disables logging.
	Logger *zap.Logger `json:"-"`
	// Registerer, when set, receives the engine's collectors.
	Registerer prometheus.Registerer `json:"-"`
	// Surface is the drawing target of the particle field. Nil disables the
	// field, like a page without a canvas.
	Surface Surface `json:"-"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		ScrollThrottle: 16,
		ResizeDebounce: 250,
		LoadedAfter:    1000,
		ParallaxSpeed:  0.5,
		OrganicPeriod:  8000,
		Field: FieldConfig{
			MaxParticles:  50,
			WidthDivisor:  30,
			LinkDistance:  100,
			LinkAlpha:     0.1,
			AttractRadius: 150,
			AttractGain:   0.0001,
			Speed:         Range{Min: -0.25, Max: 0.25},
			Radius:        Range{Min: 1, Max: 3},
			Opacity:       Range{Min: 0.1, Max: 0.4},
		},
		Magnetic: MagneticConfig{
			WeakRadius:     100,
			StrongRadius:   150,
			Pull:           0.3,
			ChargeDistance: 100,
		},
		Typography: TypographyConfig{
			Stagger:         100,
			ExplodeStagger:  50,
			ExplodeDuration: 1500,
			OrbitDuration:   3000,
			WaveDuration:    2000,
			LoopStagger:     100,
			HoverScale:      1.2,
			HoverLift:       -5,
		},
		Visibility: VisibilityConfig{
			RevealThreshold:  0.1,
			RevealMargin:     Margin{Bottom: -0.1},
			CounterThreshold: 0.5,
			RevealJitter:     300,
			CounterSteps:     60,
		},
		Effects: EffectsConfig{
			RippleLifetime:    600,
			RippleSize:        20,
			RippleScale:       20,
			ClickWaveLifetime: 400,
			ClickWaveScale:    4,
			SweepDuration:     600,
		},
		Wave: WaveConfig{
			Step:         0.05,
			Width:        800,
			Height:       200,
			Interval:     5,
			Amplitude:    50,
			Frequency:    0.01,
			ModFrequency: 0.005,
		},
	}
}

// LoadConfig decodes JSON over DefaultConfig. Keys that are absent keep their
// default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that would stall or divide by zero.
func (c Config) Validate() error {
	switch {
	case c.Field.WidthDivisor <= 0:
		return fmt.Errorf("config: field.widthDivisor must be positive, got %v", c.Field.WidthDivisor)
	case c.Field.MaxParticles < 0:
		return fmt.Errorf("config: field.maxParticles must not be negative, got %d", c.Field.MaxParticles)
	case c.Wave.Interval <= 0:
		return fmt.Errorf("config: wave.interval must be positive, got %v", c.Wave.Interval)
	case c.Visibility.CounterSteps <= 0:
		return fmt.Errorf("config: visibility.counterSteps must be positive, got %d", c.Visibility.CounterSteps)
	}
	return nil
}
