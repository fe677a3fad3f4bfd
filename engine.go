package ambient

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

const defaultSeed = 0x5eed_a3b1_e47c_0de5

// Engine composes every ambient component over one document. It is built
// once per document and driven by Update; it is not safe for concurrent
// use.
type Engine struct {
	cfg     Config
	doc     *Document
	sched   *Scheduler
	bus     *SignalBus
	log     *zap.Logger
	metrics *Metrics

	field      *ParticleField
	magnetic   *MagneticField
	typography *TypographySequencer
	visibility *VisibilityController
	effects    *EffectSpawner
	wave       *WaveGenerator
	process    *ProcessMotion
	parallax   *Parallax
	cursor     *Cursor
	cases      *CaseNavigation

	script *ScriptRunner
}

// New queries doc once and builds every component. Elements added to doc
// afterwards are not picked up. Missing elements or attributes disable only
// the feature that needs them.
func New(doc *Document, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	e := &Engine{
		cfg:     cfg,
		doc:     doc,
		sched:   NewScheduler(),
		log:     logger,
		metrics: NewMetrics(cfg.Registerer),
	}
	e.bus = NewSignalBus(e.sched, doc, cfg.ReducedMotion,
		cfg.ScrollThrottle.Duration(), cfg.ResizeDebounce.Duration(), logger.Named("signals"))

	e.field = NewParticleField(e.bus, cfg.Surface, cfg.Field, rng, logger.Named("field"))
	e.magnetic = NewMagneticField(e.bus, doc, cfg.Magnetic, rng, logger.Named("magnetic"))
	e.typography = NewTypographySequencer(e.sched, e.bus, doc, cfg.Typography, logger.Named("typography"))
	e.visibility = NewVisibilityController(e.sched, e.bus, doc, cfg.Visibility, rng, e.metrics, logger.Named("visibility"))
	e.effects = NewEffectSpawner(e.sched, doc, cfg.Effects, e.metrics, logger.Named("effects"))
	e.wave = NewWaveGenerator(e.sched, doc, cfg.Wave, logger.Named("wave"))
	e.process = NewProcessMotion(e.sched, e.bus, doc, cfg.OrganicPeriod.Duration(), rng, logger.Named("process"))
	e.parallax = NewParallax(e.bus, doc, cfg.ParallaxSpeed)
	e.cursor = NewCursor(e.bus, doc)
	e.cases = NewCaseNavigation(doc, logger.Named("cases"))

	if e.field.Enabled() {
		e.sched.OnFrame(func(time.Duration) { e.field.Step() })
	}
	e.sched.OnFrame(func(dt time.Duration) { animateTree(doc.Root(), dt) })
	e.sched.After(cfg.LoadedAfter.Duration(), e.bus.MarkLoaded)

	logger.Info("ambient engine started",
		zap.Bool("reducedMotion", cfg.ReducedMotion),
		zap.Bool("field", e.field.Enabled()),
		zap.Bool("magnetic", e.magnetic.Enabled()),
		zap.Int("glyphs", len(e.typography.Tasks())),
	)
	return e
}

// Update steps the attached script, drains one injected pointer event and
// advances the engine by one frame of length dt.
func (e *Engine) Update(dt time.Duration) {
	start := time.Now()
	if e.script != nil {
		e.script.step(e)
	}
	if ev, ok := e.doc.popInjected(); ok {
		if ev.click {
			e.bus.Click(ev.x, ev.y)
		} else {
			e.bus.PointerMove(ev.x, ev.y)
		}
	}
	e.sched.Advance(dt)
	e.metrics.setParticles(len(e.field.Particles()))
	e.metrics.frame(time.Since(start))
}

// Document returns the document the engine drives.
func (e *Engine) Document() *Document { return e.doc }

// Signals returns the bus that host input is fed into.
func (e *Engine) Signals() *SignalBus { return e.bus }

// Scheduler returns the engine clock.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Field returns the particle field.
func (e *Engine) Field() *ParticleField { return e.field }

// Magnetic returns the magnetic field controller.
func (e *Engine) Magnetic() *MagneticField { return e.magnetic }

// Typography returns the kinetic title sequencer.
func (e *Engine) Typography() *TypographySequencer { return e.typography }

// Visibility returns the visibility-triggered controller.
func (e *Engine) Visibility() *VisibilityController { return e.visibility }

// Effects returns the transient effect spawner.
func (e *Engine) Effects() *EffectSpawner { return e.effects }

// Wave returns the signature wave generator.
func (e *Engine) Wave() *WaveGenerator { return e.wave }

// Process returns the process diagram motion.
func (e *Engine) Process() *ProcessMotion { return e.process }

// Cases returns the case study navigation.
func (e *Engine) Cases() *CaseNavigation { return e.cases }
