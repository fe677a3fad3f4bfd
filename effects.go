package ambient

import (
	"time"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// EffectKind names a transient effect.
type EffectKind uint8

const (
	EffectRipple EffectKind = iota
	EffectClickWave
)

func (k EffectKind) String() string {
	switch k {
	case EffectRipple:
		return "ripple"
	case EffectClickWave:
		return "click-wave"
	default:
		return "unknown"
	}
}

// Effect is a short-lived decorative node attached to an anchor element.
// The spawner owns it and removes the node once Lifetime has elapsed.
type Effect struct {
	ID       uuid.UUID
	Kind     EffectKind
	Anchor   *Node
	Node     *Node
	Created  time.Duration
	Lifetime time.Duration

	tweens []*TweenGroup
}

// Expired reports whether the effect's lifetime has elapsed at now.
func (e *Effect) Expired(now time.Duration) bool {
	return now-e.Created >= e.Lifetime
}

// EffectSpawner creates ripples on card entry, click waves on
// call-to-action clicks and restarts the energy sweep of a call-to-action
// on entry. Live effects sit in an arena swept once per frame.
type EffectSpawner struct {
	cfg     EffectsConfig
	sched   *Scheduler
	log     *zap.Logger
	metrics *Metrics

	active  []*Effect
	cards   []*Node
	buttons []*Node
}

// NewEffectSpawner attaches handlers to every .focus-card and .case-item
// and to every call-to-action control in doc.
func NewEffectSpawner(sched *Scheduler, doc *Document, cfg EffectsConfig, metrics *Metrics, logger *zap.Logger) *EffectSpawner {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &EffectSpawner{cfg: cfg, sched: sched, log: logger, metrics: metrics}

	for _, card := range doc.FindAll(AnyOf(Class("focus-card"), Class("case-item"))) {
		s.cards = append(s.cards, card)
		card.OnPointerEnter = chainPointer(card.OnPointerEnter, func(ctx PointerContext) {
			s.SpawnRipple(card, ctx.GlobalX, ctx.GlobalY)
			Glow(card)
		})
		card.OnPointerLeave = chainPointer(card.OnPointerLeave, func(PointerContext) {
			ResetGlow(card)
		})
	}
	for _, btn := range doc.FindAll(AnyOf(Class("cta-button"), Class("cta-primary"), Class("cta-secondary"))) {
		s.buttons = append(s.buttons, btn)
		btn.OnPointerEnter = chainPointer(btn.OnPointerEnter, func(PointerContext) {
			s.RestartSweep(btn)
		})
		btn.OnClick = chainClick(btn.OnClick, func(ctx ClickContext) {
			s.SpawnClickWave(btn, ctx.GlobalX, ctx.GlobalY)
		})
	}
	logger.Debug("effect spawner ready", zap.Int("cards", len(s.cards)), zap.Int("buttons", len(s.buttons)))

	sched.OnFrame(s.sweep)
	return s
}

// Active returns the live effects in creation order.
func (s *EffectSpawner) Active() []*Effect {
	return s.active
}

// SpawnRipple adds a ripple to card at the pointer position (x, y), given in
// viewport coordinates. The ripple grows from nothing while fading out.
func (s *EffectSpawner) SpawnRipple(card *Node, x, y float64) *Effect {
	lx, ly := card.WorldToLocal(x, y)
	size := s.cfg.RippleSize
	n := NewNode("ripple", "ripple")
	n.SetBox(lx, ly, size, size)
	n.HitShape = HitCircle{CenterX: size / 2, CenterY: size / 2, Radius: size / 2}
	n.Interactable = false
	n.Filled = true
	n.Color = ColorAccent.WithAlpha(0.3)
	n.SetScale(0, 0)

	life := s.cfg.RippleLifetime.Duration()
	secs := float32(life.Seconds())
	return s.spawn(EffectRipple, card, n, life,
		TweenScale(n, s.cfg.RippleScale, s.cfg.RippleScale, secs, ease.OutQuad),
		TweenAlpha(n, 0, secs, ease.OutQuad),
	)
}

// SpawnClickWave adds a circular wave to btn centered on the pointer (x, y),
// sized to the control's larger dimension.
func (s *EffectSpawner) SpawnClickWave(btn *Node, x, y float64) *Effect {
	lx, ly := btn.WorldToLocal(x, y)
	size := max(btn.Width, btn.Height)
	n := NewNode("click-wave", "click-wave")
	n.SetBox(lx-size/2, ly-size/2, size, size)
	n.HitShape = HitCircle{CenterX: size / 2, CenterY: size / 2, Radius: size / 2}
	n.Interactable = false
	n.Filled = true
	n.Color = ColorWhite.WithAlpha(0.3)
	n.SetScale(0, 0)

	life := s.cfg.ClickWaveLifetime.Duration()
	secs := float32(life.Seconds())
	return s.spawn(EffectClickWave, btn, n, life,
		TweenScale(n, s.cfg.ClickWaveScale, s.cfg.ClickWaveScale, secs, ease.OutQuad),
		TweenAlpha(n, 0, secs, ease.OutQuad),
	)
}

func (s *EffectSpawner) spawn(kind EffectKind, anchor, n *Node, life time.Duration, tweens ...*TweenGroup) *Effect {
	anchor.AddChild(n)
	e := &Effect{
		ID:       uuid.New(),
		Kind:     kind,
		Anchor:   anchor,
		Node:     n,
		Created:  s.sched.Now(),
		Lifetime: life,
		tweens:   tweens,
	}
	s.active = append(s.active, e)
	s.metrics.effectSpawned(kind)
	s.metrics.setEffects(len(s.active))
	s.log.Debug("effect spawned",
		zap.Stringer("id", e.ID),
		zap.Stringer("kind", kind),
		zap.String("anchor", anchor.Name),
	)
	return e
}

// RestartSweep replays the energy sweep of btn from the start, replacing a
// sweep that may still be running.
func (s *EffectSpawner) RestartSweep(btn *Node) {
	energy := btn.Find(Class("cta-energy"))
	if energy == nil {
		return
	}
	energy.SetAnimation(NewAnimation(energySweepKeyframes(btn.Width), s.cfg.SweepDuration.Duration(), ease.OutQuad).Forwards())
}

// sweep advances live effects and removes the expired ones.
func (s *EffectSpawner) sweep(dt time.Duration) {
	if len(s.active) == 0 {
		return
	}
	now := s.sched.Now()
	secs := float32(dt.Seconds())
	live := s.active[:0]
	for _, e := range s.active {
		if e.Expired(now) || e.Node.IsDisposed() {
			e.Node.Dispose()
			s.log.Debug("effect expired", zap.Stringer("id", e.ID), zap.Stringer("kind", e.Kind))
			continue
		}
		for _, g := range e.tweens {
			g.Update(secs)
		}
		live = append(live, e)
	}
	clear(s.active[len(live):])
	s.active = live
	s.metrics.setEffects(len(s.active))
}

// Glow highlights a card while hovered and enlarges its icon.
func Glow(card *Node) {
	card.SetStyle("box-shadow", "0 25px 80px rgba(255, 107, 53, 0.3)")
	card.SetStyle("border-color", "rgba(255, 107, 53, 0.4)")
	if icon := card.Find(Class("card-icon")); icon != nil {
		icon.SetScale(1.1, 1.1)
		icon.SetStyle("filter", "drop-shadow(0 0 10px rgba(255, 107, 53, 0.5))")
	}
}

// ResetGlow clears what Glow set.
func ResetGlow(card *Node) {
	card.SetStyle("box-shadow", "")
	card.SetStyle("border-color", "")
	if icon := card.Find(Class("card-icon")); icon != nil {
		icon.SetScale(1, 1)
		icon.SetStyle("filter", "")
	}
}
