// Package ambient is an interaction engine for marketing-style landing pages,
// rendered with [Ebitengine].
//
// A page is a retained tree of [Node] values held by a [Document]: each node
// has a layout box, classes, attributes and inline style properties, and a
// set of motion fields (translate, scale, rotation, alpha) that the engine
// owns. [New] queries the document once and wires every ambient component
// to it:
//
//   - a particle field drawn onto a [Surface], attracted by the pointer
//   - magnetic elements that lean toward the pointer
//   - kinetic typography: staggered glyph reveals with per-word physics
//   - one-shot reveals, counters and growth graphs as sections scroll in
//   - ripples, glows, energy sweeps and click waves
//   - the procedural signature wave and the process diagram motion
//   - parallax layers, the custom cursor and case study navigation
//
// # Quick start
//
//	doc := ambient.NewDocument(1280, 720)
//	// ... build the page under doc.Body() ...
//	cfg := ambient.DefaultConfig()
//	cfg.Logger = logger
//	engine := ambient.New(doc, cfg)
//	ambient.Run(engine, ambient.RunConfig{Title: "Landing", Width: 1280, Height: 720})
//
// For full control, feed host input into [Engine.Signals] yourself and call
// [Engine.Update] once per frame.
//
// # Signals
//
// Every host notification goes through one [SignalBus]. Scroll is throttled
// and resize is debounced there, so components never see raw bursts. Time
// is virtual: a [Scheduler] advanced by [Engine.Update] runs timers and
// frame callbacks, which makes every behavior reproducible in tests.
//
// # Reduced motion
//
// With [Config.ReducedMotion] set, decorative motion is switched off while
// content still appears: glyphs and reveals show at once and counters jump
// to their targets. The signature wave keeps running.
//
// # Scripted runs
//
// [LoadScript] reads a JSON list of pointer, scroll, resize and focus steps
// that [Engine.SetScript] replays one per frame, for demos and end-to-end
// tests.
//
// [Ebitengine]: https://ebitengine.org
package ambient
