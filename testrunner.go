package ambient

import (
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Node   string  `json:"node,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays scripted host input across engine frames, for
// reproducible demos and automated checks. Attach it with Engine.SetScript.
//
// Actions: "move" (x, y), "path" (fromX, fromY, toX, toY, frames),
// "click" (x, y), "scroll" (y), "resize" (width, height), "focus" and
// "blur" (node name) and "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "move", "path", "click", "scroll", "resize", "focus", "blur", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner; it is stepped at the start of every Update.
func (e *Engine) SetScript(r *ScriptRunner) {
	e.script = r
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step executes at most one action. Called from Engine.Update.
func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Injected pointer events drain one per frame; let them finish first.
	if e.doc.pendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		e.doc.InjectMove(st.X, st.Y)
	case "path":
		e.doc.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "click":
		e.doc.InjectClick(st.X, st.Y)
	case "scroll":
		e.bus.Scroll(st.Y)
	case "resize":
		e.bus.Resize(st.Width, st.Height)
	case "focus":
		e.bus.FocusIn(e.doc.ByName(st.Node))
	case "blur":
		e.bus.FocusOut(e.doc.ByName(st.Node))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && e.doc.pendingInjections() == 0 {
		r.done = true
	}
}
