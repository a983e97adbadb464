package sheen

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action in a scripted highlight scenario.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptActions maps an action name to what it does when its step runs.
// The returned count is extra frames to idle afterwards.
var scriptActions = map[string]func(s *Scene, st scriptStep) (idle int){
	"move": func(s *Scene, st scriptStep) int {
		s.InjectMove(st.X, st.Y)
		return 0
	},
	"path": func(s *Scene, st scriptStep) int {
		s.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		return 0
	},
	"click": func(s *Scene, st scriptStep) int {
		s.InjectClick(st.X, st.Y)
		return 0
	},
	"screenshot": func(s *Scene, st scriptStep) int {
		s.Screenshot(st.Label)
		return 0
	},
	"wait": func(_ *Scene, st scriptStep) int {
		// The frame the step runs on counts as the first.
		return max(st.Frames-1, 0)
	},
}

// TestRunner plays a JSON script of pointer actions against a Scene, one
// step per frame. A step waits until previously injected events have been
// consumed.
//
//	{"steps": [
//	  {"action": "path", "fromX": 0, "fromY": 20, "toX": 170, "toY": 20, "frames": 10},
//	  {"action": "click", "x": 170, "y": 20},
//	  {"action": "wait", "frames": 120},
//	  {"action": "screenshot", "label": "selected"}
//	]}
type TestRunner struct {
	steps []scriptStep
	next  int
	idle  int
	done  bool
}

// LoadTestScript parses a script. Unknown actions are rejected here rather
// than mid-run.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := scriptActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the scene. Advance steps it before input
// is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its effects have drained.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, s.PendingInput() > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next >= len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.idle = scriptActions[st.Action](s, st)

	if r.next == len(r.steps) && r.idle == 0 && s.PendingInput() == 0 {
		r.done = true
	}
}
