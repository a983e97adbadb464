package sheen

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// Candidate is one selectable item. The preset values are the targets the
// selector's continuous parameters animate to when the candidate is chosen.
type Candidate struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Icon      string  `json:"icon"`
	Featured  bool    `json:"featured"`
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
	SizeX     float64 `json:"sizeX"`
}

// candidateFile is the JSON layout read by LoadCandidates.
type candidateFile struct {
	Candidates []Candidate `json:"candidates"`
}

// LoadCandidates parses a JSON candidate list of the form
// {"candidates": [{"id": ..., "positionX": ...}, ...]}.
func LoadCandidates(jsonData []byte) ([]Candidate, error) {
	var f candidateFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}
	if len(f.Candidates) == 0 {
		return nil, fmt.Errorf("parse candidates: %w", ErrNoCandidates)
	}
	seen := make(map[string]bool, len(f.Candidates))
	for i, c := range f.Candidates {
		if c.ID == "" {
			return nil, fmt.Errorf("parse candidates: candidate %d has no id", i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("parse candidates: duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return f.Candidates, nil
}

// SelectionConfig controls selection transitions.
type SelectionConfig struct {
	// Duration of the position and size transitions, in seconds.
	Duration float32
	// Ease is applied to every transition segment.
	Ease ease.TweenFunc
	// SizeWaypoints are visited by the size parameter between its live value
	// and the new target, with equal time per segment.
	SizeWaypoints []float64
	// PerimeterDuration is the time for one lap of the selected surface's border.
	PerimeterDuration float32
}

// DefaultSelectionConfig returns the configuration used by NewSelector when
// fields are left zero: 2 s ease-in-out transitions, size dipping through
// 100%, and a 4 s perimeter lap.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		Duration:          2,
		Ease:              ease.InOutQuad,
		SizeWaypoints:     []float64{100},
		PerimeterDuration: 4,
	}
}

// Preview is an external icon or motion preview restarted when the pointer
// enters a candidate's surface.
type Preview interface {
	Restart()
}

type changeHandler struct {
	id uint32
	fn func(from, to int)
}

type hoverHandler struct {
	id uint32
	fn func(index int, c Candidate)
}

// Selector is the selected-item state machine. The selection is always a
// valid candidate index and starts at 0. Transitions retarget three
// continuous parameters from their live values and restart the perimeter
// loop around the newly selected surface.
type Selector struct {
	scene      *Scene
	cfg        SelectionConfig
	candidates []Candidate
	selected   int

	posX, posY, sizeX *Value
	perimX, perimY    *Value

	surfaces []*Node
	previews []Preview
	loop     *PerimeterLoop

	changeHandlers []changeHandler
	hoverHandlers  []hoverHandler
	nextID         uint32
}

// NewSelector creates a selector over candidates, allocating its five values
// in store. Position and size start at candidate 0's presets; the perimeter
// values start at (0, 0). Zero fields in cfg take their defaults.
func NewSelector(scene *Scene, store *Store, candidates []Candidate, cfg SelectionConfig) (*Selector, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("new selector: %w", ErrNoCandidates)
	}
	def := DefaultSelectionConfig()
	if cfg.Duration == 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Ease == nil {
		cfg.Ease = def.Ease
	}
	if cfg.SizeWaypoints == nil {
		cfg.SizeWaypoints = def.SizeWaypoints
	}
	if cfg.PerimeterDuration == 0 {
		cfg.PerimeterDuration = def.PerimeterDuration
	}

	cs := make([]Candidate, len(candidates))
	copy(cs, candidates)
	first := cs[0]
	return &Selector{
		scene:      scene,
		cfg:        cfg,
		candidates: cs,
		posX:       store.NewValue(first.PositionX),
		posY:       store.NewValue(first.PositionY),
		sizeX:      store.NewValue(first.SizeX),
		perimX:     store.NewValue(0),
		perimY:     store.NewValue(0),
		surfaces:   make([]*Node, len(cs)),
		previews:   make([]Preview, len(cs)),
	}, nil
}

// Selected returns the selected candidate index.
func (s *Selector) Selected() int { return s.selected }

// Candidates returns the candidate list. The returned slice MUST NOT be mutated.
func (s *Selector) Candidates() []Candidate { return s.candidates }

// Config returns the effective configuration.
func (s *Selector) Config() SelectionConfig { return s.cfg }

// PositionX returns the animated position-X value (percent).
func (s *Selector) PositionX() *Value { return s.posX }

// PositionY returns the animated position-Y value (percent).
func (s *Selector) PositionY() *Value { return s.posY }

// SizeX returns the animated size-X value (percent).
func (s *Selector) SizeX() *Value { return s.sizeX }

// PerimeterX returns the perimeter loop's X value (percent).
func (s *Selector) PerimeterX() *Value { return s.perimX }

// PerimeterY returns the perimeter loop's Y value (percent).
func (s *Selector) PerimeterY() *Value { return s.perimY }

// Perimeter returns the running perimeter loop, or nil.
func (s *Selector) Perimeter() *PerimeterLoop {
	if s.loop == nil || s.loop.Stopped() {
		return nil
	}
	return s.loop
}

// Surface returns the surface bound to candidate index, or nil.
func (s *Selector) Surface(index int) *Node {
	if index < 0 || index >= len(s.surfaces) {
		return nil
	}
	return s.surfaces[index]
}

// BindSurface attaches node as the visible surface of candidate index.
// Clicking the node selects the candidate and entering it fires the hover
// signal. Binding the selected candidate's surface starts its perimeter loop.
func (s *Selector) BindSurface(index int, node *Node) error {
	if err := s.checkIndex(index); err != nil {
		return fmt.Errorf("bind surface: %w", err)
	}
	if node == nil {
		return fmt.Errorf("bind surface %d: nil node", index)
	}
	if prev := s.surfaces[index]; prev != nil && prev != node {
		unbindSurface(prev)
	}
	s.surfaces[index] = node
	node.candidate = index + 1
	node.OnClick = func(ClickContext) {
		// index was validated above; Select cannot fail here.
		_ = s.Select(index)
	}
	node.OnPointerEnter = func(PointerContext) {
		s.hover(index)
	}
	if index == s.selected {
		s.Refresh()
	}
	return nil
}

// SetPreview registers the preview restarted when candidate index is hovered.
func (s *Selector) SetPreview(index int, p Preview) error {
	if err := s.checkIndex(index); err != nil {
		return fmt.Errorf("set preview: %w", err)
	}
	s.previews[index] = p
	return nil
}

// Select transitions to candidate index. Selecting the current candidate is
// a no-op. Otherwise position-X, position-Y and size-X are retargeted from
// their live values (superseding any transition in flight) and the perimeter
// loop restarts around the newly selected surface.
func (s *Selector) Select(index int) error {
	if err := s.checkIndex(index); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	if index == s.selected {
		return nil
	}
	from := s.selected
	s.selected = index
	c := s.candidates[index]

	anim := s.scene.Animator()
	anim.Animate(s.posX, c.PositionX, s.cfg.Duration, s.cfg.Ease)
	anim.Animate(s.posY, c.PositionY, s.cfg.Duration, s.cfg.Ease)
	keys := make([]float64, 0, len(s.cfg.SizeWaypoints)+1)
	keys = append(keys, s.cfg.SizeWaypoints...)
	keys = append(keys, c.SizeX)
	anim.AnimateKeyframes(s.sizeX, keys, s.cfg.Duration, s.cfg.Ease)

	s.Refresh()

	s.scene.debugf("select %d -> %d (%s)", from, index, c.ID)
	for _, h := range s.changeHandlers {
		h.fn(from, index)
	}
	s.scene.emit(HighlightEvent{
		Type:      EventSelect,
		From:      from,
		To:        index,
		Candidate: index,
	})
	return nil
}

// Refresh re-measures the selected candidate's surface and restarts the
// perimeter loop around it. If the surface is unbound or not mounted the
// previous loop is stopped and no new loop starts.
func (s *Selector) Refresh() {
	if s.loop != nil {
		s.loop.Stop()
		s.loop = nil
	}
	b, err := s.surfaces[s.selected].Bounds()
	if err != nil {
		s.scene.debugf("perimeter: skip candidate %d: %v", s.selected, err)
		return
	}
	s.loop = s.scene.Animator().StartPerimeter(b, s.cfg.PerimeterDuration, s.perimX, s.perimY)
}

// OnChange registers fn to be called after every selection change.
func (s *Selector) OnChange(fn func(from, to int)) Subscription {
	s.nextID++
	id := s.nextID
	s.changeHandlers = append(s.changeHandlers, changeHandler{id: id, fn: fn})
	return Subscription{remove: func() {
		for i := range s.changeHandlers {
			if s.changeHandlers[i].id == id {
				hs := make([]changeHandler, 0, len(s.changeHandlers)-1)
				hs = append(hs, s.changeHandlers[:i]...)
				s.changeHandlers = append(hs, s.changeHandlers[i+1:]...)
				return
			}
		}
	}}
}

// OnHover registers fn to be called when the pointer enters a bound
// candidate surface.
func (s *Selector) OnHover(fn func(index int, c Candidate)) Subscription {
	s.nextID++
	id := s.nextID
	s.hoverHandlers = append(s.hoverHandlers, hoverHandler{id: id, fn: fn})
	return Subscription{remove: func() {
		for i := range s.hoverHandlers {
			if s.hoverHandlers[i].id == id {
				hs := make([]hoverHandler, 0, len(s.hoverHandlers)-1)
				hs = append(hs, s.hoverHandlers[:i]...)
				s.hoverHandlers = append(hs, s.hoverHandlers[i+1:]...)
				return
			}
		}
	}}
}

// Close stops the perimeter loop and unbinds every surface.
func (s *Selector) Close() {
	if s.loop != nil {
		s.loop.Stop()
		s.loop = nil
	}
	for i, n := range s.surfaces {
		if n != nil {
			unbindSurface(n)
			s.surfaces[i] = nil
		}
	}
}

func (s *Selector) hover(index int) {
	if p := s.previews[index]; p != nil {
		p.Restart()
	}
	c := s.candidates[index]
	for _, h := range s.hoverHandlers {
		h.fn(index, c)
	}
}

func (s *Selector) checkIndex(index int) error {
	if index < 0 || index >= len(s.candidates) {
		return fmt.Errorf("index %d not in [0, %d): %w", index, len(s.candidates), ErrInvalidIndex)
	}
	return nil
}

func unbindSurface(n *Node) {
	n.candidate = 0
	n.OnClick = nil
	n.OnPointerEnter = nil
}
