package sheen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	button    MouseButton

	// Last raw cursor reading. Real input is only processed when it changes,
	// so injected events are not overwritten by an idle cursor.
	cursorX, cursorY int
	cursorDown       bool
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	}
}

// removePointerHandler returns a fresh slice so a dispatch loop ranging over
// the old one is unaffected.
func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			out := make([]pointerHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			out := make([]clickHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerMove registers a scene-level callback for pointer move events.
// It fires for every movement anywhere on screen, not only over nodes.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerEnter = append(s.handlers.pointerEnter, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerEnter}
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired when the pointer leaves a node (moves to a different node or to empty space).
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerLeave = append(s.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerLeave}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width×Height rectangle.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, child order),
// appending interactable nodes to buf. Skips Visible=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (x, y).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Advance. An injected event, when queued,
// takes the frame; otherwise the real cursor is polled.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	ps := &s.pointer
	if mx == ps.cursorX && my == ps.cursorY && pressed == ps.cursorDown {
		return
	}
	ps.cursorX, ps.cursorY, ps.cursorDown = mx, my, pressed
	s.processPointer(float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	target := s.hitTest(x, y)

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointerLeave(ps.hoverNode, x, y, button)
		}
		if target != nil {
			s.firePointerEnter(target, x, y, button)
		}
		ps.hoverNode = target
	}

	if x != ps.lastX || y != ps.lastY {
		ps.lastX = x
		ps.lastY = y
		s.firePointerMove(target, x, y, button)
	}

	if pressed && !ps.down {
		ps.down = true
		ps.button = button
		ps.hitNode = target
	} else if !pressed && ps.down {
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, x, y, ps.button)
		}
		ps.down = false
		ps.hitNode = nil
	}
}

// --- Event dispatch ---

func pointerContext(node *Node, x, y float64, button MouseButton) PointerContext {
	ctx := PointerContext{GlobalX: x, GlobalY: y, Button: button}
	if node != nil {
		ctx.Node = node
		ctx.UserData = node.UserData
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(x, y)
	}
	return ctx
}

func (s *Scene) firePointerMove(node *Node, x, y float64, button MouseButton) {
	ctx := pointerContext(node, x, y, button)
	// Scene-level handlers first.
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
	// Per-node callback.
	if node != nil && node.OnPointerMove != nil {
		node.OnPointerMove(ctx)
	}
}

func (s *Scene) firePointerEnter(node *Node, x, y float64, button MouseButton) {
	ctx := pointerContext(node, x, y, button)
	for _, h := range s.handlers.pointerEnter {
		h.fn(ctx)
	}
	if node.OnPointerEnter != nil {
		node.OnPointerEnter(ctx)
	}
	s.emitNodeEvent(EventPointerEnter, ctx)
}

func (s *Scene) firePointerLeave(node *Node, x, y float64, button MouseButton) {
	ctx := pointerContext(node, x, y, button)
	for _, h := range s.handlers.pointerLeave {
		h.fn(ctx)
	}
	if node.OnPointerLeave != nil {
		node.OnPointerLeave(ctx)
	}
	s.emitNodeEvent(EventPointerLeave, ctx)
}

func (s *Scene) fireClick(node *Node, x, y float64, button MouseButton) {
	pc := pointerContext(node, x, y, button)
	ctx := ClickContext{
		Node: pc.Node, UserData: pc.UserData,
		GlobalX: x, GlobalY: y, LocalX: pc.LocalX, LocalY: pc.LocalY,
		Button: button,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitNodeEvent(EventClick, pc)
}

// --- ECS bridge ---

func (s *Scene) emitNodeEvent(eventType EventType, ctx PointerContext) {
	if s.store == nil || ctx.Node == nil {
		return
	}
	s.emit(HighlightEvent{
		Type:      eventType,
		NodeName:  ctx.Node.Name,
		GlobalX:   ctx.GlobalX,
		GlobalY:   ctx.GlobalY,
		LocalX:    ctx.LocalX,
		LocalY:    ctx.LocalY,
		From:      -1,
		To:        -1,
		Candidate: ctx.Node.candidate - 1,
	})
}
