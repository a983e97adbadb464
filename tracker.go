package sheen

// PointerTracker writes the pointer position, relative to a surface's top-left
// corner, into two values. It listens to the scene-wide move stream, so the
// values keep changing while the pointer is outside the surface; highlights
// derived from them fade smoothly as the pointer approaches and leaves.
type PointerTracker struct {
	scene   *Scene
	surface *Node
	x, y    *Value
	handle  CallbackHandle
	active  bool
	gen     uint32 // bumped by every Attach
}

// NewPointerTracker creates a tracker whose values live in store and start
// at (0, 0).
func NewPointerTracker(scene *Scene, store *Store) *PointerTracker {
	return &PointerTracker{
		scene: scene,
		x:     store.NewValue(0),
		y:     store.NewValue(0),
	}
}

// X returns the value holding the pointer's x offset from the surface's left edge.
func (t *PointerTracker) X() *Value { return t.x }

// Y returns the value holding the pointer's y offset from the surface's top edge.
func (t *PointerTracker) Y() *Value { return t.y }

// Position returns the latest relative pointer position.
func (t *PointerTracker) Position() Vec2 {
	return Vec2{X: t.x.Get(), Y: t.y.Get()}
}

// Surface returns the currently attached surface, or nil.
func (t *PointerTracker) Surface() *Node { return t.surface }

// Attached reports whether the tracker is listening for pointer moves.
func (t *PointerTracker) Attached() bool { return t.active }

// Attach starts tracking relative to surface. Attaching again replaces the
// previous surface. The surface may be unmounted; moves are then skipped
// until it is mounted.
//
// The returned detach func ends only this attachment: once the tracker has
// been re-attached or detached, calling it is a no-op.
func (t *PointerTracker) Attach(surface *Node) (detach func()) {
	t.Detach()
	t.gen++
	gen := t.gen
	t.surface = surface
	t.handle = t.scene.OnPointerMove(t.handleMove)
	t.active = true
	return func() {
		if t.gen == gen {
			t.Detach()
		}
	}
}

// Detach stops tracking. Detaching twice is a no-op.
func (t *PointerTracker) Detach() {
	if !t.active {
		return
	}
	t.handle.Remove()
	t.handle = CallbackHandle{}
	t.active = false
	t.surface = nil
}

func (t *PointerTracker) handleMove(ctx PointerContext) {
	if !t.active {
		return
	}
	b, err := t.surface.Bounds()
	if err != nil {
		// Pre-mount or post-unmount window; the next move retries.
		t.scene.debugf("tracker: skip move: %v", err)
		return
	}
	t.x.Set(ctx.GlobalX - b.Left())
	t.y.Set(ctx.GlobalY - b.Top())
}
