package sheen

import "testing"

// trackerScene builds a scene with a 400×200 panel at (40, 30).
func trackerScene() (*Scene, *Node, *PointerTracker) {
	s := NewScene()
	panel := NewSurface("panel", 400, 200)
	panel.SetPosition(40, 30)
	s.Root().AddChild(panel)
	return s, panel, NewPointerTracker(s, NewStore())
}

func TestTrackerStartsAtOrigin(t *testing.T) {
	_, _, tr := trackerScene()
	if tr.X().Get() != 0 || tr.Y().Get() != 0 {
		t.Errorf("start = (%v, %v), want (0, 0)", tr.X().Get(), tr.Y().Get())
	}
	if tr.Attached() || tr.Surface() != nil {
		t.Error("new tracker should not be attached")
	}
}

func TestTrackerRelativePosition(t *testing.T) {
	s, panel, tr := trackerScene()
	tr.Attach(panel)

	s.InjectMove(140, 80)
	s.Advance(0)
	if tr.X().Get() != 100 || tr.Y().Get() != 50 {
		t.Errorf("position = (%v, %v), want (100, 50)", tr.X().Get(), tr.Y().Get())
	}
}

func TestTrackerFollowsPointerOutsideSurface(t *testing.T) {
	s, panel, tr := trackerScene()
	tr.Attach(panel)

	s.InjectMove(10, 500)
	s.Advance(0)
	if tr.X().Get() != -30 || tr.Y().Get() != 470 {
		t.Errorf("position = (%v, %v), want (-30, 470)", tr.X().Get(), tr.Y().Get())
	}
}

func TestTrackerMeasuresLatestLayout(t *testing.T) {
	s, panel, tr := trackerScene()
	tr.Attach(panel)

	s.InjectMove(100, 100)
	s.Advance(0)
	panel.SetPosition(0, 0)
	s.InjectMove(101, 100)
	s.Advance(0)
	if tr.X().Get() != 101 || tr.Y().Get() != 100 {
		t.Errorf("position = (%v, %v), want (101, 100)", tr.X().Get(), tr.Y().Get())
	}
}

func TestTrackerNestedSurface(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.SetPosition(100, 0)
	group.SetScale(2, 2)
	inner := NewSurface("inner", 50, 50)
	inner.SetPosition(10, 20)
	group.AddChild(inner)
	s.Root().AddChild(group)

	tr := NewPointerTracker(s, NewStore())
	tr.Attach(inner)

	// inner's top-left is at (100 + 2*10, 2*20) = (120, 40).
	s.InjectMove(130, 45)
	s.Advance(0)
	if tr.X().Get() != 10 || tr.Y().Get() != 5 {
		t.Errorf("position = (%v, %v), want (10, 5)", tr.X().Get(), tr.Y().Get())
	}
}

func TestTrackerSkipsDetachedSurface(t *testing.T) {
	s := NewScene()
	panel := NewSurface("panel", 100, 100)
	tr := NewPointerTracker(s, NewStore())
	tr.Attach(panel)

	s.InjectMove(50, 50)
	s.Advance(0)
	if tr.X().Get() != 0 || tr.Y().Get() != 0 {
		t.Errorf("unmounted surface wrote (%v, %v)", tr.X().Get(), tr.Y().Get())
	}

	s.Root().AddChild(panel)
	s.InjectMove(60, 50)
	s.Advance(0)
	if tr.X().Get() != 60 || tr.Y().Get() != 50 {
		t.Errorf("position after mount = (%v, %v), want (60, 50)", tr.X().Get(), tr.Y().Get())
	}

	panel.RemoveFromParent()
	s.InjectMove(70, 70)
	s.Advance(0)
	if tr.X().Get() != 60 || tr.Y().Get() != 50 {
		t.Errorf("position after unmount = (%v, %v), want unchanged", tr.X().Get(), tr.Y().Get())
	}
}

func TestTrackerDetach(t *testing.T) {
	s, panel, tr := trackerScene()
	detach := tr.Attach(panel)

	s.InjectMove(50, 40)
	s.Advance(0)
	detach()
	s.InjectMove(90, 90)
	s.Advance(0)

	if tr.X().Get() != 10 || tr.Y().Get() != 10 {
		t.Errorf("position = (%v, %v), want (10, 10)", tr.X().Get(), tr.Y().Get())
	}
	if tr.Attached() {
		t.Error("expected detached")
	}
	// Second detach is a no-op.
	detach()
	tr.Detach()
	if len(s.handlers.pointerMove) != 0 {
		t.Errorf("move handlers = %d, want 0", len(s.handlers.pointerMove))
	}
}

func TestTrackerReattachReplacesSurface(t *testing.T) {
	s, panel, tr := trackerScene()
	other := NewSurface("other", 10, 10)
	other.SetPosition(200, 200)
	s.Root().AddChild(other)

	tr.Attach(panel)
	tr.Attach(other)
	if tr.Surface() != other {
		t.Fatal("expected other surface")
	}
	if len(s.handlers.pointerMove) != 1 {
		t.Fatalf("move handlers = %d, want 1", len(s.handlers.pointerMove))
	}

	s.InjectMove(205, 201)
	s.Advance(0)
	if tr.X().Get() != 5 || tr.Y().Get() != 1 {
		t.Errorf("position = (%v, %v), want (5, 1)", tr.X().Get(), tr.Y().Get())
	}
}

func TestHoverMaskFollowsTracker(t *testing.T) {
	s, panel, tr := trackerScene()
	tr.Attach(panel)
	tpl := HoverMaskTemplate(tr)

	s.InjectMove(140, 80)
	s.Advance(0)

	want := "radial-gradient(50% 50% at 100px 50px, black, transparent)"
	if got := tpl.String(); got != want {
		t.Errorf("template = %q, want %q", got, want)
	}
	if got := HoverMask(tr)().CSS(); got != want {
		t.Errorf("mask CSS = %q, want %q", got, want)
	}
}

func TestTrackerPosition(t *testing.T) {
	s, panel, tr := trackerScene()
	tr.Attach(panel)
	s.InjectMove(45, 37)
	s.Advance(0)
	if got := tr.Position(); got != (Vec2{X: 5, Y: 7}) {
		t.Errorf("Position() = %+v, want {5 7}", got)
	}
}

func TestTrackerStaleDetachAfterReattach(t *testing.T) {
	s, panel, tr := trackerScene()
	other := NewSurface("other", 10, 10)
	other.SetPosition(200, 200)
	s.Root().AddChild(other)

	stale := tr.Attach(panel)
	current := tr.Attach(other)
	stale()

	if !tr.Attached() || tr.Surface() != other {
		t.Fatal("stale detach removed the current attachment")
	}
	s.InjectMove(203, 204)
	s.Advance(0)
	if tr.X().Get() != 3 || tr.Y().Get() != 4 {
		t.Errorf("position = (%v, %v), want (3, 4)", tr.X().Get(), tr.Y().Get())
	}

	current()
	if tr.Attached() {
		t.Error("current detach did not detach")
	}
	// A detach func from before an explicit Detach stays inert after reattaching.
	next := tr.Attach(panel)
	current()
	if !tr.Attached() {
		t.Error("old detach func removed a newer attachment")
	}
	next()
	if len(s.handlers.pointerMove) != 0 {
		t.Errorf("move handlers = %d, want 0", len(s.handlers.pointerMove))
	}
}
