package sheen

import (
	"errors"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// affine builds a GeoM from [a, b, c, d, tx, ty].
func affine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func assertMatrix(t *testing.T, name string, g ebiten.GeoM, want [6]float64) {
	t.Helper()
	got := [6]float64{
		g.Element(0, 0), g.Element(1, 0),
		g.Element(0, 1), g.Element(1, 1),
		g.Element(0, 2), g.Element(1, 2),
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

var identity = [6]float64{1, 0, 0, 1, 0, 0}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", computeLocalTransform(n), identity)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(10, 20)
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewContainer("test")
	n.SetScale(2, 3)
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewContainer("test")
	n.Rotation = math.Pi / 2
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(100, 200)
	n.PivotX = 16
	n.PivotY = 16
	// T(100,200) * T(-16,-16) = [1,0,0,1, 84, 184]
	assertMatrix(t, "pivot", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 84, 184})
}

func TestLocalTransformCombined(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(50, 100)
	n.SetScale(2, 2)
	n.Rotation = math.Pi / 2
	// Scale(2,2) then Rotate(90°), then translate.
	assertMatrix(t, "combined", computeLocalTransform(n), [6]float64{0, 2, -2, 0, 50, 100})
}

// --- inverted ---

func TestInverted(t *testing.T) {
	g := affine([6]float64{2, 0, 0, 3, 10, 20})
	inv := inverted(g)
	inv.Concat(g)
	assertMatrix(t, "inv then m", inv, identity)
}

func TestInvertedRotatedScale(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX = 2
	n.Rotation = math.Pi / 3
	g := computeLocalTransform(n)
	inv := inverted(g)
	inv.Concat(g)
	assertMatrix(t, "inv then m", inv, identity)
}

func TestInvertedSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular→identity", inverted(affine([6]float64{0, 0, 0, 1, 10, 20})), identity)
}

// --- computeWorldTransform ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10

	pw := computeWorldTransform(parent)
	cw := computeWorldTransform(child)
	assertNear(t, "parent.tx", pw.Element(0, 2), 100)
	assertNear(t, "child.tx", cw.Element(0, 2), 110)
}

func TestWorldTransformTracksParentMove(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10
	_ = computeWorldTransform(child)

	// No cache: a direct field write is visible on the next measurement.
	parent.X = 200
	cw := computeWorldTransform(child)
	assertNear(t, "child.tx (from parent)", cw.Element(0, 2), 210)
}

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewContainer("")
		nodes[i].X = 10
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	dw := computeWorldTransform(nodes[9])
	assertNear(t, "deep.tx", dw.Element(0, 2), 100)
}

// --- worldAABB / Bounds ---

func TestWorldAABBRotated(t *testing.T) {
	m := affine([6]float64{0, 1, -1, 0, 100, 0}) // rotate 90° then translate
	got := worldAABB(m, 40, 20)
	want := Rect{X: 80, Y: 0, Width: 20, Height: 40}
	assertNear(t, "X", got.X, want.X)
	assertNear(t, "Y", got.Y, want.Y)
	assertNear(t, "Width", got.Width, want.Width)
	assertNear(t, "Height", got.Height, want.Height)
}

func TestBoundsScaledChild(t *testing.T) {
	s := NewScene()
	group := NewContainer("group")
	group.SetPosition(10, 10)
	group.SetScale(2, 2)
	panel := NewSurface("panel", 50, 25)
	panel.SetPosition(5, 5)
	group.AddChild(panel)
	s.Root().AddChild(group)

	b, err := panel.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if b != (Rect{X: 20, Y: 20, Width: 100, Height: 50}) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestBoundsDetached(t *testing.T) {
	var nilNode *Node
	if _, err := nilNode.Bounds(); !errors.Is(err, ErrDetachedSurface) {
		t.Errorf("nil node err = %v, want ErrDetachedSurface", err)
	}
	loose := NewSurface("loose", 10, 10)
	if _, err := loose.Bounds(); !errors.Is(err, ErrDetachedSurface) {
		t.Errorf("unmounted err = %v, want ErrDetachedSurface", err)
	}

	s := NewScene()
	s.Root().AddChild(loose)
	if _, err := loose.Bounds(); err != nil {
		t.Errorf("mounted err = %v", err)
	}
	loose.Dispose()
	if _, err := loose.Bounds(); !errors.Is(err, ErrDetachedSurface) {
		t.Errorf("disposed err = %v, want ErrDetachedSurface", err)
	}
}

// --- WorldToLocal / LocalToWorld ---

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.SetPosition(100, 50)
	child.SetPosition(10, 20)
	child.SetScale(2, 3)
	child.Rotation = math.Pi / 6

	wx, wy := 150.0, 80.0
	lx, ly := child.WorldToLocal(wx, wy)
	wx2, wy2 := child.LocalToWorld(lx, ly)
	assertNear(t, "roundtrip.x", wx2, wx)
	assertNear(t, "roundtrip.y", wy2, wy)
}

func TestLocalToWorldIdentity(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(50, 100)
	wx, wy := n.LocalToWorld(0, 0)
	assertNear(t, "origin.x", wx, 50)
	assertNear(t, "origin.y", wy, 100)
}

func TestWorldToLocalZeroScale(t *testing.T) {
	n := NewContainer("test")
	n.SetScale(0, 0)
	// Singular: falls back to the identity inverse.
	lx, ly := n.WorldToLocal(100, 200)
	assertNear(t, "lx", lx, 100)
	assertNear(t, "ly", ly, 200)
}

func TestSetSize(t *testing.T) {
	n := NewSurface("s", 1, 1)
	n.SetSize(30, 40)
	if n.Width != 30 || n.Height != 40 {
		t.Errorf("size = %vx%v, want 30x40", n.Width, n.Height)
	}
}
