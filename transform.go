package sheen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// computeLocalTransform builds the node's local matrix.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-n.PivotX, -n.PivotY)
	g.Scale(n.ScaleX, n.ScaleY)
	if n.Rotation != 0 {
		g.Rotate(n.Rotation)
	}
	g.Translate(n.X, n.Y)
	return g
}

// computeWorldTransform walks from the root down to n. Nothing is cached:
// layout may change between any two measurements.
func computeWorldTransform(n *Node) ebiten.GeoM {
	g := computeLocalTransform(n)
	if n.Parent != nil {
		g.Concat(computeWorldTransform(n.Parent))
	}
	return g
}

// inverted returns the inverse of g, or the identity when g is singular
// (for example a zero scale).
func inverted(g ebiten.GeoM) ebiten.GeoM {
	if !g.IsInvertible() {
		return ebiten.GeoM{}
	}
	g.Invert()
	return g
}

// worldAABB returns the axis-aligned box enclosing the local rectangle
// (0, 0, w, h) under g.
func worldAABB(g ebiten.GeoM, w, h float64) Rect {
	x0, y0 := g.Apply(0, 0)
	x1, y1 := g.Apply(w, 0)
	x2, y2 := g.Apply(w, h)
	x3, y3 := g.Apply(0, h)
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetSize sets the node's Width and Height.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := inverted(computeWorldTransform(n))
	return inv.Apply(wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	g := computeWorldTransform(n)
	return g.Apply(lx, ly)
}
