package sheen

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sentinel errors. Wrapped errors carry the offending index or node name.
var (
	// ErrInvalidIndex is returned when a selection is requested outside the
	// candidate range. Callers select from a closed menu, so this indicates a
	// programming error.
	ErrInvalidIndex = errors.New("sheen: invalid candidate index")

	// ErrDetachedSurface is returned when geometry is requested for a surface
	// that is not mounted under a scene root, or has been disposed. It is an
	// expected transient condition; callers skip the write and retry on the
	// next event.
	ErrDetachedSurface = errors.New("sheen: surface not mounted")

	// ErrNoCandidates is returned when a selector is built with no candidates.
	ErrNoCandidates = errors.New("sheen: no candidates")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default highlight color.
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Surface bounds are reported as a
// Rect where X is the left edge and Y the top edge.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendMask                    // clip destination to source alpha
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// EventType identifies a kind of highlight event forwarded to an EntityStore.
type EventType uint8

const (
	EventPointerMove  EventType = iota // pointer moved anywhere on screen
	EventPointerEnter                  // pointer entered a node's bounds
	EventPointerLeave                  // pointer left a node's bounds
	EventClick                         // press then release over the same node
	EventSelect                        // selection changed
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
