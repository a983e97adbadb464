package sheen

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: -5, Y: 7, Width: 10, Height: 10}
	if r.Left() != -5 || r.Top() != 7 {
		t.Errorf("edges = (%v, %v), want (-5, 7)", r.Left(), r.Top())
	}
}

// --- Color ---

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.RGBA
	}{
		{"opaque white", ColorWhite, color.RGBA{255, 255, 255, 255}},
		{"transparent", Color{1, 1, 1, 0}, color.RGBA{0, 0, 0, 0}},
		{"half red", Color{1, 0, 0, 0.5}, color.RGBA{127, 0, 0, 127}},
		{"clamped", Color{2, -1, 0, 1}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.toRGBA(); got != tt.want {
				t.Errorf("toRGBA() = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- BlendMode ---

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal should map to BlendSourceOver")
	}
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("BlendAdd should map to BlendLighter")
	}
	m := BlendMask.EbitenBlend()
	if m.BlendFactorSourceRGB != ebiten.BlendFactorZero ||
		m.BlendFactorDestinationAlpha != ebiten.BlendFactorSourceAlpha {
		t.Errorf("BlendMask = %+v, want destination scaled by source alpha", m)
	}
}

// --- Errors ---

func TestSentinelErrorsWrap(t *testing.T) {
	err := fmt.Errorf("select: %w", ErrInvalidIndex)
	if !errors.Is(err, ErrInvalidIndex) {
		t.Error("wrapped error should match ErrInvalidIndex")
	}
	if errors.Is(err, ErrDetachedSurface) {
		t.Error("sentinels should be distinct")
	}
}
