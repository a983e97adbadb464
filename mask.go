package sheen

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Unit is the unit of a mask Length.
type Unit uint8

const (
	UnitPixels  Unit = iota // device pixels
	UnitPercent             // percent of the surface's width (x) or height (y)
)

// Length is a mask coordinate or radius.
type Length struct {
	V    float64
	Unit Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{V: v, Unit: UnitPixels} }

// Pct returns a percentage length.
func Pct(v float64) Length { return Length{V: v, Unit: UnitPercent} }

// resolve converts l to pixels against extent.
func (l Length) resolve(extent float64) float64 {
	if l.Unit == UnitPercent {
		return l.V * extent / 100
	}
	return l.V
}

// String formats l as a CSS length.
func (l Length) String() string {
	if l.Unit == UnitPercent {
		return fmt.Sprintf("%g%%", l.V)
	}
	return fmt.Sprintf("%gpx", l.V)
}

// RadialMask is an elliptical gradient that is opaque at its center and
// fades linearly to transparent at its radii, like a CSS
// radial-gradient(rx ry at cx cy, black, transparent).
type RadialMask struct {
	RadiusX, RadiusY Length
	CenterX, CenterY Length
}

// CSS returns the mask as a CSS mask-image expression.
func (m RadialMask) CSS() string {
	return fmt.Sprintf("radial-gradient(%s %s at %s %s, black, transparent)",
		m.RadiusX, m.RadiusY, m.CenterX, m.CenterY)
}

// Resolve returns the center and radii in pixels for a w×h surface.
func (m RadialMask) Resolve(w, h float64) (cx, cy, rx, ry float64) {
	return m.CenterX.resolve(w), m.CenterY.resolve(h), m.RadiusX.resolve(w), m.RadiusY.resolve(h)
}

// AlphaAt returns the mask's opacity in [0, 1] at pixel (x, y) of a w×h
// surface.
func (m RadialMask) AlphaAt(x, y, w, h float64) float64 {
	cx, cy, rx, ry := m.Resolve(w, h)
	if rx <= 0 || ry <= 0 {
		return 0
	}
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return clamp01(1 - math.Sqrt(dx*dx+dy*dy))
}

// Rasterize renders the mask into a w×h image whose alpha channel carries
// the mask. The gradient is drawn as a circle in a space squeezed along the
// longer radius and stretched back to w×h.
func (m RadialMask) Rasterize(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	cx, cy, rx, ry := m.Resolve(float64(w), float64(h))
	if rx <= 0 || ry <= 0 {
		return dst
	}

	r := math.Min(rx, ry)
	sx, sy := r/rx, r/ry
	cw := max(1, int(math.Ceil(float64(w)*sx)))
	ch := max(1, int(math.Ceil(float64(h)*sy)))

	dc := gg.NewContext(cw, ch)
	grad := gg.NewRadialGradient(cx*sx, cy*sy, 0, cx*sx, cy*sy, r)
	grad.AddColorStop(0, color.Black)
	grad.AddColorStop(1, color.Transparent)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(cw), float64(ch))
	dc.Fill()

	src := dc.Image()
	if cw == w && ch == h {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// HoverMask returns a mask source centered on the tracker's pointer position
// with radii of half the surface.
func HoverMask(t *PointerTracker) func() RadialMask {
	return func() RadialMask {
		return RadialMask{
			RadiusX: Pct(50), RadiusY: Pct(50),
			CenterX: Px(t.X().Get()), CenterY: Px(t.Y().Get()),
		}
	}
}

// PerimeterMask returns a mask source following the selector's perimeter
// loop with a fixed 80px radius.
func PerimeterMask(s *Selector) func() RadialMask {
	return func() RadialMask {
		return RadialMask{
			RadiusX: Px(80), RadiusY: Px(80),
			CenterX: Pct(s.PerimeterX().Get()), CenterY: Pct(s.PerimeterY().Get()),
		}
	}
}

// HoverMaskTemplate composes the tracker's values into the CSS mask
// expression for the hover highlight.
func HoverMaskTemplate(t *PointerTracker) *Template {
	return Format("radial-gradient(50%% 50%% at %gpx %gpx, black, transparent)", t.X(), t.Y())
}

// PerimeterMaskTemplate composes the selector's perimeter values into the
// CSS mask expression for the selected-candidate border.
func PerimeterMaskTemplate(s *Selector) *Template {
	return Format("radial-gradient(80px 80px at %g%% %g%%, black, transparent)", s.PerimeterX(), s.PerimeterY())
}

// BackgroundPositionTemplate composes the selector's position values into a
// CSS background-position expression.
func BackgroundPositionTemplate(s *Selector) *Template {
	return Format("%g%% %g%%", s.PositionX(), s.PositionY())
}

// BackgroundSizeTemplate composes the selector's size value into a CSS
// background-size expression.
func BackgroundSizeTemplate(s *Selector) *Template {
	return Format("%g%% auto", s.SizeX())
}
