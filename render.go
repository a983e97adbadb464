package sheen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// BackgroundPlacement computes where an imgW×imgH image lands inside
// container for background-size "sizeX% auto" and background-position
// "posX% posY%": the drawn width is sizeX percent of the container, the height
// keeps the aspect ratio, and each percentage aligns that point of the image
// with the same point of the container.
func BackgroundPlacement(container Rect, imgW, imgH, posX, posY, sizeX float64) Rect {
	dw := container.Width * sizeX / 100
	dh := 0.0
	if imgW > 0 {
		dh = dw * imgH / imgW
	}
	return Rect{
		X:      container.X + (container.Width-dw)*posX/100,
		Y:      container.Y + (container.Height-dh)*posY/100,
		Width:  dw,
		Height: dh,
	}
}

// HighlightLayer paints a solid color through a live RadialMask onto a
// surface. The mask is re-rasterized only after one of its source values
// changed or the surface was resized; otherwise the cached image is reused.
type HighlightLayer struct {
	// Color of the highlight before masking.
	Color Color
	// Opacity scales the whole layer when non-nil; read every frame.
	Opacity *Value
	// Visible toggles drawing without releasing resources.
	Visible bool

	surface func() *Node
	mask    func() RadialMask
	subs    []Subscription

	dirty   bool
	w, h    int
	maskImg *ebiten.Image
	buf     *ebiten.Image
	pixels  *image.RGBA
}

// NewHighlightLayer creates a layer drawn over the node returned by surface,
// masked by mask. Changes to any of sources mark the mask dirty.
func NewHighlightLayer(surface func() *Node, c Color, mask func() RadialMask, sources ...*Value) *HighlightLayer {
	l := &HighlightLayer{
		Color:   c,
		Visible: true,
		surface: surface,
		mask:    mask,
		dirty:   true,
	}
	for _, v := range sources {
		l.subs = append(l.subs, v.Subscribe(func(float64) { l.dirty = true }))
	}
	return l
}

// NewHoverLayer creates a layer over the tracker's surface that follows the
// pointer.
func NewHoverLayer(t *PointerTracker, c Color) *HighlightLayer {
	return NewHighlightLayer(t.Surface, c, HoverMask(t), t.X(), t.Y())
}

// DefaultHoverFadeDuration is the time, in seconds, for a hover glow to fade
// fully in or out.
const DefaultHoverFadeDuration = 0.7

// HoverFade drives an opacity value toward 1 while the pointer is over a
// surface and back toward 0 once it leaves. Assign Opacity to a layer's
// Opacity field. A fade reversed midway continues from the live opacity.
type HoverFade struct {
	// Duration of each fade, in seconds.
	Duration float32
	// Ease is applied to each fade.
	Ease ease.TweenFunc

	scene   *Scene
	surface *Node
	opacity *Value
	inside  bool
	handle  CallbackHandle
}

// NewHoverFade creates a fade for surface whose opacity value lives in store
// and starts at 0.
func NewHoverFade(scene *Scene, store *Store, surface *Node) *HoverFade {
	f := &HoverFade{
		Duration: DefaultHoverFadeDuration,
		Ease:     ease.InOutQuad,
		scene:    scene,
		surface:  surface,
		opacity:  store.NewValue(0),
	}
	f.handle = scene.OnPointerMove(f.handleMove)
	return f
}

// Opacity returns the animated opacity value.
func (f *HoverFade) Opacity() *Value { return f.opacity }

// Hovered reports whether the last pointer move was over the surface.
func (f *HoverFade) Hovered() bool { return f.inside }

// Close stops listening for pointer moves. A fade in flight runs to its end.
func (f *HoverFade) Close() {
	f.handle.Remove()
	f.handle = CallbackHandle{}
}

func (f *HoverFade) handleMove(ctx PointerContext) {
	b, err := f.surface.Bounds()
	if err != nil {
		f.scene.debugf("hover fade: skip move: %v", err)
		return
	}
	inside := b.Contains(ctx.GlobalX, ctx.GlobalY)
	if inside == f.inside {
		return
	}
	f.inside = inside
	target := 0.0
	if inside {
		target = 1
	}
	f.scene.Animator().Animate(f.opacity, target, f.Duration, f.Ease)
}

// NewPerimeterLayer creates a layer over the selected candidate's surface
// that follows the perimeter loop.
func NewPerimeterLayer(s *Selector, c Color) *HighlightLayer {
	surface := func() *Node { return s.Surface(s.Selected()) }
	return NewHighlightLayer(surface, c, PerimeterMask(s), s.PerimeterX(), s.PerimeterY())
}

// Dirty reports whether the next Draw will re-rasterize the mask.
func (l *HighlightLayer) Dirty() bool {
	return l.dirty
}

// Close unsubscribes from the source values and releases GPU images.
func (l *HighlightLayer) Close() {
	for i := range l.subs {
		l.subs[i].Remove()
	}
	l.subs = nil
	if l.maskImg != nil {
		l.maskImg.Deallocate()
		l.maskImg = nil
	}
	if l.buf != nil {
		l.buf.Deallocate()
		l.buf = nil
	}
}

// Draw paints the layer. A detached or empty surface draws nothing.
func (l *HighlightLayer) Draw(screen *ebiten.Image) {
	if !l.Visible {
		return
	}
	b, err := l.surface().Bounds()
	if err != nil {
		return
	}
	w, h := int(b.Width+0.5), int(b.Height+0.5)
	if w <= 0 || h <= 0 {
		return
	}
	if w != l.w || h != l.h {
		l.resize(w, h)
	}
	if l.dirty {
		l.pixels = l.mask().Rasterize(w, h)
		l.maskImg.WritePixels(l.pixels.Pix)
		l.dirty = false
	}

	l.buf.Clear()
	l.buf.Fill(l.Color.toRGBA())
	l.buf.DrawImage(l.maskImg, &ebiten.DrawImageOptions{Blend: BlendMask.EbitenBlend()})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.X, b.Y)
	if l.Opacity != nil {
		op.ColorScale.ScaleAlpha(float32(clamp01(l.Opacity.Get())))
	}
	screen.DrawImage(l.buf, op)
}

func (l *HighlightLayer) resize(w, h int) {
	if l.maskImg != nil {
		l.maskImg.Deallocate()
	}
	if l.buf != nil {
		l.buf.Deallocate()
	}
	l.w, l.h = w, h
	l.maskImg = ebiten.NewImage(w, h)
	l.buf = ebiten.NewImage(w, h)
	l.dirty = true
}

// BackgroundLayer draws an image inside a surface, placed by the selector's
// animated position and size values.
type BackgroundLayer struct {
	Surface *Node
	Image   *ebiten.Image
	sel     *Selector
}

// NewBackgroundLayer creates a background layer for img inside surface.
func NewBackgroundLayer(surface *Node, img *ebiten.Image, s *Selector) *BackgroundLayer {
	return &BackgroundLayer{Surface: surface, Image: img, sel: s}
}

// Placement returns the image's current destination rectangle.
func (l *BackgroundLayer) Placement() (Rect, error) {
	b, err := l.Surface.Bounds()
	if err != nil {
		return Rect{}, err
	}
	iw, ih := l.Image.Bounds().Dx(), l.Image.Bounds().Dy()
	return BackgroundPlacement(b, float64(iw), float64(ih),
		l.sel.PositionX().Get(), l.sel.PositionY().Get(), l.sel.SizeX().Get()), nil
}

// Draw paints the image clipped to the surface.
func (l *BackgroundLayer) Draw(screen *ebiten.Image) {
	b, err := l.Surface.Bounds()
	if err != nil {
		return
	}
	p, err := l.Placement()
	if err != nil || p.Width <= 0 || p.Height <= 0 {
		return
	}
	clip := image.Rect(int(b.X), int(b.Y), int(b.X+b.Width), int(b.Y+b.Height))
	dst := screen.SubImage(clip).(*ebiten.Image)

	iw, ih := l.Image.Bounds().Dx(), l.Image.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.Width/float64(iw), p.Height/float64(ih))
	op.GeoM.Translate(p.X, p.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(l.Image, op)
}
