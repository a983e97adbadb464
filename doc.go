// Package sheen is an interactive-highlight engine for [Ebitengine].
//
// It tracks the pointer relative to bounded surfaces to drive a moving mask,
// and runs a selected-item state machine whose transitions retarget animated
// parameters without restarting motion already in flight.
//
// # Quick start
//
//	scene := sheen.NewScene()
//	store := sheen.NewStore()
//
//	panel := sheen.NewSurface("panel", 400, 200)
//	panel.X, panel.Y = 40, 40
//	scene.Root().AddChild(panel)
//
//	tracker := sheen.NewPointerTracker(scene, store)
//	detach := tracker.Attach(panel)
//	defer detach()
//	scene.AddLayer(sheen.NewHoverLayer(tracker, sheen.Color{R: 0.55, G: 0.27, B: 1, A: 1}))
//
//	sheen.Run(scene, sheen.RunConfig{Title: "Highlight", Width: 480, Height: 280})
//
// # Values
//
// Every animated quantity is a [Value] owned by a [Store]. Reads are
// synchronous and always return the latest write, even mid-animation.
// Subscribers run synchronously on change. There is no global store.
//
// # Animation
//
// A [Scene] owns an [Animator] and ticks it once per [Scene.Update] with a
// single time sample, so coupled values never drift apart. The animator keeps
// at most one [Interpolation] per value: starting another cancels the old one
// and continues from the live value. Interpolations use [gween] tweens and
// easing functions.
//
// [PerimeterLoop] moves a highlight around a rectangle's border at constant
// speed; its corner keyframes come from [PerimeterKeyframes].
//
// # Selection
//
// [Selector] holds the selected candidate index. [Selector.Select] animates
// position and size toward the candidate's presets and restarts the
// perimeter loop around the candidate's surface.
//
// # Rendering
//
// [HighlightLayer] rasterizes a [RadialMask] with [gg] and composites it
// over a surface; [BackgroundLayer] places an image by the selector's
// animated position and size. Both re-measure surfaces every frame.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [gg]: https://github.com/fogleman/gg
package sheen
