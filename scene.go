package sheen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, highlight events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event HighlightEvent)
}

// HighlightEvent carries interaction and selection data for the ECS bridge.
type HighlightEvent struct {
	Type     EventType
	NodeName string
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	// Selection fields (valid for EventSelect)
	From int
	To   int
	// Candidate index for hover/click on a bound candidate surface, -1 otherwise.
	Candidate int
}

// Scene is the top-level object that owns the surface tree, the animation
// scheduler, input state and highlight layers for one mounted instance.
type Scene struct {
	root     *Node
	store    EntityStore
	debug    bool
	animator *Animator

	// ClearColor fills the screen at the start of Draw when its alpha is > 0.
	ClearColor Color

	// ScreenshotDir is where queued screenshots are written.
	// Defaults to DefaultScreenshotDir when empty.
	ScreenshotDir string

	layers []Layer

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	screenshotQueue []string

	updateFunc func() error
	drawFunc   func(screen *ebiten.Image)

	lastStats debugStats
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	s := &Scene{
		root:     root,
		animator: NewAnimator(),
	}
	root.scene = s
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Animator returns the scene's animation scheduler.
func (s *Scene) Animator() *Animator {
	return s.animator
}

// Update processes input, advances animations by one tick and runs the user
// update func. All animations share the same time sample.
func (s *Scene) Update() error {
	s.Advance(float32(1.0 / float64(ebiten.TPS())))
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Advance runs one scheduler tick with an explicit time step. Update calls it
// with 1/TPS; tests call it directly.
func (s *Scene) Advance(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.animator.Update(dt)
	if s.debug {
		s.debugLog(s.collectStats())
	}
}

// Draw clears the screen, runs the user draw func, paints every highlight
// layer on top and flushes queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	if s.drawFunc != nil {
		s.drawFunc(screen)
	}
	for _, l := range s.layers {
		l.Draw(screen)
	}
	s.flushScreenshots(screen)
}

// SetUpdateFunc registers a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDrawFunc registers a callback run before highlight layers are drawn.
func (s *Scene) SetDrawFunc(fn func(screen *ebiten.Image)) {
	s.drawFunc = fn
}

// Layer is anything the scene paints after the user draw func.
type Layer interface {
	Draw(screen *ebiten.Image)
}

// AddLayer registers a layer to be painted by Draw, in order.
func (s *Scene) AddLayer(l Layer) {
	s.layers = append(s.layers, l)
}

// RemoveLayer unregisters a layer.
func (s *Scene) RemoveLayer(l Layer) {
	for i, c := range s.layers {
		if c == l {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}

// Layers returns the scene's layers. The returned slice MUST NOT be mutated.
func (s *Scene) Layers() []Layer {
	return s.layers
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, selection transitions and skipped measurements are printed,
// and animation counts are logged to stderr whenever they change.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

func (s *Scene) emit(e HighlightEvent) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(e)
}
