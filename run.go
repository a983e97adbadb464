package sheen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable allows the user to resize the window. Surfaces keep their
	// layout; highlights re-measure on the next event.
	Resizable bool
	// ShowFPS adds an FPS and animation-count overlay above every other layer.
	ShowFPS bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	width, height int
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(w, h int) (int, int) { return g.width, g.height }

// Run opens a window and drives scene until the window is closed or the
// scene's update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.AddLayer(NewFPSLayer(scene))
	}
	if err := ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
