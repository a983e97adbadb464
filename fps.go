package sheen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsLayer prints FPS, TPS and the animator's load in the top-left corner.
// The text is redrawn every ~0.5 seconds.
type fpsLayer struct {
	scene   *Scene
	img     *ebiten.Image
	elapsed float64
}

// NewFPSLayer creates a layer showing frame timing and the number of running
// interpolations and perimeter loops. Run adds one when RunConfig.ShowFPS is set.
func NewFPSLayer(s *Scene) Layer {
	// 160x48 is enough for three short lines of debug text.
	return &fpsLayer{scene: s, img: ebiten.NewImage(160, 48), elapsed: 0.5}
}

func (l *fpsLayer) Draw(screen *ebiten.Image) {
	l.elapsed += 1 / float64(ebiten.TPS())
	if l.elapsed >= 0.5 {
		l.elapsed = 0
		l.img.Clear()
		// Semi-transparent background for readability
		l.img.Fill(color.RGBA{0, 0, 0, 128})
		a := l.scene.Animator()
		ebitenutil.DebugPrint(l.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nanim: %d  loops: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), a.Running(), a.Loops()))
	}
	screen.DrawImage(l.img, nil)
}
