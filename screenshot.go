package sheen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// DefaultScreenshotDir is where Screenshot writes when Scene.ScreenshotDir is
// empty.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next drawn frame, highlight
// layers included. The PNG is written to ScreenshotDir with a timestamped
// filename. Safe to call from Update, Draw or a test script.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots encodes the finished frame once and writes one PNG per
// queued label. Failures are logged and never abort the frame.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	dir := s.ScreenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[sheen] screenshot: %v\n", err)
		return
	}

	b := screen.Bounds()
	frame := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(frame.Pix)

	var buf bytes.Buffer
	if err := encodeStraightAlpha(&buf, frame); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[sheen] screenshot: %v\n", err)
		return
	}
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		name := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[sheen] screenshot: %v\n", err)
		}
	}
}

// WriteMaskPNG rasterizes m for a w×h surface and writes it to path as a
// black-on-transparent PNG. Useful for inspecting a highlight's falloff
// without a running game.
func WriteMaskPNG(path string, m RadialMask, w, h int) error {
	var buf bytes.Buffer
	if err := encodeStraightAlpha(&buf, m.Rasterize(w, h)); err != nil {
		return fmt.Errorf("write mask %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write mask: %w", err)
	}
	return nil
}

// straightAlpha converts premultiplied pixels to an NRGBA copy. PNG stores
// straight alpha, so translucent mask edges would otherwise come out dark.
func straightAlpha(src *image.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func encodeStraightAlpha(w io.Writer, src *image.RGBA) error {
	if err := png.Encode(w, straightAlpha(src)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// sanitizeLabel keeps letters, digits, '-' and '.' and maps everything else
// to '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
