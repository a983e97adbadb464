package sheen

// perimeterX and perimeterY are the percentage keyframes for a clockwise
// traversal starting at the top-left corner.
var (
	perimeterX = [5]float64{0, 100, 100, 0, 0}
	perimeterY = [5]float64{0, 0, 100, 100, 0}
)

// PerimeterKeyframes returns the normalized timeline positions of the four
// corners of a width×height rectangle, plus the closing 1. Each position is
// the distance travelled along the border divided by the circumference, so a
// highlight following these keyframes moves at constant speed.
func PerimeterKeyframes(width, height float64) [5]float64 {
	c := 2 * (width + height)
	if c <= 0 {
		return [5]float64{0, 0.25, 0.5, 0.75, 1}
	}
	return [5]float64{
		0,
		width / c,
		(width + height) / c,
		(2*width + height) / c,
		1,
	}
}

// PerimeterLoop drives two values (X% and Y%) around a rectangle's border,
// looping until stopped. It is a state machine over the current segment and
// the progress within it.
type PerimeterLoop struct {
	x, y     *Value
	bounds   Rect
	times    [5]float64
	duration float64
	elapsed  float64
	segment  int
	progress float64
	stopped  bool
}

// StartPerimeter stops any loop already driving x or y, resets both values
// to the top-left corner and starts a new loop sized to bounds.
func (a *Animator) StartPerimeter(bounds Rect, duration float32, x, y *Value) *PerimeterLoop {
	for _, l := range a.loops {
		if l.x == x || l.y == y || l.x == y || l.y == x {
			l.Stop()
		}
	}
	l := &PerimeterLoop{
		x:        x,
		y:        y,
		bounds:   bounds,
		times:    PerimeterKeyframes(bounds.Width, bounds.Height),
		duration: float64(duration),
	}
	l.apply()
	a.loops = append(a.loops, l)
	return l
}

// StopPerimeter halts l. Equivalent to l.Stop.
func (a *Animator) StopPerimeter(l *PerimeterLoop) {
	if l != nil {
		l.Stop()
	}
}

// Stop halts the loop and leaves the last written values in place.
func (l *PerimeterLoop) Stop() {
	l.stopped = true
}

// Stopped reports whether Stop has been called.
func (l *PerimeterLoop) Stopped() bool { return l.stopped }

// Keyframes returns the loop's normalized corner times.
func (l *PerimeterLoop) Keyframes() [5]float64 { return l.times }

// Bounds returns the surface bounds the loop was sized from.
func (l *PerimeterLoop) Bounds() Rect { return l.bounds }

// Segment returns the index of the edge being traversed (0 top, 1 right,
// 2 bottom, 3 left).
func (l *PerimeterLoop) Segment() int { return l.segment }

// Progress returns the fraction of the current edge already traversed.
func (l *PerimeterLoop) Progress() float64 { return l.progress }

// Update advances the loop by dt seconds and writes both values.
func (l *PerimeterLoop) Update(dt float32) {
	if l.stopped || l.duration <= 0 {
		return
	}
	l.elapsed += float64(dt)
	for l.elapsed >= l.duration {
		l.elapsed -= l.duration
	}
	l.seek(l.elapsed / l.duration)
	l.apply()
}

// seek locates the segment containing normalized time t. Zero-length
// segments (degenerate rectangles) are never selected.
func (l *PerimeterLoop) seek(t float64) {
	seg := 0
	for seg < 3 && t >= l.times[seg+1] {
		seg++
	}
	span := l.times[seg+1] - l.times[seg]
	progress := 0.0
	if span > 0 {
		progress = (t - l.times[seg]) / span
	}
	l.segment = seg
	l.progress = progress
}

func (l *PerimeterLoop) apply() {
	s, p := l.segment, l.progress
	l.x.Set(perimeterX[s] + (perimeterX[s+1]-perimeterX[s])*p)
	l.y.Set(perimeterY[s] + (perimeterY[s+1]-perimeterY[s])*p)
}
