package sheen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Interpolation animates one Value toward a target over a fixed duration.
// It is created by Animator.Animate or Animator.AnimateKeyframes and advanced
// by Animator.Update. Starting a new interpolation for the same Value cancels
// this one without touching the value.
type Interpolation struct {
	id       uint64
	value    *Value
	from     float64
	to       float64
	segments []*gween.Tween
	segDur   float32
	seg      int
	segTime  float32

	// Done is set once the final keyframe has been written or the
	// interpolation was cancelled.
	Done      bool
	cancelled bool
}

// ID returns a number unique within the owning Animator.
func (i *Interpolation) ID() uint64 { return i.id }

// Value returns the animated value.
func (i *Interpolation) Value() *Value { return i.value }

// From returns the live value the interpolation started from.
func (i *Interpolation) From() float64 { return i.from }

// To returns the final target.
func (i *Interpolation) To() float64 { return i.to }

// Cancelled reports whether a newer interpolation superseded this one.
func (i *Interpolation) Cancelled() bool { return i.cancelled }

// Update advances the interpolation by dt seconds and writes the eased value.
// Time left over at a keyframe boundary carries into the next segment.
func (i *Interpolation) Update(dt float32) {
	if i.Done {
		return
	}
	var val float32
	for {
		tw := i.segments[i.seg]
		remaining := i.segDur - i.segTime
		step := dt
		if step > remaining {
			step = remaining
		}
		var finished bool
		val, finished = tw.Update(step)
		i.segTime += step
		dt -= step
		if !finished && i.segTime < i.segDur {
			break
		}
		if i.seg == len(i.segments)-1 {
			val = float32(i.to)
			i.Done = true
			break
		}
		i.seg++
		i.segTime = 0
		if dt <= 0 {
			break
		}
	}
	if i.Done {
		i.value.Set(i.to)
		return
	}
	i.value.Set(float64(val))
}

func (i *Interpolation) cancel() {
	i.cancelled = true
	i.Done = true
}

// Animator is the per-instance animation scheduler. It keeps at most one
// active Interpolation per Value and advances every interpolation and
// perimeter loop with the same time sample.
//
// There is no global animator; a Scene owns one and ticks it from Update.
type Animator struct {
	nextID  uint64
	current map[*Value]*Interpolation
	running []*Interpolation
	loops   []*PerimeterLoop
}

// NewAnimator creates an idle animator.
func NewAnimator() *Animator {
	return &Animator{current: make(map[*Value]*Interpolation)}
}

// Animate starts an interpolation of v from its live value to `to`. Any
// interpolation already driving v is cancelled first; v is not snapped.
func (a *Animator) Animate(v *Value, to float64, duration float32, fn ease.TweenFunc) *Interpolation {
	return a.AnimateKeyframes(v, []float64{to}, duration, fn)
}

// AnimateKeyframes starts an interpolation of v from its live value through
// keyframes, the last of which is the target. Segments get equal slices of
// duration and fn is applied to each segment.
func (a *Animator) AnimateKeyframes(v *Value, keyframes []float64, duration float32, fn ease.TweenFunc) *Interpolation {
	if len(keyframes) == 0 {
		panic("sheen: AnimateKeyframes with no keyframes")
	}
	if fn == nil {
		fn = ease.Linear
	}
	if prev := a.current[v]; prev != nil {
		prev.cancel()
	}

	from := v.Get()
	segDur := duration / float32(len(keyframes))
	in := &Interpolation{
		value:    v,
		from:     from,
		to:       keyframes[len(keyframes)-1],
		segments: make([]*gween.Tween, len(keyframes)),
		segDur:   segDur,
	}
	begin := from
	for k, end := range keyframes {
		in.segments[k] = gween.New(float32(begin), float32(end), segDur, fn)
		begin = end
	}
	a.nextID++
	in.id = a.nextID
	a.current[v] = in
	a.running = append(a.running, in)

	if duration <= 0 {
		in.Done = true
		v.Set(in.to)
	}
	return in
}

// Current returns the in-flight interpolation for v, or nil.
func (a *Animator) Current(v *Value) *Interpolation {
	in := a.current[v]
	if in == nil || in.Done {
		return nil
	}
	return in
}

// Update advances all interpolations and perimeter loops by dt seconds.
// Work whose values were disposed is dropped without writing. Interpolations
// and loops started by subscribers during the pass first advance on the next
// tick.
func (a *Animator) Update(dt float32) {
	// Index up to the starting length; subscribers may append mid-pass.
	for i, n := 0, len(a.running); i < n; i++ {
		in := a.running[i]
		if in.value.dead {
			in.cancel()
			continue
		}
		in.Update(dt)
	}
	for i, n := 0, len(a.loops); i < n; i++ {
		l := a.loops[i]
		if l.x.dead || l.y.dead {
			l.Stop()
			continue
		}
		l.Update(dt)
	}
	a.sweep()
}

// sweep removes finished interpolations and stopped loops.
func (a *Animator) sweep() {
	n := 0
	for _, in := range a.running {
		if in.Done {
			if a.current[in.value] == in {
				delete(a.current, in.value)
			}
			continue
		}
		a.running[n] = in
		n++
	}
	clear(a.running[n:])
	a.running = a.running[:n]

	m := 0
	for _, l := range a.loops {
		if l.stopped {
			continue
		}
		a.loops[m] = l
		m++
	}
	clear(a.loops[m:])
	a.loops = a.loops[:m]
}

// Active reports whether any interpolation or perimeter loop is running.
func (a *Animator) Active() bool {
	return a.Running() > 0 || len(a.loops) > 0
}

// Running returns the number of interpolations that have not finished.
func (a *Animator) Running() int {
	n := 0
	for _, in := range a.running {
		if !in.Done {
			n++
		}
	}
	return n
}

// Loops returns the number of perimeter loops still running.
func (a *Animator) Loops() int {
	n := 0
	for _, l := range a.loops {
		if !l.stopped {
			n++
		}
	}
	return n
}
