package scene

// Animation describes a change to a sprite over time.
// The set of animations is closed: ScaleBy, FadeTo, RotateTo and Sequence.
type Animation interface {
	duration() float64
	// apply sets the sprite for progress t in [0,1], relative to from.
	apply(s *Sprite, from Sprite, t float64)
}

// ScaleBy multiplies the sprite's scale by Factor over Duration seconds.
type ScaleBy struct {
	Factor   float64
	Duration float64
}

func (a ScaleBy) duration() float64 { return a.Duration }

func (a ScaleBy) apply(s *Sprite, from Sprite, t float64) {
	k := 1 + (a.Factor-1)*t
	s.ScaleX = from.ScaleX * k
	s.ScaleY = from.ScaleY * k
}

// FadeTo moves the sprite's opacity to Opacity over Duration seconds.
type FadeTo struct {
	Opacity  float64
	Duration float64
}

func (a FadeTo) duration() float64 { return a.Duration }

func (a FadeTo) apply(s *Sprite, from Sprite, t float64) {
	s.Opacity = from.Opacity + (a.Opacity-from.Opacity)*t
}

// FadeOut fades a sprite to fully transparent.
func FadeOut(duration float64) FadeTo {
	return FadeTo{Opacity: 0, Duration: duration}
}

// RotateTo turns the sprite to Angle radians over Duration seconds.
type RotateTo struct {
	Angle    float64
	Duration float64
}

func (a RotateTo) duration() float64 { return a.Duration }

func (a RotateTo) apply(s *Sprite, from Sprite, t float64) {
	s.Rotation = from.Rotation + (a.Angle-from.Rotation)*t
}

// Sequence runs its steps one after another.
type Sequence []Animation

func (q Sequence) duration() float64 {
	var d float64
	for _, a := range q {
		d += a.duration()
	}
	return d
}

// apply is unused for sequences; the runner flattens them.
func (q Sequence) apply(*Sprite, Sprite, float64) {}

// runner plays a flattened list of animation steps.
type runner struct {
	steps   []Animation
	idx     int
	elapsed float64
	from    Sprite
}

func newRunner(a Animation, current Sprite) *runner {
	return &runner{steps: flatten(nil, a), from: current}
}

func flatten(dst []Animation, a Animation) []Animation {
	if q, ok := a.(Sequence); ok {
		for _, step := range q {
			dst = flatten(dst, step)
		}
		return dst
	}
	return append(dst, a)
}

// advance consumes dt, carrying leftover time into the next step.
// It reports whether every step has finished.
func (r *runner) advance(s *Sprite, dt float64) bool {
	r.elapsed += dt
	for r.idx < len(r.steps) {
		step := r.steps[r.idx]
		d := step.duration()
		if d > 0 && r.elapsed < d {
			step.apply(s, r.from, r.elapsed/d)
			return false
		}
		step.apply(s, r.from, 1)
		if d > 0 {
			r.elapsed -= d
		}
		r.idx++
		r.from = *s
	}
	return true
}
