package retained

import (
	"math"
	"time"
)

// EasingFunc defines how animation progress maps to value progress.
// Input t is 0-1 (time progress), output is 0-1 (value progress).
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseInQuad - accelerate from zero
	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	// EaseOutQuad - decelerate to zero
	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2 - t) }

	// EaseInOutQuad - accelerate then decelerate
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	}

	// EaseOutCubic - smooth deceleration (good for UI)
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t--
		return t*t*t + 1
	}

	// EaseInOutCubic - smooth acceleration and deceleration
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	}

	// EaseOutBack - slight overshoot then settle (bouncy feel)
	EaseOutBack EasingFunc = func(t float64) float64 {
		c1 := 1.70158
		c3 := c1 + 1
		return 1 + c3*(t-1)*(t-1)*(t-1) + c1*(t-1)*(t-1)
	}

	// EaseOutElastic - elastic wobble effect
	EaseOutElastic EasingFunc = func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		c4 := (2 * math.Pi) / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
	}

	// EaseOutBounce - bouncing ball effect
	EaseOutBounce EasingFunc = func(t float64) float64 {
		n1 := 7.5625
		d1 := 2.75
		if t < 1/d1 {
			return n1 * t * t
		} else if t < 2/d1 {
			t -= 1.5 / d1
			return n1*t*t + 0.75
		} else if t < 2.5/d1 {
			t -= 2.25 / d1
			return n1*t*t + 0.9375
		} else {
			t -= 2.625 / d1
			return n1*t*t + 0.984375
		}
	}
)

// EasingByName returns the easing function for a given name.
// Returns nil if the name is unknown.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-in":
		return EaseInQuad
	case "ease-out":
		return EaseOutQuad
	case "ease", "ease-in-out":
		return EaseInOutQuad
	case "ease-out-cubic":
		return EaseOutCubic
	case "cubic":
		return EaseInOutCubic
	case "back":
		return EaseOutBack
	case "elastic":
		return EaseOutElastic
	case "bounce":
		return EaseOutBounce
	case "spring":
		return SpringEasing(DefaultSpringFrequency, DefaultSpringDamping)
	default:
		return nil
	}
}

// ============================================================================
// Timing
// ============================================================================

// Timing configures how an animated value moves toward a new target.
type Timing struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   EasingFunc // nil means linear
}

// DefaultTiming is used by drawables that don't set their own.
func DefaultTiming() Timing {
	return Timing{
		Duration: 200 * time.Millisecond,
		Easing:   EaseOutCubic,
	}
}

func (t Timing) ease(p float64) float64 {
	if t.Easing == nil {
		return p
	}
	return t.Easing(p)
}

// ============================================================================
// Animated Scalars
// ============================================================================

// AnimatedScalar is a single float animated toward a target over wall-clock time.
//
// Reading the value is pure: Value never mutates, and the same now always
// yields the same result. Only Transition starts a new movement.
type AnimatedScalar struct {
	from   float32 // Value captured when the current transition began
	target float32
	start  time.Time
	timing Timing
}

// NewAnimatedScalar creates a scalar resting at v. It does not animate until
// its target changes.
func NewAnimatedScalar(v float32, timing Timing) AnimatedScalar {
	return AnimatedScalar{from: v, target: v, timing: timing}
}

// Transition retargets the scalar. An unchanged target is a no-op, so views
// redrawn every frame with a constant value never restart. A new target
// starts from the value interpolated at now, not from the old target.
func (s *AnimatedScalar) Transition(target float32, now time.Time) {
	if target == s.target {
		return
	}
	s.from = s.Value(now)
	s.start = now
	s.target = target
}

// SetTiming replaces the timing used by subsequent transitions.
// The current transition keeps its start time and endpoints.
func (s *AnimatedScalar) SetTiming(timing Timing) {
	s.timing = timing
}

// Snap jumps to v with no animation.
func (s *AnimatedScalar) Snap(v float32) {
	s.from = v
	s.target = v
	s.start = time.Time{}
}

// Target returns the value being animated toward.
func (s *AnimatedScalar) Target() float32 {
	return s.target
}

// Value returns the interpolated value at now. Before the delay elapses it is
// the start value; once the transition completes it is exactly the target.
func (s *AnimatedScalar) Value(now time.Time) float32 {
	begin := s.start.Add(s.timing.Delay)
	if now.Before(begin) {
		return s.from
	}
	end := begin.Add(s.timing.Duration)
	if !now.Before(end) {
		return s.target
	}
	p := float64(now.Sub(begin)) / float64(s.timing.Duration)
	return lerp(s.from, s.target, float32(s.timing.ease(p)))
}

// Animating reports whether the value is still moving at now.
func (s *AnimatedScalar) Animating(now time.Time) bool {
	if s.from == s.target {
		return false
	}
	return now.Before(s.start.Add(s.timing.Delay + s.timing.Duration))
}

// AnimatedBool animates a boolean as a 0-1 progress factor.
type AnimatedBool struct {
	scalar AnimatedScalar
}

// NewAnimatedBool creates a bool resting at v.
func NewAnimatedBool(v bool, timing Timing) AnimatedBool {
	return AnimatedBool{scalar: NewAnimatedScalar(boolFactor(v), timing)}
}

// Transition retargets the bool.
func (b *AnimatedBool) Transition(v bool, now time.Time) {
	b.scalar.Transition(boolFactor(v), now)
}

// SetTiming replaces the timing used by subsequent transitions.
func (b *AnimatedBool) SetTiming(timing Timing) {
	b.scalar.SetTiming(timing)
}

// Bool returns the target state.
func (b *AnimatedBool) Bool() bool {
	return b.scalar.Target() != 0
}

// Value returns the progress toward true at now (0 = false, 1 = true).
func (b *AnimatedBool) Value(now time.Time) float32 {
	return b.scalar.Value(now)
}

// Animating reports whether the factor is still moving at now.
func (b *AnimatedBool) Animating(now time.Time) bool {
	return b.scalar.Animating(now)
}

func boolFactor(v bool) float32 {
	if v {
		return 1
	}
	return 0
}

// AnimatedColor animates the r, g and b channels independently. Alpha is not
// interpolated; it follows the latest target and is faded by the caller.
type AnimatedColor struct {
	r, g, b AnimatedScalar
	alpha   uint8
}

// NewAnimatedColor creates a color resting at c.
func NewAnimatedColor(c Color, timing Timing) AnimatedColor {
	return AnimatedColor{
		r:     NewAnimatedScalar(float32(c.R()), timing),
		g:     NewAnimatedScalar(float32(c.G()), timing),
		b:     NewAnimatedScalar(float32(c.B()), timing),
		alpha: c.A(),
	}
}

// Transition retargets all three channels.
func (c *AnimatedColor) Transition(target Color, now time.Time) {
	c.r.Transition(float32(target.R()), now)
	c.g.Transition(float32(target.G()), now)
	c.b.Transition(float32(target.B()), now)
	c.alpha = target.A()
}

// SetTiming replaces the timing on every channel.
func (c *AnimatedColor) SetTiming(timing Timing) {
	c.r.SetTiming(timing)
	c.g.SetTiming(timing)
	c.b.SetTiming(timing)
}

// Value returns the interpolated color at now, channels rounded and clamped
// to [0, 255].
func (c *AnimatedColor) Value(now time.Time) Color {
	return RGBA(channel(c.r.Value(now)), channel(c.g.Value(now)), channel(c.b.Value(now)), c.alpha)
}

// Animating reports whether any channel is still moving at now.
func (c *AnimatedColor) Animating(now time.Time) bool {
	return c.r.Animating(now) || c.g.Animating(now) || c.b.Animating(now)
}

func channel(v float32) uint8 {
	return uint8(clamp(math.Round(float64(v)), 0, 255))
}

// ============================================================================
// Helper Functions
// ============================================================================

// lerp linearly interpolates between two float32 values.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// lerpColor linearly interpolates between two colors channel by channel.
func lerpColor(from, to Color, t float32) Color {
	return RGBA(
		channel(lerp(float32(from.R()), float32(to.R()), t)),
		channel(lerp(float32(from.G()), float32(to.G()), t)),
		channel(lerp(float32(from.B()), float32(to.B()), t)),
		channel(lerp(float32(from.A()), float32(to.A()), t)),
	)
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
