package retained

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func linear(ms int) Timing {
	return Timing{Duration: time.Duration(ms) * time.Millisecond, Easing: EaseLinear}
}

func TestAnimatedScalarRestsUntilRetargeted(t *testing.T) {
	s := NewAnimatedScalar(7, DefaultTiming())
	for _, ms := range []int{0, 100, 10000} {
		if got := s.Value(at(ms)); got != 7 {
			t.Errorf("Value(%dms) = %v, want 7", ms, got)
		}
	}
	if s.Animating(at(0)) {
		t.Error("resting scalar reports animating")
	}
}

func TestTransitionIsIdempotent(t *testing.T) {
	s := NewAnimatedScalar(0, linear(100))
	s.Transition(10, at(0))
	before := s.Value(at(50))

	s.Transition(10, at(50))
	if got := s.Value(at(50)); got != before {
		t.Errorf("Value after repeated Transition = %v, want %v", got, before)
	}
	if got := s.Value(at(75)); got != 7.5 {
		t.Errorf("Value(75ms) = %v, want 7.5 (no restart)", got)
	}
}

func TestTerminalExactness(t *testing.T) {
	easings := map[string]EasingFunc{
		"linear":  EaseLinear,
		"cubic":   EaseOutCubic,
		"back":    EaseOutBack,
		"elastic": EaseOutElastic,
		"bounce":  EaseOutBounce,
		"spring":  SpringEasing(DefaultSpringFrequency, DefaultSpringDamping),
		"nil":     nil,
	}
	for name, e := range easings {
		t.Run(name, func(t *testing.T) {
			tm := Timing{Duration: 130 * time.Millisecond, Delay: 20 * time.Millisecond, Easing: e}
			s := NewAnimatedScalar(3.25, tm)
			s.Transition(-17.125, at(0))
			for _, ms := range []int{150, 151, 400, 100000} {
				if got := s.Value(at(ms)); got != -17.125 {
					t.Errorf("Value(%dms) = %v, want exactly -17.125", ms, got)
				}
			}
			if s.Animating(at(150)) {
				t.Error("still animating at terminal time")
			}
		})
	}
}

func TestDelayHoldsStartValue(t *testing.T) {
	s := NewAnimatedScalar(1, Timing{Duration: 100 * time.Millisecond, Delay: 50 * time.Millisecond, Easing: EaseLinear})
	s.Transition(2, at(0))
	if got := s.Value(at(49)); got != 1 {
		t.Errorf("Value during delay = %v, want 1", got)
	}
	if got := s.Value(at(100)); got != 1.5 {
		t.Errorf("Value(100ms) = %v, want 1.5", got)
	}
	if !s.Animating(at(10)) {
		t.Error("not animating during delay")
	}
}

func TestRetargetContinuity(t *testing.T) {
	s := NewAnimatedScalar(0, linear(100))
	s.Transition(100, at(0))
	mid := s.Value(at(50))

	s.Transition(0, at(50))
	if got := s.Value(at(50)); math.Abs(float64(got-mid)) > 1e-4 {
		t.Errorf("Value at retarget = %v, want %v", got, mid)
	}
	// Halfway from 50 back to 0.
	if got := s.Value(at(100)); got != 25 {
		t.Errorf("Value(100ms) = %v, want 25", got)
	}
	if got := s.Value(at(150)); got != 0 {
		t.Errorf("Value(150ms) = %v, want 0", got)
	}
}

func TestRetargetContinuityEased(t *testing.T) {
	s := NewAnimatedScalar(0, DefaultTiming())
	s.Transition(1, at(0))
	for ms := 10; ms < 200; ms += 37 {
		before := s.Value(at(ms))
		s.Transition(s.Target()*-1+1, at(ms))
		if got := s.Value(at(ms)); math.Abs(float64(got-before)) > 1e-5 {
			t.Fatalf("jump at %dms: %v -> %v", ms, before, got)
		}
	}
}

func TestSnap(t *testing.T) {
	s := NewAnimatedScalar(0, linear(100))
	s.Transition(10, at(0))
	s.Snap(4)
	if got := s.Value(at(10)); got != 4 {
		t.Errorf("Value after Snap = %v, want 4", got)
	}
	if s.Animating(at(10)) {
		t.Error("animating after Snap")
	}
}

func TestAnimatedBool(t *testing.T) {
	b := NewAnimatedBool(false, linear(200))
	b.Transition(true, at(0))
	if !b.Bool() {
		t.Error("Bool() = false after Transition(true)")
	}
	if got := b.Value(at(50)); got != 0.25 {
		t.Errorf("Value(50ms) = %v, want 0.25", got)
	}
	if got := b.Value(at(200)); got != 1 {
		t.Errorf("Value(200ms) = %v, want 1", got)
	}
}

func TestAnimatedColorChannels(t *testing.T) {
	c := NewAnimatedColor(RGB(0, 0, 0), linear(200))
	c.Transition(RGBA(200, 100, 50, 0x80), at(0))

	if got, want := c.Value(at(100)), RGBA(100, 50, 25, 0x80); got != want {
		t.Errorf("Value(100ms) = %#08x, want %#08x", uint32(got), uint32(want))
	}
	if got, want := c.Value(at(200)), RGBA(200, 100, 50, 0x80); got != want {
		t.Errorf("Value(200ms) = %#08x, want %#08x", uint32(got), uint32(want))
	}
}

func TestButtonHoverColorScenario(t *testing.T) {
	a := RGB(0x3B, 0x82, 0xF6)
	b := RGB(0x25, 0x63, 0xEB)
	store := NewViewStore(1)
	id := ID("button")
	rect := func(fill Color) *Rect {
		tm := Timing{Duration: 200 * time.Millisecond, Easing: EaseOutCubic}
		return &Rect{Node: id, Fill: fill, Transition: &tm}
	}
	area := Area{Width: 80, Height: 32}

	draw := func(now time.Time, fill Color) Color {
		store.BeginFrame()
		cmds := NewCommandList()
		rect(fill).DrawInterpolated(area, NewFrame(now, store, cmds), true, 1)
		return cmds.Commands()[0].Color
	}

	if got := draw(at(0), a); got != a {
		t.Fatalf("first draw = %#08x, want A", uint32(got))
	}
	draw(at(0), b)

	mid := draw(at(100), b)
	if mid == a || mid == b {
		t.Errorf("Value(100ms) = %#08x, want strictly between", uint32(mid))
	}
	for _, ch := range []struct{ got, lo, hi uint8 }{
		{mid.R(), b.R(), a.R()},
		{mid.G(), b.G(), a.G()},
		{mid.B(), b.B(), a.B()},
	} {
		if ch.got < ch.lo || ch.got > ch.hi {
			t.Errorf("channel %d outside [%d, %d]", ch.got, ch.lo, ch.hi)
		}
	}
	if got := draw(at(201), b); got != b {
		t.Errorf("Value(201ms) = %#08x, want exactly B", uint32(got))
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "ease-in", "ease-out", "ease", "ease-in-out", "ease-out-cubic", "cubic", "back", "elastic", "bounce", "spring"} {
		e := EasingByName(name)
		if e == nil {
			t.Errorf("EasingByName(%q) = nil", name)
			continue
		}
		if got := e(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
		if got := e(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
	}
	if EasingByName("wobble") != nil {
		t.Error("unknown easing should be nil")
	}
}

func TestSpringOvershoots(t *testing.T) {
	e := SpringEasing(12, 0.3)
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = max(peak, e(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("underdamped spring peak = %v, want > 1", peak)
	}
}

func TestLerpColorIncludesAlpha(t *testing.T) {
	got := lerpColor(RGBA(0, 0, 0, 0), RGBA(200, 100, 50, 200), 0.5)
	if want := RGBA(100, 50, 25, 100); got != want {
		t.Errorf("lerpColor = %#08x, want %#08x", uint32(got), uint32(want))
	}
}
