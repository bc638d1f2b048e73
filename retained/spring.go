package retained

import (
	"sync"

	"github.com/charmbracelet/harmonica"
)

// Spring parameters used by the "spring" easing name.
const (
	DefaultSpringFrequency = 12.0
	DefaultSpringDamping   = 0.9
)

const springSamples = 120

type springKey struct {
	frequency, damping float64
}

var (
	springMu     sync.Mutex
	springTables = map[springKey][]float64{}
)

// SpringEasing returns an easing curve shaped like a damped spring settling
// from 0 to 1. The spring is simulated once over the unit interval and sampled
// into a table; lookups interpolate between samples. Underdamped springs
// (damping < 1) overshoot before settling. The curve is pinned to exactly 0
// and 1 at its endpoints.
func SpringEasing(frequency, damping float64) EasingFunc {
	table := springTable(frequency, damping)
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		pos := t * springSamples
		i := int(pos)
		frac := pos - float64(i)
		return table[i] + (table[i+1]-table[i])*frac
	}
}

func springTable(frequency, damping float64) []float64 {
	key := springKey{frequency, damping}

	springMu.Lock()
	defer springMu.Unlock()
	if table, ok := springTables[key]; ok {
		return table
	}

	// One simulated second spans the whole curve.
	spring := harmonica.NewSpring(harmonica.FPS(springSamples), frequency, damping)
	table := make([]float64, springSamples+1)
	var pos, vel float64
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1.0)
		table[i] = pos
	}
	table[springSamples] = 1
	springTables[key] = table
	return table
}
