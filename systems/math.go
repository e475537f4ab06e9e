package systems

import (
	"math"

	"github.com/raeleus/superbug/components"
)

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

// normalizeDegrees wraps an angle to [0, 360).
func normalizeDegrees(a float32) float32 {
	a = float32(math.Mod(float64(a), 360))
	if a < 0 {
		a += 360
	}
	return a
}

// RandomAngle returns a heading uniform in [0, 360).
func RandomAngle(r Rand) float32 {
	return normalizeDegrees(Uniform(r, 360))
}

// Confine pulls p back onto the circle of the given radius around (cx, cy)
// if it has drifted outside. It reports whether p was moved.
func Confine(p *components.Position, cx, cy, radius float32) bool {
	dx := p.X - cx
	dy := p.Y - cy
	d2 := dx*dx + dy*dy
	if d2 <= radius*radius {
		return false
	}
	d := float32(math.Sqrt(float64(d2)))
	// Shrink slightly so float rounding never leaves the point outside.
	scale := radius / d * (1 - 1e-6)
	p.X = cx + dx*scale
	p.Y = cy + dy*scale
	return true
}
