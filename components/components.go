// Package components defines the plain data parts entities are built from.
package components

import "math"

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Dist returns the distance to (x, y).
func (p Position) Dist(x, y float32) float32 {
	dx := p.X - x
	dy := p.Y - y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// Motion is a speed along a heading in degrees (0 = +X, counter-clockwise).
type Motion struct {
	Speed float32 // units per second
	Angle float32 // degrees
}

// Velocity returns the per-second displacement.
func (m Motion) Velocity() (vx, vy float32) {
	rad := float64(m.Angle) * math.Pi / 180
	return m.Speed * float32(math.Cos(rad)), m.Speed * float32(math.Sin(rad))
}

// Step advances p by dt seconds of motion.
func (m Motion) Step(p *Position, dt float32) {
	vx, vy := m.Velocity()
	p.X += vx * dt
	p.Y += vy * dt
}

// Countdown is a timer that expires when it reaches zero.
type Countdown struct {
	Remaining float32
}

// Tick subtracts dt and reports whether the timer has expired (<= 0).
func (c *Countdown) Tick(dt float32) bool {
	c.Remaining -= dt
	return c.Remaining <= 0
}

// Reset sets the remaining time.
func (c *Countdown) Reset(d float32) {
	c.Remaining = d
}

// Animation is a named animation playing on one track of a shared visual.
type Animation struct {
	Name string
	Loop bool
	Time float32 // seconds since the animation was set
}
