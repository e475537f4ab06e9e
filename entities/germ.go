// Package entities implements the actors that live in the registry.
package entities

import (
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/traits"
)

// Germ is a moving, splitting, mutating, ageing organism.
type Germ struct {
	systems.Base

	Pos     components.Position
	Motion  components.Motion
	Spin    float32 // body rotation in degrees, cosmetic
	Variant traits.Variant

	// Base intervals, inherited unchanged by children.
	SplitBase float32
	DeathBase float32

	immunities traits.Set

	direction components.Countdown
	split     components.Countdown
	death     components.Countdown
}

// NewGerm creates a germ at (x, y) with a random variant and heading.
func NewGerm(env *systems.Env, x, y float32) *Germ {
	gc := env.Cfg.Germ
	g := &Germ{
		Pos:       components.Position{X: x, Y: y},
		Spin:      systems.RandomAngle(env.Rand),
		Variant:   randomVariant(env),
		SplitBase: float32(gc.SplitTime),
		DeathBase: float32(gc.DeathTime),
	}
	g.Motion.Angle = systems.RandomAngle(env.Rand)
	g.direction.Reset(float32(gc.DirectionInterval))
	g.ResetTimers(env)
	return g
}

func randomVariant(env *systems.Env) traits.Variant {
	n := env.Cfg.Germ.Variants
	if n <= 0 {
		return 1
	}
	return traits.Variant(1 + env.Rand.Intn(n))
}

// Spawn returns a child at the parent's position with the same base
// intervals, variant and immunities, and fresh timers.
func (g *Germ) Spawn(env *systems.Env) *Germ {
	child := NewGerm(env, g.Pos.X, g.Pos.Y)
	child.SplitBase = g.SplitBase
	child.DeathBase = g.DeathBase
	child.Variant = g.Variant
	child.immunities = g.immunities
	child.ResetTimers(env)
	return child
}

// ResetTimers re-randomizes the split and death timers around their bases.
func (g *Germ) ResetTimers(env *systems.Env) {
	gc := env.Cfg.Germ
	g.split.Reset(systems.SplitJitter(env.Rand, g.SplitBase, float32(gc.SplitJitter)))
	g.death.Reset(g.DeathBase + systems.Uniform(env.Rand, float32(gc.DeathJitter)))
}

// Immunities returns the germ's immunity set.
func (g *Germ) Immunities() traits.Set {
	return g.immunities
}

// Grant adds an immunity. Immunities are never removed.
func (g *Germ) Grant(i traits.Immunity) {
	g.immunities = g.immunities.Add(i)
}

// Mutate gives the germ a random variant and one immunity it does not yet
// hold. With a full set only the variant changes. It reports whether an
// immunity was gained.
func (g *Germ) Mutate(env *systems.Env) bool {
	g.Variant = randomVariant(env)
	missing := g.immunities.Missing()
	if len(missing) == 0 {
		return false
	}
	g.Grant(missing[env.Rand.Intn(len(missing))])
	return true
}

// SplitRemaining returns the time left before the next split attempt.
func (g *Germ) SplitRemaining() float32 { return g.split.Remaining }

// DeathRemaining returns the time left to live.
func (g *Germ) DeathRemaining() float32 { return g.death.Remaining }

// Update runs movement, then the direction, split and death timers.
func (g *Germ) Update(env *systems.Env, dt float32) {
	gc := env.Cfg.Germ

	g.Motion.Speed = float32(gc.SpeedFactor) * env.State.Temperature
	g.Motion.Step(&g.Pos, dt)
	if systems.Confine(&g.Pos, env.Dish.X, env.Dish.Y, float32(env.Cfg.Dish.Radius)) {
		g.Motion.Angle = systems.RandomAngle(env.Rand)
	}

	if g.direction.Tick(dt) {
		g.direction.Reset(float32(gc.DirectionInterval))
		g.Motion.Angle = systems.RandomAngle(env.Rand)
	}

	if g.split.Tick(dt) {
		g.split.Reset(systems.SplitJitter(env.Rand, g.SplitBase, float32(gc.SplitJitter)))
		if systems.TrySplit(env) {
			g.divide(env)
		}
	}

	if g.death.Tick(dt) {
		g.Dispose()
	}
}

func (g *Germ) divide(env *systems.Env) {
	child := g.Spawn(env)
	mutated := false
	if systems.Chance(env.Rand, env.Cfg.Germ.MutationChance) {
		mutated = child.Mutate(env)
	}
	env.Registry.Add(child)
	env.Events.RecordBirth(mutated)
}

// OnDispose records the death.
func (g *Germ) OnDispose(env *systems.Env) {
	env.Events.RecordDeath()
}

// Draw submits the germ sprite.
func (g *Germ) Draw(p systems.Presenter) {
	p.Submit(systems.Sprite{
		Kind:     systems.SpriteGerm,
		X:        g.Pos.X,
		Y:        g.Pos.Y,
		Rotation: g.Spin,
		Variant:  g.Variant,
	})
}
