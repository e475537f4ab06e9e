package systems

import (
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/traits"
)

// Rand is the random source the simulation draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Chance runs a Bernoulli trial with success probability p.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// Uniform returns a value in [0, max).
func Uniform(r Rand, max float32) float32 {
	return float32(r.Float64()) * max
}

// SimState is the shared mutable state of one play session.
type SimState struct {
	Food          float32 // 0..1
	PopulationCap int
	Population    int     // live germs as of the last census
	Temperature   float32 // 0..1
}

// NewSimState returns the state a session starts with.
func NewSimState(cfg *config.Config) SimState {
	return SimState{
		Food:          1,
		PopulationCap: cfg.Population.Cap,
		Temperature:   float32(cfg.Environment.TemperatureDefault / 100),
	}
}

// DecayFood removes rate*dt food, clamped to [0, 1].
func (s *SimState) DecayFood(rate, dt float32) {
	s.Food = clamp01(s.Food - rate*dt)
}

// SpriteKind selects how the presenter draws a sprite.
type SpriteKind uint8

const (
	SpriteGerm SpriteKind = iota
	SpriteDish
	SpriteScientist
	SpriteSiren
)

// Sprite is one draw call submitted to the presentation layer.
type Sprite struct {
	Kind     SpriteKind
	X, Y     float32
	Rotation float32 // degrees
	Radius   float32
	Variant  traits.Variant
	Tracks   []components.Animation
}

// Presenter receives per-frame draw calls.
type Presenter interface {
	Submit(s Sprite)
}

// Sounds plays named sound effects.
type Sounds interface {
	PlaySound(name string, volume, pitch float32)
}

// EventSink observes population events. telemetry.Collector implements it.
type EventSink interface {
	RecordBirth(mutated bool)
	RecordDeath()
	RecordCull(cause traits.Immunity)
}

type nopSink struct{}

func (nopSink) RecordBirth(bool)           {}
func (nopSink) RecordDeath()               {}
func (nopSink) RecordCull(traits.Immunity) {}

type nopSounds struct{}

func (nopSounds) PlaySound(string, float32, float32) {}

// Env is everything an entity may read or touch during its update.
type Env struct {
	Cfg      *config.Config
	State    *SimState
	Registry *Registry
	Rand     Rand
	Dish     components.Position
	Events   EventSink
	Sounds   Sounds
}

// NewEnv wires an environment with no-op events and sounds.
func NewEnv(cfg *config.Config, state *SimState, reg *Registry, r Rand) *Env {
	return &Env{
		Cfg:      cfg,
		State:    state,
		Registry: reg,
		Rand:     r,
		Dish:     components.Position{X: float32(cfg.Dish.X), Y: float32(cfg.Dish.Y)},
		Events:   nopSink{},
		Sounds:   nopSounds{},
	}
}

// PlaySound forwards to the configured sound sink.
func (e *Env) PlaySound(name string, volume float32) {
	e.Sounds.PlaySound(name, volume, 1)
}
