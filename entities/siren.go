package entities

import (
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/systems"
)

// Siren is a flashing alarm light on the report screen.
type Siren struct {
	systems.Base

	Pos  components.Position
	Anim components.Animation
}

// NewSiren creates a siren at (x, y).
func NewSiren(x, y float32) *Siren {
	return &Siren{
		Pos:  components.Position{X: x, Y: y},
		Anim: components.Animation{Name: "animation", Loop: true},
	}
}

func (s *Siren) Update(_ *systems.Env, dt float32) {
	s.Anim.Time += dt
}

// Lit reports whether the light is on.
func (s *Siren) Lit() bool {
	return SirenLit(s.Anim.Time)
}

// SirenLit reports whether a siren t seconds into its animation is lit.
// It flashes twice per second.
func SirenLit(t float32) bool {
	frac := t - float32(int(t))
	return frac < 0.25 || (frac >= 0.5 && frac < 0.75)
}

func (s *Siren) Draw(p systems.Presenter) {
	p.Submit(systems.Sprite{
		Kind:   systems.SpriteSiren,
		X:      s.Pos.X,
		Y:      s.Pos.Y,
		Tracks: []components.Animation{s.Anim},
	})
}
