package entities

import (
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/systems"
)

// Scientist runs across the report screen, wrapping around when it leaves
// on the left. Coordinates are screen pixels.
type Scientist struct {
	systems.Base

	Pos    components.Position
	Motion components.Motion
	Anim   components.Animation

	// WrapX is the x below which the scientist re-enters at RespawnX.
	WrapX    float32
	RespawnX float32
}

// NewScientist creates a scientist running left from (x, y).
func NewScientist(env *systems.Env, x, y float32) *Scientist {
	sc := env.Cfg.Scientist
	return &Scientist{
		Pos:      components.Position{X: x, Y: y},
		Motion:   components.Motion{Speed: float32(sc.Speed), Angle: 180},
		Anim:     components.Animation{Name: "run", Loop: true},
		WrapX:    -float32(sc.WrapMargin),
		RespawnX: float32(env.Cfg.Screen.Width) + float32(sc.RespawnOffset),
	}
}

func (s *Scientist) Update(_ *systems.Env, dt float32) {
	s.Motion.Step(&s.Pos, dt)
	if s.Pos.X < s.WrapX {
		s.Pos.X = s.RespawnX
	}
	s.Anim.Time += dt
}

func (s *Scientist) Draw(p systems.Presenter) {
	p.Submit(systems.Sprite{
		Kind:   systems.SpriteScientist,
		X:      s.Pos.X,
		Y:      s.Pos.Y,
		Tracks: []components.Animation{s.Anim},
	})
}
