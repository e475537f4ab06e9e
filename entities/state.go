package entities

import (
	"fmt"

	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/traits"
)

// GermState is the serializable state of one germ.
type GermState struct {
	X          float32  `json:"x"`
	Y          float32  `json:"y"`
	Angle      float32  `json:"angle"`
	Spin       float32  `json:"spin"`
	Variant    uint8    `json:"variant"`
	Immunities []string `json:"immunities"`

	SplitBase float32 `json:"split_base"`
	DeathBase float32 `json:"death_base"`

	DirectionLeft float32 `json:"direction_left"`
	SplitLeft     float32 `json:"split_left"`
	DeathLeft     float32 `json:"death_left"`
}

// State captures the germ.
func (g *Germ) State() GermState {
	names := make([]string, 0, g.immunities.Len())
	for _, i := range g.immunities.Slice() {
		names = append(names, i.String())
	}
	return GermState{
		X:             g.Pos.X,
		Y:             g.Pos.Y,
		Angle:         g.Motion.Angle,
		Spin:          g.Spin,
		Variant:       uint8(g.Variant),
		Immunities:    names,
		SplitBase:     g.SplitBase,
		DeathBase:     g.DeathBase,
		DirectionLeft: g.direction.Remaining,
		SplitLeft:     g.split.Remaining,
		DeathLeft:     g.death.Remaining,
	}
}

// RestoreGerm rebuilds a germ from captured state.
func RestoreGerm(s GermState) (*Germ, error) {
	g := &Germ{
		Pos:       components.Position{X: s.X, Y: s.Y},
		Motion:    components.Motion{Angle: s.Angle},
		Spin:      s.Spin,
		Variant:   traits.Variant(s.Variant),
		SplitBase: s.SplitBase,
		DeathBase: s.DeathBase,
	}
	for _, name := range s.Immunities {
		i, ok := traits.Parse(name)
		if !ok {
			return nil, fmt.Errorf("unknown immunity %q", name)
		}
		g.Grant(i)
	}
	g.direction.Reset(s.DirectionLeft)
	g.split.Reset(s.SplitLeft)
	g.death.Reset(s.DeathLeft)
	return g, nil
}
