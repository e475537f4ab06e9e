package systems

import (
	"github.com/raeleus/superbug/traits"
)

// Immune is implemented by entities that carry an immunity set.
type Immune interface {
	Entity
	Immunities() traits.Set
}

// Stress is one environmental condition currently in effect.
type Stress struct {
	Cause  traits.Immunity
	Chance float64
}

// ActiveStresses returns the culling conditions for the given slider values
// (0..100 scale).
func ActiveStresses(env *Env, temperature, radiation float32) []Stress {
	ec := env.Cfg.Environment
	kill := ec.StressKillChance
	var out []Stress
	if float64(radiation) > ec.RadiationThreshold {
		out = append(out, Stress{Cause: traits.Radiation, Chance: kill})
	}
	if float64(temperature) > ec.HotThreshold {
		out = append(out, Stress{Cause: traits.Heat, Chance: kill})
	}
	if float64(temperature) < ec.ColdThreshold {
		out = append(out, Stress{Cause: traits.Cold, Chance: kill})
	}
	return out
}

// Cull gives every live carrier lacking the stress's immunity an independent
// chance of disposal. Carriers already disposed this tick are skipped.
// It returns the number disposed.
func Cull(env *Env, s Stress) int {
	killed := 0
	env.Registry.Each(func(e Entity) {
		g, ok := e.(Immune)
		if !ok || g.Disposed() || g.Immunities().Has(s.Cause) {
			return
		}
		if Chance(env.Rand, s.Chance) {
			g.Dispose()
			env.Events.RecordCull(s.Cause)
			killed++
		}
	})
	return killed
}

// ApplyTreatment disposes carriers lacking the treatment's immunity with
// the kill chance, and resistant carriers with the smaller resistant chance.
func ApplyTreatment(env *Env, t traits.Immunity) int {
	tc := env.Cfg.Treatment
	killed := 0
	env.Registry.Each(func(e Entity) {
		g, ok := e.(Immune)
		if !ok || g.Disposed() {
			return
		}
		p := tc.KillChance
		if g.Immunities().Has(t) {
			p = tc.ResistantKillChance
		}
		if Chance(env.Rand, p) {
			g.Dispose()
			env.Events.RecordCull(t)
			killed++
		}
	})
	return killed
}
