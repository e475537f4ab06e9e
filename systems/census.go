package systems

import (
	"github.com/raeleus/superbug/traits"
)

// Census summarises the live population after a registry flush.
type Census struct {
	Population    int
	MaxImmunities int
	// Holders counts live carriers of each immunity.
	Holders [traits.Count]int
	// Sizes counts carriers by immunity-set size.
	Sizes [traits.Count + 1]int
}

// TakeCensus counts every live immune entity.
func TakeCensus(reg *Registry) Census {
	var c Census
	reg.Each(func(e Entity) {
		g, ok := e.(Immune)
		if !ok || g.Disposed() {
			return
		}
		c.Population++
		set := g.Immunities()
		n := set.Len()
		c.Sizes[n]++
		if n > c.MaxImmunities {
			c.MaxImmunities = n
		}
		for _, i := range set.Slice() {
			c.Holders[i]++
		}
	})
	return c
}

// Resistance is the largest immunity set as a percentage of the full domain.
func (c Census) Resistance() float32 {
	return float32(c.MaxImmunities) / float32(traits.Count) * 100
}

// Outbreak reports whether some lineage holds every immunity.
func (c Census) Outbreak() bool {
	return c.MaxImmunities == traits.Count
}
