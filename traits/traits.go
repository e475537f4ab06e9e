// Package traits defines germ immunities and visual variants.
package traits

import (
	"fmt"
	"math/bits"
	"strings"
)

// Immunity is one resistance category a germ lineage can acquire.
type Immunity uint8

const (
	Penicillin Immunity = iota
	Cephalexin
	Tetracycline
	Peroxide
	Alcohol
	Bleach
	Heat
	Cold
	Radiation

	// Count is the size of the immunity domain.
	Count = int(iota)
)

var immunityNames = [Count]string{
	Penicillin:   "penicillin",
	Cephalexin:   "cephalexin",
	Tetracycline: "tetracycline",
	Peroxide:     "peroxide",
	Alcohol:      "alcohol",
	Bleach:       "bleach",
	Heat:         "heat",
	Cold:         "cold",
	Radiation:    "radiation",
}

// Treatments are the chemical immunities that can be applied as one-shot treatments,
// in control-panel order.
var Treatments = []Immunity{Penicillin, Cephalexin, Tetracycline, Peroxide, Alcohol, Bleach}

// All returns every immunity in declaration order.
func All() []Immunity {
	out := make([]Immunity, Count)
	for i := range out {
		out[i] = Immunity(i)
	}
	return out
}

// String returns the lower-case immunity name.
func (i Immunity) String() string {
	if int(i) >= Count {
		return fmt.Sprintf("immunity(%d)", uint8(i))
	}
	return immunityNames[i]
}

// Label returns the capitalized name used on buttons and reports.
func (i Immunity) Label() string {
	s := i.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsTreatment reports whether i can be applied as a chemical treatment.
func (i Immunity) IsTreatment() bool {
	return i <= Bleach
}

// Parse looks up an immunity by name (case-insensitive).
func Parse(name string) (Immunity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range immunityNames {
		if n == name {
			return Immunity(i), true
		}
	}
	return 0, false
}

// Set is an unordered set of immunities.
type Set uint16

// Full holds every immunity.
const Full = Set(1<<Count - 1)

// Of builds a set from the given immunities.
func Of(immunities ...Immunity) Set {
	var s Set
	for _, i := range immunities {
		s = s.Add(i)
	}
	return s
}

// Has checks if the set contains an immunity.
func (s Set) Has(i Immunity) bool {
	return s&(1<<i) != 0
}

// Add returns the set with i included.
func (s Set) Add(i Immunity) Set {
	return s | 1<<i
}

// Len returns the number of immunities held.
func (s Set) Len() int {
	return bits.OnesCount16(uint16(s & Full))
}

// IsFull reports whether every immunity is held.
func (s Set) IsFull() bool {
	return s&Full == Full
}

// Contains reports whether every immunity in other is also in s.
func (s Set) Contains(other Set) bool {
	return s&other == other
}

// Missing returns the immunities not in the set, in declaration order.
func (s Set) Missing() []Immunity {
	out := make([]Immunity, 0, Count-s.Len())
	for i := 0; i < Count; i++ {
		if !s.Has(Immunity(i)) {
			out = append(out, Immunity(i))
		}
	}
	return out
}

// Slice returns the held immunities in declaration order.
func (s Set) Slice() []Immunity {
	out := make([]Immunity, 0, s.Len())
	for i := 0; i < Count; i++ {
		if s.Has(Immunity(i)) {
			out = append(out, Immunity(i))
		}
	}
	return out
}

func (s Set) String() string {
	names := make([]string, 0, s.Len())
	for _, i := range s.Slice() {
		names = append(names, i.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Variant is a germ's visual skin, 1-based.
type Variant uint8

// String returns the skin name.
func (v Variant) String() string {
	return fmt.Sprintf("bacteria%d", uint8(v))
}
