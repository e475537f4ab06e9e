package scenario

import (
	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/traits"
)

// Autopilot plays a session without a human: it refills food when it runs
// low, reseeds an empty dish, and periodically treats with the chemical
// the fewest germs resist.
type Autopilot struct {
	cfg       *config.Config
	sinceDose float64
	next      int
}

// NewAutopilot creates an autopilot with settings from cfg.
func NewAutopilot(cfg *config.Config) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// Next decides the input for the coming tick from the last stats.
func (a *Autopilot) Next(s Stats, dt float32) Input {
	ac := a.cfg.Autopilot
	in := DefaultInput(a.cfg)

	if s.CanSample {
		in.NewSample = true
		return in
	}
	if float64(s.Food) < ac.AgarBelow {
		in.AddAgar = true
	}

	a.sinceDose += float64(dt)
	if ac.TreatmentInterval > 0 && a.sinceDose >= ac.TreatmentInterval && s.Population > 0 {
		a.sinceDose = 0
		in.Treatments = []traits.Immunity{a.pick(s)}
	}
	return in
}

// pick returns the treatment held by the fewest live germs, rotating
// through ties so repeated doses vary.
func (a *Autopilot) pick(s Stats) traits.Immunity {
	n := len(traits.Treatments)
	best := traits.Treatments[a.next%n]
	for k := 0; k < n; k++ {
		t := traits.Treatments[(a.next+k)%n]
		if s.Census.Holders[t] < s.Census.Holders[best] {
			best = t
		}
	}
	a.next++
	return best
}
