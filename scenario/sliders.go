package scenario

import (
	"github.com/raeleus/superbug/entities"
	"github.com/raeleus/superbug/traits"
)

// band is a slider's cue state. Cues fire on entering a band, and a slider
// must come back through the neutral zone before it can fire again.
type band uint8

const (
	bandNeutral band = iota
	bandHot
	bandCold
)

// Sliders tracks the cue bands of the temperature and radiation sliders.
type Sliders struct {
	temperature band
	radiation   band
}

// Apply updates the bands for the current slider values and plays the
// matching dish and sound cues.
func (s *Sliders) Apply(c *Controller, temperature, radiation float32) {
	ec := c.env.Cfg.Environment
	t := float64(temperature)
	r := float64(radiation)

	switch s.temperature {
	case bandNeutral:
		if t > ec.HotThreshold {
			s.temperature = bandHot
			c.env.Sounds.PlaySound("flame", 0.5, 1)
			c.dish.SetAnimation(entities.TrackTemperature, "hot", true)
		} else if t < ec.ColdThreshold {
			s.temperature = bandCold
			c.env.Sounds.PlaySound("fan", 0.5, 1)
			c.dish.SetAnimation(entities.TrackTemperature, "cold", true)
		}
	default:
		if t > ec.NeutralLow && t < ec.NeutralHigh {
			s.temperature = bandNeutral
			c.dish.SetAnimation(entities.TrackTemperature, "normal", true)
		}
	}

	switch s.radiation {
	case bandNeutral:
		if r > ec.RadiationThreshold {
			s.radiation = bandHot
			c.env.Sounds.PlaySound("whir", 0.5, 1)
		}
	default:
		if r < ec.RadiationNeutral {
			s.radiation = bandNeutral
		}
	}
}

// Hot reports whether the temperature slider is in its hot band.
func (s Sliders) Hot() bool { return s.temperature == bandHot }

// Cold reports whether the temperature slider is in its cold band.
func (s Sliders) Cold() bool { return s.temperature == bandCold }

// Irradiated reports whether the radiation slider is in its high band.
func (s Sliders) Irradiated() bool { return s.radiation == bandHot }

type cue struct {
	sound     string
	animation string
}

var treatmentCues = map[traits.Immunity]cue{
	traits.Penicillin:   {"drip", "medicine"},
	traits.Cephalexin:   {"drip", "medicine"},
	traits.Tetracycline: {"drip", "medicine"},
	traits.Peroxide:     {"spray", "peroxide"},
	traits.Alcohol:      {"spray", "medicine"},
	traits.Bleach:       {"spray", "bleach"},
}
