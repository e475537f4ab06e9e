package entities

import (
	"github.com/raeleus/superbug/components"
	"github.com/raeleus/superbug/systems"
)

// Dish animation tracks.
const (
	TrackDish        = 0 // "idle" or "cracked"
	TrackEffect      = 1 // treatment and agar cues
	TrackTemperature = 2 // "normal", "hot" or "cold"
	numTracks        = 3
)

// EffectDuration is how long a non-looping animation stays on its track.
const EffectDuration = 1.5

// Dish is the shared petri dish visual. It carries independent animation
// tracks that the scenario triggers by name.
type Dish struct {
	systems.Base

	Pos    components.Position
	Radius float32

	tracks [numTracks]components.Animation
}

// NewDish creates the dish at its configured position.
func NewDish(env *systems.Env) *Dish {
	d := &Dish{Pos: env.Dish, Radius: float32(env.Cfg.Dish.Radius)}
	d.SetAnimation(TrackDish, "idle", true)
	d.SetAnimation(TrackTemperature, "normal", true)
	return d
}

// SetAnimation starts name on the given track.
func (d *Dish) SetAnimation(track int, name string, loop bool) {
	if track < 0 || track >= numTracks {
		return
	}
	d.tracks[track] = components.Animation{Name: name, Loop: loop}
}

// Current returns the animation playing on a track, or "" if none.
func (d *Dish) Current(track int) string {
	if track < 0 || track >= numTracks {
		return ""
	}
	return d.tracks[track].Name
}

// Update advances animation clocks and retires finished one-shot effects.
func (d *Dish) Update(_ *systems.Env, dt float32) {
	for i := range d.tracks {
		a := &d.tracks[i]
		if a.Name == "" {
			continue
		}
		a.Time += dt
		if !a.Loop && a.Time >= EffectDuration {
			*a = components.Animation{}
		}
	}
}

// Draw submits the dish with its active tracks.
func (d *Dish) Draw(p systems.Presenter) {
	tracks := make([]components.Animation, 0, numTracks)
	for _, a := range d.tracks {
		tracks = append(tracks, a)
	}
	p.Submit(systems.Sprite{
		Kind:   systems.SpriteDish,
		X:      d.Pos.X,
		Y:      d.Pos.Y,
		Radius: d.Radius,
		Tracks: tracks,
	})
}
