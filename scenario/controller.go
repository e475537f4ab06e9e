// Package scenario runs one play session: it resolves environment and
// treatment input across the dish, advances the registry, and detects the
// outbreak that ends the session.
package scenario

import (
	"log/slog"

	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/entities"
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/telemetry"
	"github.com/raeleus/superbug/traits"
)

// Session states a controller can request.
const (
	StateMenu     = "menu"
	StateGame     = "game"
	StateGameOver = "game-over"
)

// Input is one tick of player input. Slider values are on a 0..100 scale.
type Input struct {
	Temperature float32
	Radiation   float32
	NewSample   bool
	AddAgar     bool
	Treatments  []traits.Immunity
}

// Stats is what the HUD shows after a tick.
type Stats struct {
	Population    int
	MaxImmunities int
	Resistance    float32 // percent
	CanSample     bool
	Food          float32
	Temperature   float32 // slider value
	Radiation     float32 // slider value
	Elapsed       float64 // seconds
	Outbreak      bool
	Score         float64 // elapsed time at outbreak
	Census        systems.Census
}

// DefaultInput returns the input of untouched controls.
func DefaultInput(cfg *config.Config) Input {
	return Input{
		Temperature: float32(cfg.Environment.TemperatureDefault),
		Radiation:   float32(cfg.Environment.RadiationDefault),
	}
}

// Transition requests a session state change, carrying the score across.
type Transition func(state string, score float64)

// PhaseTimer receives the start of each tick phase. telemetry.PerfCollector
// implements it.
type PhaseTimer interface {
	StartPhase(phase telemetry.Phase)
}

type nopTimer struct{}

func (nopTimer) StartPhase(telemetry.Phase) {}

// Controller owns the per-session environment and end-condition state.
type Controller struct {
	env        *systems.Env
	dish       *entities.Dish
	transition Transition

	// Perf receives phase boundaries during Tick.
	Perf PhaseTimer

	treatments int
	samples    int
	peak       int

	sliders  Sliders
	elapsed  float64
	outbreak bool
	score    float64
	census   systems.Census
	last     Input
}

// New creates a controller over env. transition may be nil.
func New(env *systems.Env, transition Transition) *Controller {
	return &Controller{env: env, transition: transition, Perf: nopTimer{}}
}

// Env returns the simulation environment.
func (c *Controller) Env() *systems.Env { return c.env }

// Dish returns the shared dish visual.
func (c *Controller) Dish() *entities.Dish { return c.dish }

// Start resets the session and seeds the dish.
func (c *Controller) Start() {
	c.reset(c.env.Cfg.Population.Initial)
}

// reset clears the dish and places the given number of germs at its center.
func (c *Controller) reset(germs int) {
	env := c.env
	env.Registry.Clear(env)
	*env.State = systems.NewSimState(env.Cfg)

	c.sliders = Sliders{}
	c.elapsed = 0
	c.outbreak = false
	c.score = 0
	c.treatments = 0
	c.samples = 0
	c.last = DefaultInput(env.Cfg)

	c.dish = entities.NewDish(env)
	env.Registry.AddNow(c.dish)
	for i := 0; i < germs; i++ {
		env.Registry.AddNow(entities.NewGerm(env, env.Dish.X, env.Dish.Y))
	}
	c.census = systems.TakeCensus(env.Registry)
	env.State.Population = c.census.Population
	c.peak = c.census.Population

	slog.Info("session_start",
		"population", c.census.Population,
		"cap", env.State.PopulationCap,
	)
}

// Stop removes every entity.
func (c *Controller) Stop() {
	c.env.Registry.Clear(c.env)
}

// Tick advances the session by dt seconds.
func (c *Controller) Tick(in Input, dt float32) Stats {
	env := c.env
	c.elapsed += float64(dt)
	c.last = in

	c.Perf.StartPhase(telemetry.PhaseInput)
	env.State.Temperature = in.Temperature / 100
	c.sliders.Apply(c, in.Temperature, in.Radiation)

	if in.NewSample {
		c.NewSample()
	}
	if in.AddAgar {
		c.AddAgar()
	}
	for _, t := range in.Treatments {
		c.ApplyTreatment(t)
	}

	c.Perf.StartPhase(telemetry.PhaseStress)
	for _, s := range systems.ActiveStresses(env, in.Temperature, in.Radiation) {
		systems.Cull(env, s)
	}

	env.State.DecayFood(float32(env.Cfg.Food.DecayRate), dt)

	c.Perf.StartPhase(telemetry.PhaseEntities)
	env.Registry.Act(env, dt)

	c.Perf.StartPhase(telemetry.PhaseCensus)
	c.census = systems.TakeCensus(env.Registry)
	env.State.Population = c.census.Population
	if c.census.Population > c.peak {
		c.peak = c.census.Population
	}

	if !c.outbreak && c.census.Outbreak() {
		c.triggerOutbreak()
	}

	return c.Stats()
}

// NewSample adds a fresh germ at the dish center. It is only permitted
// while the dish is empty and reports whether a germ was added.
func (c *Controller) NewSample() bool {
	if !c.CanSample() {
		return false
	}
	env := c.env
	env.Registry.Add(entities.NewGerm(env, env.Dish.X, env.Dish.Y))
	env.Sounds.PlaySound("confirm", 0.5, 1)
	c.samples++
	slog.Debug("new_sample", "elapsed", c.elapsed)
	return true
}

// CanSample reports whether a new sample may be added.
func (c *Controller) CanSample() bool {
	return c.census.Population == 0 && c.env.Registry.Pending() == 0 && !c.outbreak
}

// AddAgar refills the food.
func (c *Controller) AddAgar() {
	c.env.State.Food = 1
	c.env.Sounds.PlaySound("squirt", 0.5, 1)
	c.dish.SetAnimation(entities.TrackEffect, "agar", false)
}

// ApplyTreatment applies a one-shot chemical treatment and returns the
// number of germs it killed. Non-chemical immunities are ignored.
func (c *Controller) ApplyTreatment(t traits.Immunity) int {
	if !t.IsTreatment() {
		return 0
	}
	cue := treatmentCues[t]
	c.env.Sounds.PlaySound(cue.sound, 0.5, 1)
	c.dish.SetAnimation(entities.TrackEffect, cue.animation, false)

	killed := systems.ApplyTreatment(c.env, t)
	c.treatments++
	slog.Debug("treatment_applied",
		"treatment", t.String(),
		"killed", killed,
		"elapsed", c.elapsed,
	)
	return killed
}

func (c *Controller) triggerOutbreak() {
	c.outbreak = true
	c.score = c.elapsed

	c.dish.SetAnimation(entities.TrackDish, "cracked", true)
	c.env.Sounds.PlaySound("crack", 1, 1)

	score := c.score
	delay := float32(c.env.Cfg.Outbreak.ReportDelay)
	c.env.Registry.Add(entities.NewTimer(delay, func(*systems.Env) {
		if c.transition != nil {
			c.transition(StateGameOver, score)
		}
	}))

	slog.Info("outbreak",
		"elapsed", c.elapsed,
		"population", c.census.Population,
	)
}

// Counts returns the number of treatments applied, samples added and the
// peak population this session.
func (c *Controller) Counts() (treatments, samples, peak int) {
	return c.treatments, c.samples, c.peak
}

// LastInput returns the input of the most recent tick.
func (c *Controller) LastInput() Input { return c.last }

// Outbreak reports whether the session has reached its end condition.
func (c *Controller) Outbreak() bool { return c.outbreak }

// Elapsed returns the session time in seconds.
func (c *Controller) Elapsed() float64 { return c.elapsed }

// Stats returns the figures for the most recent tick.
func (c *Controller) Stats() Stats {
	return Stats{
		Population:    c.census.Population,
		MaxImmunities: c.census.MaxImmunities,
		Resistance:    c.census.Resistance(),
		CanSample:     c.CanSample(),
		Food:          c.env.State.Food,
		Temperature:   c.last.Temperature,
		Radiation:     c.last.Radiation,
		Elapsed:       c.elapsed,
		Outbreak:      c.outbreak,
		Score:         c.score,
		Census:        c.census,
	}
}

// Draw submits every entity.
func (c *Controller) Draw(p systems.Presenter) {
	c.env.Registry.Draw(p)
}
