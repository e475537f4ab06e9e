package telemetry

import (
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/traits"
)

// Collector accumulates events within time windows and produces WindowStats.
// It implements systems.EventSink.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births    int
	mutations int
	deaths    int
	culls     [traits.Count]int

	// Session totals
	totalBirths    int
	totalMutations int
	totalDeaths    int
	totalCulls     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records a split, noting whether the child mutated.
func (c *Collector) RecordBirth(mutated bool) {
	c.births++
	c.totalBirths++
	if mutated {
		c.mutations++
		c.totalMutations++
	}
}

// RecordDeath records a germ leaving the dish for any reason.
func (c *Collector) RecordDeath() {
	c.deaths++
	c.totalDeaths++
}

// RecordCull records a germ killed by an environmental stress or treatment.
func (c *Collector) RecordCull(cause traits.Immunity) {
	if int(cause) < traits.Count {
		c.culls[cause]++
	}
	c.totalCulls++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Environment is the slider and food state sampled at window end.
type Environment struct {
	Food        float32
	Temperature float32 // slider, 0..100
	Radiation   float32 // slider, 0..100
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, census systems.Census, env Environment) WindowStats {
	mean, std, p10, p50, p90 := ComputeDistribution(SizesFromCensus(census))

	var treatment int
	for _, t := range traits.Treatments {
		treatment += c.culls[t]
	}

	h := census.Holders
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Population: census.Population,

		Births:    c.births,
		Mutations: c.mutations,
		Deaths:    c.deaths,

		CulledHeat:      c.culls[traits.Heat],
		CulledCold:      c.culls[traits.Cold],
		CulledRadiation: c.culls[traits.Radiation],
		CulledTreatment: treatment,

		Food:        float64(env.Food),
		Temperature: float64(env.Temperature),
		Radiation:   float64(env.Radiation),

		MaxImmunities: census.MaxImmunities,
		Resistance:    float64(census.Resistance()),
		ImmunityMean:  mean,
		ImmunityStd:   std,
		ImmunityP10:   p10,
		ImmunityP50:   p50,
		ImmunityP90:   p90,

		HoldPenicillin:   h[traits.Penicillin],
		HoldCephalexin:   h[traits.Cephalexin],
		HoldTetracycline: h[traits.Tetracycline],
		HoldPeroxide:     h[traits.Peroxide],
		HoldAlcohol:      h[traits.Alcohol],
		HoldBleach:       h[traits.Bleach],
		HoldHeat:         h[traits.Heat],
		HoldCold:         h[traits.Cold],
		HoldRadiation:    h[traits.Radiation],
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.mutations = 0
	c.deaths = 0
	c.culls = [traits.Count]int{}

	return stats
}

// SizesFromCensus expands a census's size histogram into one value per germ.
func SizesFromCensus(census systems.Census) []float64 {
	out := make([]float64, 0, census.Population)
	for n, count := range census.Sizes {
		for i := 0; i < count; i++ {
			out = append(out, float64(n))
		}
	}
	return out
}

// Totals returns the session-wide event counts.
func (c *Collector) Totals() (births, mutations, deaths, culls int) {
	return c.totalBirths, c.totalMutations, c.totalDeaths, c.totalCulls
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
