package main

import (
	"github.com/raeleus/superbug/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name  string // Config path, used for logging
	Min   float64
	Max   float64
	Field func(*config.Config) *float64
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "germ.split_time", Min: 2, Max: 10, Field: func(c *config.Config) *float64 { return &c.Germ.SplitTime }},
			{Name: "germ.death_time", Min: 10, Max: 40, Field: func(c *config.Config) *float64 { return &c.Germ.DeathTime }},
			{Name: "germ.mutation_chance", Min: 0.001, Max: 0.05, Field: func(c *config.Config) *float64 { return &c.Germ.MutationChance }},
			{Name: "environment.stress_kill_chance", Min: 0.001, Max: 0.05, Field: func(c *config.Config) *float64 { return &c.Environment.StressKillChance }},
			{Name: "treatment.kill_chance", Min: 0.3, Max: 0.95, Field: func(c *config.Config) *float64 { return &c.Treatment.KillChance }},
			{Name: "treatment.resistant_kill_chance", Min: 0, Max: 0.2, Field: func(c *config.Config) *float64 { return &c.Treatment.ResistantKillChance }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Extract reads the current parameter values from cfg.
func (pv *ParamVector) Extract(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.Field(cfg)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to clamped raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = max(spec.Min, min(spec.Min+normalized[i]*(spec.Max-spec.Min), spec.Max))
	}
	return raw
}

// Apply returns a copy of base with the given raw values set.
func (pv *ParamVector) Apply(base *config.Config, raw []float64) *config.Config {
	cfg := *base
	for i, spec := range pv.Specs {
		*spec.Field(&cfg) = raw[i]
	}
	return &cfg
}
