package main

import (
	"math"
	"testing"

	"github.com/raeleus/superbug/config"
)

func TestNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.Extract(config.Defaults())

	back := pv.Denormalize(pv.Normalize(raw))
	for i, spec := range pv.Specs {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", spec.Name, back[i], raw[i])
		}
	}
}

func TestDenormalizeClamps(t *testing.T) {
	pv := NewParamVector()
	x := make([]float64, pv.Dim())
	for i := range x {
		x[i] = 2
	}
	raw := pv.Denormalize(x)
	for i, spec := range pv.Specs {
		if raw[i] != spec.Max {
			t.Errorf("%s: got %v, want max %v", spec.Name, raw[i], spec.Max)
		}
	}
}

func TestApplyCopies(t *testing.T) {
	pv := NewParamVector()
	base := config.Defaults()
	before := base.Germ.MutationChance

	raw := pv.Extract(base)
	raw[2] = 0.04
	cfg := pv.Apply(base, raw)

	if cfg.Germ.MutationChance != 0.04 {
		t.Errorf("mutation chance = %v, want 0.04", cfg.Germ.MutationChance)
	}
	if base.Germ.MutationChance != before {
		t.Error("Apply modified the base config")
	}
}

func TestCost(t *testing.T) {
	e := NewEvaluator(NewParamVector(), config.Defaults(), nil, 300, 100)

	if c := e.cost(300, 0); c != 0 {
		t.Errorf("cost at target = %v, want 0", c)
	}
	if e.cost(600, 0) <= e.cost(400, 0) {
		t.Error("cost should grow with distance from target")
	}
	if math.Abs(e.cost(150, 0)-e.cost(600, 0)) > 1e-12 {
		t.Error("halving and doubling should cost the same")
	}
	if !math.IsInf(e.cost(0, 0), 1) {
		t.Error("zero mean should cost infinity")
	}
}
