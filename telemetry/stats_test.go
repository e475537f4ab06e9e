package telemetry

import (
	"math"
	"testing"

	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/traits"
)

func TestComputeDistribution(t *testing.T) {
	tests := []struct {
		name                     string
		values                   []float64
		mean, std, p10, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0, 0},
		{"single", []float64{3}, 3, 0, 3, 3, 3},
		{"one to five", []float64{5, 1, 4, 2, 3}, 3, math.Sqrt2, 1, 3, 5},
		{"all equal", []float64{2, 2, 2, 2}, 2, 0, 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p10, p50, p90 := ComputeDistribution(tt.values)
			got := []float64{mean, std, p10, p50, p90}
			want := []float64{tt.mean, tt.std, tt.p10, tt.p50, tt.p90}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 1e-9 {
					t.Errorf("ComputeDistribution(%v) = %v, want %v", tt.values, got, want)
					break
				}
			}
		})
	}
}

func TestComputeDistributionLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDistribution(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10, 0.5)
	if c.WindowDurationTicks() != 20 {
		t.Fatalf("WindowDurationTicks = %d, want 20", c.WindowDurationTicks())
	}

	c.RecordBirth(false)
	c.RecordBirth(true)
	c.RecordDeath()
	c.RecordCull(traits.Heat)
	c.RecordCull(traits.Bleach)
	c.RecordCull(traits.Penicillin)

	if c.ShouldFlush(19) {
		t.Error("flush requested early")
	}
	if !c.ShouldFlush(20) {
		t.Error("flush not requested at window end")
	}

	var census systems.Census
	census.Population = 4
	census.MaxImmunities = 2
	census.Sizes[0] = 1
	census.Sizes[1] = 2
	census.Sizes[2] = 1
	census.Holders[traits.Cold] = 3

	s := c.Flush(20, census, Environment{Food: 0.5, Temperature: 80, Radiation: 10})
	if s.SimTimeSec != 10 {
		t.Errorf("SimTimeSec = %v, want 10", s.SimTimeSec)
	}
	if s.Births != 2 || s.Mutations != 1 || s.Deaths != 1 {
		t.Errorf("births/mutations/deaths = %d/%d/%d", s.Births, s.Mutations, s.Deaths)
	}
	if s.CulledHeat != 1 || s.CulledTreatment != 2 || s.Culled() != 3 {
		t.Errorf("culls = %+v", s)
	}
	if s.ImmunityMean != 1 || s.ImmunityP50 != 1 {
		t.Errorf("immunity mean/p50 = %v/%v, want 1/1", s.ImmunityMean, s.ImmunityP50)
	}
	if s.HoldCold != 3 || s.Population != 4 || s.Food != 0.5 {
		t.Errorf("snapshot fields = %+v", s)
	}

	next := c.Flush(40, census, Environment{})
	if next.Births != 0 || next.Culled() != 0 || next.WindowStartTick != 20 {
		t.Errorf("counters not reset: %+v", next)
	}

	births, mutations, deaths, culls := c.Totals()
	if births != 2 || mutations != 1 || deaths != 1 || culls != 3 {
		t.Errorf("Totals = %d %d %d %d", births, mutations, deaths, culls)
	}
}

func TestSizesFromCensus(t *testing.T) {
	var census systems.Census
	census.Population = 3
	census.Sizes[0] = 2
	census.Sizes[4] = 1

	got := SizesFromCensus(census)
	want := []float64{0, 0, 4}
	if len(got) != len(want) {
		t.Fatalf("SizesFromCensus = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SizesFromCensus = %v, want %v", got, want)
		}
	}
}
