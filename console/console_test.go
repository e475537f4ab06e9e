package console

import (
	"strings"
	"testing"

	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/traits"
)

func TestSlide(t *testing.T) {
	tests := []struct {
		name     string
		which    slider
		delta    float32
		start    scenario.Input
		wantTemp float32
		wantRad  float32
	}{
		{"temperature up", sliderTemp, 5, scenario.Input{Temperature: 50}, 55, 0},
		{"temperature clamps high", sliderTemp, 5, scenario.Input{Temperature: 98}, 100, 0},
		{"temperature clamps low", sliderTemp, -5, scenario.Input{Temperature: 3}, 0, 0},
		{"radiation up", sliderRad, 5, scenario.Input{Temperature: 50}, 50, 5},
		{"radiation down", sliderRad, -5, scenario.Input{Radiation: 60}, 0, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.start
			slide(tt.which, tt.delta)(nil, &in)
			if in.Temperature != tt.wantTemp || in.Radiation != tt.wantRad {
				t.Errorf("got temp=%v rad=%v, want temp=%v rad=%v",
					in.Temperature, in.Radiation, tt.wantTemp, tt.wantRad)
			}
		})
	}
}

func TestTreatQueues(t *testing.T) {
	var in scenario.Input
	treat(traits.Penicillin)(nil, &in)
	treat(traits.Bleach)(nil, &in)

	if len(in.Treatments) != 2 || in.Treatments[0] != traits.Penicillin || in.Treatments[1] != traits.Bleach {
		t.Errorf("treatments = %v", in.Treatments)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		frac float64
		full int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 10},
		{-1, 0},
	}

	for _, tt := range tests {
		b := bar(tt.frac, 10)
		if got := strings.Count(b, "█"); got != tt.full {
			t.Errorf("bar(%v) full = %d, want %d", tt.frac, got, tt.full)
		}
		if got := strings.Count(b, "░"); got != 10-tt.full {
			t.Errorf("bar(%v) empty = %d, want %d", tt.frac, got, 10-tt.full)
		}
	}
}
