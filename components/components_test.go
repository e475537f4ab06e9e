package components

import (
	"math"
	"testing"
)

func TestMotionStep(t *testing.T) {
	tests := []struct {
		name   string
		motion Motion
		wantX  float32
		wantY  float32
	}{
		{"east", Motion{Speed: 10, Angle: 0}, 10, 0},
		{"north", Motion{Speed: 10, Angle: 90}, 0, 10},
		{"west", Motion{Speed: 10, Angle: 180}, -10, 0},
		{"stopped", Motion{Speed: 0, Angle: 45}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Position
			tt.motion.Step(&p, 1)
			if math.Abs(float64(p.X-tt.wantX)) > 1e-4 || math.Abs(float64(p.Y-tt.wantY)) > 1e-4 {
				t.Errorf("position = (%f, %f), want (%f, %f)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCountdown(t *testing.T) {
	c := Countdown{}
	c.Reset(1)

	if c.Tick(0.5) {
		t.Error("should not expire at 0.5")
	}
	if !c.Tick(0.5) {
		t.Error("should expire exactly at zero")
	}
}

func TestDist(t *testing.T) {
	p := Position{X: 3, Y: 4}
	if d := p.Dist(0, 0); math.Abs(float64(d-5)) > 1e-5 {
		t.Errorf("Dist = %f, want 5", d)
	}
}
