package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1024, 600)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	cam := New(1024, 600)

	tests := []struct {
		name   string
		wx, wy float32
		sx, sy float32
	}{
		{"origin at screen center", 0, 0, 512, 300},
		{"dish left of center", -150, 0, 362, 300},
		{"world up is screen up", 0, 100, 512, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.LookAt(-150, 40)
	cam.SetZoom(1.5)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPan(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2)
	cam.Pan(100, 100)

	// Dragging down moves the view toward negative world y
	if !near(cam.X, 50) || !near(cam.Y, -50) {
		t.Errorf("expected (50, -50), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}

	cam.SetZoom(1)
	cam.ZoomBy(2)
	if cam.Zoom != 2 || cam.Scale(10) != 20 {
		t.Errorf("zoom %f, scale %f", cam.Zoom, cam.Scale(10))
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	// Visible range in world coords: (-640, -360) to (640, 360)
	if !cam.IsVisible(0, 0, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(1200, 700, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(-700, 0, 100) {
		t.Error("edge point with large radius should be visible")
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != -640 || minY != -360 || maxX != 640 || maxY != 360 {
		t.Errorf("bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestResetReturnsHome(t *testing.T) {
	cam := New(800, 600)
	cam.LookAt(400, 300)
	cam.Pan(120, -40)
	cam.SetZoom(3)

	cam.Reset()
	if cam.X != 400 || cam.Y != 300 || cam.Zoom != 1 {
		t.Errorf("got (%f, %f) zoom %f, want (400, 300) zoom 1", cam.X, cam.Y, cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	tests := []struct {
		name   string
		sx, sy float32
		factor float32
	}{
		{"in at corner", 100, 80, 1.5},
		{"out off center", 900, 500, 0.5},
		{"clamped", 200, 600, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(1280, 720)
			cam.LookAt(30, -20)
			wx, wy := cam.ScreenToWorld(tt.sx, tt.sy)

			cam.ZoomAt(tt.sx, tt.sy, tt.factor)

			sx, sy := cam.WorldToScreen(wx, wy)
			if !near(sx, tt.sx) || !near(sy, tt.sy) {
				t.Errorf("cursor point moved to (%f, %f), want (%f, %f)", sx, sy, tt.sx, tt.sy)
			}
		})
	}
}
