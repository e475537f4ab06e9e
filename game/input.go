package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/traits"
)

// sliderStep is how far one arrow key press moves a slider.
const sliderStep = 5

// treatmentKeys maps number keys to treatments in control-panel order.
var treatmentKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}

// keyBindings is shown in the help overlay.
var keyBindings = [][2]string{
	{"A", "Add agar"},
	{"N", "New sample"},
	{"1-6", "Treatments"},
	{"Left/Right", "Temperature"},
	{"Up/Down", "Radiation"},
	{"F5", "Save snapshot"},
	{"Wheel", "Zoom dish"},
	{"Esc", "Menu"},
}

// handleInput processes keys that work in every state.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if g.name == scenario.StateGame {
		g.overlays.HandleKeyPress(rl.GetKeyPressed())
		g.handleCameraInput()
	}
}

// readInput merges the control panel clicks from the last frame with the
// keyboard shortcuts into one tick of input.
func (g *Game) readInput() scenario.Input {
	in := g.panelInput
	g.panelInput = scenario.Input{}

	if rl.IsKeyPressed(rl.KeyEscape) {
		g.LoadState(scenario.StateMenu, 0)
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot(nil)
	}

	c := g.controls
	if rl.IsKeyPressed(rl.KeyRight) {
		c.Temperature = min(c.Temperature+sliderStep, 100)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		c.Temperature = max(c.Temperature-sliderStep, 0)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		c.Radiation = min(c.Radiation+sliderStep, 100)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		c.Radiation = max(c.Radiation-sliderStep, 0)
	}
	in.Temperature = c.Temperature
	in.Radiation = c.Radiation

	if rl.IsKeyPressed(rl.KeyA) {
		in.AddAgar = true
	}
	if rl.IsKeyPressed(rl.KeyN) {
		in.NewSample = true
	}
	for i, key := range treatmentKeys {
		if rl.IsKeyPressed(key) {
			in.Treatments = append(in.Treatments, traits.Treatments[i])
		}
	}
	return in
}

// continuePressed reports whether the player dismissed the report.
func (g *Game) continuePressed() bool {
	return rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h

	g.dishCam.Resize(w, h)
	g.screenCam.Resize(w, h)
	g.screenCam.LookAt(w/2, h/2)
	g.perfPanel.SetPosition(10, int32(h)-120)
}

// handleCameraInput zooms and pans the dish view.
func (g *Game) handleCameraInput() {
	cam := g.dishCam

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		cam.ZoomAt(m.X, m.Y, 1+wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
