package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/traits"
)

// ControlPanel holds the environment sliders and action buttons. It keeps
// slider values between frames and turns clicks into a scenario.Input.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32

	Temperature float32
	Radiation   float32
}

// NewControlPanel creates a control panel with sliders at their defaults.
func NewControlPanel(cfg *config.Config, x, y, width int32) *ControlPanel {
	in := scenario.DefaultInput(cfg)
	return &ControlPanel{
		renderer:    NewRenderer(),
		x:           x,
		y:           y,
		width:       width,
		Temperature: in.Temperature,
		Radiation:   in.Radiation,
	}
}

// Reset returns the sliders to their defaults.
func (c *ControlPanel) Reset(cfg *config.Config) {
	in := scenario.DefaultInput(cfg)
	c.Temperature = in.Temperature
	c.Radiation = in.Radiation
}

// Draw renders the panel and returns this frame's input.
func (c *ControlPanel) Draw(s scenario.Stats) scenario.Input {
	r := c.renderer
	pad := r.Theme.Padding
	x := float32(c.x + pad)
	w := float32(c.width - pad*2)
	y := c.y + pad

	r.DrawPanel(c.x, c.y, c.width, c.Height())

	in := scenario.Input{}

	y = r.DrawSectionHeader(c.x+pad, y, "Environment")
	c.Temperature = c.slider(x, &y, w, "Temperature", "Cold", "Hot", c.Temperature)
	c.Radiation = c.slider(x, &y, w, "Radiation", "Off", "High", c.Radiation)
	in.Temperature = c.Temperature
	in.Radiation = c.Radiation

	y = r.DrawSectionHeader(c.x+pad, y+4, "Dish")
	half := (w - float32(pad)) / 2
	if !s.CanSample {
		gui.Disable()
	}
	in.NewSample = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 30}, "New Sample")
	gui.Enable()
	in.AddAgar = gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: float32(y), Width: half, Height: 30}, "Add Agar")
	y += 30 + pad

	y = r.DrawSectionHeader(c.x+pad, y+4, "Treatments")
	for i, t := range traits.Treatments {
		col := float32(i % 2)
		row := float32(i / 2)
		bounds := rl.Rectangle{
			X:      x + col*(half+float32(pad)),
			Y:      float32(y) + row*36,
			Width:  half,
			Height: 30,
		}
		if gui.Button(bounds, t.Label()) {
			in.Treatments = append(in.Treatments, t)
		}
	}

	return in
}

// Height returns the panel height.
func (c *ControlPanel) Height() int32 {
	t := c.renderer.Theme
	sections := 3 * (t.LineHeight + 6)
	sliders := 2 * int32(t.LineHeight+26)
	buttons := int32(30+t.Padding) + int32(len(traits.Treatments)+1)/2*36
	return t.Padding*2 + sections + sliders + buttons
}

func (c *ControlPanel) slider(x float32, y *int32, w float32, label, left, right string, value float32) float32 {
	r := c.renderer
	rl.DrawText(label, int32(x), *y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(fmt.Sprintf("%.0f", value), int32(x+w)-24, *y, r.Theme.FontSize, r.Theme.ValueColor)
	*y += r.Theme.LineHeight

	// Inset so the raygui side labels fit inside the panel
	bounds := rl.Rectangle{X: x + 40, Y: float32(*y), Width: w - 80, Height: 18}
	value = gui.SliderBar(bounds, left, right, value, 0, 100)
	*y += 26
	return value
}
