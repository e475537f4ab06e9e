package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/telemetry"
	"github.com/raeleus/superbug/traits"
)

// HUD renders the population and resistance readouts above the control panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD and returns the Y below it.
func (h *HUD) Draw(s scenario.Stats) int32 {
	r := h.renderer
	y := h.y

	rl.DrawText(fmt.Sprintf("POPULATION: %d", s.Population), h.x, y, 20, r.Theme.ValueColor)
	y += 26

	resColor := r.Theme.ValueColor
	if s.Resistance >= 75 {
		resColor = r.Theme.Alert
	}
	rl.DrawText(fmt.Sprintf("RESISTANCE: %d%%", int(s.Resistance)), h.x, y, 20, resColor)
	y += 30

	y = r.DrawBar(h.x, y, "Agar", s.Food, h.width)
	y = r.DrawLabelValue(h.x, y, "Time", FormatElapsed(s.Elapsed))

	if s.Outbreak {
		rl.DrawText("OUTBREAK!", h.x, y+4, 24, r.Theme.Alert)
		y += 30
	}
	return y
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 12, rl.Gray)
}

// FormatElapsed renders seconds as m:ss.s.
func FormatElapsed(sec float64) string {
	d := time.Duration(sec * float64(time.Second))
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", m, s)
}

// ImmunityPanel shows how many live germs carry each immunity.
type ImmunityPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
}

// NewImmunityPanel creates an immunity panel.
func NewImmunityPanel(anchor PanelAnchor, width int32) *ImmunityPanel {
	return &ImmunityPanel{renderer: NewRenderer(), anchor: anchor, width: width}
}

// Draw renders the panel.
func (p *ImmunityPanel) Draw(s scenario.Stats, screenW, screenH int32) {
	r := p.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*int32(traits.Count+1) + 4
	x, y := p.anchor.Place(screenW, screenH, p.width, height, 10)

	r.DrawPanel(x, y, p.width, height)
	y = r.DrawSectionHeader(x+pad, y+pad, "Immunities")
	for _, im := range traits.All() {
		fill := r.Theme.BarFill
		if !im.IsTreatment() {
			fill = r.Theme.BarFillMedium
		}
		y = r.DrawCountBar(x+pad, y, im.Label(), s.Census.Holders[im], s.Population, fill, p.width-pad*2)
	}
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  p95: %s  FPS: %.0f", stats.AvgTick.Round(time.Microsecond), stats.P95Tick.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("%.0f ns per germ", stats.NsPerGerm), x, y, 12, rl.LightGray)
	y += 14

	for _, phase := range telemetry.Phases {
		avg := stats.Phase[phase.ID].Avg
		pct := stats.Phase[phase.ID].Pct

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// HelpPanel lists key bindings and overlay toggles.
type HelpPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHelpPanel creates a help panel.
func NewHelpPanel(x, y, width int32) *HelpPanel {
	return &HelpPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the fixed bindings followed by each overlay toggle.
func (h *HelpPanel) Draw(bindings [][2]string, overlays *OverlayRegistry) {
	r := h.renderer
	pad := r.Theme.Padding
	lines := int32(len(bindings) + len(overlays.All()) + 1)
	height := pad*2 + lines*r.Theme.LineHeight

	r.DrawPanel(h.x, h.y, h.width, height)
	y := r.DrawSectionHeader(h.x+pad, h.y+pad, "Keys")
	for _, b := range bindings {
		y = r.DrawLabelValue(h.x+pad, y, b[0], b[1])
	}
	for _, desc := range overlays.All() {
		state := "off"
		if overlays.IsEnabled(desc.ID) {
			state = "on"
		}
		y = r.DrawLabelValue(h.x+pad, y, desc.KeyLabel, fmt.Sprintf("%s (%s)", desc.Name, state))
	}
}
