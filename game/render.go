package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/raeleus/superbug/ui"
)

// Draw renders the current state.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(ui.DefaultTheme().Background)

	if g.current != nil {
		g.current.Draw()
	}

	rl.EndDrawing()
}

// drawPlayUI draws the HUD, control panel and enabled overlays.
func (g *Game) drawPlayUI() {
	w, h := int32(g.screenW), int32(g.screenH)

	g.hud.Draw(g.stats)

	// Buttons clicked this frame apply on the next tick
	in := g.controls.Draw(g.stats)
	g.panelInput.NewSample = g.panelInput.NewSample || in.NewSample
	g.panelInput.AddAgar = g.panelInput.AddAgar || in.AddAgar
	g.panelInput.Treatments = append(g.panelInput.Treatments, in.Treatments...)

	if g.overlays.IsEnabled(ui.OverlayImmunities) {
		g.immunities.Draw(g.stats, w, h)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.help.Draw(keyBindings, g.overlays)
	}

	g.hud.DrawControls(h, "[H] Keys  [I] Immunities  [P] Perf  [Esc] Menu")
}
