package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MenuAction is what the player picked on the menu.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuPlay
	MenuQuit
)

// MenuScreen is the title screen.
type MenuScreen struct {
	renderer *Renderer
	title    string
}

// NewMenuScreen creates a menu showing title.
func NewMenuScreen(title string) *MenuScreen {
	return &MenuScreen{renderer: NewRenderer(), title: title}
}

// Draw renders the menu and returns the chosen action.
// best is the best outbreak time, or ok=false when none is recorded.
func (m *MenuScreen) Draw(screenW, screenH int32, best float64, ok bool) MenuAction {
	r := m.renderer
	cx := screenW / 2

	r.DrawCentered(m.title, cx, screenH/4, r.Theme.TitleSize, r.Theme.Title)
	r.DrawCentered("Breed a germ that resists everything.", cx, screenH/4+56, 18, r.Theme.LabelColor)
	if ok {
		r.DrawCentered(fmt.Sprintf("Best time: %s", FormatElapsed(best)), cx, screenH/4+84, 16, r.Theme.ValueColor)
	}

	bw, bh := float32(180), float32(40)
	bx := float32(cx) - bw/2
	by := float32(screenH) / 2

	action := MenuNone
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}, "Play") {
		action = MenuPlay
	}
	if gui.Button(rl.Rectangle{X: bx, Y: by + bh + 14, Width: bw, Height: bh}, "Quit") {
		action = MenuQuit
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		action = MenuPlay
	}
	return action
}

// ReportData is what the end-of-session report shows.
type ReportData struct {
	Time    float64
	Best    float64
	HasBest bool
	NewBest bool
	Samples int
	Doses   int
}

// ReportScreen is the end-of-session report drawn over the running scientist.
type ReportScreen struct {
	renderer *Renderer
}

// NewReportScreen creates a report screen.
func NewReportScreen() *ReportScreen {
	return &ReportScreen{renderer: NewRenderer()}
}

// Draw renders the report text.
func (s *ReportScreen) Draw(screenW, screenH int32, d ReportData) {
	r := s.renderer
	cx := screenW / 2
	y := screenH / 3

	r.DrawCentered("OUTBREAK", cx, y-60, r.Theme.TitleSize, r.Theme.Alert)
	r.DrawCentered(fmt.Sprintf("Your superbug escaped after %s", FormatElapsed(d.Time)), cx, y, 22, r.Theme.ValueColor)
	y += 34

	switch {
	case d.NewBest:
		r.DrawCentered("New best time!", cx, y, 20, r.Theme.Title)
	case d.HasBest:
		r.DrawCentered(fmt.Sprintf("Best time: %s", FormatElapsed(d.Best)), cx, y, 20, r.Theme.LabelColor)
	}
	y += 30

	r.DrawCentered(fmt.Sprintf("Samples: %d   Treatments: %d", d.Samples, d.Doses), cx, y, 16, r.Theme.LabelColor)

	r.DrawCentered("Press SPACE to continue", cx, screenH-60, 18, rl.Gray)
}
