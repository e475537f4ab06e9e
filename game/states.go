package game

import (
	"log/slog"
	"time"

	"github.com/raeleus/superbug/entities"
	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/telemetry"
	"github.com/raeleus/superbug/ui"
)

// State is one screen of the game.
type State interface {
	// Start enters the state. score carries the elapsed time of the
	// session that ended, when there is one.
	Start(score float64)
	Stop()
	Update(dt float32)
	Draw()
}

// menuState is the title screen.
type menuState struct {
	g *Game
}

func (s *menuState) Start(float64) {
	s.g.menuAction = ui.MenuNone
}

func (s *menuState) Stop() {}

func (s *menuState) Update(float32) {
	g := s.g
	switch g.menuAction {
	case ui.MenuPlay:
		g.LoadState(scenario.StateGame, 0)
	case ui.MenuQuit:
		g.quit = true
	}
	g.menuAction = ui.MenuNone
}

func (s *menuState) Draw() {
	g := s.g
	best, ok := g.records.Best()
	g.menuAction = g.menu.Draw(int32(g.screenW), int32(g.screenH), best, ok)
}

// playState runs a session on the dish.
type playState struct {
	g *Game
}

func (s *playState) Start(float64) {
	g := s.g
	cfg := g.cfg

	windowSec := cfg.Telemetry.StatsWindow
	if g.opts.StatsWindowSec > 0 {
		windowSec = g.opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(windowSec, cfg.Derived.DT32)
	g.env.Events = g.collector
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10, cfg.Population.Cap)
	g.session = telemetry.NewSession(g.opts.Seed, g.opts.Headless)
	g.tick = 0
	g.autopilot = scenario.NewAutopilot(cfg)

	if g.restore != nil {
		snap := g.restore
		g.restore = nil
		if err := g.ctrl.Restore(snap); err != nil {
			slog.Error("failed to restore snapshot", "error", err)
			g.ctrl.Start()
		}
	} else {
		g.ctrl.Start()
	}
	g.stats = g.ctrl.Stats()

	if g.controls != nil {
		last := g.ctrl.LastInput()
		g.controls.Temperature = last.Temperature
		g.controls.Radiation = last.Radiation
	}
	g.panelInput = scenario.Input{}

	slog.Info("session_begin",
		"session_id", g.session.ID,
		"seed", g.session.Seed,
		"headless", g.session.Headless,
	)
}

func (s *playState) Stop() {
	g := s.g
	g.finishSession()
	g.ctrl.Stop()
}

func (s *playState) Update(float32) {
	g := s.g
	in := g.readInput()
	g.Advance(in)
}

func (s *playState) Draw() {
	g := s.g
	g.ctrl.Draw(g.presenter)
	g.drawPlayUI()
}

// reportState is the end-of-session report with the running scientist.
type reportState struct {
	g *Game
}

func (s *reportState) Start(score float64) {
	g := s.g
	newBest := g.records.Add(telemetry.Result{
		SessionID: g.session.ID,
		EndedAt:   time.Now(),
		Time:      score,
	})
	if err := g.records.Save(); err != nil {
		slog.Error("failed to save records", "error", err)
	}
	best, ok := g.records.Best()
	treatments, samples, _ := g.ctrl.Counts()
	g.report = ui.ReportData{
		Time:    score,
		Best:    best,
		HasBest: ok,
		NewBest: newBest,
		Samples: samples,
		Doses:   treatments,
	}

	slog.Info("report",
		"session_id", g.session.ID,
		"time", score,
		"best", best,
		"new_best", newBest,
	)

	env := g.reportEnv
	w := float32(g.cfg.Screen.Width)
	h := float32(g.cfg.Screen.Height)
	env.Registry.AddNow(entities.NewScientist(env, w, h/2-175))
	env.Registry.AddNow(entities.NewSiren(50, h))
	env.Registry.AddNow(entities.NewSiren(w-50, h))
	env.PlaySound("siren", 1)
}

func (s *reportState) Stop() {
	s.g.reportEnv.Registry.Clear(s.g.reportEnv)
}

func (s *reportState) Update(dt float32) {
	g := s.g
	g.reportEnv.Registry.Act(g.reportEnv, dt)
	if g.continuePressed() {
		g.LoadState(scenario.StateMenu, 0)
	}
}

func (s *reportState) Draw() {
	g := s.g
	g.reportEnv.Registry.Draw(g.screenPresenter)
	g.reportScreen.Draw(int32(g.screenW), int32(g.screenH), g.report)
}
