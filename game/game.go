// Package game runs the menu, play and report states and connects a play
// session to telemetry, the presentation layer and the input devices.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/raeleus/superbug/camera"
	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/renderer"
	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/telemetry"
	"github.com/raeleus/superbug/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config value
	SnapshotDir    string
	OutputDir      string
	RecordsPath    string // empty keeps records in memory
	RestorePath    string // snapshot to resume the first session from
	Headless       bool
	Config         *config.Config // nil uses the global config

	// StatsCallback is called after each stats window is flushed.
	StatsCallback func(telemetry.WindowStats)
}

type stateRequest struct {
	name  string
	score float64
}

// Game holds the complete application state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	opts Options

	env       *systems.Env
	ctrl      *scenario.Controller
	autopilot *scenario.Autopilot
	stats     scenario.Stats

	// Report screen entities live in their own registry
	reportEnv *systems.Env

	states  map[string]State
	current State
	name    string
	pending *stateRequest
	quit    bool

	// Telemetry
	session          telemetry.Session
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	records          *telemetry.Records
	restore          *telemetry.Snapshot
	tick             int32
	sessions         int
	report           ui.ReportData

	// Presentation (nil when headless)
	screenW, screenH float32
	dishCam          *camera.Camera
	screenCam        *camera.Camera
	presenter        *renderer.Presenter
	screenPresenter  *renderer.Presenter
	audio            *renderer.Audio
	hud              *ui.HUD
	controls         *ui.ControlPanel
	immunities       *ui.ImmunityPanel
	perfPanel        *ui.PerfPanel
	help             *ui.HelpPanel
	overlays         *ui.OverlayRegistry
	menu             *ui.MenuScreen
	reportScreen     *ui.ReportScreen
	panelInput       scenario.Input
	menuAction       ui.MenuAction
}

// NewGameWithOptions creates a game. Graphical games must be created after
// the raylib window is open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:       cfg,
		rng:       rng,
		opts:      opts,
		autopilot: scenario.NewAutopilot(cfg),
	}

	state := systems.NewSimState(cfg)
	g.env = systems.NewEnv(cfg, &state, systems.NewRegistry(), rng)
	g.ctrl = scenario.New(g.env, g.LoadState)

	reportState := systems.NewSimState(cfg)
	g.reportEnv = systems.NewEnv(cfg, &reportState, systems.NewRegistry(), rng)

	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.ctrl.Perf = g.perfCollector

	records, err := telemetry.LoadRecords(opts.RecordsPath, cfg.Outbreak.MaxTime)
	if err != nil {
		return nil, err
	}
	g.records = records

	if opts.RestorePath != "" {
		snap, err := telemetry.LoadSnapshot(opts.RestorePath)
		if err != nil {
			return nil, err
		}
		g.restore = snap
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g.states = map[string]State{
		scenario.StateMenu:     &menuState{g: g},
		scenario.StateGame:     &playState{g: g},
		scenario.StateGameOver: &reportState{g: g},
	}

	if !opts.Headless {
		g.initPresentation()
		g.LoadState(scenario.StateMenu, 0)
		g.applyPending()
	}

	return g, nil
}

func (g *Game) initPresentation() {
	cfg := g.cfg
	g.screenW = cfg.Derived.ScreenW32
	g.screenH = cfg.Derived.ScreenH32

	g.dishCam = camera.New(g.screenW, g.screenH)
	// Report screen works in pixels with the origin bottom-left
	g.screenCam = camera.New(g.screenW, g.screenH)
	g.screenCam.LookAt(g.screenW/2, g.screenH/2)

	g.presenter = renderer.NewPresenter(g.dishCam, cfg.Germ.Variants)
	g.screenPresenter = renderer.NewPresenter(g.screenCam, cfg.Germ.Variants)

	g.audio = renderer.NewAudio(cfg.Audio.SfxDir, float32(cfg.Audio.MasterVolume))
	g.env.Sounds = g.audio
	g.reportEnv.Sounds = g.audio

	panelW := int32(320)
	panelX := int32(g.screenW) - panelW - 16
	g.hud = ui.NewHUD(panelX, 16, panelW)
	g.controls = ui.NewControlPanel(cfg, panelX, 150, panelW)
	g.immunities = ui.NewImmunityPanel(ui.AnchorTopLeft, 200)
	g.perfPanel = ui.NewPerfPanel(10, int32(g.screenH)-120)
	g.help = ui.NewHelpPanel(10, 230, 240)
	g.overlays = ui.NewOverlayRegistry()
	g.menu = ui.NewMenuScreen(cfg.Screen.Title)
	g.reportScreen = ui.NewReportScreen()
}

// LoadState requests a switch to the named state. The switch happens at the
// start of the next update so the current tick can finish.
func (g *Game) LoadState(name string, score float64) {
	g.pending = &stateRequest{name: name, score: score}
}

func (g *Game) applyPending() {
	req := g.pending
	if req == nil {
		return
	}
	g.pending = nil

	next, ok := g.states[req.name]
	if !ok {
		slog.Warn("unknown_state", "state", req.name)
		return
	}
	if g.current != nil {
		g.current.Stop()
	}
	g.current = next
	g.name = req.name
	next.Start(req.score)
	slog.Debug("state_loaded", "state", req.name)
}

// Update processes input and advances the current state by one frame.
func (g *Game) Update() {
	g.handleInput()
	g.applyPending()
	if g.current != nil {
		g.current.Update(g.cfg.Derived.DT32)
	}
}

// UpdateHeadless advances one tick with the autopilot playing. A finished
// session is reported and followed by a new one.
func (g *Game) UpdateHeadless() {
	if g.name != scenario.StateGame && g.pending == nil {
		g.LoadState(scenario.StateGame, 0)
	}
	g.applyPending()
	if g.name == scenario.StateGame {
		in := g.autopilot.Next(g.stats, g.cfg.Derived.DT32)
		g.Advance(in)
	}
}

// Step applies pending state changes and, while a session is running,
// advances it with in.
func (g *Game) Step(in scenario.Input) {
	g.applyPending()
	if g.name == scenario.StateGame {
		g.Advance(in)
	}
}

// Settle applies a requested state change without advancing the session.
func (g *Game) Settle() { g.applyPending() }

// Advance runs one simulation tick of the play state.
func (g *Game) Advance(in scenario.Input) scenario.Stats {
	if g.name != scenario.StateGame {
		return g.stats
	}

	g.perfCollector.StartTick()
	g.stats = g.ctrl.Tick(in, g.cfg.Derived.DT32)
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTick(g.stats.Population)

	return g.stats
}

// Unload stops the current state, then flushes output and frees resources.
func (g *Game) Unload() {
	if g.current != nil {
		g.current.Stop()
		g.current = nil
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if g.audio != nil {
		g.audio.Close()
	}
}

// Tick returns the tick count of the current session.
func (g *Game) Tick() int32 { return g.tick }

// State returns the name of the current state.
func (g *Game) State() string { return g.name }

// Stats returns the figures of the most recent tick.
func (g *Game) Stats() scenario.Stats { return g.stats }

// Sessions returns the number of sessions finished so far.
func (g *Game) Sessions() int { return g.sessions }

// Report returns what the last report screen showed.
func (g *Game) Report() ui.ReportData { return g.report }

// Records returns the outbreak time records.
func (g *Game) Records() *telemetry.Records { return g.records }

// Controller returns the play session controller.
func (g *Game) Controller() *scenario.Controller { return g.ctrl }

// ShouldQuit reports whether the player chose Quit.
func (g *Game) ShouldQuit() bool { return g.quit }
