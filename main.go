package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/integrii/flaggy"

	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/console"
	"github.com/raeleus/superbug/game"
)

type runOptions struct {
	configPath  string
	headless    bool
	console     bool
	logStats    bool
	statsWindow float64
	snapshotDir string
	snapshot    string
	outputDir   string
	records     string
	seed        int64
	maxTicks    int
	sessions    int
}

func main() {
	ro := parseFlags()

	// Initialize config before anything else
	if err := config.Init(ro.configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := ro.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	records := ro.records
	if records == "" {
		records = cfg.Records.Path
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       ro.logStats,
		StatsWindowSec: ro.statsWindow,
		SnapshotDir:    ro.snapshotDir,
		OutputDir:      ro.outputDir,
		RecordsPath:    records,
		RestorePath:    ro.snapshot,
		Headless:       ro.headless || ro.console,
	}

	switch {
	case ro.headless:
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		os.Exit(runHeadless(opts, ro))
	case ro.console:
		// The terminal belongs to the ui; logs go to a file when one is set
		slog.SetDefault(slog.New(slog.NewTextHandler(logSink(ro.outputDir), nil)))
		os.Exit(runConsole(opts, cfg.Derived.DT32))
	default:
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		os.Exit(runGraphical(opts, cfg, ro.maxTicks))
	}
}

func parseFlags() runOptions {
	var ro runOptions
	flaggy.SetName("superbug")
	flaggy.SetDescription("Breed a germ immune to everything and see how fast it escapes the dish")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&ro.configPath, "c", "config", "Path to config.yaml (empty uses defaults)")
	flaggy.Bool(&ro.headless, "", "headless", "Run without graphics, played by the autopilot")
	flaggy.Bool(&ro.console, "", "console", "Play in the terminal")
	flaggy.Bool(&ro.logStats, "", "log-stats", "Output window stats via slog")
	flaggy.Float64(&ro.statsWindow, "", "stats-window", "Stats window size in seconds (0 uses config)")
	flaggy.String(&ro.snapshotDir, "", "snapshot-dir", "Directory for snapshot files")
	flaggy.String(&ro.snapshot, "", "snapshot", "Resume the first session from a snapshot file")
	flaggy.String(&ro.outputDir, "o", "output-dir", "Output directory for CSV logs and the config copy")
	flaggy.String(&ro.records, "", "records", "Best time file (empty uses config)")
	flaggy.Int64(&ro.seed, "s", "seed", "RNG seed (0 is time based)")
	flaggy.Int(&ro.maxTicks, "", "max-ticks", "Stop after N ticks (0 is unlimited)")
	flaggy.Int(&ro.sessions, "", "sessions", "Headless: stop after N finished sessions (0 is unlimited)")

	flaggy.Parse()

	if ro.headless && ro.console {
		flaggy.ShowHelpAndExit("--headless and --console are exclusive")
	}
	return ro
}

func runHeadless(opts game.Options, ro runOptions) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", ro.maxTicks,
		"sessions", ro.sessions,
	)

	var total int
	for {
		g.UpdateHeadless()
		total++

		if ro.maxTicks > 0 && total >= ro.maxTicks {
			slog.Info("max ticks reached", "ticks", total)
			return 0
		}
		if ro.sessions > 0 && g.Sessions() >= ro.sessions {
			best, ok := g.Records().Best()
			slog.Info("sessions finished", "sessions", g.Sessions(), "best", best, "has_best", ok)
			return 0
		}
	}
}

func runConsole(opts game.Options, dt float32) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}

	c, err := console.New(g, dt)
	if err != nil {
		g.Unload()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	runErr := c.Run()
	g.Unload()

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	fmt.Print(console.Summary(g))
	return 0
}

func runGraphical(opts game.Options, cfg *config.Config, maxTicks int) int {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	// Escape returns to the menu instead of closing the window
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !g.ShouldQuit() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return 0
}

// logSink opens console.log in dir, or discards logs when dir is empty.
func logSink(dir string) *os.File {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			if f, err := os.OpenFile(filepath.Join(dir, "console.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				return f
			}
		}
	}
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return f
}
