package game

import (
	"log/slog"

	"github.com/raeleus/superbug/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.stats.Census, telemetry.Environment{
		Food:        g.stats.Food,
		Temperature: g.stats.Temperature,
		Radiation:   g.stats.Radiation,
	})
	stats.SessionID = g.session.ID
	perfStats := g.perfCollector.Stats()

	if g.opts.StatsCallback != nil {
		g.opts.StatsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.opts.LogStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.opts.SnapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the dish to the snapshot directory, or the output
// directory when none is set.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	dir := g.opts.SnapshotDir
	if dir == "" {
		dir = g.outputManager.Dir()
	}
	if dir == "" {
		dir = "snapshots"
	}

	snap := g.ctrl.Capture()
	snap.SessionID = g.session.ID
	snap.RNGSeed = g.opts.Seed
	snap.Tick = g.tick
	snap.Bookmark = bookmark

	path, err := telemetry.SaveSnapshot(snap, dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot_saved", "path", path, "tick", g.tick, "germs", len(snap.Germs))
}

// finishSession writes the sessions.csv row for the session that just ended.
func (g *Game) finishSession() {
	if g.collector == nil {
		return
	}
	treatments, samples, peak := g.ctrl.Counts()
	rec := g.session.Record(g.ctrl.Elapsed(), g.ctrl.Outbreak(), g.stats.Score, peak, g.collector, treatments, samples)
	if err := g.outputManager.WriteSession(rec); err != nil {
		slog.Error("failed to write session", "error", err)
	}
	g.sessions++

	slog.Info("session_end",
		"session_id", rec.ID,
		"sim_time", rec.SimTimeSec,
		"outbreak", rec.Outbreak,
		"score", rec.Score,
		"peak_population", rec.PeakPopulation,
		"births", rec.Births,
		"mutations", rec.Mutations,
		"treatments", rec.Treatments,
	)
}
