package scenario

import (
	"fmt"
	"log/slog"

	"github.com/raeleus/superbug/entities"
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/telemetry"
)

// Capture records the dish so the session can be resumed later.
func (c *Controller) Capture() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		Elapsed:     c.elapsed,
		Food:        c.env.State.Food,
		Temperature: c.last.Temperature,
		Radiation:   c.last.Radiation,
	}
	c.env.Registry.Each(func(e systems.Entity) {
		if g, ok := e.(*entities.Germ); ok && !g.Disposed() {
			snap.Germs = append(snap.Germs, g.State())
		}
	})
	return snap
}

// Restore starts a session from a snapshot instead of a single germ.
func (c *Controller) Restore(snap *telemetry.Snapshot) error {
	germs := make([]*entities.Germ, 0, len(snap.Germs))
	for i, gs := range snap.Germs {
		g, err := entities.RestoreGerm(gs)
		if err != nil {
			return fmt.Errorf("germ %d: %w", i, err)
		}
		germs = append(germs, g)
	}

	c.reset(0)

	env := c.env
	for _, g := range germs {
		env.Registry.AddNow(g)
	}
	env.State.Food = snap.Food
	env.State.Temperature = snap.Temperature / 100
	c.elapsed = snap.Elapsed
	c.last = Input{Temperature: snap.Temperature, Radiation: snap.Radiation}
	c.sliders.Apply(c, snap.Temperature, snap.Radiation)

	c.census = systems.TakeCensus(env.Registry)
	env.State.Population = c.census.Population
	c.peak = c.census.Population

	slog.Info("session_restored",
		"germs", len(germs),
		"elapsed", snap.Elapsed,
	)
	return nil
}
