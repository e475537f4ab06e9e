package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType names a notable moment in a session.
type BookmarkType string

const (
	BookmarkResistanceGain  BookmarkType = "resistance_gain"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkCapPressure     BookmarkType = "cap_pressure"
	BookmarkStableColony    BookmarkType = "stable_colony"
)

// Bookmark is one detected moment, written to bookmarks.csv.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

func (b Bookmark) LogBookmark() {
	slog.Info("bookmark", "type", string(b.Type), "tick", b.Tick, "description", b.Description)
}

const (
	crashDrop      = 0.30 // fraction of the recent peak lost
	crashMinLoss   = 10
	capNearPercent = 90
	stableMinPop   = 20
	stableSpan     = 4    // windows compared for steadiness
	stableMaxCV2   = 0.04 // squared coefficient of variation
	stableRun      = 5    // steady windows before the bookmark
)

// BookmarkDetector watches window stats for notable moments.
type BookmarkDetector struct {
	pops   []float64 // last populations, oldest first
	maxLen int
	cap    int

	bestImmunities int
	peak           int
	nearCap        bool
	steady         int
}

// NewBookmarkDetector remembers up to historySize windows (at least 5).
// populationCap <= 0 disables cap pressure bookmarks.
func NewBookmarkDetector(historySize, populationCap int) *BookmarkDetector {
	return &BookmarkDetector{maxLen: max(historySize, 5), cap: populationCap}
}

// Check feeds one window and returns the bookmarks it triggers. An
// extinction suppresses the crash it implies.
func (bd *BookmarkDetector) Check(s WindowStats) []Bookmark {
	var out []Bookmark
	add := func(typ BookmarkType, format string, args ...any) {
		out = append(out, Bookmark{Type: typ, Tick: s.WindowEndTick, Description: fmt.Sprintf(format, args...)})
	}

	if s.MaxImmunities > bd.bestImmunities {
		add(BookmarkResistanceGain, "Strongest lineage went from %d to %d immunities", bd.bestImmunities, s.MaxImmunities)
		bd.bestImmunities = s.MaxImmunities
	}

	if prev, ok := bd.last(); ok && prev > 0 && s.Population == 0 {
		add(BookmarkExtinction, "Dish wiped out from %d germs", prev)
		bd.peak = 0
	} else if bd.peak > 0 {
		drop := 1 - float64(s.Population)/float64(bd.peak)
		if drop > crashDrop && s.Population < bd.peak-crashMinLoss {
			add(BookmarkPopulationCrash, "Population crashed %.0f%% from peak %d to %d", drop*100, bd.peak, s.Population)
			bd.peak = s.Population
		}
	}

	if bd.cap > 0 {
		near := s.Population*100 >= bd.cap*capNearPercent
		if near && !bd.nearCap {
			add(BookmarkCapPressure, "Population %d is within %d%% of the cap %d", s.Population, 100-capNearPercent, bd.cap)
		}
		bd.nearCap = near
	}

	if bd.updateSteady(s.Population) == stableRun {
		add(BookmarkStableColony, "Colony steady at about %d germs over %d+ windows", s.Population, stableRun)
	}

	bd.pops = append(bd.pops, float64(s.Population))
	if len(bd.pops) > bd.maxLen {
		bd.pops = bd.pops[1:]
	}
	bd.peak = max(bd.peak, s.Population)
	return out
}

func (bd *BookmarkDetector) last() (int, bool) {
	if len(bd.pops) == 0 {
		return 0, false
	}
	return int(bd.pops[len(bd.pops)-1]), true
}

// updateSteady compares the previous stableSpan windows and returns the
// current run of steady windows.
func (bd *BookmarkDetector) updateSteady(pop int) int {
	if pop < stableMinPop {
		bd.steady = 0
		return 0
	}
	if len(bd.pops) < stableSpan {
		return bd.steady
	}
	recent := bd.pops[len(bd.pops)-stableSpan:]
	mean, variance := stat.PopMeanVariance(recent, nil)
	if mean > 0 && variance/(mean*mean) < stableMaxCV2 {
		bd.steady++
	} else {
		bd.steady = 0
	}
	return bd.steady
}
