package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_ResistanceGain(t *testing.T) {
	bd := NewBookmarkDetector(10, 2000)

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 600, Population: 50, MaxImmunities: 1}), BookmarkResistanceGain) {
		t.Error("expected resistance_gain on first immunity")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 1200, Population: 50, MaxImmunities: 1}), BookmarkResistanceGain) {
		t.Error("unexpected resistance_gain without a new level")
	}
	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 1800, Population: 50, MaxImmunities: 2}), BookmarkResistanceGain) {
		t.Error("expected resistance_gain on second immunity")
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10, 2000)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Population: 50})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10, 2000)

	bd.Check(WindowStats{WindowEndTick: 600, Population: 80})
	bookmarks := bd.Check(WindowStats{WindowEndTick: 1200, Population: 0})
	if !hasBookmark(bookmarks, BookmarkExtinction) {
		t.Error("expected extinction bookmark")
	}
	if hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("extinction should not also report a crash")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 1800, Population: 0}), BookmarkExtinction) {
		t.Error("extinction reported twice")
	}
}

func TestBookmarkDetector_CapPressure(t *testing.T) {
	bd := NewBookmarkDetector(10, 100)

	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 600, Population: 50}), BookmarkCapPressure) {
		t.Error("unexpected cap_pressure at half cap")
	}
	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 1200, Population: 95}), BookmarkCapPressure) {
		t.Error("expected cap_pressure near cap")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 1800, Population: 96}), BookmarkCapPressure) {
		t.Error("cap_pressure should fire on entry only")
	}
}

func TestBookmarkDetector_StableColony(t *testing.T) {
	bd := NewBookmarkDetector(10, 2000)

	fired := 0
	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 100}), BookmarkStableColony) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_colony fired %d times, want 1", fired)
	}
}
