package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raeleus/superbug/entities"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		SessionID:   "abc",
		RNGSeed:     42,
		Tick:        1000,
		Elapsed:     16.5,
		Food:        0.4,
		Temperature: 80,
		Germs: []entities.GermState{
			{X: -150, Y: 10, Angle: 90, Variant: 3, Immunities: []string{"heat", "bleach"}, SplitLeft: 2, DeathLeft: 20},
		},
		Bookmark: &Bookmark{Type: BookmarkResistanceGain, Tick: 1000, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if !strings.HasSuffix(path, "snapshot_1000_resistance_gain.json") {
		t.Errorf("path = %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Elapsed != 16.5 || loaded.Temperature != 80 || len(loaded.Germs) != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
	g := loaded.Germs[0]
	if g.Variant != 3 || len(g.Immunities) != 2 || g.Immunities[1] != "bleach" {
		t.Errorf("germ = %+v", g)
	}
}

func TestLoadSnapshotRejectsOtherVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSnapshotName(t *testing.T) {
	tests := []struct {
		tick int32
		b    *Bookmark
		want string
	}{
		{400, nil, "snapshot_400.json"},
		{60, &Bookmark{Type: BookmarkExtinction}, "snapshot_60_extinction.json"},
		{7, &Bookmark{Type: "odd type/x"}, "snapshot_7_odd_type_x.json"},
	}
	for _, tt := range tests {
		if got := SnapshotName(tt.tick, tt.b); got != tt.want {
			t.Errorf("SnapshotName(%d) = %q, want %q", tt.tick, got, tt.want)
		}
	}
}
