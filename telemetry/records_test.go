package telemetry

import (
	"path/filepath"
	"testing"
	"time"
)

func TestRecordsBest(t *testing.T) {
	r := NewRecords("", 9999)
	if _, ok := r.Best(); ok {
		t.Fatal("empty records should have no best time")
	}

	if !r.Add(Result{SessionID: "a", Time: 300}) {
		t.Error("first result should be a new best")
	}
	if r.Add(Result{SessionID: "b", Time: 450}) {
		t.Error("slower result should not be a new best")
	}
	if !r.Add(Result{SessionID: "c", Time: 120}) {
		t.Error("faster result should be a new best")
	}

	best, ok := r.Best()
	if !ok || best != 120 {
		t.Errorf("Best = %v, %v; want 120, true", best, ok)
	}
}

func TestRecordsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.json")

	r, err := LoadRecords(path, 9999)
	if err != nil {
		t.Fatalf("LoadRecords on missing file: %v", err)
	}
	r.Add(Result{SessionID: "a", EndedAt: time.Unix(1700000000, 0).UTC(), Time: 321.5})
	if err := r.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := LoadRecords(path, 9999)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if best, ok := again.Best(); !ok || best != 321.5 {
		t.Errorf("Best after reload = %v, %v", best, ok)
	}
	if len(again.Results) != 1 || again.Results[0].SessionID != "a" {
		t.Errorf("Results = %+v", again.Results)
	}
}

func TestSessionIDsDiffer(t *testing.T) {
	a := NewSession(1, true)
	b := NewSession(1, true)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("session IDs %q and %q", a.ID, b.ID)
	}
}
