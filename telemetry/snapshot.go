package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raeleus/superbug/entities"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a dish's complete state so a session can be resumed.
type Snapshot struct {
	Version   int    `json:"version"`
	SessionID string `json:"session_id"`
	RNGSeed   int64  `json:"rng_seed"`

	Tick    int32   `json:"tick"`
	Elapsed float64 `json:"elapsed"`

	Food        float32 `json:"food"`
	Temperature float32 `json:"temperature"` // slider, 0..100
	Radiation   float32 `json:"radiation"`   // slider, 0..100

	Germs []entities.GermState `json:"germs"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// SnapshotName is the file name for a snapshot taken at tick, suffixed
// with the bookmark type when one triggered it.
func SnapshotName(tick int32, b *Bookmark) string {
	if b == nil {
		return fmt.Sprintf("snapshot_%d.json", tick)
	}
	kind := strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '_'
		}
		return r
	}, string(b.Type))
	return fmt.Sprintf("snapshot_%d_%s.json", tick, kind)
}

// SaveSnapshot writes snap into dir and returns its path. The file is
// written beside its final name and renamed so readers never see half a dish.
func SaveSnapshot(snap *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(dir, SnapshotName(snap.Tick, snap.Bookmark))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", filepath.Base(path), err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot %s: version %d, want %d", filepath.Base(path), snap.Version, SnapshotVersion)
	}
	return snap, nil
}
