package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Result is one finished session as kept in the records file.
type Result struct {
	SessionID string    `json:"session_id"`
	EndedAt   time.Time `json:"ended_at"`
	Time      float64   `json:"time"` // seconds from start to outbreak
}

// Records keeps outbreak times across runs. The best time is the fastest.
type Records struct {
	mu      sync.RWMutex
	path    string
	maxTime float64
	Results []Result
}

// NewRecords creates a record book backed by path. maxTime is the
// sentinel meaning "no best time yet". An empty path keeps records in
// memory only.
func NewRecords(path string, maxTime float64) *Records {
	return &Records{path: path, maxTime: maxTime}
}

// LoadRecords reads the records file. A missing file yields empty records.
func LoadRecords(path string, maxTime float64) (*Records, error) {
	r := NewRecords(path, maxTime)
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("reading records: %w", err)
	}
	if err := json.Unmarshal(data, &r.Results); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}
	return r, nil
}

// Add records a result and reports whether it is a new best.
func (r *Records) Add(res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	best := r.bestLocked()
	r.Results = append(r.Results, res)
	return res.Time < best
}

// Best returns the fastest outbreak time and whether one exists.
func (r *Records) Best() (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	best := r.bestLocked()
	return best, best < r.maxTime
}

func (r *Records) bestLocked() float64 {
	best := r.maxTime
	for _, res := range r.Results {
		if res.Time < best {
			best = res.Time
		}
	}
	return best
}

// Save writes the records file.
func (r *Records) Save() error {
	if r.path == "" {
		return nil
	}
	r.mu.RLock()
	data, err := json.MarshalIndent(r.Results, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}
