package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/raeleus/superbug/config"
)

// table is one CSV file of T rows. The header goes out with the first row.
type table[T any] struct {
	name string
	f    *os.File
	rows int
}

func createTable[T any](dir, name string) (*table[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &table[T]{name: name, f: f}, nil
}

func (t *table[T]) append(row T) error {
	rows := []T{row}
	var err error
	if t.rows == 0 {
		err = gocsv.Marshal(rows, t.f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, t.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	t.rows++
	return nil
}

func (t *table[T]) close() error {
	if t == nil {
		return nil
	}
	return t.f.Close()
}

// OutputManager writes a run's CSV streams and config into one directory.
// A nil *OutputManager accepts every write and does nothing.
type OutputManager struct {
	dir       string
	telemetry *table[WindowStats]
	perf      *table[PerfStatsCSV]
	bookmarks *table[Bookmark]
	sessions  *table[SessionRecord]
}

// NewOutputManager creates dir and its CSV files. It returns nil, nil when
// dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = createTable[WindowStats](dir, "telemetry.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	if om.perf, err = createTable[PerfStatsCSV](dir, "perf.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	if om.bookmarks, err = createTable[Bookmark](dir, "bookmarks.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	if om.sessions, err = createTable[SessionRecord](dir, "sessions.csv"); err != nil {
		return nil, errors.Join(err, om.Close())
	}
	return om, nil
}

// WriteConfig saves cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append(stats)
}

func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append(stats.ToCSV(windowEnd))
}

func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.append(b)
}

func (om *OutputManager) WriteSession(r SessionRecord) error {
	if om == nil {
		return nil
	}
	return om.sessions.append(r)
}

// Dir returns the output directory, or "" when output is off.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every file that was opened.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(
		om.telemetry.close(),
		om.perf.close(),
		om.bookmarks.close(),
		om.sessions.close(),
	)
}
