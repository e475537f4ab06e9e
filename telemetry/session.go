package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one play session from start to outbreak or abandon.
type Session struct {
	ID        string
	Seed      int64
	StartedAt time.Time
	Headless  bool
}

// NewSession starts a session with a fresh random ID.
func NewSession(seed int64, headless bool) Session {
	return Session{
		ID:        uuid.New().String(),
		Seed:      seed,
		StartedAt: time.Now(),
		Headless:  headless,
	}
}

// SessionRecord is one row of sessions.csv.
type SessionRecord struct {
	ID             string  `csv:"session_id"`
	Seed           int64   `csv:"seed"`
	Headless       bool    `csv:"headless"`
	StartedAt      string  `csv:"started_at"`
	SimTimeSec     float64 `csv:"sim_time"`
	Outbreak       bool    `csv:"outbreak"`
	Score          float64 `csv:"score"`
	PeakPopulation int     `csv:"peak_population"`
	Births         int     `csv:"births"`
	Mutations      int     `csv:"mutations"`
	Deaths         int     `csv:"deaths"`
	Culls          int     `csv:"culls"`
	Treatments     int     `csv:"treatments"`
	Samples        int     `csv:"samples"`
}

// Record builds the sessions.csv row for s.
func (s Session) Record(simTime float64, outbreak bool, score float64, peak int, c *Collector, treatments, samples int) SessionRecord {
	births, mutations, deaths, culls := c.Totals()
	return SessionRecord{
		ID:             s.ID,
		Seed:           s.Seed,
		Headless:       s.Headless,
		StartedAt:      s.StartedAt.UTC().Format(time.RFC3339),
		SimTimeSec:     simTime,
		Outbreak:       outbreak,
		Score:          score,
		PeakPopulation: peak,
		Births:         births,
		Mutations:      mutations,
		Deaths:         deaths,
		Culls:          culls,
		Treatments:     treatments,
		Samples:        samples,
	}
}
