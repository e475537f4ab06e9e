package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a simulation tick.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseStress
	PhaseEntities
	PhaseCensus
	PhaseTelemetry
	phaseCount
	phaseNone Phase = 255
)

// PhaseInfo describes a tick phase for display.
type PhaseInfo struct {
	ID          Phase
	Key         string // log and CSV prefix
	Name        string
	Description string
}

// Phases lists every tick phase in execution order.
var Phases = [phaseCount]PhaseInfo{
	{PhaseInput, "input", "Input", "Slider cues, buttons and treatments"},
	{PhaseStress, "stress", "Stress", "Heat, cold and radiation culling, food decay"},
	{PhaseEntities, "entities", "Entities", "Germ movement, splitting and ageing, registry flush"},
	{PhaseCensus, "census", "Census", "Population and immunity counts, outbreak check"},
	{PhaseTelemetry, "telemetry", "Telemetry", "Stats windows and output"},
}

// String returns the phase key.
func (p Phase) String() string {
	if p >= phaseCount {
		return "unknown"
	}
	return Phases[p].Key
}

type tickSample struct {
	total      time.Duration
	phases     [phaseCount]time.Duration
	population int
}

// PerfCollector times tick phases over a ring of the most recent ticks.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last window ticks; 60 when window < 1.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]tickSample, window), phase: phaseNone}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{}
	p.phase = phaseNone
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < phaseCount {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick records the tick along with the population it simulated.
func (p *PerfCollector) EndTick(population int) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseNone
	p.cur.total = now.Sub(p.tickStart)
	p.cur.population = population

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseStats is the average cost of one phase.
type PhaseStats struct {
	Avg time.Duration
	Pct float64 // share of the average tick
}

// PerfStats aggregates the collector window.
type PerfStats struct {
	AvgTick time.Duration
	MaxTick time.Duration
	P95Tick time.Duration

	Phase [phaseCount]PhaseStats

	TicksPerSecond float64
	// NsPerGerm is the average tick cost divided by the average population.
	NsPerGerm float64

	Frame time.Duration
	FPS   float64
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	s.Frame = p.frame
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	var sum, pop float64
	var phaseSum [phaseCount]time.Duration
	for i, t := range p.ring[:p.count] {
		totals[i] = float64(t.total)
		sum += float64(t.total)
		pop += float64(t.population)
		for ph, d := range t.phases {
			phaseSum[ph] += d
		}
		s.MaxTick = max(s.MaxTick, t.total)
	}

	n := float64(p.count)
	s.AvgTick = time.Duration(sum / n)
	slices.Sort(totals)
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))

	for ph, d := range phaseSum {
		avg := time.Duration(float64(d) / n)
		s.Phase[ph].Avg = avg
		if s.AvgTick > 0 {
			s.Phase[ph].Pct = float64(avg) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	if pop > 0 {
		s.NsPerGerm = float64(s.AvgTick) / (pop / n)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ns_per_germ", s.NsPerGerm),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.Phase[ph.ID].Pct; pct >= 0.1 {
			attrs = append(attrs, slog.Float64(ph.Key+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	NsPerGerm    float64 `csv:"ns_per_germ"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	StressPct    float64 `csv:"stress_pct"`
	EntitiesPct  float64 `csv:"entities_pct"`
	CensusPct    float64 `csv:"census_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s for perf.csv.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		NsPerGerm:    s.NsPerGerm,
		FPS:          s.FPS,
		InputPct:     s.Phase[PhaseInput].Pct,
		StressPct:    s.Phase[PhaseStress].Pct,
		EntitiesPct:  s.Phase[PhaseEntities].Pct,
		CensusPct:    s.Phase[PhaseCensus].Pct,
		TelemetryPct: s.Phase[PhaseTelemetry].Pct,
	}
}
