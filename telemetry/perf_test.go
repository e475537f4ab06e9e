package telemetry

import (
	"testing"
	"time"
)

func tick(pc *PerfCollector, population int, phases ...Phase) {
	pc.StartTick()
	for _, ph := range phases {
		pc.StartPhase(ph)
		time.Sleep(50 * time.Microsecond)
	}
	pc.EndTick(population)
}

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	for i := 0; i < 5; i++ {
		tick(pc, 100, PhaseStress, PhaseEntities)
	}

	s := pc.Stats()
	if s.AvgTick <= 0 {
		t.Fatal("expected a positive average tick")
	}
	if s.Phase[PhaseStress].Avg <= 0 || s.Phase[PhaseEntities].Avg <= 0 {
		t.Errorf("timed phases missing: %+v", s.Phase)
	}
	if s.Phase[PhaseInput].Avg != 0 || s.Phase[PhaseCensus].Avg != 0 {
		t.Errorf("untimed phases recorded: %+v", s.Phase)
	}
	if s.P95Tick < s.AvgTick/2 || s.P95Tick > s.MaxTick {
		t.Errorf("p95 = %v outside [avg/2, max] = [%v, %v]", s.P95Tick, s.AvgTick/2, s.MaxTick)
	}
	if s.NsPerGerm <= 0 {
		t.Error("expected a per-germ cost")
	}
}

func TestPerfCollectorWindowWraps(t *testing.T) {
	pc := NewPerfCollector(3)
	for i := 0; i < 7; i++ {
		tick(pc, i, PhaseEntities)
	}
	if pc.count != 3 {
		t.Errorf("count = %d, want 3", pc.count)
	}
	if s := pc.Stats(); s.TicksPerSecond <= 0 {
		t.Error("expected positive throughput")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.AvgTick != 0 || s.NsPerGerm != 0 || s.FPS != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPerfCollectorEmptyDishHasNoPerGermCost(t *testing.T) {
	pc := NewPerfCollector(4)
	tick(pc, 0, PhaseEntities)
	if s := pc.Stats(); s.NsPerGerm != 0 {
		t.Errorf("ns per germ = %v with no germs", s.NsPerGerm)
	}
}

func TestPerfCollectorFrames(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	s := pc.Stats()
	if s.Frame < 15*time.Millisecond {
		t.Errorf("frame = %v, want >= 15ms", s.Frame)
	}
	if s.FPS <= 0 || s.FPS > 70 {
		t.Errorf("fps = %v", s.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseInput, "input"},
		{PhaseTelemetry, "telemetry"},
		{phaseNone, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTick = 250 * time.Microsecond
	s.Phase[PhaseEntities].Pct = 80
	s.Phase[PhaseCensus].Pct = 15

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.EntitiesPct != 80 || row.CensusPct != 15 || row.InputPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
