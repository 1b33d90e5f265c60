package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWater)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePlants)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseWater]; !ok {
		t.Error("expected water phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhasePlants]; !ok {
		t.Error("expected plants phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWater)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Millisecond sleeps with a 20x gap stay ordered despite timer granularity
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseWater)
		time.Sleep(1 * time.Millisecond)
		pc.StartPhase(PhasePlants)
		time.Sleep(20 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	waterPct := stats.PhasePct[PhaseWater]
	plantsPct := stats.PhasePct[PhasePlants]

	if plantsPct <= waterPct {
		t.Errorf("expected plants phase (%v%%) > water phase (%v%%)", plantsPct, waterPct)
	}
	if sum := waterPct + plantsPct; sum < 90 || sum > 100.001 {
		t.Errorf("phase percentages sum to %v%%, want ~100%%", sum)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 250 * time.Microsecond,
		TicksPerSecond:  4000,
		PhasePct: map[string]float64{
			PhaseWater:      40,
			PhasePlants:     50,
			PhaseAtmosphere: 10,
		},
	}

	row := stats.ToCSV(48)
	if row.WindowEnd != 48 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.WaterPct != 40 || row.PlantsPct != 50 || row.AtmospherePct != 10 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
	if row.RemovalPct != 0 {
		t.Errorf("untracked phase should be 0, got %v", row.RemovalPct)
	}
}

func TestPerfCollector_TickSpread(t *testing.T) {
	pc := NewPerfCollector(8)

	for i := 0; i < 8; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePlants)
		time.Sleep(time.Duration(i+1) * 50 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("avg %v outside [%v, %v]", stats.AvgTickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.P90TickDuration < stats.MinTickDuration || stats.P90TickDuration > stats.MaxTickDuration {
		t.Errorf("p90 %v outside [%v, %v]", stats.P90TickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.MaxTickDuration < 400*time.Microsecond {
		t.Errorf("max tick %v shorter than the longest sleep", stats.MaxTickDuration)
	}
}
