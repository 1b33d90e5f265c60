package sim

import (
	"log/slog"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Update advances the simulation by one hour.
// The stages run in a fixed order; each one reads what the previous one wrote.
func (s *Simulation) Update() {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseTime)
	s.world.AdvanceTime()

	s.perf.StartPhase(telemetry.PhaseWater)
	report := s.waterCycle.Update(s.world, &s.atmosphere)
	s.collector.RecordWater(report)

	s.perf.StartPhase(telemetry.PhasePlants)
	dead, births := s.plants.Update(s.world)

	// The ECS world is only mutated after the plant query has finished
	s.perf.StartPhase(telemetry.PhaseRemoval)
	s.removeDead(dead)

	s.perf.StartPhase(telemetry.PhaseAddition)
	s.addOffspring(births)

	s.perf.StartPhase(telemetry.PhaseAtmosphere)
	s.updateAtmosphere()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
}

// updateAtmosphere drains every plant's gas counters into the global pools.
func (s *Simulation) updateAtmosphere() {
	absorbed, produced := s.plants.FlushGas()
	s.atmosphere.Exchange(absorbed, produced, s.cfg.Atmosphere)
}

// flushTelemetry closes a stats window when one is due.
func (s *Simulation) flushTelemetry() {
	tick := s.world.Time
	if !s.collector.ShouldFlush(tick) {
		return
	}

	stats := s.collector.Flush(tick, s.sampleEcosystem())
	perf := s.perf.Stats()

	if s.logStats {
		stats.LogStats()
		perf.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := s.output.WritePerf(perf, tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Warn("bookmark write failed", "error", err)
		}
	}
}

// sampleEcosystem gathers the end-of-window state for the collector.
func (s *Simulation) sampleEcosystem() telemetry.Ecosystem {
	cfg := &s.cfg.Plant
	eco := telemetry.Ecosystem{
		Day:            s.world.Day,
		Hour:           s.world.Hour,
		Sizes:          make([]float64, 0, s.plantCount),
		Healths:        make([]float64, 0, s.plantCount),
		Atmosphere:     s.atmosphere,
		MeanSoilWater:  s.world.MeanSoilWater(),
		TotalResources: s.world.TotalResources(),
	}

	query := s.plantFilter.Query()
	for query.Next() {
		_, plant := query.Get()
		eco.Sizes = append(eco.Sizes, plant.Size)
		eco.Healths = append(eco.Healths, plant.Health)

		switch plant.Stage(cfg.GrowingSize, cfg.MatureSize) {
		case components.StageSeedling:
			eco.Seedlings++
		case components.StageGrowing:
			eco.Growing++
		case components.StageMature:
			eco.Mature++
		}
	}

	return eco
}
