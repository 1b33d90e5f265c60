package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/ecosim/config"
)

// WaterReport summarizes one water cycle pass.
type WaterReport struct {
	Evaporated float64 // Moved from cells into the atmosphere
	Rained     float64 // Moved from the atmosphere into soil
	RainEvents int
}

// WaterCycleSystem moves water between the grid and the atmosphere.
type WaterCycleSystem struct {
	cfg config.WaterConfig
	rng *rand.Rand
}

// NewWaterCycleSystem creates a water cycle bound to the given RNG.
func NewWaterCycleSystem(cfg config.WaterConfig, rng *rand.Rand) *WaterCycleSystem {
	return &WaterCycleSystem{cfg: cfg, rng: rng}
}

// Update runs evaporation and rain over every cell in row-major order.
// Lakes feed the atmosphere without losing water. Soil evaporates in strong light
// and may receive rain at night or whenever the atmosphere is saturated.
func (s *WaterCycleSystem) Update(w *World, atm *Atmosphere) WaterReport {
	var report WaterReport
	daytime := w.IsDaytime()
	cells := w.Cells()

	for i := range cells {
		c := &cells[i]

		switch c.Type {
		case CellWater:
			if daytime && c.Light > s.cfg.LakeEvapLight {
				atm.Water += s.cfg.LakeEvapAmount
				report.Evaporated += s.cfg.LakeEvapAmount
			}

		case CellSoil:
			if daytime && c.Light > s.cfg.SoilEvapLight {
				evap := math.Min(s.cfg.SoilEvapMax, c.Water*s.cfg.SoilEvapFraction)
				c.Water -= evap
				atm.Water += evap
				report.Evaporated += evap
			}

			// The roll is only drawn when rain is possible
			if (!daytime || atm.Water > s.cfg.RainThreshold) && s.rng.Float64() < s.cfg.RainChance {
				rain := math.Min(s.cfg.RainMax, atm.Water*s.cfg.RainFraction)
				c.Water = math.Min(s.cfg.MaxCellWater, c.Water+rain)
				atm.Water = math.Max(0, atm.Water-rain)
				report.Rained += rain
				report.RainEvents++
			}
		}
	}

	return report
}
