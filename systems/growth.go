package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// Grow advances one plant by one tick against the cell it occupies.
// Plants off soil lose health and do not age. Returns whether the plant is still alive.
func Grow(p *components.Plant, pos components.Position, w *World, cfg *config.PlantConfig) bool {
	cell, ok := w.Cell(pos.X, pos.Y)
	if !ok || cell.Type != CellSoil {
		p.Health -= cfg.TerrainPenalty
		return p.Alive()
	}

	growth := math.Min(cell.Light, cell.Water) * cfg.GrowthScale

	if growth > 0 {
		p.Age++
		p.Size = math.Min(p.Size+growth*cfg.SizeRate, cfg.MaxSize)

		// Photosynthesis
		p.CO2Absorbed += growth
		p.O2Produced += growth

		cell.Water = math.Max(0, cell.Water-growth*cfg.WaterUptake)
	} else {
		p.Health -= cfg.StarvePenalty
	}

	if p.Age > cfg.SenescenceAge {
		p.Health -= cfg.SenescencePenalty
	}

	return p.Alive()
}

// CanReproduce reports whether a plant is old and large enough to seed.
func CanReproduce(p *components.Plant, cfg *config.PlantConfig) bool {
	return p.Age >= cfg.MaturityAge && p.Size >= cfg.MaturitySize
}

// Reproduce rolls for a seeding event and, on success, scans the eight neighbors
// for the first soil cell that also wins its own placement roll.
// Returns the offspring position and true if a seed was placed.
func Reproduce(p *components.Plant, pos components.Position, w *World, rng *rand.Rand, cfg *config.PlantConfig) (components.Position, bool) {
	if !CanReproduce(p, cfg) {
		return components.Position{}, false
	}

	chance := p.Health / 100 * p.Size
	if rng.Float64() >= chance {
		return components.Position{}, false
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := pos.Neighbor(dx, dy)
			cell, ok := w.Cell(n.X, n.Y)
			if !ok || cell.Type != CellSoil {
				continue
			}
			// Only soil neighbors consume a roll
			if rng.Float64() < cfg.SeedChance {
				return n, true
			}
		}
	}

	return components.Position{}, false
}
