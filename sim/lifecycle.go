package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/systems"
)

// seedInitialPlants scatters the starting population over random soil cells.
// A plant that finds no soil within its attempt budget is skipped.
func (s *Simulation) seedInitialPlants() {
	pop := s.cfg.Population

	for i := 0; i < pop.Initial; i++ {
		for attempt := 0; attempt < pop.SeedAttempts; attempt++ {
			x := s.rng.Intn(s.world.Width)
			y := s.rng.Intn(s.world.Height)

			if cell, ok := s.world.Cell(x, y); ok && cell.Type == systems.CellSoil {
				s.spawnPlant(components.Position{X: x, Y: y}, true)
				break
			}
		}
	}
}

// spawnPlant creates a new plant entity with the default germination state.
// Founders are plants placed directly rather than grown from a seed.
func (s *Simulation) spawnPlant(pos components.Position, founder bool) ecs.Entity {
	plant := components.NewPlant(s.cfg.Plant.InitialHealth, s.cfg.Plant.InitialSize)
	entity := s.plantMapper.NewEntity(&pos, &plant)
	s.plantCount++
	s.lifetimes.Register(entity.ID(), s.world.Time, founder, plant.Size)
	return entity
}

// removeDead removes plants marked during the plant pass and returns part of
// their mass to the soil they stood on.
func (s *Simulation) removeDead(dead []systems.PlantDeath) {
	for _, d := range dead {
		returned := d.Size * s.cfg.Plant.DecayFraction
		if cell, ok := s.world.Cell(d.Pos.X, d.Pos.Y); ok {
			cell.Resources += returned
		}

		// Plants never shrink, so the final size is the peak
		id := d.Entity.ID()
		s.lifetimes.UpdateSize(id, d.Size)
		s.collector.RecordLifetime(s.lifetimes.Remove(id), s.world.Time)

		s.ecs.RemoveEntity(d.Entity)
		s.plantCount--
		s.collector.RecordDeath(returned)
	}
}

// addOffspring germinates the seeds produced this tick.
func (s *Simulation) addOffspring(births []systems.PlantBirth) {
	for _, b := range births {
		s.lifetimes.RecordChild(b.Parent.ID())
		s.spawnPlant(b.Pos, false)
		s.collector.RecordBirth()
	}
}
