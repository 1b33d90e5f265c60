package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
)

// PlantDeath is a plant that ran out of health during the plant pass.
type PlantDeath struct {
	Entity ecs.Entity
	Pos    components.Position
	Size   float64
}

// PlantBirth is a seed placed during the plant pass.
type PlantBirth struct {
	Parent ecs.Entity
	Pos    components.Position
}

// PlantSystem grows, ages and reproduces every plant in the ECS world.
type PlantSystem struct {
	filter ecs.Filter2[components.Position, components.Plant]
	cfg    *config.PlantConfig
	rng    *rand.Rand

	// Reused across ticks
	dead   []PlantDeath
	births []PlantBirth
}

// NewPlantSystem creates a plant system over w.
func NewPlantSystem(w *ecs.World, cfg *config.PlantConfig, rng *rand.Rand) *PlantSystem {
	return &PlantSystem{
		filter: *ecs.NewFilter2[components.Position, components.Plant](w),
		cfg:    cfg,
		rng:    rng,
	}
}

// Update runs one plant pass against the grid. Dead plants do not reproduce.
// The ECS world is not modified; the caller applies the returned deaths and
// births after the pass. Both slices are reused by the next Update.
func (s *PlantSystem) Update(grid *World) ([]PlantDeath, []PlantBirth) {
	s.dead = s.dead[:0]
	s.births = s.births[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, plant := query.Get()

		if !Grow(plant, *pos, grid, s.cfg) {
			s.dead = append(s.dead, PlantDeath{Entity: query.Entity(), Pos: *pos, Size: plant.Size})
			continue
		}

		if child, ok := Reproduce(plant, *pos, grid, s.rng, s.cfg); ok {
			s.births = append(s.births, PlantBirth{Parent: query.Entity(), Pos: child})
		}
	}

	return s.dead, s.births
}

// FlushGas drains every plant's gas counters and returns the totals.
func (s *PlantSystem) FlushGas() (absorbed, produced float64) {
	query := s.filter.Query()
	for query.Next() {
		_, plant := query.Get()
		co2, o2 := plant.FlushGas()
		absorbed += co2
		produced += o2
	}
	return absorbed, produced
}
