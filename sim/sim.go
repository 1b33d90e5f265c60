// Package sim drives the ecosystem: it owns the grid, the live plants and the
// atmosphere, and advances them one simulated hour per Update.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/config"
	"github.com/pthm-cable/ecosim/systems"
	"github.com/pthm-cable/ecosim/telemetry"
)

// Options configures a new Simulation.
type Options struct {
	Width, Height int

	Seed int64      // Used when Rand is nil
	Rand *rand.Rand // Source for every stochastic decision

	Config *config.Config // nil = config.Cfg()

	OutputDir   string // CSV and config snapshot directory (empty = disabled)
	LogStats    bool   // Emit window stats via slog
	StatsWindow int    // Ticks per telemetry window (0 = use config)
}

// Simulation holds the complete simulation state.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	world      *systems.World
	atmosphere systems.Atmosphere
	waterCycle *systems.WaterCycleSystem

	// Live plants
	ecs         *ecs.World
	plantMapper *ecs.Map2[components.Position, components.Plant]
	plantFilter *ecs.Filter2[components.Position, components.Plant]
	plants      *systems.PlantSystem
	plantCount  int

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	lifetimes *telemetry.LifetimeTracker
	output    *telemetry.OutputManager
	logStats  bool
}

// New builds the world, carves the lake and seeds the initial plants.
func New(opts Options) (*Simulation, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid world size %dx%d", opts.Width, opts.Height)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, errors.Join(err, output.Close())
	}

	world := ecs.NewWorld()

	s := &Simulation{
		cfg:         cfg,
		rng:         rng,
		world:       systems.NewWorld(opts.Width, opts.Height, cfg.World),
		atmosphere:  systems.NewAtmosphere(cfg.Atmosphere),
		waterCycle:  systems.NewWaterCycleSystem(cfg.Water, rng),
		ecs:         world,
		plantMapper: ecs.NewMap2[components.Position, components.Plant](world),
		plantFilter: ecs.NewFilter2[components.Position, components.Plant](world),
		plants:      systems.NewPlantSystem(world, &cfg.Plant, rng),
		collector:   telemetry.NewCollector(statsWindow),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:   telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		lifetimes:   telemetry.NewLifetimeTracker(),
		output:      output,
		logStats:    opts.LogStats,
	}

	s.seedInitialPlants()
	return s, nil
}

// Close flushes and closes telemetry output.
func (s *Simulation) Close() error {
	return s.output.Close()
}

// Stats is a read-only snapshot of the headline numbers.
type Stats struct {
	Day               int
	Hour              int
	PlantCount        int
	CO2Level          float64
	O2Level           float64
	WaterInAtmosphere float64
}

// Stats returns the current headline numbers.
func (s *Simulation) Stats() Stats {
	return Stats{
		Day:               s.world.Day,
		Hour:              s.world.Hour,
		PlantCount:        s.plantCount,
		CO2Level:          s.atmosphere.CO2,
		O2Level:           s.atmosphere.O2,
		WaterInAtmosphere: s.atmosphere.Water,
	}
}

// PlantView is a read-only copy of one live plant.
type PlantView struct {
	Position components.Position
	Size     float64
	Age      int
	Health   float64
	Stage    components.Stage
}

// Plants returns a snapshot of the live plants in iteration order.
func (s *Simulation) Plants() []PlantView {
	views := make([]PlantView, 0, s.plantCount)
	query := s.plantFilter.Query()
	for query.Next() {
		pos, plant := query.Get()
		views = append(views, PlantView{
			Position: *pos,
			Size:     plant.Size,
			Age:      plant.Age,
			Health:   plant.Health,
			Stage:    plant.Stage(s.cfg.Plant.GrowingSize, s.cfg.Plant.MatureSize),
		})
	}
	return views
}

// Width returns the grid width.
func (s *Simulation) Width() int { return s.world.Width }

// Height returns the grid height.
func (s *Simulation) Height() int { return s.world.Height }

// Cell returns a copy of the cell at (x, y), or false when off the grid.
func (s *Simulation) Cell(x, y int) (systems.Cell, bool) {
	c, ok := s.world.Cell(x, y)
	if !ok {
		return systems.Cell{}, false
	}
	return *c, true
}

// Day returns the current simulated day.
func (s *Simulation) Day() int { return s.world.Day }

// Tick returns the number of completed updates.
func (s *Simulation) Tick() int { return s.world.Time }
