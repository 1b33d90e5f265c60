package systems

import (
	"math"

	"github.com/pthm-cable/ecosim/config"
)

// CellType is the terrain of a cell.
type CellType uint8

const (
	CellSoil  CellType = iota // Plants can grow here
	CellWater                 // Lake; never dries out
)

// String returns the lowercase terrain name.
func (t CellType) String() string {
	switch t {
	case CellSoil:
		return "soil"
	case CellWater:
		return "water"
	default:
		return "unknown"
	}
}

// HoursPerDay is the length of one simulated day in ticks.
const HoursPerDay = 24

// Cell is the environmental state of one grid position.
type Cell struct {
	Type        CellType
	Light       float64 // [0,1], uniform across the grid each tick
	Water       float64 // [0,1]
	Temperature float64 // Carried, not used by any dynamics
	Resources   float64 // Decomposed plant mass
}

// World is the dense cell grid plus the simulation clock.
type World struct {
	Width, Height int

	// Clock
	Time int // Ticks since construction
	Hour int // Time mod HoursPerDay
	Day  int

	cells    []Cell // row-major
	dayStart int
	dayEnd   int
}

// NewWorld creates a soil grid of the given size and carves a lake at its center.
func NewWorld(width, height int, cfg config.WorldConfig) *World {
	w := &World{
		Width:    width,
		Height:   height,
		cells:    make([]Cell, width*height),
		dayStart: cfg.DayStartHour,
		dayEnd:   cfg.DayEndHour,
	}

	for i := range w.cells {
		w.cells[i] = Cell{
			Type:        CellSoil,
			Water:       cfg.SoilWater,
			Temperature: cfg.Temperature,
			Resources:   cfg.SoilResources,
		}
	}

	w.carveLake(cfg)
	return w
}

// carveLake turns a disc of radius min(w,h)/divisor around the grid center into water.
func (w *World) carveLake(cfg config.WorldConfig) {
	cx := w.Width / 2
	cy := w.Height / 2
	radius := float64(min(w.Width, w.Height) / cfg.LakeRadiusDivisor)

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			if math.Sqrt(dx*dx+dy*dy) < radius {
				c := &w.cells[w.Index(x, y)]
				c.Type = CellWater
				c.Water = cfg.LakeWater
			}
		}
	}
}

// InBounds reports whether (x, y) lies on the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// Index returns the linear slice index for coordinates (x, y).
func (w *World) Index(x, y int) int { return y*w.Width + x }

// Cell returns the cell at (x, y), or false when the coordinate is off the grid.
func (w *World) Cell(x, y int) (*Cell, bool) {
	if !w.InBounds(x, y) {
		return nil, false
	}
	return &w.cells[w.Index(x, y)], true
}

// Cells exposes the backing slice for full-grid passes.
func (w *World) Cells() []Cell { return w.cells }

// AdvanceTime moves the clock forward one hour and relights every cell.
func (w *World) AdvanceTime() {
	w.Time++
	w.Hour = w.Time % HoursPerDay
	if w.Hour == 0 {
		w.Day++
	}

	light := LightLevel(w.Hour)
	for i := range w.cells {
		w.cells[i].Light = light
	}
}

// IsDaytime reports whether the current hour falls in the daytime window.
func (w *World) IsDaytime() bool {
	return w.Hour >= w.dayStart && w.Hour <= w.dayEnd
}

// LightLevel is the day/night curve: max(0, sin(2π·hour/24)).
func LightLevel(hour int) float64 {
	return math.Max(0, math.Sin(2*math.Pi*float64(hour)/HoursPerDay))
}

// MeanSoilWater returns the average moisture over soil cells, or 0 if there are none.
func (w *World) MeanSoilWater() float64 {
	var sum float64
	var n int
	for i := range w.cells {
		if w.cells[i].Type == CellSoil {
			sum += w.cells[i].Water
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TotalResources sums resources over the whole grid.
func (w *World) TotalResources() float64 {
	var sum float64
	for i := range w.cells {
		sum += w.cells[i].Resources
	}
	return sum
}
