// Package components defines ECS components for the simulation.
package components

// Stage is the informal size band of a plant. It is used for display only.
type Stage uint8

const (
	StageSeedling Stage = iota // size below the growing threshold
	StageGrowing               // size below the mature threshold
	StageMature
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case StageSeedling:
		return "seedling"
	case StageGrowing:
		return "growing"
	case StageMature:
		return "mature"
	default:
		return "unknown"
	}
}

// Position is a plant's cell coordinate. Plants never move.
type Position struct {
	X, Y int
}

// Neighbor returns the position offset by (dx, dy).
func (p Position) Neighbor(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Plant holds the state of one plant.
type Plant struct {
	Age    int     // Ticks with positive growth
	Health float64 // Dead at <= 0
	Size   float64 // [0, MaxSize]

	// Gas exchange since the last atmosphere flush
	CO2Absorbed float64
	O2Produced  float64
}

// NewPlant returns a freshly germinated plant.
func NewPlant(health, size float64) Plant {
	return Plant{Health: health, Size: size}
}

// Alive reports whether the plant still has health left.
func (p *Plant) Alive() bool {
	return p.Health > 0
}

// Stage returns the size band given the two display thresholds.
func (p *Plant) Stage(growingSize, matureSize float64) Stage {
	switch {
	case p.Size < growingSize:
		return StageSeedling
	case p.Size < matureSize:
		return StageGrowing
	default:
		return StageMature
	}
}

// FlushGas returns and clears the accumulated gas exchange.
func (p *Plant) FlushGas() (co2, o2 float64) {
	co2, o2 = p.CO2Absorbed, p.O2Produced
	p.CO2Absorbed = 0
	p.O2Produced = 0
	return co2, o2
}
