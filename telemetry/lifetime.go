package telemetry

// LifetimeStats tracks one plant over its lifetime.
type LifetimeStats struct {
	BirthTick int
	Founder   bool // Seeded at start rather than grown from a parent

	Children int
	PeakSize float64
}

// Lifespan returns the ticks lived up to deathTick.
func (ls *LifetimeStats) Lifespan(deathTick int) int {
	return deathTick - ls.BirthTick
}

// LifetimeTracker manages per-plant lifetime statistics keyed by entity ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register starts tracking a new plant.
func (lt *LifetimeTracker) Register(entityID uint32, birthTick int, founder bool, size float64) {
	lt.stats[entityID] = &LifetimeStats{
		BirthTick: birthTick,
		Founder:   founder,
		PeakSize:  size,
	}
}

// Get returns the lifetime stats for a plant, or nil if not found.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove stops tracking a plant and returns its stats.
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// RecordChild increments the parent's children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// UpdateSize tracks peak size.
func (lt *LifetimeTracker) UpdateSize(entityID uint32, size float64) {
	if s := lt.stats[entityID]; s != nil && size > s.PeakSize {
		s.PeakSize = size
	}
}

// Count returns the number of tracked plants.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
