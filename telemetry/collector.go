package telemetry

import "github.com/pthm-cable/ecosim/systems"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Event counters for current window
	births            int
	deaths            int
	resourcesReturned float64
	rainEvents        int
	rained            float64
	evaporated        float64

	// Lifetimes of plants that died this window
	lifespans     []float64
	children      int
	peakSizes     []float64
	founderDeaths int
}

// NewCollector creates a new stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records an offspring joining the population.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death and the resources it returned to the soil.
func (c *Collector) RecordDeath(returned float64) {
	c.deaths++
	c.resourcesReturned += returned
}

// RecordLifetime records the lifetime of a plant that died at deathTick.
func (c *Collector) RecordLifetime(ls *LifetimeStats, deathTick int) {
	if ls == nil {
		return
	}
	c.lifespans = append(c.lifespans, float64(ls.Lifespan(deathTick)))
	c.children += ls.Children
	c.peakSizes = append(c.peakSizes, ls.PeakSize)
	if ls.Founder {
		c.founderDeaths++
	}
}

// RecordWater adds one water cycle pass to the window totals.
func (c *Collector) RecordWater(r systems.WaterReport) {
	c.rainEvents += r.RainEvents
	c.rained += r.Rained
	c.evaporated += r.Evaporated
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Ecosystem is the state sampled at the end of a window.
type Ecosystem struct {
	Day, Hour int

	Sizes   []float64 // One entry per live plant
	Healths []float64

	Seedlings, Growing, Mature int

	Atmosphere     systems.Atmosphere
	MeanSoilWater  float64
	TotalResources float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, eco Ecosystem) WindowStats {
	size := ComputeDistribution(eco.Sizes)
	health := ComputeDistribution(eco.Healths)
	lifespan := ComputeDistribution(c.lifespans)
	peak := ComputeDistribution(c.peakSizes)

	var childrenMean float64
	if n := len(c.lifespans); n > 0 {
		childrenMean = float64(c.children) / float64(n)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Day:             eco.Day,
		Hour:            eco.Hour,

		Plants:    len(eco.Sizes),
		Seedlings: eco.Seedlings,
		Growing:   eco.Growing,
		Mature:    eco.Mature,

		Births:            c.births,
		Deaths:            c.deaths,
		ResourcesReturned: c.resourcesReturned,

		RainEvents: c.rainEvents,
		Rained:     c.rained,
		Evaporated: c.evaporated,

		CO2:      eco.Atmosphere.CO2,
		O2:       eco.Atmosphere.O2,
		AtmWater: eco.Atmosphere.Water,

		MeanSoilWater:  eco.MeanSoilWater,
		TotalResources: eco.TotalResources,

		SizeMean:   size.Mean,
		SizeStd:    size.Std,
		SizeP10:    size.P10,
		SizeP50:    size.P50,
		SizeP90:    size.P90,
		HealthMean: health.Mean,
		HealthP10:  health.P10,
		HealthP50:  health.P50,
		HealthP90:  health.P90,

		LifespanMean:  lifespan.Mean,
		LifespanP50:   lifespan.P50,
		LifespanP90:   lifespan.P90,
		ChildrenMean:  childrenMean,
		PeakSizeMean:  peak.Mean,
		FounderDeaths: c.founderDeaths,
	}

	c.reset(currentTick)
	return stats
}

// reset clears all counters for a new window.
func (c *Collector) reset(startTick int) {
	c.windowStartTick = startTick
	c.births = 0
	c.deaths = 0
	c.resourcesReturned = 0
	c.rainEvents = 0
	c.rained = 0
	c.evaporated = 0
	c.lifespans = c.lifespans[:0]
	c.children = 0
	c.peakSizes = c.peakSizes[:0]
	c.founderDeaths = 0
}
