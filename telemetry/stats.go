package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`
	Day             int `csv:"day"`
	Hour            int `csv:"hour"`

	// Population at window end
	Plants    int `csv:"plants"`
	Seedlings int `csv:"seedlings"`
	Growing   int `csv:"growing"`
	Mature    int `csv:"mature"`

	// Events during window
	Births            int     `csv:"births"`
	Deaths            int     `csv:"deaths"`
	ResourcesReturned float64 `csv:"resources_returned"` // Decomposed mass deposited by deaths

	// Water cycle during window
	RainEvents int     `csv:"rain_events"`
	Rained     float64 `csv:"rained"`
	Evaporated float64 `csv:"evaporated"`

	// Atmosphere at window end
	CO2      float64 `csv:"co2"`
	O2       float64 `csv:"o2"`
	AtmWater float64 `csv:"atm_water"`

	// Grid at window end
	MeanSoilWater  float64 `csv:"mean_soil_water"`
	TotalResources float64 `csv:"total_resources"`

	// Plant distributions (sampled at window end)
	SizeMean   float64 `csv:"size_mean"`
	SizeStd    float64 `csv:"size_std"`
	SizeP10    float64 `csv:"size_p10"`
	SizeP50    float64 `csv:"size_p50"`
	SizeP90    float64 `csv:"size_p90"`
	HealthMean float64 `csv:"health_mean"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	// Lifetimes of plants that died during the window
	LifespanMean  float64 `csv:"lifespan_mean"` // Ticks
	LifespanP50   float64 `csv:"lifespan_p50"`
	LifespanP90   float64 `csv:"lifespan_p90"`
	ChildrenMean  float64 `csv:"children_mean"`
	PeakSizeMean  float64 `csv:"peak_size_mean"`
	FounderDeaths int     `csv:"founder_deaths"` // Deaths among the initially seeded plants
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates mean, std and empirical percentiles.
// Returns the zero value for an empty sample; std is 0 for a single value.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("day", s.Day),
		slog.Int("hour", s.Hour),
		slog.Int("plants", s.Plants),
		slog.Int("seedlings", s.Seedlings),
		slog.Int("growing", s.Growing),
		slog.Int("mature", s.Mature),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("resources_returned", s.ResourcesReturned),
		slog.Int("rain_events", s.RainEvents),
		slog.Float64("rained", s.Rained),
		slog.Float64("evaporated", s.Evaporated),
		slog.Float64("co2", s.CO2),
		slog.Float64("o2", s.O2),
		slog.Float64("atm_water", s.AtmWater),
		slog.Float64("mean_soil_water", s.MeanSoilWater),
		slog.Float64("total_resources", s.TotalResources),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("size_p50", s.SizeP50),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_p10", s.HealthP10),
		slog.Float64("lifespan_mean", s.LifespanMean),
		slog.Float64("children_mean", s.ChildrenMean),
		slog.Int("founder_deaths", s.FounderDeaths),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"day", s.Day,
		"window_end", s.WindowEndTick,
		"plants", s.Plants,
		"births", s.Births,
		"deaths", s.Deaths,
		"rain_events", s.RainEvents,
		"co2", s.CO2,
		"o2", s.O2,
		"atm_water", s.AtmWater,
		"mean_soil_water", s.MeanSoilWater,
		"size_mean", s.SizeMean,
		"health_mean", s.HealthMean,
		"lifespan_mean", s.LifespanMean,
		"founder_deaths", s.FounderDeaths,
	)
}
