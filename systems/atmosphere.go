package systems

import (
	"math"

	"github.com/pthm-cable/ecosim/config"
)

// Atmosphere holds the global gas and vapor pools.
type Atmosphere struct {
	CO2   float64
	O2    float64
	Water float64 // Vapor available for rain
}

// NewAtmosphere returns the starting atmosphere.
func NewAtmosphere(cfg config.AtmosphereConfig) Atmosphere {
	return Atmosphere{
		CO2: cfg.InitialCO2,
		O2:  cfg.InitialO2,
	}
}

// Exchange applies one tick of plant gas exchange plus the abiotic drift.
// Both gases are floored at their configured minimum.
func (a *Atmosphere) Exchange(absorbed, produced float64, cfg config.AtmosphereConfig) {
	a.CO2 = math.Max(cfg.MinCO2, a.CO2-absorbed+cfg.CO2Drift)
	a.O2 = math.Max(cfg.MinO2, a.O2+produced-cfg.O2Drift)
}
