package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/ecosim/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func TestNewWorldSmallHasNoLake(t *testing.T) {
	w := NewWorld(5, 5, config.Cfg().World)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			c, ok := w.Cell(x, y)
			if !ok {
				t.Fatalf("Cell(%d,%d) out of bounds", x, y)
			}
			if c.Type != CellSoil {
				t.Errorf("Cell(%d,%d).Type = %v, want soil", x, y, c.Type)
			}
			if c.Water != 0.7 {
				t.Errorf("Cell(%d,%d).Water = %v, want 0.7", x, y, c.Water)
			}
			if c.Light != 0 || c.Resources != 1.0 || c.Temperature != 20.0 {
				t.Errorf("Cell(%d,%d) = %+v, unexpected defaults", x, y, *c)
			}
		}
	}
}

func TestNewWorldLake(t *testing.T) {
	// radius = min(40,20)/8 = 2, center (20,10)
	w := NewWorld(40, 20, config.Cfg().World)

	tests := []struct {
		x, y int
		want CellType
	}{
		{20, 10, CellWater},
		{21, 11, CellWater}, // dist sqrt(2)
		{22, 10, CellSoil},  // dist 2, not strictly inside
		{20, 12, CellSoil},
		{19, 9, CellWater},
		{0, 0, CellSoil},
	}

	for _, tt := range tests {
		c, _ := w.Cell(tt.x, tt.y)
		if c.Type != tt.want {
			t.Errorf("Cell(%d,%d).Type = %v, want %v", tt.x, tt.y, c.Type, tt.want)
		}
		if c.Type == CellWater && c.Water != 1.0 {
			t.Errorf("lake cell (%d,%d) water = %v, want 1.0", tt.x, tt.y, c.Water)
		}
	}

	var lake int
	for _, c := range w.Cells() {
		if c.Type == CellWater {
			lake++
		}
	}
	// Offsets with dx²+dy² < 4: the center, 4 axis neighbors and 4 diagonals
	if lake != 9 {
		t.Errorf("lake cells = %d, want 9", lake)
	}
}

func TestCellOutOfBounds(t *testing.T) {
	w := NewWorld(5, 4, config.Cfg().World)

	tests := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {5, 0}, {0, 4}, {5, 4},
	}
	for _, tt := range tests {
		if c, ok := w.Cell(tt.x, tt.y); ok || c != nil {
			t.Errorf("Cell(%d,%d) = (%v, %v), want (nil, false)", tt.x, tt.y, c, ok)
		}
	}

	if _, ok := w.Cell(4, 3); !ok {
		t.Error("Cell(4,3) should be in bounds")
	}
}

func TestCellReturnsSharedState(t *testing.T) {
	w := NewWorld(5, 5, config.Cfg().World)
	c, _ := w.Cell(1, 2)
	c.Resources = 9

	again, _ := w.Cell(1, 2)
	if again.Resources != 9 {
		t.Errorf("write through Cell pointer lost: got %v", again.Resources)
	}
}

func TestAdvanceTimeFirstHour(t *testing.T) {
	w := NewWorld(5, 5, config.Cfg().World)
	w.AdvanceTime()

	if w.Time != 1 || w.Hour != 1 || w.Day != 0 {
		t.Errorf("clock = (time %d, hour %d, day %d), want (1, 1, 0)", w.Time, w.Hour, w.Day)
	}

	want := math.Sin(2 * math.Pi / 24)
	for i, c := range w.Cells() {
		if math.Abs(c.Light-want) > 1e-12 {
			t.Fatalf("cell %d light = %v, want %v", i, c.Light, want)
		}
	}
	if math.Abs(want-0.2588) > 0.001 {
		t.Errorf("light = %v, want ~0.259", want)
	}
}

func TestAdvanceTimeDayRollover(t *testing.T) {
	w := NewWorld(3, 3, config.Cfg().World)

	prevDay := 0
	for i := 1; i <= 24*5; i++ {
		w.AdvanceTime()

		if w.Hour < 0 || w.Hour > 23 {
			t.Fatalf("hour %d out of range", w.Hour)
		}
		if w.Hour != w.Time%24 {
			t.Fatalf("hour %d != time %d mod 24", w.Hour, w.Time)
		}
		if w.Day < prevDay {
			t.Fatalf("day decreased from %d to %d", prevDay, w.Day)
		}
		if w.Day != i/24 {
			t.Fatalf("after %d ticks day = %d, want %d", i, w.Day, i/24)
		}
		prevDay = w.Day
	}
}

func TestLightLevel(t *testing.T) {
	tests := []struct {
		hour int
		want float64
	}{
		{0, 0},
		{6, 1},
		{12, 0},
		{18, 0}, // sin is negative, clamped
		{23, 0},
	}

	for _, tt := range tests {
		got := LightLevel(tt.hour)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LightLevel(%d) = %v, want %v", tt.hour, got, tt.want)
		}
		if got < 0 || got > 1 {
			t.Errorf("LightLevel(%d) = %v outside [0,1]", tt.hour, got)
		}
	}
}

func TestIsDaytime(t *testing.T) {
	w := NewWorld(3, 3, config.Cfg().World)

	for h := 0; h < 24; h++ {
		w.Hour = h
		want := h >= 6 && h <= 18
		if got := w.IsDaytime(); got != want {
			t.Errorf("IsDaytime(hour=%d) = %v, want %v", h, got, want)
		}
	}
}

func TestWorldAggregates(t *testing.T) {
	w := NewWorld(4, 4, config.Cfg().World)

	if got := w.MeanSoilWater(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("MeanSoilWater = %v, want 0.7", got)
	}
	if got := w.TotalResources(); math.Abs(got-16) > 1e-9 {
		t.Errorf("TotalResources = %v, want 16", got)
	}
}
