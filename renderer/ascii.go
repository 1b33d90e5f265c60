// Package renderer draws a read-only view of the simulation for the terminal.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/sim"
	"github.com/pthm-cable/ecosim/systems"
)

// Glyphs used by the ASCII view.
const (
	GlyphWater    = '~'
	GlyphDrySoil  = '.'
	GlyphMoist    = ':'
	GlyphWetSoil  = '='
	GlyphSeedling = ','
	GlyphGrowing  = '*'
	GlyphMature   = '♣'
	GlyphUnknown  = ' '
)

// Soil moisture bands for the ground glyph.
const (
	drySoilBelow   = 0.2
	moistSoilBelow = 0.6
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[J"

// Scene is the read-only surface the renderer needs.
type Scene interface {
	Width() int
	Height() int
	Cell(x, y int) (systems.Cell, bool)
	Plants() []sim.PlantView
	Stats() sim.Stats
}

// ASCII renders a Scene as text: a two-line stats header, a blank line, then the grid.
type ASCII struct{}

// NewASCII creates an ASCII renderer.
func NewASCII() *ASCII {
	return &ASCII{}
}

// Render returns the full frame.
func (r *ASCII) Render(scene Scene) string {
	w, h := scene.Width(), scene.Height()

	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			c, ok := scene.Cell(x, y)
			if !ok {
				grid[y][x] = GlyphUnknown
				continue
			}
			grid[y][x] = CellGlyph(c)
		}
	}

	// Plants overwrite the ground; later plants win on shared cells
	for _, p := range scene.Plants() {
		x, y := p.Position.X, p.Position.Y
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		grid[y][x] = PlantGlyph(p.Stage)
	}

	var b strings.Builder
	b.WriteString(Header(scene.Stats()))
	b.WriteString("\n\n")
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Header formats the two stats lines.
func Header(s sim.Stats) string {
	return fmt.Sprintf("Day: %d | Hour: %d | Plants: %d\nCO2: %.1f | O2: %.1f | Atm. Water: %.1f",
		s.Day, s.Hour, s.PlantCount, s.CO2Level, s.O2Level, s.WaterInAtmosphere)
}

// CellGlyph returns the ground glyph for a cell.
func CellGlyph(c systems.Cell) rune {
	switch c.Type {
	case systems.CellWater:
		return GlyphWater
	case systems.CellSoil:
		switch {
		case c.Water < drySoilBelow:
			return GlyphDrySoil
		case c.Water < moistSoilBelow:
			return GlyphMoist
		default:
			return GlyphWetSoil
		}
	default:
		return GlyphUnknown
	}
}

// PlantGlyph returns the glyph for a plant's size band.
func PlantGlyph(s components.Stage) rune {
	switch s {
	case components.StageSeedling:
		return GlyphSeedling
	case components.StageGrowing:
		return GlyphGrowing
	default:
		return GlyphMature
	}
}

// Draw clears the terminal and writes one frame.
func (r *ASCII) Draw(out io.Writer, scene Scene) error {
	_, err := fmt.Fprintf(out, "%s%s\n", clearScreen, r.Render(scene))
	return err
}
