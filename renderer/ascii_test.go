package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/sim"
	"github.com/pthm-cable/ecosim/systems"
)

// fakeScene is a fixed 3x2 scene.
type fakeScene struct {
	cells  [][]systems.Cell
	plants []sim.PlantView
	stats  sim.Stats
}

func (f *fakeScene) Width() int  { return len(f.cells[0]) }
func (f *fakeScene) Height() int { return len(f.cells) }
func (f *fakeScene) Cell(x, y int) (systems.Cell, bool) {
	if y < 0 || y >= len(f.cells) || x < 0 || x >= len(f.cells[0]) {
		return systems.Cell{}, false
	}
	return f.cells[y][x], true
}
func (f *fakeScene) Plants() []sim.PlantView { return f.plants }
func (f *fakeScene) Stats() sim.Stats        { return f.stats }

func newFakeScene() *fakeScene {
	soil := func(w float64) systems.Cell { return systems.Cell{Type: systems.CellSoil, Water: w} }
	return &fakeScene{
		cells: [][]systems.Cell{
			{soil(0.1), soil(0.4), soil(0.7)},
			{{Type: systems.CellWater, Water: 1}, soil(0.7), soil(0.7)},
		},
		plants: []sim.PlantView{
			{Position: components.Position{X: 1, Y: 1}, Stage: components.StageSeedling},
			{Position: components.Position{X: 2, Y: 1}, Stage: components.StageMature},
			{Position: components.Position{X: 9, Y: 9}, Stage: components.StageGrowing}, // off grid
		},
		stats: sim.Stats{Day: 2, Hour: 5, PlantCount: 3, CO2Level: 99.94, O2Level: 100.06, WaterInAtmosphere: 0.25},
	}
}

func TestRender(t *testing.T) {
	got := NewASCII().Render(newFakeScene())

	want := "Day: 2 | Hour: 5 | Plants: 3\n" +
		"CO2: 99.9 | O2: 100.1 | Atm. Water: 0.2\n" +
		"\n" +
		".:=\n" +
		"~,♣"
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		cell systems.Cell
		want rune
	}{
		{systems.Cell{Type: systems.CellWater}, '~'},
		{systems.Cell{Type: systems.CellSoil, Water: 0.19}, '.'},
		{systems.Cell{Type: systems.CellSoil, Water: 0.2}, ':'},
		{systems.Cell{Type: systems.CellSoil, Water: 0.59}, ':'},
		{systems.Cell{Type: systems.CellSoil, Water: 0.6}, '='},
		{systems.Cell{Type: systems.CellType(9)}, ' '},
	}

	for _, tt := range tests {
		if got := CellGlyph(tt.cell); got != tt.want {
			t.Errorf("CellGlyph(%+v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestPlantGlyph(t *testing.T) {
	if PlantGlyph(components.StageSeedling) != ',' ||
		PlantGlyph(components.StageGrowing) != '*' ||
		PlantGlyph(components.StageMature) != '♣' {
		t.Error("unexpected plant glyphs")
	}
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	if err := NewASCII().Draw(&buf, newFakeScene()); err != nil {
		t.Fatal(err)
	}
	// Cursor home, then clear to the end of the screen
	if !strings.HasPrefix(buf.String(), "\033[H\033[J") {
		t.Errorf("frame starts with %q, want the home+clear sequence", buf.String()[:min(8, buf.Len())])
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("frame should end with a newline")
	}
}
