package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madwhistler/artsite/client"
	"github.com/madwhistler/artsite/model"
)

func testRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 10)

	v := client.NewView()
	v.Apply(model.ServerMessage{
		Setup: []model.Setup{{
			Cols: 2, Rows: 2,
			Tiles: []model.Tile{
				{Id: "r1", Col: 0, Row: 0, Core: true, Targets: []string{"r2"}},
				{Id: "r2", Col: 1, Row: 0},
				{Id: "g1", Col: 1, Row: 1, Core: true},
			},
		}},
		Snapshots: []model.Snapshot{{Version: 1, Active: []string{"g1", "r1"}, Cursor: "r1"}},
	})
	return NewRenderer(screen, v), screen
}

func TestDrawMarksActiveAndCursor(t *testing.T) {
	r, screen := testRenderer(t)
	r.SetStatus("ready")
	r.Draw()

	mainc, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '═', mainc, "cursor frame")
	mainc, _, _, _ = screen.GetContent(1, 1)
	assert.Equal(t, 'r', mainc)
	mainc, _, _, _ = screen.GetContent(2, 1)
	assert.Equal(t, '1', mainc)

	// inactive tile is dotted and carries no label
	mainc, _, _, _ = screen.GetContent(cellW+1, 1)
	assert.Equal(t, '·', mainc)

	mainc, _, _, _ = screen.GetContent(cellW+1, cellH+1)
	assert.Equal(t, 'g', mainc)
	_, bg, _ := func() (tcell.Color, tcell.Color, tcell.AttrMask) {
		_, _, style, _ := screen.GetContent(cellW+1, cellH+1)
		return style.Decompose()
	}()
	assert.Equal(t, tileColor("g1", 0.8), bg)

	mainc, _, _, _ = screen.GetContent(0, 2*cellH)
	assert.Equal(t, 'r', mainc, "status line starts with 'ready'")
}

func TestTileAt(t *testing.T) {
	r, _ := testRenderer(t)
	assert.Equal(t, "r1", r.TileAt(2, 2))
	assert.Equal(t, "g1", r.TileAt(cellW+3, cellH))
	assert.Equal(t, "", r.TileAt(1, cellH+1))
}

func TestTileColorScales(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(220, 60, 60), tileColor("r1", 1))
	assert.Equal(t, tcell.NewRGBColor(110, 30, 30), tileColor("r1", 0.5))
	assert.Equal(t, tcell.NewRGBColor(80, 80, 80), tileColor("x1", 0.5))
}
