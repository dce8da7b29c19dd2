package model

import (
	"bytes"
	"encoding/gob"
	"strings"
	"testing"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T) *grid.Model {
	t.Helper()
	positions, err := grid.ParseLayout(strings.NewReader("r2 r1 g1\n.  y1 b1\n"))
	require.NoError(t, err)
	return grid.NewModel(grid.Spec{
		Positions:  positions,
		Expansions: map[grid.TileID][]grid.TileID{"r1": {"r2"}},
		Core:       []grid.TileID{"r1", "g1", "b1", "y1"},
		Pages:      map[grid.TileID]string{"r2": "/gallery"},
		Assets:     map[grid.TileID]grid.Asset{"r1": {Kind: "expansion", Ref: "r1.json"}},
		Reciprocal: true,
	})
}

func TestNewSetup(t *testing.T) {
	setup := NewSetup(testGrid(t), "abc", true, anim.Durations{anim.KindExpansion: 2})
	assert.Equal(t, "abc", setup.SessionId)
	assert.Equal(t, 3, setup.Cols)
	assert.Equal(t, 2, setup.Rows)
	assert.True(t, setup.Mobile)
	require.Len(t, setup.Tiles, 5)
	assert.Equal(t, Tile{Id: "r2", Col: 0, Row: 0, Page: "/gallery"}, setup.Tiles[0])
	assert.Equal(t, Tile{Id: "r1", Col: 1, Row: 0, Core: true, AssetKind: "expansion", AssetRef: "r1.json", Targets: []string{"r2"}}, setup.Tiles[1])

	d := setup.TimelineDurations()
	assert.Equal(t, float32(2), d[anim.KindExpansion])
	assert.Equal(t, anim.DefaultDurations()[anim.KindIdle], d[anim.KindIdle])
}

func TestNewSnapshot(t *testing.T) {
	m := testGrid(t)
	active := grid.ComputeActiveSet(m, "r1")
	s := NewSnapshot(7, active, "r1", map[string]anim.Kind{"r1": anim.KindExpansion, "g1": anim.KindContraction})

	assert.Equal(t, uint64(7), s.Version)
	assert.Equal(t, []string{"b1", "g1", "r1", "r2", "y1"}, s.Active)
	assert.Equal(t, []Slot{{"g1", "contraction"}, {"r1", "expansion"}}, s.Slots)
	assert.Equal(t, map[string]anim.Kind{"r1": anim.KindExpansion, "g1": anim.KindContraction}, s.SlotKinds())
}

func TestServerMessageGob(t *testing.T) {
	m := testGrid(t)
	in := ServerMessage{
		Setup:       []Setup{NewSetup(m, "s1", false, anim.DefaultDurations())},
		Snapshots:   []Snapshot{NewSnapshot(1, grid.CoreSet(m), "", nil)},
		Navigations: []Navigation{{Tile: "r2", Page: "/gallery"}},
	}
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(in))

	var out ServerMessage
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))
	assert.Equal(t, in.Setup[0].Tiles, out.Setup[0].Tiles)
	assert.Equal(t, in.Snapshots[0].Active, out.Snapshots[0].Active)
	assert.Equal(t, in.Navigations, out.Navigations)
}
