package grid

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLayout = `
# r quadrant left, g quadrant right
r3 r4 .  g4 g3
r2 r1 .  g1 g2
.  .  .  .  .
b2 b1 .  y1 y2
b3 b4 .  y4 y3
`

func testModel(t *testing.T, reciprocal bool) *Model {
	t.Helper()
	positions, err := ParseLayout(strings.NewReader(testLayout))
	require.NoError(t, err)
	return NewModel(Spec{
		Positions: positions,
		Expansions: map[TileID][]TileID{
			"r1": {"r3", "r4", "r1", "r2"},
			"g1": {"g2", "g3"},
			"g2": {"g4"},
			"b1": {"b2", "b9", "b3"},
		},
		Core:       []TileID{"r1", "g1", "b1", "y1"},
		Pages:      map[TileID]string{"r2": "/gallery/red", "y2": "/about"},
		Reciprocal: reciprocal,
	})
}

func ids(s ActiveSet) []string {
	var out []string
	for _, id := range s.Tiles() {
		out = append(out, string(id))
	}
	return out
}

func TestParseLayout(t *testing.T) {
	positions, err := ParseLayout(strings.NewReader(testLayout))
	require.NoError(t, err)
	assert.Len(t, positions, 16)
	assert.Equal(t, Position{Row: 0, Col: 0}, positions["r3"])
	assert.Equal(t, Position{Row: 1, Col: 3}, positions["g1"])
	assert.Equal(t, Position{Row: 4, Col: 4}, positions["y3"])
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"duplicate", "r1 r1", "already placed"},
		{"bad quadrant", "R1 r2", "lower case"},
		{"bad index", "r1 rx", "decimal"},
		{"too short", "r", "too short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(tt.layout))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTileID(t *testing.T) {
	assert.Equal(t, Quadrant('r'), TileID("r12").Quadrant())
	assert.Equal(t, 12, TileID("r12").Index())
	assert.Equal(t, NoQuadrant, TileID("").Quadrant())
	assert.Equal(t, -1, TileID("r").Index())
	assert.Equal(t, "-", NoQuadrant.String())
}

func TestModelLookups(t *testing.T) {
	m := testModel(t, true)

	p, ok := m.GridPosition("r4")
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 1}, p)

	_, ok = m.GridPosition("q7")
	assert.False(t, ok)

	assert.Equal(t, []TileID{"r3", "r4", "r1", "r2"}, m.ExpansionTargets("r1"))
	assert.Nil(t, m.ExpansionTargets("r3"))
	assert.Nil(t, m.ExpansionTargets("nope"))

	// b9 has no grid position
	assert.Equal(t, []TileID{"b2", "b3"}, m.ExpansionTargets("b1"))

	assert.Equal(t, []TileID{"r1", "g1", "b1", "y1"}, m.CoreTiles())
	assert.True(t, m.IsCore("y1"))
	assert.False(t, m.IsCore("y2"))

	assert.Equal(t, []TileID{"g1"}, m.Sources("g3"))
	assert.Nil(t, m.Sources("r1"), "self reference is not a back reference")
	assert.Equal(t, []TileID{"g1", "g2"}, m.QuadrantSources('g'))

	page, ok := m.Page("r2")
	require.True(t, ok)
	assert.Equal(t, "/gallery/red", page)

	tiles := m.Tiles()
	require.Len(t, tiles, 16)
	assert.Equal(t, TileID("r3"), tiles[0])
	assert.Equal(t, TileID("y3"), tiles[15])
}

func TestModelLookupsReturnCopies(t *testing.T) {
	m := testModel(t, true)
	targets := m.ExpansionTargets("r1")
	targets[0] = "zz"
	assert.Equal(t, TileID("r3"), m.ExpansionTargets("r1")[0])

	core := m.CoreTiles()
	core[0] = "zz"
	assert.True(t, m.IsCore("r1"))
}

func TestComputeActiveSetScenario(t *testing.T) {
	m := testModel(t, true)
	got := ComputeActiveSet(m, "r1")
	want := []string{"b1", "g1", "r1", "r2", "r3", "r4", "y1"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("active set mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeActiveSetCoreOnly(t *testing.T) {
	m := testModel(t, true)
	assert.Equal(t, []string{"b1", "g1", "r1", "y1"}, ids(ComputeActiveSet(m)))
	assert.Equal(t, []string{"b1", "g1", "r1", "y1"}, ids(ComputeActiveSet(m, "y2")))
	assert.Equal(t, []string{"b1", "g1", "r1", "y1"}, ids(ComputeActiveSet(m, "unknown")))
}

func TestComputeActiveSetIdempotent(t *testing.T) {
	m := testModel(t, true)
	for _, hovered := range [][]TileID{nil, {"r1"}, {"g2"}, {"g3", "r4"}, {"b2"}} {
		first := ComputeActiveSet(m, hovered...)
		second := ComputeActiveSet(m, hovered...)
		assert.True(t, first.Equal(second), "hovered %v", hovered)
	}
}

func TestComputeActiveSetSymmetricClosure(t *testing.T) {
	m := testModel(t, true)
	// every (source, target) pair: hovering the target keeps source and siblings
	for _, source := range m.Tiles() {
		for _, target := range m.ExpansionTargets(source) {
			got := ComputeActiveSet(m, target)
			assert.True(t, got.Contains(source), "hover %s should include source %s", target, source)
			for _, sibling := range m.ExpansionTargets(source) {
				assert.True(t, got.Contains(sibling), "hover %s should include sibling %s", target, sibling)
			}
		}
	}

	// g2 is both a target of g1 and a source of g4
	got := ComputeActiveSet(m, "g2")
	assert.Equal(t, []string{"b1", "g1", "g2", "g3", "g4", "r1", "y1"}, ids(got))
}

func TestComputeActiveSetOneDirectional(t *testing.T) {
	m := testModel(t, false)
	got := ComputeActiveSet(m, "g2")
	assert.Equal(t, []string{"b1", "g1", "g2", "g4", "r1", "y1"}, ids(got))
	assert.False(t, got.Contains("g3"))
}

func TestActiveSetValueSemantics(t *testing.T) {
	core := NewActiveSet("r1", "g1")
	grown := core.Union("r2", "r3")
	assert.Equal(t, 2, core.Len())
	assert.Equal(t, 4, grown.Len())

	shrunk := grown.Without([]TileID{"r1", "r2"}, func(id TileID) bool { return id == "r1" })
	assert.Equal(t, "{g1,r1,r3}", shrunk.String())
	assert.Equal(t, 4, grown.Len())
	assert.False(t, shrunk.Equal(grown))
	assert.True(t, shrunk.Equal(NewActiveSet("r3", "g1", "r1")))
}
