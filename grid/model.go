package grid

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// Spec is the raw configuration a Model is built from.
type Spec struct {
	Positions  map[TileID]Position
	Expansions map[TileID][]TileID
	Core       []TileID
	Pages      map[TileID]string
	Assets     map[TileID]Asset
	// Reciprocal enables the back-reference closure in ComputeActiveSet.
	Reciprocal bool
}

// Model is the static adjacency configuration: where tiles sit, what each
// source tile reveals and which tiles are always active. It never changes
// after NewModel returns and is safe to share between sessions.
type Model struct {
	positions  map[TileID]Position
	expansions map[TileID][]TileID
	sources    map[TileID][]TileID
	core       []TileID
	coreSet    map[TileID]struct{}
	pages      map[TileID]string
	assets     map[TileID]Asset
	tiles      []TileID
	reciprocal bool
}

// NewModel copies spec into an immutable Model. Expansion targets without a
// grid position are dropped; the source keeps its remaining targets.
func NewModel(spec Spec) *Model {
	m := &Model{
		positions:  make(map[TileID]Position, len(spec.Positions)),
		expansions: make(map[TileID][]TileID, len(spec.Expansions)),
		sources:    make(map[TileID][]TileID),
		coreSet:    make(map[TileID]struct{}, len(spec.Core)),
		pages:      make(map[TileID]string, len(spec.Pages)),
		assets:     make(map[TileID]Asset, len(spec.Assets)),
		reciprocal: spec.Reciprocal,
	}
	for id, p := range spec.Positions {
		m.positions[id] = p
		m.tiles = append(m.tiles, id)
	}
	sort.Slice(m.tiles, func(i, j int) bool {
		a, b := m.positions[m.tiles[i]], m.positions[m.tiles[j]]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	sourceIDs := make([]TileID, 0, len(spec.Expansions))
	for source := range spec.Expansions {
		sourceIDs = append(sourceIDs, source)
	}
	sort.Slice(sourceIDs, func(i, j int) bool { return sourceIDs[i] < sourceIDs[j] })

	for _, source := range sourceIDs {
		seen := make(map[TileID]struct{})
		targets := make([]TileID, 0, len(spec.Expansions[source]))
		for _, target := range spec.Expansions[source] {
			if _, ok := m.positions[target]; !ok {
				log.WithFields(log.Fields{"source": source, "target": target}).
					Debug("expansion target has no grid position, dropped")
				continue
			}
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}
			targets = append(targets, target)
			if target != source {
				m.sources[target] = append(m.sources[target], source)
			}
		}
		if len(targets) > 0 {
			m.expansions[source] = targets
		}
	}

	for _, id := range spec.Core {
		if _, dup := m.coreSet[id]; dup {
			continue
		}
		m.coreSet[id] = struct{}{}
		m.core = append(m.core, id)
	}
	for id, page := range spec.Pages {
		m.pages[id] = page
	}
	for id, a := range spec.Assets {
		m.assets[id] = a
	}
	return m
}

func (m *Model) GridPosition(id TileID) (Position, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// ExpansionTargets returns the ordered targets revealed by id, nil when the
// tile has no expansion behaviour or is unknown.
func (m *Model) ExpansionTargets(id TileID) []TileID {
	targets := m.expansions[id]
	if len(targets) == 0 {
		return nil
	}
	out := make([]TileID, len(targets))
	copy(out, targets)
	return out
}

func (m *Model) HasExpansion(id TileID) bool {
	return len(m.expansions[id]) > 0
}

// Sources returns the tiles whose expansion reveals target, excluding target
// itself.
func (m *Model) Sources(target TileID) []TileID {
	sources := m.sources[target]
	if len(sources) == 0 {
		return nil
	}
	out := make([]TileID, len(sources))
	copy(out, sources)
	return out
}

// QuadrantSources lists every expansion source tagged with quadrant q.
func (m *Model) QuadrantSources(q Quadrant) []TileID {
	var out []TileID
	for source := range m.expansions {
		if source.Quadrant() == q {
			out = append(out, source)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *Model) CoreTiles() []TileID {
	out := make([]TileID, len(m.core))
	copy(out, m.core)
	return out
}

func (m *Model) IsCore(id TileID) bool {
	_, ok := m.coreSet[id]
	return ok
}

func (m *Model) Page(id TileID) (string, bool) {
	p, ok := m.pages[id]
	return p, ok
}

func (m *Model) Asset(id TileID) (Asset, bool) {
	a, ok := m.assets[id]
	return a, ok
}

// Tiles returns every positioned tile in row-major order.
func (m *Model) Tiles() []TileID {
	out := make([]TileID, len(m.tiles))
	copy(out, m.tiles)
	return out
}

func (m *Model) Reciprocal() bool {
	return m.reciprocal
}
