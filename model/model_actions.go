package model

import (
	"sort"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/grid"
)

// NewSetup describes the grid to a freshly connected client.
func NewSetup(m *grid.Model, sessionId string, mobile bool, durations anim.Durations) Setup {
	tiles := make([]Tile, 0)
	cols, rows := 0, 0
	for _, id := range m.Tiles() {
		p, _ := m.GridPosition(id)
		tile := Tile{Id: string(id), Col: p.Col, Row: p.Row, Core: m.IsCore(id)}
		if page, ok := m.Page(id); ok {
			tile.Page = page
		}
		if a, ok := m.Asset(id); ok {
			tile.AssetKind = a.Kind
			tile.AssetRef = a.Ref
		}
		for _, t := range m.ExpansionTargets(id) {
			tile.Targets = append(tile.Targets, string(t))
		}
		tiles = append(tiles, tile)
		if p.Col+1 > cols {
			cols = p.Col + 1
		}
		if p.Row+1 > rows {
			rows = p.Row + 1
		}
	}
	d := make(map[string]float32, len(durations))
	for kind, seconds := range durations {
		d[kind.Name()] = seconds
	}
	return Setup{
		SessionId: sessionId,
		Cols:      cols,
		Rows:      rows,
		Mobile:    mobile,
		Tiles:     tiles,
		Durations: d,
	}
}

// NewSnapshot captures the render state after an event.
func NewSnapshot(version uint64, active grid.ActiveSet, cursor grid.TileID, slots map[string]anim.Kind) Snapshot {
	s := Snapshot{
		Version: version,
		Cursor:  string(cursor),
		Active:  make([]string, 0, active.Len()),
		Slots:   make([]Slot, 0, len(slots)),
	}
	for _, id := range active.Tiles() {
		s.Active = append(s.Active, string(id))
	}
	for source, kind := range slots {
		s.Slots = append(s.Slots, Slot{Source: source, Kind: kind.Name()})
	}
	sort.Slice(s.Slots, func(i, j int) bool { return s.Slots[i].Source < s.Slots[j].Source })
	return s
}

// SlotKinds converts the snapshot slots back for anim.Timeline.
func (s Snapshot) SlotKinds() map[string]anim.Kind {
	out := make(map[string]anim.Kind, len(s.Slots))
	for _, slot := range s.Slots {
		if kind, ok := anim.ParseKind(slot.Kind); ok {
			out[slot.Source] = kind
		}
	}
	return out
}

// Timeline durations from the setup, falling back to the defaults.
func (s Setup) TimelineDurations() anim.Durations {
	out := anim.DefaultDurations()
	for name, seconds := range s.Durations {
		if kind, ok := anim.ParseKind(name); ok && seconds > 0 {
			out[kind] = seconds
		}
	}
	return out
}
