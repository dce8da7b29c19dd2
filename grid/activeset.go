package grid

import (
	"sort"
	"strings"
)

// ActiveSet is an immutable set of tiles. Every mutation returns a new value.
type ActiveSet struct {
	members map[TileID]struct{}
}

func NewActiveSet(ids ...TileID) ActiveSet {
	s := ActiveSet{members: make(map[TileID]struct{}, len(ids))}
	for _, id := range ids {
		s.members[id] = struct{}{}
	}
	return s
}

// CoreSet is the active set right after load or reset.
func CoreSet(m *Model) ActiveSet {
	return NewActiveSet(m.core...)
}

func (s ActiveSet) Contains(id TileID) bool {
	_, ok := s.members[id]
	return ok
}

func (s ActiveSet) Len() int {
	return len(s.members)
}

// Tiles returns the members sorted by id.
func (s ActiveSet) Tiles() []TileID {
	out := make([]TileID, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s ActiveSet) Union(ids ...TileID) ActiveSet {
	out := NewActiveSet(ids...)
	for id := range s.members {
		out.members[id] = struct{}{}
	}
	return out
}

// Without returns s minus ids, keeping any id for which keep returns true.
func (s ActiveSet) Without(ids []TileID, keep func(TileID) bool) ActiveSet {
	drop := make(map[TileID]struct{}, len(ids))
	for _, id := range ids {
		if keep != nil && keep(id) {
			continue
		}
		drop[id] = struct{}{}
	}
	out := NewActiveSet()
	for id := range s.members {
		if _, gone := drop[id]; !gone {
			out.members[id] = struct{}{}
		}
	}
	return out
}

func (s ActiveSet) Equal(o ActiveSet) bool {
	if len(s.members) != len(o.members) {
		return false
	}
	for id := range s.members {
		if _, ok := o.members[id]; !ok {
			return false
		}
	}
	return true
}

func (s ActiveSet) String() string {
	ids := s.Tiles()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ComputeActiveSet derives the active set from the core tiles and the tiles
// currently hovered or expanded. A hovered source contributes itself and its
// targets. On a reciprocal model a hovered target also pulls in every source
// that reveals it together with that source's other targets, so moving from a
// source onto one of its revealed tiles keeps the siblings visible.
func ComputeActiveSet(m *Model, hovered ...TileID) ActiveSet {
	out := CoreSet(m)
	add := func(ids []TileID) {
		for _, id := range ids {
			out.members[id] = struct{}{}
		}
	}
	for _, h := range hovered {
		if targets := m.expansions[h]; len(targets) > 0 {
			out.members[h] = struct{}{}
			add(targets)
		}
		if !m.reciprocal {
			continue
		}
		for _, source := range m.sources[h] {
			out.members[source] = struct{}{}
			add(m.expansions[source])
		}
	}
	return out
}
