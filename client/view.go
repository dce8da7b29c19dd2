package client

import (
	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/model"
)

type cell struct{ col, row int }

// View is what a renderer knows about the grid: the setup, the latest
// snapshot and a timeline playing its slots.
type View struct {
	Setup    model.Setup
	Ready    bool
	Snapshot model.Snapshot
	Timeline *anim.Timeline

	// Navigations collects page changes the server decided on; the
	// renderer drains it.
	Navigations []model.Navigation

	tiles   map[string]model.Tile
	cells   map[cell]string
	active  map[string]bool
	hovered string
}

func NewView() *View {
	return &View{
		Timeline: anim.NewTimeline(nil),
		tiles:    make(map[string]model.Tile),
		cells:    make(map[cell]string),
		active:   make(map[string]bool),
	}
}

// Apply folds one server message into the view. Snapshots older than the
// current one are ignored.
func (v *View) Apply(sm model.ServerMessage) {
	for _, setup := range sm.Setup {
		v.Setup = setup
		v.Ready = true
		v.tiles = make(map[string]model.Tile, len(setup.Tiles))
		v.cells = make(map[cell]string, len(setup.Tiles))
		for _, t := range setup.Tiles {
			v.tiles[t.Id] = t
			v.cells[cell{t.Col, t.Row}] = t.Id
		}
		v.Timeline = anim.NewTimeline(setup.TimelineDurations())
		v.Snapshot = model.Snapshot{}
	}
	for _, snap := range sm.Snapshots {
		if snap.Version <= v.Snapshot.Version {
			continue
		}
		v.Snapshot = snap
		v.active = make(map[string]bool, len(snap.Active))
		for _, id := range snap.Active {
			v.active[id] = true
		}
		v.Timeline.Sync(snap.SlotKinds())
	}
	v.Navigations = append(v.Navigations, sm.Navigations...)
}

// Update advances the timeline and returns the contractions that finished,
// ready to be reported back.
func (v *View) Update(dt float32) []string {
	return v.Timeline.Update(dt)
}

func (v *View) Tile(id string) (model.Tile, bool) {
	t, ok := v.tiles[id]
	return t, ok
}

func (v *View) TileAt(col, row int) (string, bool) {
	id, ok := v.cells[cell{col, row}]
	return id, ok
}

// HitTest maps a pixel position to a tile on a grid of cellW x cellH cells.
func (v *View) HitTest(x, y, cellW, cellH int) (string, bool) {
	if x < 0 || y < 0 || cellW <= 0 || cellH <= 0 {
		return "", false
	}
	return v.TileAt(x/cellW, y/cellH)
}

func (v *View) IsActive(id string) bool {
	return v.active[id]
}

func (v *View) IsCursor(id string) bool {
	return id != "" && v.Snapshot.Cursor == id
}

// Progress is the visible progress of id's animation, 0 when it has none.
func (v *View) Progress(id string) (float32, anim.Kind) {
	p, kind, ok := v.Timeline.Progress(id)
	if !ok {
		return 0, anim.KindNone
	}
	return p, kind
}

// PointerAt reports the pointer over tile ("" for no tile) and returns the
// hover transitions to send.
func (v *View) PointerAt(tile string) []model.Pointer {
	if tile == v.hovered {
		return nil
	}
	var out []model.Pointer
	if v.hovered != "" {
		out = append(out, model.Pointer{Action: model.POINTER_UNHOVER, Tile: v.hovered})
	}
	if tile != "" {
		out = append(out, model.Pointer{Action: model.POINTER_HOVER, Tile: tile})
	}
	v.hovered = tile
	return out
}

func (v *View) Hovered() string {
	return v.hovered
}

// Press is a click or a touch on tile.
func (v *View) Press(tile string) []model.Pointer {
	if tile == "" {
		return nil
	}
	return []model.Pointer{{Action: model.POINTER_PRESS, Tile: tile}}
}

// TakeNavigations drains the pending navigations.
func (v *View) TakeNavigations() []model.Navigation {
	out := v.Navigations
	v.Navigations = nil
	return out
}
