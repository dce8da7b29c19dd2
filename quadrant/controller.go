// Package quadrant drives the hover/tap state of the tile grid: which tiles
// are active, which source tile is expanded, and which animations the
// scheduler is asked to play for them.
package quadrant

import (
	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/grid"
	"github.com/madwhistler/artsite/input"

	log "github.com/sirupsen/logrus"
)

// Navigator is the routing collaborator.
type Navigator interface {
	Navigate(tile grid.TileID, page string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(tile grid.TileID, page string)

func (f NavigatorFunc) Navigate(tile grid.TileID, page string) { f(tile, page) }

// Background names an always-on animation owned by a region rather than a
// tile.
type Background struct {
	Source string
}

// Controller owns the active set, the expansion cursor and, together with the
// scheduler, the animation slots. All methods run to completion on the
// caller's goroutine; it is not safe for concurrent use.
type Controller struct {
	grid      *grid.Model
	sched     *anim.Scheduler
	navigator Navigator

	active  grid.ActiveSet
	cursor  grid.TileID
	hovered grid.TileID
	// expanded lists the sources whose targets are revealed, in expansion
	// order. Only one quadrant is ever represented.
	expanded []grid.TileID

	backgrounds []Background
}

func NewController(m *grid.Model, sched *anim.Scheduler, navigator Navigator) *Controller {
	return &Controller{
		grid:      m,
		sched:     sched,
		navigator: navigator,
		active:    grid.CoreSet(m),
	}
}

// SetBackgrounds configures the animations StartBackground admits.
func (c *Controller) SetBackgrounds(bgs []Background) {
	c.backgrounds = append([]Background(nil), bgs...)
}

// StartBackground asks the scheduler for every configured background
// animation. Those that do not fit are simply not played.
func (c *Controller) StartBackground() {
	for _, bg := range c.backgrounds {
		c.sched.Admit(bg.Source, anim.KindBackground)
	}
}

// Dispatch routes an intent to its handler.
func (c *Controller) Dispatch(in input.Intent) TapResult {
	switch in := in.(type) {
	case input.Enter:
		c.OnTileEnter(in.Tile)
	case input.Leave:
		c.OnTileLeave(in.Tile)
	case input.Tap:
		return c.OnTileTap(in.Tile, in.Direct)
	}
	return TapResult{}
}

// OnTileEnter handles the pointer entering id. Entering a tile outside the
// active set counts as leaving the active region: the set falls back to the
// core tiles and any expansion contracts. Otherwise an expansion living in a
// different quadrant is contracted first, then id expands if it can.
func (c *Controller) OnTileEnter(id grid.TileID) {
	// touch input never leaves a tile, entering the next one does
	if c.hovered != "" && c.hovered != id {
		c.releaseIdle(c.hovered)
	}
	c.hovered = id

	if !c.active.Contains(id) {
		c.active = grid.CoreSet(c.grid)
		if c.cursor != "" {
			c.ContractQuadrant(c.cursor)
		}
		log.WithFields(log.Fields{"tile": id}).Debug("left active region")
		return
	}

	if c.cursor != "" && c.cursor.Quadrant() != id.Quadrant() {
		c.ContractQuadrant(c.cursor)
	}

	c.startIdle(id)

	if !c.grid.HasExpansion(id) {
		return
	}
	if !c.sched.Admit(string(id), anim.KindExpansion) {
		log.WithFields(log.Fields{"tile": id}).Debug("expansion animation not admitted")
	}
	c.markExpanded(id)
	c.active = grid.ComputeActiveSet(c.grid, c.expanded...)
	c.cursor = id
}

func (c *Controller) markExpanded(id grid.TileID) {
	for _, e := range c.expanded {
		if e == id {
			return
		}
	}
	c.expanded = append(c.expanded, id)
}

// startIdle plays the tile's idle asset, if it has one, while hovered.
func (c *Controller) startIdle(id grid.TileID) {
	asset, ok := c.grid.Asset(id)
	if !ok {
		return
	}
	if kind, _ := anim.ParseKind(asset.Kind); kind != anim.KindIdle {
		return
	}
	if slot, held := c.sched.Slot(string(id)); held && slot.Kind != anim.KindIdle {
		return
	}
	c.sched.Admit(string(id), anim.KindIdle)
}

// OnTileLeave clears hover bookkeeping. It never contracts.
func (c *Controller) OnTileLeave(id grid.TileID) {
	if c.hovered == id {
		c.hovered = ""
	}
	c.releaseIdle(id)
}

func (c *Controller) releaseIdle(id grid.TileID) {
	if slot, held := c.sched.Slot(string(id)); held && slot.Kind == anim.KindIdle {
		c.sched.Release(string(id))
	}
}

// ContractQuadrant turns every expansion in anchor's quadrant into a
// contraction and removes the quadrant's revealed tiles from the active set
// (core tiles stay), stopping their idle animations. It clears the cursor if
// it pointed into the quadrant.
func (c *Controller) ContractQuadrant(anchor grid.TileID) {
	q := anchor.Quadrant()
	if q == grid.NoQuadrant {
		return
	}

	for _, slot := range c.sched.Slots() {
		if slot.Kind != anim.KindExpansion || grid.TileID(slot.Source).Quadrant() != q {
			continue
		}
		c.sched.Admit(slot.Source, anim.KindContraction)
	}

	var revealed []grid.TileID
	for _, source := range c.grid.QuadrantSources(q) {
		revealed = append(revealed, c.grid.ExpansionTargets(source)...)
	}
	c.active = c.active.Without(revealed, c.grid.IsCore)
	for _, id := range revealed {
		if !c.grid.IsCore(id) {
			c.releaseIdle(id)
		}
	}

	kept := c.expanded[:0]
	for _, e := range c.expanded {
		if e.Quadrant() != q {
			kept = append(kept, e)
		}
	}
	c.expanded = kept

	if c.cursor.Quadrant() == q {
		c.cursor = ""
	}
	log.WithFields(log.Fields{"quadrant": q.String(), "anchor": anchor}).Debug("quadrant contracted")
}

// OnContractionEnd is the terminal transition of a contraction. A source that
// was re-expanded while contracting keeps its slot.
func (c *Controller) OnContractionEnd(source string) {
	slot, held := c.sched.Slot(source)
	if !held || slot.Kind != anim.KindContraction {
		return
	}
	c.sched.Release(source)
}

// Reset is an external reset: back to the core tiles, contracting whatever
// is expanded.
func (c *Controller) Reset() {
	if c.cursor != "" {
		c.ContractQuadrant(c.cursor)
	}
	c.active = grid.CoreSet(c.grid)
	c.expanded = nil
	c.hovered = ""
}

func (c *Controller) ActiveSet() grid.ActiveSet {
	return c.active
}

func (c *Controller) Cursor() grid.TileID {
	return c.cursor
}

func (c *Controller) Hovered() grid.TileID {
	return c.hovered
}

func (c *Controller) Slots() map[string]anim.Kind {
	return c.sched.Snapshot()
}

// Expanded reports whether id's targets are currently revealed.
func (c *Controller) Expanded(id grid.TileID) bool {
	for _, e := range c.expanded {
		if e == id {
			return true
		}
	}
	return false
}
