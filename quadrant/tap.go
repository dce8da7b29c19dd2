package quadrant

import (
	"github.com/madwhistler/artsite/grid"
	"github.com/madwhistler/artsite/input"

	log "github.com/sirupsen/logrus"
)

// TapResult reports what a tap did.
type TapResult struct {
	Outcome input.TapOutcome
	Page    string
}

// OnTileTap handles a click or touch. A direct click navigates whenever the
// tile has a page. A touch has no preceding hover, so it first resolves the
// tri-state outcome from the state before the touch: expand, navigate, or
// nothing beyond acting as an enter.
func (c *Controller) OnTileTap(id grid.TileID, direct bool) TapResult {
	page, hasPage := c.grid.Page(id)

	if direct {
		if !hasPage {
			return TapResult{Outcome: input.TapNone}
		}
		c.navigate(id, page)
		return TapResult{Outcome: input.TapNavigate, Page: page}
	}

	if !c.active.Contains(id) {
		c.OnTileEnter(id)
		return TapResult{Outcome: input.TapNone}
	}

	outcome := input.ResolveTap(c.Expanded(id), c.grid.HasExpansion(id), hasPage)
	log.WithFields(log.Fields{"tile": id, "outcome": outcome.Name()}).Debug("tap resolved")
	switch outcome {
	case input.TapNavigate:
		c.navigate(id, page)
		return TapResult{Outcome: outcome, Page: page}
	default:
		c.OnTileEnter(id)
		return TapResult{Outcome: outcome}
	}
}

func (c *Controller) navigate(id grid.TileID, page string) {
	if c.navigator == nil {
		return
	}
	c.navigator.Navigate(id, page)
}
