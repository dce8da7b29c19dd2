package input

import (
	"fmt"

	"github.com/madwhistler/artsite/grid"
)

// Intent is one normalised interaction. The set of implementations is closed:
// Enter, Leave and Tap.
type Intent interface {
	intent()
	TileID() grid.TileID
}

// Enter means the pointer entered a tile.
type Enter struct {
	Tile grid.TileID
}

// Leave means the pointer left a tile.
type Leave struct {
	Tile grid.TileID
}

// Tap is a click or touch on a tile. Direct taps come from a pointer device
// and navigate without going through the expansion gate.
type Tap struct {
	Tile   grid.TileID
	Direct bool
}

func (Enter) intent() {}
func (Leave) intent() {}
func (Tap) intent()   {}

func (e Enter) TileID() grid.TileID { return e.Tile }
func (l Leave) TileID() grid.TileID { return l.Tile }
func (t Tap) TileID() grid.TileID   { return t.Tile }

func (e Enter) String() string { return fmt.Sprintf("enter(%s)", e.Tile) }
func (l Leave) String() string { return fmt.Sprintf("leave(%s)", l.Tile) }
func (t Tap) String() string {
	if t.Direct {
		return fmt.Sprintf("click(%s)", t.Tile)
	}
	return fmt.Sprintf("tap(%s)", t.Tile)
}
