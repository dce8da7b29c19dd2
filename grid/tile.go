package grid

import (
	"fmt"
	"strconv"
)

// TileID addresses a single grid cell: a quadrant tag followed by a decimal
// index, e.g. "r1".
type TileID string

// Quadrant is the tag carried in the first byte of a TileID.
type Quadrant byte

const NoQuadrant Quadrant = 0

func (q Quadrant) String() string {
	if q == NoQuadrant {
		return "-"
	}
	return string(q)
}

// Quadrant returns the quadrant tag of the tile, NoQuadrant for an empty id.
func (id TileID) Quadrant() Quadrant {
	if len(id) == 0 {
		return NoQuadrant
	}
	return Quadrant(id[0])
}

// Index returns the numeric part of the id, -1 if it has none.
func (id TileID) Index() int {
	if len(id) < 2 {
		return -1
	}
	n, err := strconv.Atoi(string(id[1:]))
	if err != nil {
		return -1
	}
	return n
}

// ParseTileID checks the quadrant+index shape of s.
func ParseTileID(s string) (TileID, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("tile id %q too short", s)
	}
	c := s[0]
	if c < 'a' || c > 'z' {
		return "", fmt.Errorf("tile id %q: quadrant tag must be a lower case letter", s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("tile id %q: index must be decimal", s)
		}
	}
	return TileID(s), nil
}

// Position is the row/column of a tile in the layout.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Asset is an animation asset descriptor. The engine passes it through to
// renderers and only looks at Kind.
type Asset struct {
	Kind string `yaml:"kind"`
	Ref  string `yaml:"ref"`
}
