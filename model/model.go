package model

// Tile is the static description of one tile a renderer needs.
type Tile struct {
	Id        string
	Col, Row  int
	Core      bool
	Page      string
	AssetKind string
	AssetRef  string
	Targets   []string
}

// Slot is a live animation as seen by a renderer.
type Slot struct {
	Source string
	Kind   string
}
