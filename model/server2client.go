package model

type ServerMessage struct {
	Setup       []Setup
	Snapshots   []Snapshot
	Navigations []Navigation
}

type Setup struct {
	SessionId  string
	Cols, Rows int
	Mobile     bool
	Tiles      []Tile
	Durations  map[string]float32
}

type Snapshot struct {
	Version uint64
	Active  []string
	Cursor  string
	Slots   []Slot
}

type Navigation struct {
	Tile string
	Page string
}
