package model

// Pointer actions, mirroring input.PointerAction.
const (
	POINTER_HOVER = iota + 1
	POINTER_UNHOVER
	POINTER_PRESS
)

type ClientMessage struct {
	Hello    []Hello
	Pointers []Pointer
	Ended    []string
	Reset    bool
}

type Hello struct {
	ViewportWidth  int
	ViewportHeight int
	Touch          bool
	UserAgent      string
}

type Pointer struct {
	Action int
	Tile   string
}
