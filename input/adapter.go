package input

import (
	"fmt"

	"github.com/madwhistler/artsite/grid"
)

// PointerAction is the raw thing a renderer saw happen on a tile.
type PointerAction int

const (
	Hover PointerAction = iota + 1
	Unhover
	Press
)

func (a PointerAction) Name() string {
	switch a {
	case Hover:
		return "HOVER"
	case Unhover:
		return "UNHOVER"
	case Press:
		return "PRESS"
	default:
		return fmt.Sprintf("N/A(%d)", a)
	}
}

// PointerEvent is a raw event from a renderer.
type PointerEvent struct {
	Action PointerAction
	Tile   grid.TileID
}

// Adapter turns raw pointer events into intents for one classified device.
type Adapter struct {
	device Device
}

func NewAdapter(device Device) *Adapter {
	return &Adapter{device: device}
}

func (a *Adapter) Device() Device {
	return a.device
}

// Pointer normalises ev. On desktop hover drives expansion and a press is a
// direct click. Touch screens have no hover, so on mobile hover events are
// ignored and a press is a tap that goes through the expansion gate.
func (a *Adapter) Pointer(ev PointerEvent) []Intent {
	if ev.Tile == "" {
		return nil
	}
	switch ev.Action {
	case Hover:
		if a.device.Mobile {
			return nil
		}
		return []Intent{Enter{Tile: ev.Tile}}
	case Unhover:
		if a.device.Mobile {
			return nil
		}
		return []Intent{Leave{Tile: ev.Tile}}
	case Press:
		return []Intent{Tap{Tile: ev.Tile, Direct: !a.device.Mobile}}
	}
	return nil
}
