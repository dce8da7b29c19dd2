package main

import (
	"github.com/hajimehoshi/ebiten"
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

var COLOR_BACKGROUND = HexToF32(0x1c1c1c)
var COLOR_INERT = HexToF32(0x444444)

var QUADRANT_COLORS = map[byte]GameColor{
	'r': HexToF32(0xfa3636),
	'g': HexToF32(0x0abd38),
	'b': HexToF32(0x321ecc),
	'y': HexToF32(0xedbc1e),
}

func quadrantColor(id string) GameColor {
	if id == "" {
		return COLOR_INERT
	}
	if c, ok := QUADRANT_COLORS[id[0]]; ok {
		return c
	}
	return COLOR_INERT
}

// Tile is one drawn grid cell.
type Tile struct {
	Id       string
	Col, Row int
	color    GameColor
}

// Draw draws the tile scaled by scale around its centre.
func (t *Tile) Draw(screen, image *ebiten.Image, cell int, scale, alpha float64) {
	w, h := image.Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(float64(cell)/float64(w)*scale*.92, float64(cell)/float64(h)*scale*.92)
	op.GeoM.Translate(float64(t.Col*cell+cell/2), float64(t.Row*cell+cell/2))
	op.ColorM.Scale(t.color.r, t.color.g, t.color.b, alpha)
	screen.DrawImage(image, op)
}
