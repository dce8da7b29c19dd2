package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/client"
)

const (
	cellW = 6
	cellH = 3
)

var quadrantColors = map[byte][3]int32{
	'r': {220, 60, 60},
	'g': {60, 190, 90},
	'b': {70, 110, 230},
	'y': {230, 200, 50},
}

var styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// Renderer draws a client.View as a grid of cellW x cellH character blocks
// with a status line below.
type Renderer struct {
	screen tcell.Screen
	view   *client.View
	status string
}

func NewRenderer(screen tcell.Screen, view *client.View) *Renderer {
	return &Renderer{screen: screen, view: view}
}

func (r *Renderer) SetStatus(s string) {
	r.status = s
}

// TileAt maps a screen position to a tile.
func (r *Renderer) TileAt(x, y int) string {
	id, _ := r.view.HitTest(x, y, cellW, cellH)
	return id
}

func tileColor(id string, brightness float32) tcell.Color {
	base, ok := quadrantColors[id[0]]
	if !ok {
		base = [3]int32{160, 160, 160}
	}
	scale := func(c int32) int32 { return int32(float32(c) * brightness) }
	return tcell.NewRGBColor(scale(base[0]), scale(base[1]), scale(base[2]))
}

// brightness of an active tile: expansions fade in, contractions fade out,
// idle and background animations pulse lightly.
func (r *Renderer) brightness(id string) float32 {
	p, kind := r.view.Progress(id)
	switch kind {
	case anim.KindExpansion, anim.KindContraction:
		return 0.4 + 0.6*p
	case anim.KindIdle, anim.KindBackground:
		return 0.8 + 0.2*p
	default:
		return 0.8
	}
}

func (r *Renderer) Draw() {
	r.screen.Clear()
	v := r.view
	if v.Ready {
		for _, t := range v.Setup.Tiles {
			r.drawTile(t.Id, t.Col*cellW, t.Row*cellH)
		}
	}
	r.drawText(0, v.Setup.Rows*cellH, styleStatus, r.status)
	r.screen.Show()
}

func (r *Renderer) drawTile(id string, x0, y0 int) {
	active := r.view.IsActive(id)
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(tcell.ColorBlack)
	fill := '·'
	if active {
		style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tileColor(id, r.brightness(id)))
		fill = ' '
	}
	cursor := r.view.IsCursor(id)
	for y := 0; y < cellH; y++ {
		for x := 0; x < cellW-1; x++ {
			ch := fill
			if cursor && (y == 0 || y == cellH-1) {
				ch = '═'
			}
			r.screen.SetContent(x0+x, y0+y, ch, nil, style)
		}
	}
	if active {
		r.drawText(x0+1, y0+cellH/2, style, id)
	}
}

func (r *Renderer) drawText(x, y int, style tcell.Style, s string) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
