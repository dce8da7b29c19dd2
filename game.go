package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/client"
	"github.com/madwhistler/artsite/model"
)

const dt = float32(1) / 60

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

// MouseStrokeSource is a StrokeSource implementation of mouse.
type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// TouchStrokeSource is a StrokeSource implementation of touch.
type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press until release. A stroke that travels further
// than half a tile is a swipe and does not count as a press.
type Stroke struct {
	source StrokeSource

	initX, initY       int
	currentX, currentY int

	released bool
	swiped   bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update(limit int) {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
	dx, dy := s.currentX-s.initX, s.currentY-s.initY
	if math.Abs(float64(dx)) > float64(limit) || math.Abs(float64(dy)) > float64(limit) {
		s.swiped = true
	}
}

type GameState int

const (
	CONNECTING GameState = iota + 1
	PLAYING
	NAVIGATING
	GAME_OVER
)

func (s GameState) Name() string {
	switch s {
	case CONNECTING:
		return "CONNECTING"
	case PLAYING:
		return "PLAYING"
	case NAVIGATING:
		return "NAVIGATING"
	case GAME_OVER:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State  GameState
	Config client.Options
	Conn   *client.Conn
	View   *client.View
	Frame  *Nine

	strokes   map[*Stroke]struct{}
	Tweens    map[*gween.Tween]Action
	sprites   []*Tile
	tileImage *ebiten.Image
	cursor    string

	status      string
	statusAlpha float64
}

var Font font.Face

func loadFont(size float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

func NewGame(cfg client.Options, conn *client.Conn) (*Game, error) {
	frame, err := NewNine(24, 4)
	if err != nil {
		return nil, err
	}
	tileImage, err := ebiten.NewImage(16, 16, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	if err := tileImage.Fill(color.White); err != nil {
		return nil, err
	}
	return &Game{
		State:     CONNECTING,
		Config:    cfg,
		Conn:      conn,
		View:      client.NewView(),
		Frame:     frame,
		strokes:   map[*Stroke]struct{}{},
		Tweens:    make(map[*gween.Tween]Action),
		tileImage: tileImage,
	}, nil
}

// awaitSetup blocks until the server described the grid.
func (g *Game) awaitSetup(timeout time.Duration) error {
	deadline := time.After(timeout)
	for !g.View.Ready {
		select {
		case sm, ok := <-g.Conn.Messages:
			if !ok {
				return fmt.Errorf("connection closed: %v", g.Conn.Err())
			}
			g.apply(sm)
		case <-deadline:
			return errors.New("no setup from server")
		}
	}
	return nil
}

func (g *Game) apply(sm model.ServerMessage) {
	g.View.Apply(sm)
	if len(sm.Setup) > 0 {
		g.sprites = g.sprites[:0]
		for _, t := range g.View.Setup.Tiles {
			g.sprites = append(g.sprites, &Tile{Id: t.Id, Col: t.Col, Row: t.Row, color: quadrantColor(t.Id)})
		}
		g.State = PLAYING
	}
	if g.View.Snapshot.Cursor != g.cursor {
		g.moveFrame(g.cursor, g.View.Snapshot.Cursor)
		g.cursor = g.View.Snapshot.Cursor
	}
	for _, nav := range g.View.TakeNavigations() {
		g.showNavigation(nav)
	}
}

// moveFrame slides the cursor frame from one tile to the next.
func (g *Game) moveFrame(from, to string) {
	cell := float64(g.Config.Cell)
	g.Frame.SetSize(cell, cell)
	target, ok := g.View.Tile(to)
	if !ok {
		g.Frame.alpha = 0
		return
	}
	tx, ty := float64(target.Col)*cell, float64(target.Row)*cell
	source, ok := g.View.Tile(from)
	if !ok {
		g.Frame.alpha = 1
		g.Frame.SetPosition(tx, ty)
		return
	}
	sx, sy := float64(source.Col)*cell, float64(source.Row)*cell
	g.Frame.alpha = 1
	g.Tweens[gween.New(0, 1, .2, ease.OutQuad)] = Action{
		onChange: func(v float32) {
			f := float64(v)
			g.Frame.SetPosition(sx+(tx-sx)*f, sy+(ty-sy)*f)
		},
	}
}

// showNavigation fades the page name in, holds it, then fades it out.
func (g *Game) showNavigation(nav model.Navigation) {
	log.WithFields(log.Fields{"tile": nav.Tile, "page": nav.Page}).Info("navigate")
	g.State = NAVIGATING
	g.status = nav.Page
	fade := func(v float32) { g.statusAlpha = float64(v) }

	in := &Action{onChange: fade}
	hold := in.next(gween.New(1, 1, .6, ease.Linear))
	out := hold.next(gween.New(1, 0, .3, ease.InQuad))
	out.onChange = fade
	out.addOnFinish(func() {
		if g.State == NAVIGATING {
			g.State = PLAYING
		}
	})
	g.Tweens[gween.New(0, 1, .15, ease.OutQuad)] = *in
}

func (g *Game) drainMessages() {
	for {
		select {
		case sm, ok := <-g.Conn.Messages:
			if !ok {
				if g.State != GAME_OVER {
					log.WithError(g.Conn.Err()).Warn("connection closed")
				}
				g.State = GAME_OVER
				return
			}
			g.apply(sm)
		default:
			return
		}
	}
}

func (g *Game) tileAt(x, y int) string {
	id, _ := g.View.HitTest(x, y, g.Config.Cell, g.Config.Cell)
	return id
}

func (g *Game) updateInput() {
	var pointers []model.Pointer

	if !g.Config.Touch {
		pointers = append(pointers, g.View.PointerAt(g.tileAt(ebiten.CursorPosition()))...)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range g.strokes {
		s.Update(g.Config.Cell / 2)
		if !s.released {
			continue
		}
		if !s.swiped {
			pointers = append(pointers, g.View.Press(g.tileAt(s.initX, s.initY))...)
		}
		delete(g.strokes, s)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Conn.Send(model.ClientMessage{Reset: true})
	}
	if len(pointers) > 0 {
		g.Conn.Send(model.ClientMessage{Pointers: pointers})
	}
}

func (g *Game) update(screen *ebiten.Image) error {
	g.drainMessages()
	if g.State == GAME_OVER {
		return errors.New("connection closed")
	}

	g.updateTweens(dt)
	if ended := g.View.Update(dt); len(ended) > 0 {
		g.Conn.Send(model.ClientMessage{Ended: ended})
	}
	g.updateInput()

	if ebiten.IsDrawingSkipped() {
		return nil
	}
	g.draw(screen)
	return nil
}

// look returns the drawing scale and alpha of a tile.
func (g *Game) look(id string) (scale, alpha float64) {
	if !g.View.IsActive(id) {
		return .5, .25
	}
	p, kind := g.View.Progress(id)
	switch kind {
	case anim.KindExpansion, anim.KindContraction:
		return .6 + .4*float64(p), .4 + .6*float64(p)
	case anim.KindIdle, anim.KindBackground:
		return .95 + .05*math.Sin(float64(p)*2*math.Pi), 1
	default:
		return 1, 1
	}
}

func (g *Game) draw(screen *ebiten.Image) {
	if err := screen.Fill(color.RGBA{
		uint8(COLOR_BACKGROUND.r * 255), uint8(COLOR_BACKGROUND.g * 255), uint8(COLOR_BACKGROUND.b * 255), 255,
	}); err != nil {
		log.WithError(err).Warn("fill")
	}

	cell := g.Config.Cell
	for _, t := range g.sprites {
		scale, alpha := g.look(t.Id)
		t.Draw(screen, g.tileImage, cell, scale, alpha)
		if g.View.IsActive(t.Id) {
			text.Draw(screen, t.Id, Font, t.Col*cell+cell/8, t.Row*cell+cell-cell/8, color.White)
		}
	}
	if g.cursor != "" {
		g.Frame.Draw(screen)
	}
	if g.status != "" && g.statusAlpha > 0 {
		a := uint8(255 * g.statusAlpha)
		text.Draw(screen, g.status, Font, cell/4, g.View.Setup.Rows*cell-cell/4, color.NRGBA{255, 255, 255, a})
	}
	ebitenutil.DebugPrintAt(screen, g.State.Name(), 4, 4)
}

var rootCmd = &cobra.Command{
	Use:           "tilegrid",
	Short:         "Graphical preview of a tile grid session",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	d := client.DefaultOptions()
	client.AddFlags(rootCmd, d)
	rootCmd.Flags().Int("cell", d.Cell, "tile size in pixels")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load client.yaml: %w", err)
	}
	cfg.ApplyFlags(cmd)
	if Font, err = loadFont(float64(cfg.Cell) / 4); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	conn, err := client.Dial(ctx, cfg.URL)
	cancel()
	if err != nil {
		return err
	}
	defer conn.Close()

	g, err := NewGame(cfg, conn)
	if err != nil {
		return err
	}
	width, height := ebiten.ScreenSizeInFullscreen()
	conn.Send(model.ClientMessage{Hello: []model.Hello{{
		ViewportWidth:  width,
		ViewportHeight: height,
		Touch:          cfg.Touch,
	}}})
	if err := g.awaitSetup(5 * time.Second); err != nil {
		return err
	}

	cols, rows := g.View.Setup.Cols, g.View.Setup.Rows
	if err := ebiten.Run(g.update, cols*cfg.Cell, rows*cfg.Cell, 1, cfg.Title); err != nil {
		log.WithError(err).Info("preview ended")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
