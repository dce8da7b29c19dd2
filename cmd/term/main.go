package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/madwhistler/artsite/client"
	"github.com/madwhistler/artsite/model"
)

const frame = 33 * time.Millisecond

var (
	opts    = client.DefaultOptions()
	logFile string
)

var rootCmd = &cobra.Command{
	Use:           "tilegrid-term",
	Short:         "Terminal preview of a tile grid session",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	client.AddFlags(rootCmd, opts)
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file instead of discarding them")
}

func run(cmd *cobra.Command, args []string) error {
	opts.ApplyEnv()
	opts.ApplyFlags(cmd)

	// the screen owns the terminal, logs go elsewhere
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	conn, err := client.Dial(cmd.Context(), opts.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	width, _ := screen.Size()
	hello := model.Hello{ViewportWidth: width * 8, Touch: opts.Touch}
	if opts.Touch {
		hello.ViewportWidth = 390
	}
	conn.Send(model.ClientMessage{Hello: []model.Hello{hello}})

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	return loop(cmd.Context(), screen, conn, events, NewRenderer(screen, client.NewView()))
}

func loop(ctx context.Context, screen tcell.Screen, conn *client.Conn, events <-chan tcell.Event, r *Renderer) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	pressed := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case sm, ok := <-conn.Messages:
			if !ok {
				return conn.Err()
			}
			r.view.Apply(sm)
			for _, nav := range r.view.TakeNavigations() {
				r.SetStatus("navigate " + nav.Page)
			}
		case now := <-ticker.C:
			ended := r.view.Update(float32(now.Sub(last).Seconds()))
			last = now
			if len(ended) > 0 {
				conn.Send(model.ClientMessage{Ended: ended})
			}
			r.Draw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					if ev.Rune() == 'r' {
						conn.Send(model.ClientMessage{Reset: true})
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventMouse:
				var pointers []model.Pointer
				tile := r.TileAt(ev.Position())
				if !opts.Touch {
					pointers = append(pointers, r.view.PointerAt(tile)...)
				}
				down := ev.Buttons()&tcell.Button1 != 0
				if down && !pressed {
					pointers = append(pointers, r.view.Press(tile)...)
				}
				pressed = down
				if len(pointers) > 0 {
					conn.Send(model.ClientMessage{Pointers: pointers})
				}
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
