package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/madwhistler/artsite/config"
	"github.com/madwhistler/artsite/server"
)

type Server struct {
	router     *way.Router
	TileServer *server.TileServer
}

var (
	configPath string
	port       string
)

var rootCmd = &cobra.Command{
	Use:           "tilegrid-server",
	Short:         "Serve tile grid sessions over websocket",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "data/tilegrid.yaml", "path to the YAML configuration")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config and PORT)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if err := cfg.ApplyLogging(os.Stderr); err != nil {
		return err
	}
	ts, err := server.NewTileServer(cfg)
	if err != nil {
		return err
	}

	s := Server{TileServer: ts}
	s.routes()
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: s.router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ts.Loop(ctx)
		return nil
	})
	g.Go(func() error {
		log.WithField("addr", httpServer.Addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
