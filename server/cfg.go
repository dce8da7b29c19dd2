package server

import (
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/madwhistler/artsite/config"
	"github.com/madwhistler/artsite/navigate"
)

// Load builds a TileServer from a configuration file.
func Load(path string) (*TileServer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return NewTileServer(cfg)
}

func NewTileServer(cfg *config.Config) (*TileServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	m, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.HandshakeTimeout()
	if err != nil {
		return nil, err
	}
	hold, err := cfg.NavigationHold()
	if err != nil {
		return nil, err
	}
	return &TileServer{
		Config:          cfg,
		Grid:            m,
		Sessions:        make(map[string]*ViewerSession),
		SessionRequests: make(chan SessionRequest),
		SessionsDone:    make(chan string),
		StatsRequests:   make(chan chan Stats),
		Upgrader:        &websocket.Upgrader{},
		Clock:           navigate.RealClock,
		timeout:         timeout,
		hold:            hold,
	}, nil
}
