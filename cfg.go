package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"

	"github.com/madwhistler/artsite/client"
)

// Load reads client.yaml next to the binary, then applies TILEGRID_URL.
func Load() (cfg client.Options, e error) {
	cfg = client.DefaultOptions()
	file, fileErr := ebitenutil.OpenFile("client.yaml")
	if fileErr == nil {
		defer file.Close()
		if cfg, e = client.ReadOptions(file, cfg); e != nil {
			return
		}
	} else if !os.IsNotExist(fileErr) {
		log.WithError(fileErr).Warn("client.yaml not readable, using defaults")
	}
	cfg.ApplyEnv()
	return
}
