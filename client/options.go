package client

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Options are the settings a preview client starts with: a YAML file, then
// TILEGRID_URL, then command flags.
type Options struct {
	URL   string `yaml:"url"`
	Cell  int    `yaml:"cell"`
	Touch bool   `yaml:"touch"`
	Title string `yaml:"title"`
}

const minCell = 8

func DefaultOptions() Options {
	return Options{
		URL:   "ws://localhost:8080/play",
		Cell:  64,
		Title: "tilegrid",
	}
}

// ReadOptions overlays the YAML in r onto base.
func ReadOptions(r io.Reader, base Options) (Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return base, err
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, err
	}
	return base, nil
}

func (o *Options) ApplyEnv() {
	if url := os.Getenv("TILEGRID_URL"); url != "" {
		o.URL = url
	}
}

// AddFlags declares --url and --touch on cmd with d as defaults.
func AddFlags(cmd *cobra.Command, d Options) {
	cmd.Flags().StringP("url", "u", d.URL, "tile server websocket URL")
	cmd.Flags().Bool("touch", d.Touch, "behave as a touch device: presses are taps, no hover")
}

// ApplyFlags copies the flags the user set on cmd over o. A --cell flag is
// honoured when cmd declares one.
func (o *Options) ApplyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("url") {
		o.URL, _ = flags.GetString("url")
	}
	if flags.Changed("touch") {
		o.Touch, _ = flags.GetBool("touch")
	}
	if flags.Changed("cell") {
		o.Cell, _ = flags.GetInt("cell")
	}
	if o.Cell < minCell {
		o.Cell = minCell
	}
}
