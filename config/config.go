// Package config loads the tilegrid YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/grid"
	"github.com/madwhistler/artsite/input"
)

// Config holds all tilegrid configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Grid       GridConfig       `yaml:"grid"`
	Animation  AnimationConfig  `yaml:"animation"`
	Input      InputConfig      `yaml:"input"`
	Navigation NavigationConfig `yaml:"navigation"`
}

// ServerConfig configures the HTTP/websocket listener.
type ServerConfig struct {
	Port             string `yaml:"port"`
	HandshakeTimeout string `yaml:"handshake_timeout"`
	SendBuffer       int    `yaml:"send_buffer"`
}

// LoggingConfig configures logrus.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// GridConfig is the adjacency model: layout, expansion graph, core tiles.
type GridConfig struct {
	Quadrants  []string              `yaml:"quadrants"`
	Layout     string                `yaml:"layout"`
	Core       []string              `yaml:"core"`
	Expansions map[string][]string   `yaml:"expansions"`
	Pages      map[string]string     `yaml:"pages"`
	Assets     map[string]grid.Asset `yaml:"assets"`
	Reciprocal *bool                 `yaml:"reciprocal"`
}

// AnimationConfig configures the slot scheduler and client timelines.
type AnimationConfig struct {
	Budget       int                `yaml:"budget"`
	MobileBudget int                `yaml:"mobile_budget"`
	Backgrounds  []string           `yaml:"backgrounds"`
	Durations    map[string]float32 `yaml:"durations"` // seconds per kind
}

// InputConfig tunes device classification.
type InputConfig struct {
	MobileMaxWidth int `yaml:"mobile_max_width"`
}

// NavigationConfig configures the navigation guard.
type NavigationConfig struct {
	Hold string `yaml:"hold"`
}

// DefaultConfig returns the default configuration with the built-in grid.
func DefaultConfig() *Config {
	reciprocal := true
	return &Config{
		Server: ServerConfig{
			Port:             "8080",
			HandshakeTimeout: "200ms",
			SendBuffer:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Grid: GridConfig{
			Quadrants: []string{"r", "g", "b", "y"},
			Layout: `r5 r3 r4 .  g4 g3 g5
r6 r2 r1 .  g1 g2 g6
.  .  .  .  .  .  .
y6 y2 y1 .  b1 b2 b6
y5 y3 y4 .  b4 b3 b5
`,
			Core: []string{"r1", "g1", "b1", "y1"},
			Expansions: map[string][]string{
				"r1": {"r3", "r4", "r1", "r2"},
				"r3": {"r5", "r6"},
				"g1": {"g2", "g3", "g4"},
				"g3": {"g5", "g6"},
				"b1": {"b2", "b3", "b4"},
				"y1": {"y2", "y3", "y4"},
				"y3": {"y5", "y6"},
			},
			Pages: map[string]string{
				"r2": "/gallery/paintings",
				"r4": "/gallery/drawings",
				"r5": "/gallery/sketchbook",
				"g2": "/about",
				"g4": "/contact",
				"b2": "/favorites",
				"b3": "/comments",
				"y1": "/contribute",
				"y2": "/shop",
			},
			Assets: map[string]grid.Asset{
				"r1": {Kind: "expansion", Ref: "anim/r1-bloom.json"},
				"g1": {Kind: "expansion", Ref: "anim/g1-bloom.json"},
				"b1": {Kind: "expansion", Ref: "anim/b1-bloom.json"},
				"y1": {Kind: "expansion", Ref: "anim/y1-bloom.json"},
				"r2": {Kind: "tile-idle", Ref: "anim/r2-idle.json"},
				"g2": {Kind: "tile-idle", Ref: "anim/g2-idle.json"},
			},
			Reciprocal: &reciprocal,
		},
		Animation: AnimationConfig{
			Budget:       5,
			MobileBudget: 3,
			Backgrounds:  []string{"bg:waves"},
			Durations: map[string]float32{
				"tile-idle":   1.2,
				"background":  4,
				"contraction": 0.35,
				"expansion":   0.45,
			},
		},
		Input: InputConfig{
			MobileMaxWidth: 768,
		},
		Navigation: NavigationConfig{
			Hold: "600ms",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			// a file that declares a layout replaces the built-in grid
			// instead of merging into its maps
			cfg.Grid = GridConfig{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			if strings.TrimSpace(cfg.Grid.Layout) == "" {
				cfg.Grid = DefaultConfig().Grid
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if level := os.Getenv("TILEGRID_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if budget := os.Getenv("TILEGRID_ANIMATION_BUDGET"); budget != "" {
		if n, err := strconv.Atoi(budget); err == nil {
			c.Animation.Budget = n
		}
	}
}

// Validate rejects configurations the engine cannot run with. Expansion
// targets without a position are not an error; the model drops them.
func (c *Config) Validate() error {
	if c.Animation.Budget < 1 {
		return fmt.Errorf("animation budget must be positive, got %d", c.Animation.Budget)
	}
	if c.Animation.MobileBudget < 0 {
		return fmt.Errorf("mobile animation budget must not be negative, got %d", c.Animation.MobileBudget)
	}
	for kind := range c.Animation.Durations {
		if _, ok := anim.ParseKind(kind); !ok {
			return fmt.Errorf("unknown animation kind in durations: %s", kind)
		}
	}
	if len(c.Grid.Quadrants) == 0 {
		return fmt.Errorf("no quadrants configured")
	}
	for _, q := range c.Grid.Quadrants {
		if len(q) != 1 {
			return fmt.Errorf("quadrant tag %q must be a single character", q)
		}
	}

	positions, err := c.Positions()
	if err != nil {
		return err
	}
	for id := range positions {
		if !c.knownQuadrant(id.Quadrant()) {
			return fmt.Errorf("tile %s is in an unknown quadrant (valid: %v)", id, c.Grid.Quadrants)
		}
	}
	if len(c.Grid.Core) == 0 {
		return fmt.Errorf("no core tiles configured")
	}
	seen := make(map[grid.Quadrant]string)
	for _, id := range c.Grid.Core {
		tile := grid.TileID(id)
		if _, ok := positions[tile]; !ok {
			return fmt.Errorf("core tile %s has no grid position", id)
		}
		if other, dup := seen[tile.Quadrant()]; dup {
			return fmt.Errorf("core tiles %s and %s share quadrant %s", other, id, tile.Quadrant())
		}
		seen[tile.Quadrant()] = id
	}
	if _, err := c.NavigationHold(); err != nil {
		return err
	}
	if _, err := c.HandshakeTimeout(); err != nil {
		return err
	}
	return nil
}

func (c *Config) knownQuadrant(q grid.Quadrant) bool {
	for _, tag := range c.Grid.Quadrants {
		if tag == q.String() {
			return true
		}
	}
	return false
}

// Positions parses the layout.
func (c *Config) Positions() (map[grid.TileID]grid.Position, error) {
	positions, err := grid.ParseLayout(strings.NewReader(c.Grid.Layout))
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid layout: %w", err)
	}
	return positions, nil
}

// Model builds the adjacency model.
func (c *Config) Model() (*grid.Model, error) {
	positions, err := c.Positions()
	if err != nil {
		return nil, err
	}
	spec := grid.Spec{
		Positions:  positions,
		Expansions: make(map[grid.TileID][]grid.TileID, len(c.Grid.Expansions)),
		Pages:      make(map[grid.TileID]string, len(c.Grid.Pages)),
		Assets:     make(map[grid.TileID]grid.Asset, len(c.Grid.Assets)),
		Reciprocal: c.Grid.Reciprocal == nil || *c.Grid.Reciprocal,
	}
	for source, targets := range c.Grid.Expansions {
		ids := make([]grid.TileID, len(targets))
		for i, t := range targets {
			ids[i] = grid.TileID(t)
		}
		spec.Expansions[grid.TileID(source)] = ids
	}
	for _, id := range c.Grid.Core {
		spec.Core = append(spec.Core, grid.TileID(id))
	}
	for id, page := range c.Grid.Pages {
		spec.Pages[grid.TileID(id)] = page
	}
	for id, asset := range c.Grid.Assets {
		spec.Assets[grid.TileID(id)] = asset
	}
	return grid.NewModel(spec), nil
}

// Durations converts the configured durations for anim.NewTimeline.
func (c *Config) Durations() anim.Durations {
	out := anim.DefaultDurations()
	for name, seconds := range c.Animation.Durations {
		if kind, ok := anim.ParseKind(name); ok && seconds > 0 {
			out[kind] = seconds
		}
	}
	return out
}

// BudgetFor picks the scheduler budget for a classified device.
func (c *Config) BudgetFor(device input.Device) int {
	if device.Mobile && c.Animation.MobileBudget > 0 {
		return c.Animation.MobileBudget
	}
	return c.Animation.Budget
}

func (c *Config) Thresholds() input.Thresholds {
	return input.Thresholds{MobileMaxWidth: c.Input.MobileMaxWidth}
}

func (c *Config) NavigationHold() (time.Duration, error) {
	return parseDuration("navigation.hold", c.Navigation.Hold, 600*time.Millisecond)
}

func (c *Config) HandshakeTimeout() (time.Duration, error) {
	return parseDuration("server.handshake_timeout", c.Server.HandshakeTimeout, 200*time.Millisecond)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
