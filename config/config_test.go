package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/grid"
	"github.com/madwhistler/artsite/input"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	m, err := cfg.Model()
	require.NoError(t, err)
	assert.Equal(t, []grid.TileID{"r1", "g1", "b1", "y1"}, m.CoreTiles())
	assert.Equal(t, []grid.TileID{"r3", "r4", "r1", "r2"}, m.ExpansionTargets("r1"))
	assert.True(t, m.Reciprocal())
	page, ok := m.Page("y1")
	require.True(t, ok)
	assert.Equal(t, "/contribute", page)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "data", "tilegrid.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	shipped, err := cfg.Model()
	require.NoError(t, err)
	builtin, err := DefaultConfig().Model()
	require.NoError(t, err)
	assert.Equal(t, builtin.Tiles(), shipped.Tiles())
	for _, id := range builtin.Tiles() {
		assert.Equal(t, builtin.ExpansionTargets(id), shipped.ExpansionTargets(id), id)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadReplacesGrid(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Animation.Budget)
	assert.NotContains(t, cfg.Grid.Expansions, "y1", "built-in expansions must not leak into a custom grid")

	m, err := cfg.Model()
	require.NoError(t, err)
	assert.False(t, m.Reciprocal())
	// r9 has no position
	assert.Equal(t, []grid.TileID{"r2"}, m.ExpansionTargets("r1"))
	assert.Len(t, m.Tiles(), 8)

	d := cfg.Durations()
	assert.Equal(t, float32(0.8), d[anim.KindExpansion])
	assert.Equal(t, anim.DefaultDurations()[anim.KindContraction], d[anim.KindContraction])
}

func TestLoadBrokenFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "broken.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("TILEGRID_LOG_LEVEL", "warn")
	t.Setenv("TILEGRID_ANIMATION_BUDGET", "6")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 6, cfg.Animation.Budget)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero budget", func(c *Config) { c.Animation.Budget = 0 }, "budget must be positive"},
		{"negative mobile budget", func(c *Config) { c.Animation.MobileBudget = -1 }, "must not be negative"},
		{"unknown kind", func(c *Config) { c.Animation.Durations["sparkle"] = 1 }, "unknown animation kind"},
		{"no quadrants", func(c *Config) { c.Grid.Quadrants = nil }, "no quadrants"},
		{"long quadrant", func(c *Config) { c.Grid.Quadrants = []string{"red"} }, "single character"},
		{"unknown quadrant", func(c *Config) { c.Grid.Quadrants = []string{"r", "g", "b"} }, "unknown quadrant"},
		{"bad layout", func(c *Config) { c.Grid.Layout = "r1 r1" }, "failed to parse grid layout"},
		{"no core", func(c *Config) { c.Grid.Core = nil }, "no core tiles"},
		{"core without position", func(c *Config) { c.Grid.Core = []string{"r1", "g9"} }, "no grid position"},
		{"two cores in quadrant", func(c *Config) { c.Grid.Core = []string{"r1", "r2"} }, "share quadrant"},
		{"bad hold", func(c *Config) { c.Navigation.Hold = "soon" }, "invalid navigation.hold"},
		{"bad handshake", func(c *Config) { c.Server.HandshakeTimeout = "1x" }, "invalid server.handshake_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBudgetFor(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.BudgetFor(input.Device{}))
	assert.Equal(t, 3, cfg.BudgetFor(input.Device{Mobile: true}))
	cfg.Animation.MobileBudget = 0
	assert.Equal(t, 5, cfg.BudgetFor(input.Device{Mobile: true}))
}

func TestDurationsAndThresholds(t *testing.T) {
	cfg := DefaultConfig()
	hold, err := cfg.NavigationHold()
	require.NoError(t, err)
	assert.Equal(t, 600*time.Millisecond, hold)

	cfg.Server.HandshakeTimeout = ""
	timeout, err := cfg.HandshakeTimeout()
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, timeout)

	assert.Equal(t, input.Thresholds{MobileMaxWidth: 768}, cfg.Thresholds())
}

func TestSaveLoad(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "nested", "tilegrid.yaml")
	cfg := DefaultConfig()
	cfg.Animation.Budget = 4
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyLogging(t *testing.T) {
	defer log.SetOutput(log.StandardLogger().Out)
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logging = LoggingConfig{Level: "debug", Format: "json"}
	require.NoError(t, cfg.ApplyLogging(&buf))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.WithField("tile", "r1").Debug("hello")
	assert.Contains(t, buf.String(), `"tile":"r1"`)

	cfg.Logging = LoggingConfig{Level: "loud"}
	assert.Error(t, cfg.ApplyLogging(nil))
	cfg.Logging = LoggingConfig{Level: "info", Format: "xml"}
	assert.Error(t, cfg.ApplyLogging(nil))
}
