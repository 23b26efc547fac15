package retained

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"zero limit", func(c *Config) { c.DispatchLimit = 0 }, "dispatch_limit"},
		{"unknown strength", func(c *Config) { c.WindowStrength = "mighty" }, "window_strength"},
		{"required strength", func(c *Config) { c.WindowStrength = "required" }, "below required"},
		{"hover address", func(c *Config) { c.HoverAddress = "subtree" }, "hover_address"},
		{"click button", func(c *Config) { c.ClickButton = "middle" }, "click_button"},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	for _, file := range []string{"lattice.toml", "lattice.yaml", "lattice.yml"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			want := Config{
				DispatchLimit:  500,
				WindowStrength: "medium",
				HoverAddress:   HoverSingle,
				ClickButton:    ClickAny,
				LogLevel:       "debug",
			}
			require.NoError(t, SaveConfig(path, want))

			got, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.toml")
	require.NoError(t, os.WriteFile(path, []byte("dispatch_limit = 42\n"), 0644))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	want := DefaultConfig()
	want.DispatchLimit = 42
	assert.Equal(t, want, got)
}

func TestLoadConfigMissingFile(t *testing.T) {
	got, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), got)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("dispatch_limit: [1, 2\n"), 0644))
	_, err := LoadConfig(bad)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("hover_address = \"nowhere\"\n"), 0644))
	_, err = LoadConfig(invalid)
	assert.ErrorContains(t, err, "hover_address")

	other := filepath.Join(dir, "lattice.json")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	_, err = LoadConfig(other)
	assert.ErrorContains(t, err, "unsupported")
	assert.ErrorContains(t, SaveConfig(other, DefaultConfig()), "unsupported")
}
