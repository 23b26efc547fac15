package retained

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/lattice/cassowary"
)

// Hover addressing modes.
const (
	HoverBubble = "bubble"
	HoverSingle = "single"
)

// Click button modes.
const (
	ClickLeft = "left"
	ClickAny  = "any"
)

// Config holds the runtime settings of a UI. It can be loaded from a
// lattice.toml or lattice.yaml file.
type Config struct {
	// Events processed per external trigger before dispatch gives up
	DispatchLimit int `toml:"dispatch_limit" yaml:"dispatch_limit"`
	// Strength of the root's right/bottom edit variables
	WindowStrength string `toml:"window_strength" yaml:"window_strength"`
	// "bubble" or "single"
	HoverAddress string `toml:"hover_address" yaml:"hover_address"`
	// "left" or "any"
	ClickButton string `toml:"click_button" yaml:"click_button"`
	// "debug", "info", "warn" or "error"
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DispatchLimit:  10000,
		WindowStrength: "strong",
		HoverAddress:   HoverBubble,
		ClickButton:    ClickLeft,
		LogLevel:       "info",
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.DispatchLimit <= 0 {
		return fmt.Errorf("dispatch_limit must be positive, got %d", c.DispatchLimit)
	}
	if _, err := c.windowStrength(); err != nil {
		return err
	}
	switch c.HoverAddress {
	case HoverBubble, HoverSingle:
	default:
		return fmt.Errorf("unknown hover_address %q", c.HoverAddress)
	}
	switch c.ClickButton {
	case ClickLeft, ClickAny:
	default:
		return fmt.Errorf("unknown click_button %q", c.ClickButton)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) windowStrength() (cassowary.Strength, error) {
	s, err := cassowary.ParseStrength(c.WindowStrength)
	if err != nil {
		return 0, fmt.Errorf("window_strength: %w", err)
	}
	if s >= cassowary.Required {
		return 0, fmt.Errorf("window_strength must be below required, got %q", c.WindowStrength)
	}
	return s, nil
}

// Level returns the configured slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return l, nil
}

// LoadConfig reads the configuration at path. The format follows the
// extension: .toml, or .yaml/.yml. If the file doesn't exist, returns the
// default config. Fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return config, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config to path in the format given by its extension.
func SaveConfig(path string, config Config) error {
	var (
		data []byte
		err  error
	)
	switch ext(path) {
	case ".toml":
		data, err = toml.Marshal(config)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
