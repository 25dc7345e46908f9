package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/henderiw/rangemap/pkg/stage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/labels"
)

const DefaultLogLevel = "info"

// Config holds the settings of one solve run.
type Config struct {
	// Input is the almanac file path.
	Input string `yaml:"input"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
	// Coalesce merges touching ranges after every stage.
	Coalesce bool `yaml:"coalesce"`
	// Until stops the range pipeline after the stage mapping to this name.
	Until string `yaml:"until"`
}

func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Until != "" {
		if _, err := c.UntilSelector(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Level() (zapcore.Level, error) {
	s := strings.TrimSpace(c.LogLevel)
	if s == "" {
		s = DefaultLogLevel
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// UntilSelector matches the stage whose destination is Until; it returns
// nil when Until is not set.
func (c *Config) UntilSelector() (labels.Selector, error) {
	if c.Until == "" {
		return nil, nil
	}
	selector, err := labels.ValidatedSelectorFromSet(labels.Set{stage.LabelTo: c.Until})
	if err != nil {
		return nil, fmt.Errorf("invalid until stage %q: %w", c.Until, err)
	}
	return selector, nil
}

// Logger builds a console logger on stderr at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}
