// Package config holds gumpkit settings. Settings live in a YAML file;
// anything the file leaves out keeps its default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsVersion is bumped whenever a field changes meaning. Files with a
// different version are ignored in favor of Defaults.
const SettingsVersion = 1

type Config struct {
	Version int           `yaml:"version"`
	Dialog  DialogConfig  `yaml:"dialog"`
	Host    HostConfig    `yaml:"host"`
	Logger  LoggerConfig  `yaml:"logger"`
	Tracer  TracerConfig  `yaml:"tracer"`
	Scripts ScriptsConfig `yaml:"scripts"`
}

// DialogConfig tunes the controller.
type DialogConfig struct {
	// Refresh is the live-view heartbeat.
	Refresh time.Duration `yaml:"refresh"`
	// Timeout bounds a one-shot present.
	Timeout time.Duration `yaml:"timeout"`
	// MinRedraw is the shortest gap between two redraws of a live view.
	MinRedraw time.Duration `yaml:"min_redraw"`
	X         int           `yaml:"x"`
	Y         int           `yaml:"y"`
}

type HostConfig struct {
	Breaker BreakerConfig `yaml:"breaker"`
}

// BreakerConfig guards host calls. Zero numbers take the breaker's
// defaults.
type BreakerConfig struct {
	Enabled bool `yaml:"enabled"`
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures uint32 `yaml:"max_failures"`
	// Timeout is how long the circuit stays open before a probe.
	Timeout time.Duration `yaml:"timeout"`
	// Interval clears failure counts while closed.
	Interval time.Duration `yaml:"interval"`
}

type LoggerConfig struct {
	Dir     string `yaml:"dir"`
	Debug   bool   `yaml:"debug"`
	DumpLen int    `yaml:"dump_len"`
}

type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // "stdout", "noop"
}

type ScriptsConfig struct {
	Dir     string `yaml:"dir"`
	Workers int    `yaml:"workers"`
	// Notify enables desktop notifications from scripts.
	Notify bool `yaml:"notify"`
}

// Defaults is used for every field a settings file leaves out.
var Defaults = Config{
	Version: SettingsVersion,
	Dialog: DialogConfig{
		Refresh:   750 * time.Millisecond,
		Timeout:   time.Minute,
		MinRedraw: 100 * time.Millisecond,
		X:         100,
		Y:         100,
	},
	Host: HostConfig{
		Breaker: BreakerConfig{
			Enabled:     true,
			MaxFailures: 5,
			Timeout:     30 * time.Second,
			Interval:    time.Minute,
		},
	},
	Logger: LoggerConfig{
		Dir:     "logs",
		DumpLen: 256,
	},
	Tracer: TracerConfig{
		Exporter: "noop",
	},
	Scripts: ScriptsConfig{
		Dir:     "scripts",
		Workers: 4,
		Notify:  true,
	},
}

// Load reads path over Defaults. A missing file yields Defaults and
// loaded == false; so does a file written for another SettingsVersion.
func Load(path string) (cfg Config, loaded bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults, false, nil
	}
	if err != nil {
		return Defaults, false, fmt.Errorf("read settings: %w", err)
	}
	cfg, err = Parse(data)
	if err != nil {
		return Defaults, false, err
	}
	if cfg.Version != SettingsVersion {
		return Defaults, false, nil
	}
	return cfg, true, nil
}

// Parse decodes YAML over Defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults, fmt.Errorf("parse settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Defaults, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Dialog.Refresh <= 0 {
		errs = append(errs, fmt.Errorf("dialog.refresh must be positive, got %s", c.Dialog.Refresh))
	}
	if c.Dialog.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("dialog.timeout must be positive, got %s", c.Dialog.Timeout))
	}
	if c.Dialog.MinRedraw < 0 {
		errs = append(errs, fmt.Errorf("dialog.min_redraw must not be negative, got %s", c.Dialog.MinRedraw))
	}
	if c.Host.Breaker.Timeout < 0 || c.Host.Breaker.Interval < 0 {
		errs = append(errs, errors.New("host.breaker durations must not be negative"))
	}
	if c.Scripts.Workers < 1 {
		errs = append(errs, fmt.Errorf("scripts.workers must be at least 1, got %d", c.Scripts.Workers))
	}
	return errors.Join(errs...)
}

// Save writes cfg to path through a temporary file.
func Save(path string, cfg Config) error {
	cfg.Version = SettingsVersion
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}
	if err := os.WriteFile(path+".tmp", data, 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return os.Rename(path+".tmp", path)
}
