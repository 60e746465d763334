package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the settings file.
const (
	EnvDebug      = "GUMPKIT_DEBUG"
	EnvLogDir     = "GUMPKIT_LOG_DIR"
	EnvScriptsDir = "GUMPKIT_SCRIPTS_DIR"
	// EnvTracer names an exporter and turns tracing on.
	EnvTracer = "GUMPKIT_TRACER"
)

// LoadDotEnv copies files (".env" when none are given) into the process
// environment. Missing files are ignored and set variables win.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides c from the environment.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Logger.Debug = debug
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogDir)); v != "" {
		c.Logger.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScriptsDir)); v != "" {
		c.Scripts.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTracer)); v != "" {
		c.Tracer = TracerConfig{Enabled: v != "noop", Exporter: v}
	}
	return nil
}
