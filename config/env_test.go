package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvScriptsDir, "/tmp/gump-scripts")
	t.Setenv(EnvTracer, "stdout")

	cfg := Defaults
	require.NoError(t, cfg.ApplyEnv())
	assert.True(t, cfg.Logger.Debug)
	assert.Equal(t, "/tmp/gump-scripts", cfg.Scripts.Dir)
	assert.Equal(t, TracerConfig{Enabled: true, Exporter: "stdout"}, cfg.Tracer)
	assert.Equal(t, Defaults.Logger.Dir, cfg.Logger.Dir)
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	t.Setenv(EnvDebug, "sometimes")
	cfg := Defaults
	assert.ErrorContains(t, cfg.ApplyEnv(), EnvDebug)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvLogDir+"=/var/log/gump\n"), 0o644))
	t.Setenv(EnvLogDir, "")
	os.Unsetenv(EnvLogDir)

	LoadDotEnv(path)
	t.Cleanup(func() { os.Unsetenv(EnvLogDir) })

	cfg := Defaults
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "/var/log/gump", cfg.Logger.Dir)
}
