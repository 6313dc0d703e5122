package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30, cfg.Mask.Threshold)
	assert.Equal(t, 4, cfg.Mask.Connectivity)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/input
http_addr: ":9000"
log:
  level: debug
  format: json
session:
  backend: redis
  redis_url: redis://localhost:6379/0
  ttl: 30m
mask:
  threshold: 45
  connectivity: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/input", cfg.InputDir)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 45, cfg.Mask.Threshold)
	assert.Equal(t, 8, cfg.Mask.Connectivity)
	// untouched keys keep their defaults
	assert.Equal(t, "#FF0000", cfg.Overlay.Color)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "input_dir: /from/yaml\nmask:\n  threshold: 45\n")
	t.Setenv("PAINT_EDITOR_INPUT_DIR", "/from/env")
	t.Setenv("PAINT_EDITOR_MASK_CONNECTIVITY", "8")
	t.Setenv("PAINT_EDITOR_OVERLAY_OPACITY", "0.25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.InputDir)
	assert.Equal(t, 45, cfg.Mask.Threshold)
	assert.Equal(t, 8, cfg.Mask.Connectivity)
	assert.Equal(t, 0.25, cfg.Overlay.Opacity)
}

func TestLoad_MultiWordEnvNames(t *testing.T) {
	t.Setenv("PAINT_EDITOR_HTTP_ADDR", ":7000")
	t.Setenv("PAINT_EDITOR_SESSION_BACKEND", "redis")
	t.Setenv("PAINT_EDITOR_SESSION_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Session.RedisURL)
}

func TestLoad_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("THRESHOLD", "500")
	t.Setenv("FORMAT", "json")
	t.Setenv("LEVEL", "debug")
	t.Setenv("INPUT_DIR", "/elsewhere")
	t.Setenv("HTTP_ADDR", ":1")
	t.Setenv("BACKEND", "redis")
	t.Setenv("COLOR", "#00FF00")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "mask: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("PAINT_EDITOR_MASK_THRESHOLD", "lots")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input dir", func(c *Config) { c.InputDir = "" }},
		{"zero threshold", func(c *Config) { c.Mask.Threshold = 0 }},
		{"threshold too large", func(c *Config) { c.Mask.Threshold = 766 }},
		{"connectivity 6", func(c *Config) { c.Mask.Connectivity = 6 }},
		{"opacity above one", func(c *Config) { c.Overlay.Opacity = 1.5 }},
		{"unknown backend", func(c *Config) { c.Session.Backend = "etcd" }},
		{"redis without url", func(c *Config) { c.Session.Backend = "redis" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
