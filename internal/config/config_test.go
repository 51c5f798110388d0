package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/gujarati-xlit/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Engine.BeamWidth)
	assert.InDelta(t, 0.9, cfg.Engine.Alpha, 1e-9)
	assert.True(t, cfg.Engine.Rescore)
	assert.Equal(t, 5, cfg.Engine.DefaultTopK)
	assert.Equal(t, 10, cfg.Engine.MaxTopK)
	assert.Equal(t, "fairseq-interactive", cfg.Engine.DecoderBin)
	assert.Empty(t, cfg.Provision.ModelsDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9100
engine:
  alpha: 0.5
  rescore: false
  preload: "en2gu"
provision:
  models_dir: /var/lib/xlit
log:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.InDelta(t, 0.5, cfg.Engine.Alpha, 1e-9)
	assert.False(t, cfg.Engine.Rescore)
	assert.Equal(t, "en2gu", cfg.Engine.Preload)
	assert.Equal(t, "/var/lib/xlit", cfg.Provision.ModelsDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9300")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Server.Port)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8000},
			Engine: EngineConfig{
				BeamWidth:    4,
				Alpha:        0.9,
				DefaultTopK:  5,
				MaxTopK:      10,
				MaxBatchSize: 32,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "zero beam",
			mutate:  func(c *Config) { c.Engine.BeamWidth = 0 },
			wantErr: "beam_width",
		},
		{
			name:    "alpha out of range",
			mutate:  func(c *Config) { c.Engine.Alpha = 1.5 },
			wantErr: "alpha",
		},
		{
			name:    "max below default",
			mutate:  func(c *Config) { c.Engine.MaxTopK = 2 },
			wantErr: "max_top_k",
		},
		{
			name:    "unknown preload direction",
			mutate:  func(c *Config) { c.Engine.Preload = "en2fr" },
			wantErr: "preload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParsePreload(t *testing.T) {
	got, err := ParsePreload(" en2gu , gu2en ")
	require.NoError(t, err)
	assert.Equal(t, []domain.Direction{domain.DirectionRomanToGujarati, domain.DirectionGujaratiToRoman}, got)

	got, err = ParsePreload("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParsePreload("gu2ta")
	require.Error(t, err)
}
