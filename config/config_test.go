package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "Sin Temporada", cfg.Import.NoSeasonLabel)
	assert.Equal(t, int64(2), cfg.Import.MaxConcurrentRuns)
	assert.Equal(t, int64(20<<20), cfg.Import.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.True(t, cfg.Retention.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Interval)
	assert.Equal(t, 90, cfg.Retention.ArchiveDays)
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte(`
server:
  port: 8080
import:
  no_season_label: "Sin temporada"
  max_concurrent_runs: 4
`)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/pricing")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Sin temporada", cfg.Import.NoSeasonLabel)
	assert.Equal(t, int64(4), cfg.Import.MaxConcurrentRuns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "postgres://u:p@localhost:5432/pricing", GetDatabaseURL())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9191\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PORT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "blank sentinel",
			mutate:  func(c *Config) { c.Import.NoSeasonLabel = "  " },
			wantErr: "no_season_label",
		},
		{
			name:    "no concurrency",
			mutate:  func(c *Config) { c.Import.MaxConcurrentRuns = 0 },
			wantErr: "max_concurrent_runs",
		},
		{
			name:    "no upload budget",
			mutate:  func(c *Config) { c.Import.MaxUploadBytes = 0 },
			wantErr: "max_upload_bytes",
		},
		{
			name: "retention without interval",
			mutate: func(c *Config) {
				c.Retention = RetentionConfig{Enabled: true}
			},
			wantErr: "retention.interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Import: ImportConfig{
				NoSeasonLabel:     "Sin Temporada",
				MaxUploadBytes:    1024,
				MaxConcurrentRuns: 1,
			}}
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
