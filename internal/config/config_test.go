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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[scheduling]
timezone = "Europe/Berlin"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "Europe/Berlin", cfg.Scheduling.Timezone)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 24*time.Hour, cfg.Scheduling.WaitlistTTL())
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Jobs.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nhttp_port = "))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[logs]\nlevel = \"verbose\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Scheduling.Timezone = "Mars/Base" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Scheduling.WaitlistNotifyTTL = 0 }, wantErr: true},
		{name: "no ics domain", mutate: func(c *Config) { c.Scheduling.ICSDomain = "" }, wantErr: true},
		{
			name:    "metrics without path",
			mutate:  func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "" },
			wantErr: true,
		},
		{
			name:    "database without name",
			mutate:  func(c *Config) { c.Database.Enabled = true },
			wantErr: true,
		},
		{
			name:    "jobs with bad cron",
			mutate:  func(c *Config) { c.Jobs.Enabled = true; c.Jobs.WaitlistExpiry = "every minute" },
			wantErr: true,
		},
		{
			name:   "jobs with descriptor",
			mutate: func(c *Config) { c.Jobs.Enabled = true; c.Jobs.SnapshotSave = "@hourly" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "sched", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=sched sslmode=disable", d.DSN())
}
