// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "netsim.yaml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultDB, cfg.DB)
	assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
	assert.True(t, cfg.Color)
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}

func TestLoad_noFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_file(t *testing.T) {
	p := writeFile(t, "db: runs.db\nmax_steps: 20\nlog_level: debug\ncolor: false\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, &Config{DB: "runs.db", MaxSteps: 20, LogLevel: "debug", Color: false}, cfg)
}

func TestLoad_partial(t *testing.T) {
	p := writeFile(t, "max_steps: 7\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxSteps)
	assert.Equal(t, DefaultDB, cfg.DB)
}

func TestLoad_env(t *testing.T) {
	t.Setenv("NETSIM_DB", "env.db")
	t.Setenv("NETSIM_MAX_STEPS", "42")
	t.Setenv("NETSIM_COLOR", "false")
	p := writeFile(t, "db: file.db\nmax_steps: 20\n")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DB)
	assert.Equal(t, 42, cfg.MaxSteps)
	assert.False(t, cfg.Color)
}

func TestLoad_errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "max_steps: [\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "max_steps: 0\n"))
	assert.EqualError(t, err, "max_steps must be at least 1, got 0")

	_, err = Load(writeFile(t, "log_level: loud\n"))
	assert.Error(t, err)

	t.Setenv("NETSIM_MAX_STEPS", "many")
	_, err = Load("")
	assert.Error(t, err)
}
