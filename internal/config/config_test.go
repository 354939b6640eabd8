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
	path := filepath.Join(t.TempDir(), "controller.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultController(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
tick_rate: 120
log_level: debug
movement:
  run_speed: 7.5
combat:
  health: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7.5, cfg.Movement.RunSpeed)
	assert.Equal(t, 4.0, cfg.Movement.BaseSpeed, "unset keys keep defaults")
	assert.Equal(t, 3, cfg.Combat.Health)
	assert.Equal(t, 0.55, cfg.Combat.AttackMaxDuration)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"malformed yaml", "tick_rate: [", "parsing config"},
		{"zero tick rate", "tick_rate: 0", "tickrate must be greater than 0"},
		{"bad log level", "log_level: chatty", "loglevel must be one of"},
		{"negative health", "combat:\n  health: -1", "combat.health must be greater than 0"},
		{"squash below one", "combat:\n  squash_peak: 0.5", "combat.squashpeak must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, "config/controller.yaml", Resolve("config/controller.yaml"))

	t.Setenv(EnvPath, "/etc/roguecore.yaml")
	assert.Equal(t, "/etc/roguecore.yaml", Resolve("config/controller.yaml"))
}

func TestController_Step(t *testing.T) {
	cfg := DefaultController()
	assert.Equal(t, time.Second/60, cfg.Step())
}
