package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "edgeline", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Stats.MatchThreshold)
	assert.Equal(t, 1000.0, cfg.Staking.DefaultBankroll)
	assert.Equal(t, 0.5, cfg.Staking.DefaultKellyFraction)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.UsePostgres())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  environment: production
  log_level: warn
server:
  port: 9090
database:
  host: db.internal
  port: 5432
  name: edgeline
  user: edgeline
staking:
  default_bankroll: 2500
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2500.0, cfg.Staking.DefaultBankroll)
	assert.True(t, cfg.UsePostgres())

	// untouched keys keep their defaults
	assert.Equal(t, 0.5, cfg.Staking.DefaultKellyFraction)
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")
	path := writeConfigFile(t, `
database:
  host: db.internal
  password: ${TEST_DB_PASSWORD}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.App.Environment = "qa"
	assert.Error(t, Validate(cfg))

	cfg.App.Environment = "staging"
	cfg.App.LogLevel = "verbose"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsIncompleteDatabase(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Database.Host = "db.internal"
	// host set but no name or user
	assert.Error(t, Validate(cfg))

	cfg.Database.Name = "edgeline"
	cfg.Database.User = "edgeline"
	assert.NoError(t, Validate(cfg))
}

func TestOverlaySecrets(t *testing.T) {
	cfg := &Config{}
	overlaySecrets(cfg, SecretsOverlay{DatabasePassword: "s3cret", StatsAPIKey: "key-123"})

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "key-123", cfg.Stats.RemoteAPIKey)

	// empty overlay fields never clobber existing values
	overlaySecrets(cfg, SecretsOverlay{})
	assert.Equal(t, "s3cret", cfg.Database.Password)
}
