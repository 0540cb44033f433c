package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: "9090"
database:
  host: "db.internal"
  port: "3306"
  user: "civicsync"
  dbname: "civicsync"
providers:
  congress_base_url: "https://api.congress.gov/v3"
  census_base_url: "https://api.census.gov/data/2023/acs/acs5"
  request_timeout: "5s"
sync:
  pace_interval: "250ms"
  allow_manual: true
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("CONGRESS_API_KEY", "congress-key")
	t.Setenv("CENSUS_API_KEY", "census-key")
	t.Setenv("SYNC_SECRET", "trigger-secret")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "congress-key", cfg.Providers.CongressAPIKey)
	assert.Equal(t, "census-key", cfg.Providers.CensusAPIKey)
	assert.Equal(t, "trigger-secret", cfg.Sync.Secret)
	assert.Equal(t, 5*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.PaceInterval)
	assert.Equal(t, 250, cfg.Providers.CongressPageSize, "page size defaults when unset")
	assert.True(t, cfg.Sync.AllowManual)
}

func TestLoad_DefaultsWhenDurationsOmitted(t *testing.T) {
	setRequiredEnv(t)
	yaml := `
database: {host: "h", user: "u", dbname: "d"}
providers:
  congress_base_url: "https://example.test"
  census_base_url: "https://example.test"
`
	cfg, err := Load(writeConfig(t, yaml))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, time.Second, cfg.Sync.PaceInterval)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_MissingAPIKeyIsConfigError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONGRESS_API_KEY", "")

	_, err := Load(writeConfig(t, testYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONGRESS_API_KEY")
}

func TestLoad_MissingDatabaseConfigIsError(t *testing.T) {
	setRequiredEnv(t)
	_, err := Load(writeConfig(t, `server: {port: "1"}`))
	require.Error(t, err)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	setRequiredEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_BadDurationIsError(t *testing.T) {
	setRequiredEnv(t)
	yaml := testYAML + "\n"
	cfgPath := writeConfig(t, yaml)
	_, err := Load(cfgPath)
	require.NoError(t, err)

	_, err = Load(writeConfig(t, `
database: {host: "h", user: "u", dbname: "d"}
providers:
  congress_base_url: "x"
  census_base_url: "y"
  request_timeout: "soon"
`))
	require.Error(t, err)
}
