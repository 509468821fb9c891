package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
database:
  type: postgres
  postgres:
    host: pg.internal
    port: 6543
search:
  engine: meilisearch
catalog:
  enforce_status_transitions: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "pg.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, 6543, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "meilisearch", cfg.Search.Engine)
	assert.True(t, cfg.Catalog.EnforceStatusTransitions)
	assert.Equal(t, 90, cfg.Cleanup.RetentionDays)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadAppliesEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MEILISEARCH_KEY=from-dotenv\n"), 0o644))
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_HOST", "mysql.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_TOKEN", "rotate-me")

	cfg, err := Load(filepath.Join(dir, "absent.yaml"), envFile)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("MEILISEARCH_KEY") })

	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "mysql.internal", cfg.Database.MySQL.Host)
	assert.Equal(t, 3307, cfg.Database.MySQL.Port)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-dotenv", cfg.Search.Meilisearch.APIKey)
	assert.Equal(t, "rotate-me", cfg.Admin.Token)
	assert.Empty(t, cfg.Admin.UserIDs)
}
