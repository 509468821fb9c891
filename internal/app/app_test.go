package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/events"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
)

func TestNewWithSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.SQLite.Path = filepath.Join(dir, "db", "catalog.db")
	cfg.Images.RootDir = filepath.Join(dir, "images")
	cfg.Cleanup.RetentionDays = 7

	a, err := New(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	assert.Nil(t, a.Search)
	assert.IsType(t, events.NopPublisher{}, a.Publisher)
	assert.NotNil(t, a.Catalog)
	assert.Equal(t, 7, a.CleanupDefaults().RetentionDays)
	assert.FileExists(t, cfg.Database.SQLite.Path)
}
