package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sqliteDialector(cfg config.SQLiteConfig) (gorm.Dialector, error) {
	path := cfg.Path
	if path == "" {
		path = "catalog.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	return sqlite.Open(path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"), nil
}

// OpenMemory opens a private in-memory sqlite database with the schema applied.
// Each call gets its own database; tests use it through dbtest.
func OpenMemory() (*GormDB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// a single connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)

	gdb := NewGormDBFromDB(db)
	if err := gdb.InitSchema(); err != nil {
		_ = gdb.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}
