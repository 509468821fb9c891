package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB implements catalog.Store on top of gorm.
type GormDB struct {
	db *gorm.DB
}

var _ catalog.Store = (*GormDB)(nil)

// Open connects to the database selected by cfg.Type.
func Open(cfg config.DatabaseConfig) (*GormDB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Type) {
	case "mysql":
		dialector = mysqlDialector(cfg.MySQL)
	case "postgres", "postgresql":
		dialector = postgresDialector(cfg.Postgres)
	case "sqlite", "":
		d, err := sqliteDialector(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		dialector = d
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection, used by the health endpoint.
func (gdb *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.Property{},
		&models.PropertyTag{},
		&models.PropertyUnit{},
		&models.PropertyImage{},
		&models.DeleteLog{},
	)
}

// Transaction runs fn with a store bound to one database transaction.
func (gdb *GormDB) Transaction(ctx context.Context, fn func(tx catalog.Store) error) error {
	return gdb.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormDB{db: tx})
	})
}

func (gdb *GormDB) with(ctx context.Context) *gorm.DB {
	return gdb.db.WithContext(ctx)
}

// lookupErr maps gorm.ErrRecordNotFound onto catalog.ErrNotFound.
func lookupErr(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", catalog.ErrNotFound, kind, id)
	}
	return err
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
