package database

import (
	"fmt"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresDialector runs gorm over the lib/pq driver rather than pgx.
func postgresDialector(cfg config.PostgresConfig) gorm.Dialector {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslmode)
	return postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	})
}
