package config

import (
	"fmt"
	"time"

	"github.com/karmic/meals-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the configured database and stores it as the shared handle
func ConnectDatabase(cfg *Config) error {
	db, err := OpenDatabase(cfg.DBDriver, cfg.DatabaseURL, gormLogLevel(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	log.Info().Str("driver", cfg.DBDriver).Msg("Database connection established successfully")
	return nil
}

// OpenDatabase opens a gorm connection for the given driver and DSN.
// SQLite connections are pinned to a single connection with foreign keys enabled
// so that in-memory databases behave like one database.
func OpenDatabase(driver, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(zerologWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// Migrate creates or updates the tables for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Employee{},
		&models.Chef{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the shared database handle (used by tests)
func SetDB(db *gorm.DB) {
	DB = db
}

func gormLogLevel(cfg *Config) logger.LogLevel {
	switch {
	case cfg.IsTest():
		return logger.Silent
	case cfg.IsDevelopment() && cfg.LogLevel == "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// zerologWriter routes gorm's logger output through zerolog
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}
