package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	configpkg "github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DatabaseType represents the type of database to use
type DatabaseType string

const (
	DatabaseTypeSQLite   DatabaseType = "sqlite"
	DatabaseTypePostgres DatabaseType = "postgres"
)

// Config holds database connection configuration
type Config struct {
	// Database type (sqlite or postgres)
	Type DatabaseType

	// SQLite configuration
	DatabasePath string

	// PostgreSQL configuration
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string

	// Connection pool settings (applies to both database types)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewConfig creates a new database configuration from environment variables.
// Supports both PostgreSQL (production) and SQLite (local development):
//  1. DB_TYPE=postgres → PostgreSQL (DB_HOST, DB_PASSWORD, etc. required)
//  2. DB_TYPE=sqlite or DB_PATH set → file-based SQLite (default ./data/compliance.db)
//  3. No database configuration at all → in-memory SQLite for quick testing
func NewConfig() *Config {
	dbTypeStr := strings.ToLower(configpkg.GetEnvOrDefault("DB_TYPE", ""))

	dbTypeSet := os.Getenv("DB_TYPE") != ""
	dbPathSet := os.Getenv("DB_PATH") != ""
	hasSQLiteConfig := dbPathSet || (dbTypeSet && dbTypeStr != "postgres" && dbTypeStr != "postgresql")

	var dbType DatabaseType
	switch dbTypeStr {
	case "postgres", "postgresql":
		dbType = DatabaseTypePostgres
	case "sqlite", "":
		dbType = DatabaseTypeSQLite
	default:
		slog.Warn("Unknown DB_TYPE, defaulting to sqlite", "db_type", dbTypeStr)
		dbType = DatabaseTypeSQLite
	}

	config := &Config{Type: dbType}

	if dbType == DatabaseTypeSQLite {
		// SQLite serializes writes through a single connection to avoid
		// "database is locked" errors under concurrent transitions.
		config.MaxOpenConns = configpkg.GetEnvIntOrDefault("DB_MAX_OPEN_CONNS", 1)
		config.MaxIdleConns = configpkg.GetEnvIntOrDefault("DB_MAX_IDLE_CONNS", 1)

		if !hasSQLiteConfig {
			config.DatabasePath = ":memory:"
			slog.Info("No database configuration found, using in-memory SQLite")
		} else {
			config.DatabasePath = configpkg.GetEnvOrDefault("DB_PATH", "./data/compliance.db")
		}

		if config.DatabasePath != ":memory:" {
			dbDir := filepath.Dir(config.DatabasePath)
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				slog.Warn("Failed to create database directory", "path", dbDir, "error", err)
			}
		}
	} else {
		config.Host = configpkg.GetEnvOrDefault("DB_HOST", "localhost")
		config.Port = configpkg.GetEnvOrDefault("DB_PORT", "5432")
		config.Username = configpkg.GetEnvOrDefault("DB_USERNAME", "postgres")
		config.Password = configpkg.GetEnvOrDefault("DB_PASSWORD", "")
		config.Database = configpkg.GetEnvOrDefault("DB_NAME", "compliance_db")
		config.SSLMode = configpkg.GetEnvOrDefault("DB_SSLMODE", "disable")

		config.MaxOpenConns = configpkg.GetEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25)
		config.MaxIdleConns = configpkg.GetEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5)

		slog.Info("Database configuration (PostgreSQL)",
			"host", config.Host,
			"port", config.Port,
			"database", config.Database,
			"sslmode", config.SSLMode,
		)
	}

	config.ConnMaxLifetime = time.Hour
	config.ConnMaxIdleTime = 15 * time.Minute

	return config
}

// Connect establishes a GORM connection to the configured database
func Connect(config *Config) (*gorm.DB, error) {
	var gormDB *gorm.DB
	var err error

	if config.Type == DatabaseTypeSQLite {
		slog.Info("Connecting to SQLite database", "path", config.DatabasePath)
		gormDB, err = gorm.Open(sqlite.Open(config.DatabasePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database connection: %w", err)
		}
	} else {
		// Use net/url to properly encode credentials (handles special
		// characters in passwords)
		dsnURL := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(config.Username, config.Password),
			Host:   fmt.Sprintf("%s:%s", config.Host, config.Port),
			Path:   config.Database,
		}
		q := dsnURL.Query()
		q.Set("sslmode", config.SSLMode)
		dsnURL.RawQuery = q.Encode()

		slog.Info("Connecting to PostgreSQL database", "host", config.Host, "port", config.Port, "database", config.Database)
		gormDB, err = gorm.Open(postgres.Open(dsnURL.String()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database connection: %w", err)
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, nil
}

// Migrate runs GORM auto-migration for all compliance models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SellerVerification{},
		&models.TaxFormW9{},
		&models.Tax1099K{},
		&models.PublicDisclosure{},
		&models.ComplianceAuditLog{},
		&models.Notification{},
		&models.PerformanceMetricsPeriod{},
	)
}
