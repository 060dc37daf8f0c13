package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// connectDB establishes a connection to the database
func connectDB(config *Config, log *logrus.Logger) (*sql.DB, error) {
	log.WithFields(logrus.Fields{
		"component": "database",
		"engine":    config.DBEngine,
		"host":      config.DBHost,
		"db":        config.DBName,
	}).Info("connecting to database")

	var dsn string
	var driverName string

	switch config.DBEngine {
	case "postgresql", "postgres":
		driverName = "postgres" // lib/pq uses "postgres" as driver name
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.DBHost,
			config.DBPort,
			config.DBUser,
			config.DBPass,
			config.DBName,
			config.DBSSLMode,
		)
	case "mysql", "mariadb":
		driverName = "mysql"
		dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true",
			config.DBUser,
			config.DBPass,
			config.DBHost,
			config.DBPort,
			config.DBName,
		)
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
		dsn = config.DBPath
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", config.DBEngine)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// initLayoutsTable creates the layouts table if it doesn't exist. The whole
// LayoutConfig is stored as a single JSON document in the config column so a
// save/load cycle round-trips every field and every ordering verbatim.
func (s *Service) initLayoutsTable() error {
	var createTableQuery string

	switch s.config.DBEngine {
	case "postgresql", "postgres":
		createTableQuery = `
			CREATE TABLE IF NOT EXISTS layouts (
				id SERIAL PRIMARY KEY,
				transaction_type VARCHAR(50) NOT NULL,
				tenant_id VARCHAR(255) NOT NULL,
				config JSONB NOT NULL DEFAULT '{}'::jsonb,
				created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				modified TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				deleted_at TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_layouts_tenant ON layouts(tenant_id);
			CREATE INDEX IF NOT EXISTS idx_layouts_type ON layouts(transaction_type);
			CREATE INDEX IF NOT EXISTS idx_layouts_deleted ON layouts(deleted_at);
		`
	case "mysql", "mariadb":
		createTableQuery = `
			CREATE TABLE IF NOT EXISTS layouts (
				id INT AUTO_INCREMENT PRIMARY KEY,
				transaction_type VARCHAR(50) NOT NULL,
				tenant_id VARCHAR(255) NOT NULL,
				config JSON NOT NULL,
				created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				modified TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				deleted_at TIMESTAMP NULL,
				INDEX idx_tenant (tenant_id),
				INDEX idx_type (transaction_type),
				INDEX idx_deleted (deleted_at)
			);
		`
	case "sqlite", "sqlite3":
		createTableQuery = `
			CREATE TABLE IF NOT EXISTS layouts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				transaction_type TEXT NOT NULL,
				tenant_id TEXT NOT NULL,
				config TEXT NOT NULL DEFAULT '{}',
				created TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				modified TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				deleted_at TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_layouts_tenant ON layouts(tenant_id);
			CREATE INDEX IF NOT EXISTS idx_layouts_type ON layouts(transaction_type);
			CREATE INDEX IF NOT EXISTS idx_layouts_deleted ON layouts(deleted_at);
		`
	default:
		return fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	if _, err := s.db.Exec(createTableQuery); err != nil {
		return fmt.Errorf("failed to create layouts table: %w", err)
	}

	s.log.WithField("component", "database").Info("layouts table ready")
	return nil
}

// initSegmentMappingsTable creates the segment_mappings table if it doesn't exist
func (s *Service) initSegmentMappingsTable() error {
	var createTableQuery string

	switch s.config.DBEngine {
	case "postgresql", "postgres":
		createTableQuery = `
			CREATE TABLE IF NOT EXISTS segment_mappings (
				id SERIAL PRIMARY KEY,
				transaction_type VARCHAR(50) NOT NULL,
				segment VARCHAR(50) NOT NULL,
				data_key VARCHAR(255) NOT NULL,
				description TEXT,
				UNIQUE(transaction_type, segment)
			);
			CREATE INDEX IF NOT EXISTS idx_segment_mappings_type ON segment_mappings(transaction_type);
		`
	case "mysql", "mariadb":
		createTableQuery = `
			CREATE TABLE IF NOT EXISTS segment_mappings (
				id INT AUTO_INCREMENT PRIMARY KEY,
				transaction_type VARCHAR(50) NOT NULL,
				segment VARCHAR(50) NOT NULL,
				data_key VARCHAR(255) NOT NULL,
				description TEXT,
				UNIQUE KEY unique_segment (transaction_type, segment),
				INDEX idx_type (transaction_type)
			);
		`
	case "sqlite", "sqlite3":
		createTableQuery = `
			CREATE TABLE IF NOT EXISTS segment_mappings (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				transaction_type TEXT NOT NULL,
				segment TEXT NOT NULL,
				data_key TEXT NOT NULL,
				description TEXT,
				UNIQUE(transaction_type, segment)
			);
			CREATE INDEX IF NOT EXISTS idx_segment_mappings_type ON segment_mappings(transaction_type);
		`
	default:
		return fmt.Errorf("unsupported database engine: %s", s.config.DBEngine)
	}

	if _, err := s.db.Exec(createTableQuery); err != nil {
		return fmt.Errorf("failed to create segment_mappings table: %w", err)
	}

	s.log.WithField("component", "database").Info("segment_mappings table ready")
	return nil
}
