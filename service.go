package main

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Service represents the application service with database connection
type Service struct {
	db     *sql.DB
	config *Config
	log    *logrus.Logger
}

// NewService creates a new service instance with database connection
func NewService(config *Config, log *logrus.Logger) (*Service, error) {
	db, err := connectDB(config, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	service := &Service{
		db:     db,
		config: config,
		log:    log,
	}

	if err := service.initLayoutsTable(); err != nil {
		return nil, fmt.Errorf("failed to initialize layouts table: %w", err)
	}
	if err := service.initSegmentMappingsTable(); err != nil {
		return nil, fmt.Errorf("failed to initialize segment mappings table: %w", err)
	}
	if err := service.seedSegmentMappings(); err != nil {
		return nil, fmt.Errorf("failed to seed segment mappings: %w", err)
	}

	return service, nil
}
