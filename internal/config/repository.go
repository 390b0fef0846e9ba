package config

import (
	"fmt"
	"os"

	"taskr/internal/repository/sqlite"
)

// CreateRepository opens the local store at the configured path, creating
// the storage directory if needed.
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	repo, err := sqlite.New(config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
