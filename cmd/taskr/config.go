package main

import (
	"fmt"
	"strings"

	"taskr/internal/config"
	"taskr/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
	cfg *config.Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *config.Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, cfg: cfg}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		// A store next to the working copy keeps development sessions apart
		// from the real one.
		repo, err := sqlite.New("taskr.db")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(rf.cfg)
	}
}

// environmentOf maps the configured environment onto a factory environment.
func environmentOf(cfg *config.Config) Environment {
	switch Environment(strings.ToLower(cfg.Application.Environment)) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}
