package main

import (
	"context"
	"fmt"
	"os"

	"taskr/internal/api"
	"taskr/internal/cli"
	"taskr/internal/client"
	"taskr/internal/config"
	"taskr/internal/logging"
	"taskr/internal/session"
	"taskr/internal/theme"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, newBusinessAPI)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newBusinessAPI wires the local store and the HTTP client together. It
// runs after command-line overrides have been applied to cfg.
func newBusinessAPI(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	repo, err := NewRepositoryFactory(environmentOf(cfg), cfg).CreateRepository()
	if err != nil {
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}

	sessions := session.NewStore(repo, cfg.Session.TTLDays)
	if err := sessions.Prune(context.Background()); err != nil {
		logging.Debugf("could not prune expired sessions: %v\n", err)
	}

	themes := theme.NewStore(repo)
	taskClient := client.New(cfg.API.BaseURL, cfg.API.Timeout)

	return api.NewBusinessAPI(taskClient, sessions, themes), repo.Close, nil
}
