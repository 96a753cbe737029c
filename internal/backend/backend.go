// Package backend opens the store.Store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/apper-canvas/taskflow/internal/config"
	"github.com/apper-canvas/taskflow/internal/db"
	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/apper-canvas/taskflow/internal/store/memory"
	"github.com/apper-canvas/taskflow/internal/store/remote"
	"github.com/apper-canvas/taskflow/internal/store/sqlstore"
)

// Open returns the store for cfg.Backend
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Debug("Opening memory backend")
		return memory.NewSeeded()

	case config.BackendLocal, "":
		path := cfg.DBPath
		if path == "" {
			var err error
			path, err = db.DefaultDBPath()
			if err != nil {
				return nil, err
			}
		}
		logger.Debug("Opening local backend", logger.F("path", path))
		s, err := sqlstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		return s, nil

	case config.BackendAPI:
		logger.Debug("Opening api backend", logger.F("url", cfg.APIURL))
		return remote.New(cfg.APIURL, remote.WithCredentials(cfg.APIProjectID, cfg.APIKey))

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
