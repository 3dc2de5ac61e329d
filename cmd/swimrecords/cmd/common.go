package cmd

import (
	"context"
	"fmt"

	"github.com/dbsmedya/swimrecords/internal/config"
	"github.com/dbsmedya/swimrecords/internal/database"
	"github.com/dbsmedya/swimrecords/internal/logger"
	"github.com/dbsmedya/swimrecords/internal/source"
	"github.com/dbsmedya/swimrecords/internal/store"
)

// openStore connects to the records database. The caller closes the manager.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store.Store, *database.Manager, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, nil, err
	}

	dbManager := database.NewManager(&cfg.Source)
	if err := dbManager.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	st, err := store.New(dbManager.DB, cfg.Store.Tables, cfg.Import.BatchSize, log)
	if err != nil {
		dbManager.Close()
		return nil, nil, err
	}
	return st, dbManager, nil
}

// openSource builds the configured data source. The returned cleanup func is
// always safe to call.
func openSource(ctx context.Context, cfg *config.Config, log *logger.Logger) (source.Source, func(), error) {
	noop := func() {}

	var loader source.Loader
	cleanup := noop
	if cfg.UsesDatabase() {
		st, dbManager, err := openStore(ctx, cfg, log)
		if err != nil {
			return nil, noop, err
		}
		loader = st
		cleanup = func() {
			if err := dbManager.Close(); err != nil {
				log.Warnf("Failed to close database: %v", err)
			}
		}
	}

	src, err := source.FromConfig(cfg, loader)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	return src, cleanup, nil
}
