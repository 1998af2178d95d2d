package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/grevocab/internal/catalog"
	"github.com/at-ishikawa/grevocab/internal/config"
	"github.com/at-ishikawa/grevocab/internal/database"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	items, err := catalog.ReadDeckFiles(cfg.Deck.Files...)
	if err != nil {
		return nil, fmt.Errorf("read deck files: %w", err)
	}
	c, err := catalog.New(items)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}

// openRepository returns the progress repository for the storage driver.
// The returned function releases the database connection, if any.
func openRepository(ctx context.Context, storage config.StorageConfig) (progress.Repository, func(), error) {
	if storage.Driver == config.StorageDriverYAML {
		return progress.NewYAMLRepository(storage.Path), func() {}, nil
	}

	db, err := database.Open(storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return progress.NewDBRepository(db), func() { _ = db.Close() }, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*progress.Store, func(), error) {
	repo, closeRepo, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	store, err := progress.NewStore(ctx, repo)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	return store, closeRepo, nil
}
