package cmd

import (
	"errors"
	"fmt"

	"guardias/core/config"
	"guardias/core/database"
	"guardias/core/feed"
	"guardias/core/logger"
	"guardias/core/storage"
	"guardias/feature/sources"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps are the shared collaborators built from configuration.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  storage.Client
}

// bootstrap loads configuration and opens the optional database and storage.
// Neither is fatal: the feed sources work without them.
func bootstrap() (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	d := &deps{cfg: cfg, logger: logg}

	switch db, err := database.Open(cfg.Database); {
	case errors.Is(err, database.ErrDisabled):
		logg.Info("Database disabled, the mysql source and the v1 API are unavailable")
	case err != nil:
		logg.Warn("Optional database connection failed", zap.Error(err))
	default:
		d.db = db
		logg.Info("Connected to school database", zap.String("driver", cfg.Database.Driver))
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Optional storage client failed, snapshots fall back to local files", zap.Error(err))
		} else {
			d.store = client
		}
	}

	return d, nil
}

func (d *deps) sources() *sources.Registry {
	return sources.NewDefaultRegistry(sources.Deps{
		Feed:    d.cfg.Feed,
		DB:      d.db,
		Storage: d.store,
		Bucket:  d.cfg.Storage.Bucket,
		Logger:  d.logger,
	})
}

func (d *deps) snapshots() []feed.Snapshot {
	return []feed.Snapshot{
		d.cfg.Feed.CSVSnapshot(d.store, d.cfg.Storage.Bucket),
		d.cfg.Feed.JSONSnapshot(d.store, d.cfg.Storage.Bucket),
	}
}
