// Package app wires configuration into the running catalog components.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/cleanup"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/database"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/events"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/imagestore"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/ratelimit"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/scheduler"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/search"
)

const (
	searchFailureThreshold = 3
	searchResetTimeout     = 30 * time.Second
)

// App holds the long-lived components built from a Config.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	DB        *database.GormDB
	Blobs     *imagestore.FileStore
	Search    *search.SearchClient // nil when meilisearch is disabled
	Publisher events.Publisher
	Catalog   *catalog.Service
	Cleanup   *cleanup.Service
	Limiter   *ratelimit.Limiter
	Scheduler *scheduler.Scheduler
}

// New opens the database, applies the schema and builds every component.
// Search and event publishing degrade to disabled when their backends are unreachable.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.InitSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	logger.Info("Database ready", "type", cfg.Database.Type)

	blobs, err := imagestore.NewFileStore(cfg.Images.RootDir, cfg.Images.BaseURL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("image store: %w", err)
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Blobs:     blobs,
		Publisher: events.NopPublisher{},
	}

	opts := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithStatusTransitions(cfg.Catalog.EnforceStatusTransitions),
		catalog.WithMaxImageBytes(cfg.Images.MaxBytes),
	}

	if cfg.Search.Meilisearch.Enabled || cfg.Search.Engine == "meilisearch" {
		ms := cfg.Search.Meilisearch
		client := search.NewSearchClient(ms.Host, ms.APIKey, ms.Index)
		if err := client.InitIndex(); err != nil {
			logger.Warn("Search index unavailable, using database search", "host", ms.Host, "error", err)
		} else {
			a.Search = client
			guarded := search.NewGuardedIndex(client, search.NewCircuitBreaker(searchFailureThreshold, searchResetTimeout, logger))
			opts = append(opts, catalog.WithSearchIndex(guarded, cfg.Search.Engine == "meilisearch"))
			logger.Info("Search index ready", "host", ms.Host, "index", ms.Index)
		}
	}

	if cfg.Events.Enabled {
		pub, err := events.NewRabbitPublisher(events.RabbitConfig{
			URL:            cfg.Events.RabbitMQURL,
			Exchange:       cfg.Events.Exchange,
			PublishTimeout: cfg.Events.PublishTimeout(),
		}, logger)
		if err != nil {
			logger.Warn("Event publishing disabled", "error", err)
		} else {
			a.Publisher = pub
			logger.Info("Publishing events", "exchange", cfg.Events.Exchange)
		}
	}
	opts = append(opts, catalog.WithPublisher(a.Publisher))

	a.Catalog = catalog.NewService(db, blobs, opts...)

	var blobDeleter cleanup.BlobDeleter
	if cfg.Cleanup.DeleteBlobs {
		blobDeleter = blobs
	}
	a.Cleanup = cleanup.NewService(db.DB(), blobDeleter, logger)
	a.Limiter = ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.RequestsPerHour, cfg.RateLimit.Enabled)
	a.Scheduler = scheduler.NewScheduler(cfg, scheduler.Jobs{
		Featured: a.Catalog,
		Purger:   a.Cleanup,
		Limiter:  a.Limiter,
	}, logger)
	return a, nil
}

// CleanupDefaults returns the configured purge settings.
func (a *App) CleanupDefaults() cleanup.CleanupConfig {
	return cleanup.CleanupConfig{
		RetentionDays:    a.Config.Cleanup.RetentionDays,
		MaxDeletionCount: a.Config.Cleanup.MaxDeletionCount,
		DeleteBlobs:      a.Config.Cleanup.DeleteBlobs,
	}
}

// Close stops the scheduler and releases connections.
func (a *App) Close() error {
	a.Scheduler.Stop()
	return errors.Join(a.Publisher.Close(), a.DB.Close())
}
