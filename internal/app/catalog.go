// Package app wires configuration into the catalog shared by the binaries.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/feed"
	"github.com/bradykim7/shopfront/internal/storage"
	"github.com/bradykim7/shopfront/pkg/config"
)

// Catalog bundles what the storefront and the bot both need
type Catalog struct {
	Store       *catalog.Store
	Collections catalog.Collections
	Options     catalog.Options

	closers []func() error
	log     *zap.Logger
}

// CatalogOptions maps configuration onto catalog options
func CatalogOptions(cfg *config.Config) catalog.Options {
	opts := catalog.DefaultOptions()
	opts.NewWindow = time.Duration(cfg.NewBadgeDays) * 24 * time.Hour
	if cfg.PlaceholderImage != "" {
		opts.PlaceholderImage = cfg.PlaceholderImage
	}
	if len(cfg.PreferredFilterOrder) > 0 {
		opts.PreferredOrder = cfg.PreferredFilterOrder
	}
	if len(cfg.HiddenFilterCategories) > 0 {
		opts.Hidden = cfg.HiddenFilterCategories
	}
	return opts
}

// OpenCatalog picks the feed source, loads the first snapshot and reads the
// collection table. A source that cannot be opened leaves an empty catalog.
func OpenCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Catalog, error) {
	c := &Catalog{
		Options: CatalogOptions(cfg),
		log:     log.Named("app"),
	}

	collections, err := catalog.LoadCollections(cfg.CollectionsFile)
	if err != nil {
		return nil, err
	}
	c.Collections = collections

	source := c.openSource(ctx, cfg, log)
	loader := catalog.NewLoader(c.Options, log)
	c.Store = catalog.NewStore(ctx, loader, source, c.Options, log)

	return c, nil
}

func (c *Catalog) openSource(ctx context.Context, cfg *config.Config, log *zap.Logger) catalog.Source {
	switch {
	case cfg.MongoDBURI != "":
		db, err := storage.NewMongoDB(ctx, cfg, log)
		if err != nil {
			c.log.Warn("MongoDB feed unavailable, using empty catalog", zap.Error(err))
			return nil
		}
		c.closers = append(c.closers, db.Disconnect)
		repo := storage.NewProductRepository(db, cfg.MongoDBCollection, log)
		repo.EnsureIndexes(ctx)
		return feed.NewMongoSource(repo, cfg.MongoDBCollection)
	case cfg.FeedURL != "":
		return feed.NewHTTPSource(cfg.FeedURL, cfg.FeedSelector, log)
	case cfg.FeedPage != "":
		return feed.NewPageSource(cfg.FeedPage, cfg.FeedSelector)
	case cfg.FeedFile != "":
		return feed.NewFileSource(cfg.FeedFile)
	default:
		return nil
	}
}

// RefreshEvery starts the scheduled refresh when minutes is positive.
// It blocks until ctx is canceled, so run it in a goroutine.
func (c *Catalog) RefreshEvery(ctx context.Context, minutes int) {
	if minutes <= 0 {
		return
	}
	c.Store.StartScheduledRefresh(ctx, time.Duration(minutes)*time.Minute)
}

// Close releases the feed source connections
func (c *Catalog) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
