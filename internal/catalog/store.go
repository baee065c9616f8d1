package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/models"
)

// Snapshot is an immutable catalog with its derived taxonomy
type Snapshot struct {
	Products []models.Product
	Groups   []models.FilterGroup
	LoadedAt time.Time
}

// Store holds the current snapshot. Page sessions read a snapshot once and
// keep it for their lifetime; refreshes swap in a new one.
type Store struct {
	loader  *Loader
	source  Source
	opts    Options
	log     *zap.Logger
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store and performs the first load
func NewStore(ctx context.Context, loader *Loader, source Source, opts Options, log *zap.Logger) *Store {
	s := &Store{
		loader: loader,
		source: source,
		opts:   opts,
		log:    log.Named("catalog-store"),
	}
	s.Refresh(ctx)
	return s
}

// NewStaticStore wraps already loaded products
func NewStaticStore(products []models.Product, opts Options) *Store {
	s := &Store{opts: opts, log: zap.NewNop()}
	s.current.Store(&Snapshot{
		Products: products,
		Groups:   BuildFilterGroups(products, opts),
		LoadedAt: opts.now(),
	})
	return s
}

// Snapshot returns the current catalog
func (s *Store) Snapshot() *Snapshot {
	if snap := s.current.Load(); snap != nil {
		return snap
	}
	return &Snapshot{}
}

// Refresh reloads the feed and swaps the snapshot. The first load falls
// back to an empty catalog; later failures keep the current snapshot.
func (s *Store) Refresh(ctx context.Context) {
	if s.loader == nil {
		return
	}

	var products []models.Product
	if s.current.Load() == nil {
		products = s.loader.Load(ctx, s.source)
	} else {
		var err error
		products, err = s.loader.Fetch(ctx, s.source)
		if err != nil {
			s.log.Warn("Catalog refresh failed, keeping current snapshot", zap.Error(err))
			return
		}
	}

	snap := &Snapshot{
		Products: products,
		Groups:   BuildFilterGroups(products, s.opts),
		LoadedAt: s.opts.now(),
	}
	s.current.Store(snap)
	s.log.Info("Catalog snapshot refreshed",
		zap.Int("products", len(snap.Products)),
		zap.Int("filter_groups", len(snap.Groups)))
}

// StartScheduledRefresh reloads the feed every interval until ctx is canceled
func (s *Store) StartScheduledRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Starting scheduled catalog refresh", zap.Duration("interval", interval))

	for {
		select {
		case <-ticker.C:
			s.Refresh(ctx)
		case <-ctx.Done():
			s.log.Info("Stopping scheduled catalog refresh")
			return
		}
	}
}
