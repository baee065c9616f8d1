package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/models"
)

const (
	// DefaultNewWindow is how recent createdAt must be for the "new" badge
	DefaultNewWindow = 30 * 24 * time.Hour

	// DefaultPlaceholderImage is used when a feed entry has no image
	DefaultPlaceholderImage = "/assets/placeholder.svg"
)

var (
	// ErrEmptyFeed is returned by ParseFeed when there is nothing to decode
	ErrEmptyFeed = errors.New("product feed is empty")
	// ErrNoSource is returned by Fetch when no feed is configured
	ErrNoSource = errors.New("no product feed configured")
)

// Source provides the raw JSON product feed
type Source interface {
	// Read returns the feed bytes
	Read(ctx context.Context) ([]byte, error)

	// Name returns the name of the source
	Name() string
}

// Options tunes normalization and taxonomy derivation
type Options struct {
	Now              func() time.Time
	NewWindow        time.Duration
	PlaceholderImage string
	PreferredOrder   []string
	Hidden           []string
}

// DefaultOptions returns the storefront defaults
func DefaultOptions() Options {
	return Options{
		Now:              time.Now,
		NewWindow:        DefaultNewWindow,
		PlaceholderImage: DefaultPlaceholderImage,
		PreferredOrder: []string{
			"Industry", "Protection", "Category", "Material",
			"Season", "Gender", "Size", "Color",
		},
		Hidden: []string{models.OtherCategory},
	}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// ParseFeed decodes the JSON array feed
func ParseFeed(data []byte) ([]models.RawProduct, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyFeed
	}
	var raw []models.RawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode product feed: %w", err)
	}
	return raw, nil
}

// Normalize converts feed entries to products 1:1, keeping feed order
func Normalize(raw []models.RawProduct, opts Options) []models.Product {
	now := opts.now()
	products := make([]models.Product, 0, len(raw))
	for i, r := range raw {
		p := models.Product{
			ID:           string(r.ID),
			Handle:       r.Handle,
			Name:         r.Name,
			Vendor:       r.Vendor,
			URL:          r.URL,
			Image:        r.Image,
			ImageAlt:     r.ImageAlt,
			Price:        r.Price,
			ComparePrice: r.ComparePrice,
			Available:    r.Available,
			RawTags:      append([]string(nil), r.Tags...),
			ParsedTags:   ParseTags(r.Tags),
			Type:         r.Type,
			CreatedAt:    r.CreatedAt,
			Variants:     append([]models.Variant(nil), r.Variants...),
			Featured:     i,
		}
		if p.Image == "" {
			p.Image = opts.PlaceholderImage
		}
		if p.ImageAlt == "" {
			p.ImageAlt = p.Name
		}
		if p.URL == "" && p.Handle != "" {
			p.URL = "/products/" + p.Handle
		}
		p.Badge = ComputeBadge(&p, now, opts.NewWindow)
		products = append(products, p)
	}
	return products
}

// ComputeBadge returns sale, new or none for a product
func ComputeBadge(p *models.Product, now time.Time, window time.Duration) models.Badge {
	if p.OnSale() {
		return models.BadgeSale
	}
	if window <= 0 {
		window = DefaultNewWindow
	}
	if created := ParseTime(p.CreatedAt); !created.IsZero() && created.After(now.Add(-window)) {
		return models.BadgeNew
	}
	return models.BadgeNone
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO timestamp. Empty or unparseable input yields the zero time.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Loader reads a feed source into products
type Loader struct {
	opts Options
	log  *zap.Logger
}

// NewLoader creates a new loader
func NewLoader(opts Options, log *zap.Logger) *Loader {
	return &Loader{
		opts: opts,
		log:  log.Named("catalog-loader"),
	}
}

// Fetch reads, parses and normalizes the feed, reporting any failure
func (l *Loader) Fetch(ctx context.Context, src Source) ([]models.Product, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	data, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read product feed from %s: %w", src.Name(), err)
	}

	raw, err := ParseFeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product feed from %s: %w", src.Name(), err)
	}

	products := dedupe(Normalize(raw, l.opts), l.log)
	l.log.Info("Catalog loaded",
		zap.String("source", src.Name()),
		zap.Int("products", len(products)))
	return products, nil
}

// Load is Fetch for start-up: failures are logged and yield an empty
// catalog so the page can still render its empty state.
func (l *Loader) Load(ctx context.Context, src Source) []models.Product {
	products, err := l.Fetch(ctx, src)
	if err != nil {
		l.log.Warn("Product feed unavailable, using empty catalog", zap.Error(err))
		return []models.Product{}
	}
	return products
}

// dedupe keeps the first record for each id. Featured keeps the feed index.
func dedupe(products []models.Product, log *zap.Logger) []models.Product {
	seen := make(map[string]struct{}, len(products))
	out := products[:0]
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			log.Warn("Duplicate product id in feed, keeping first",
				zap.String("id", p.ID),
				zap.String("name", p.Name))
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
