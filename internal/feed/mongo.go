package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
)

// ProductLister lists raw feed entries from a store
type ProductLister interface {
	ListRawProducts(ctx context.Context) ([]models.RawProduct, error)
}

// MongoSource reads feed entries from a MongoDB collection. Entries are
// re-encoded to the JSON feed shape so they go through the same loader path
// as an embedded feed.
type MongoSource struct {
	repo       ProductLister
	collection string
}

var _ catalog.Source = (*MongoSource)(nil)

// NewMongoSource creates a new MongoDB source
func NewMongoSource(repo ProductLister, collection string) *MongoSource {
	return &MongoSource{repo: repo, collection: collection}
}

// Name returns the name of the source
func (s *MongoSource) Name() string {
	return "mongodb:" + s.collection
}

// Read lists the products and encodes them as a JSON array
func (s *MongoSource) Read(ctx context.Context) ([]byte, error) {
	raw, err := s.repo.ListRawProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if raw == nil {
		raw = []models.RawProduct{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}
	return data, nil
}
