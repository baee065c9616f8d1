package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/models"
)

// ProductRepository reads raw feed entries from a collection
type ProductRepository struct {
	db         *MongoDB
	collection string
	log        *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *MongoDB, collection string, log *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:         db,
		collection: collection,
		log:        log.Named("product-repository"),
	}
}

// EnsureIndexes creates the indexes the feed listing relies on. Failures are
// logged; a missing index only slows the listing down.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) {
	indexes := r.db.Collection(r.collection).Indexes()

	// Feed order
	if _, err := indexes.CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}},
	}); err != nil {
		r.log.Warn("Failed to create position index", zap.String("collection", r.collection), zap.Error(err))
	}

	// Product ids must be unique, documents without one are left alone
	if _, err := indexes.CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"id": bson.M{"$exists": true}}),
	}); err != nil {
		r.log.Warn("Failed to create id index", zap.String("collection", r.collection), zap.Error(err))
	}
}

// ListRawProducts returns every product in insertion order. Documents with
// a "position" field are ordered by it first.
func (r *ProductRepository) ListRawProducts(ctx context.Context) ([]models.RawProduct, error) {
	collection := r.db.Collection(r.collection)

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.RawProduct
	for cursor.Next(ctx) {
		var p models.RawProduct
		if err := cursor.Decode(&p); err != nil {
			r.log.Warn("Skipping undecodable product document", zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	r.log.Debug("Listed products", zap.Int("count", len(products)))
	return products, nil
}
