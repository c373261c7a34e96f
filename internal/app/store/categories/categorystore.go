// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"time"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the categories collection: one bucket per type.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// List returns every saved bucket, sorted by type.
func (s *Store) List(ctx context.Context) ([]models.CategoryBucket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CategoryBucket
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the bucket for typ. Returns mongo.ErrNoDocuments if none.
func (s *Store) Get(ctx context.Context, typ string) (*models.CategoryBucket, error) {
	var b models.CategoryBucket
	if err := s.c.FindOne(ctx, bson.M{"type": typ}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Save replaces the bucket's title and items wholesale, creating the bucket
// if needed, and returns the stored document.
func (s *Store) Save(ctx context.Context, b models.CategoryBucket) (*models.CategoryBucket, error) {
	if b.Items == nil {
		b.Items = []models.CategoryItem{}
	}
	update := bson.M{
		"$set": bson.M{
			"type":       b.Type,
			"title":      b.Title,
			"items":      b.Items,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.CategoryBucket
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"type": b.Type}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
