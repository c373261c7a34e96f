// internal/app/store/tripdate/tripdatestore.go
package tripdatestore

import (
	"context"
	"time"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the trip_dates collection (a single document).
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("trip_dates")}
}

// Get returns the trip date. Returns mongo.ErrNoDocuments if none was saved yet.
func (s *Store) Get(ctx context.Context) (*models.TripDate, error) {
	var td models.TripDate
	if err := s.c.FindOne(ctx, bson.M{"singleton": true}).Decode(&td); err != nil {
		return nil, err
	}
	return &td, nil
}

// Save replaces the trip date and returns the stored document.
func (s *Store) Save(ctx context.Context, td models.TripDate) (*models.TripDate, error) {
	if td.Places == nil {
		td.Places = []string{}
	}
	if td.Images == nil {
		td.Images = []models.Image{}
	}
	update := bson.M{
		"$set": bson.M{
			"singleton":   true,
			"date":        td.Date,
			"places":      td.Places,
			"images":      td.Images,
			"description": td.Description,
			"updated_at":  time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.TripDate
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"singleton": true}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
