// internal/app/store/hero/herostore.go
package herostore

import (
	"context"
	"time"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the hero collection, which holds a single document.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("hero")}
}

var singleton = bson.M{"singleton": true}

// Get returns the hero. Returns mongo.ErrNoDocuments if none was saved yet.
func (s *Store) Get(ctx context.Context) (*models.Hero, error) {
	var h models.Hero
	if err := s.c.FindOne(ctx, singleton).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Save writes the full hero state, creating the document if needed, and
// returns the stored document. The video fields are written only as a pair;
// a hero missing either one is saved with both removed.
func (s *Store) Save(ctx context.Context, h models.Hero) (*models.Hero, error) {
	now := time.Now().UTC()

	set := bson.M{
		"singleton":  true,
		"title":      h.Title,
		"subtitle":   h.Subtitle,
		"cta_text":   h.CTAText,
		"updated_at": now,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	if h.HasVideo() {
		set["video_url"] = h.VideoURL
		set["asset_id"] = h.AssetID
	} else {
		update["$unset"] = bson.M{"video_url": "", "asset_id": ""}
	}
	update["$set"] = set

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Hero
	if err := s.c.FindOneAndUpdate(ctx, singleton, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearVideo removes the video fields and keeps the text. Returns
// mongo.ErrNoDocuments if there is no hero.
func (s *Store) ClearVideo(ctx context.Context) (*models.Hero, error) {
	update := bson.M{
		"$unset": bson.M{"video_url": "", "asset_id": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Hero
	if err := s.c.FindOneAndUpdate(ctx, singleton, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
