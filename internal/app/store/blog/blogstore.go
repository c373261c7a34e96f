// internal/app/store/blog/blogstore.go
package blogstore

import (
	"context"
	"time"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blog_posts")}
}

// List returns all posts, newest first.
func (s *Store) List(ctx context.Context) ([]models.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BlogPost
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a post. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a post, assigning its id and timestamps.
func (s *Store) Create(ctx context.Context, p models.BlogPost) (models.BlogPost, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Images == nil {
		p.Images = []models.Image{}
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.BlogPost{}, err
	}
	return p, nil
}

// Update overwrites the editable fields of a post.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.BlogPost) (*models.BlogPost, error) {
	images := p.Images
	if images == nil {
		images = []models.Image{}
	}
	update := bson.M{
		"$set": bson.M{
			"title":      p.Title,
			"content":    p.Content,
			"excerpt":    p.Excerpt,
			"images":     images,
			"author":     p.Author,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.BlogPost
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a post. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
