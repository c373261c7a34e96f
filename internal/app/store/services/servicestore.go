// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratatour/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateType is returned when a service with the type already exists.
var ErrDuplicateType = errors.New("a service with this type already exists")

// Store provides access to the services collection, keyed by type.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
}

// List returns all services in creation order.
func (s *Store) List(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByType loads a service. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByType(ctx context.Context, typ string) (*models.Service, error) {
	var svc models.Service
	if err := s.c.FindOne(ctx, bson.M{"type": typ}).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// Create inserts a new service. Returns ErrDuplicateType if the type is taken.
func (s *Store) Create(ctx context.Context, svc models.Service) (models.Service, error) {
	now := time.Now().UTC()
	svc.ID = primitive.NewObjectID()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Service{}, ErrDuplicateType
		}
		return models.Service{}, err
	}
	return svc, nil
}

// Update replaces every field but _id, type and created_at for the service
// with the given type. Returns mongo.ErrNoDocuments if not found.
func (s *Store) Update(ctx context.Context, typ string, svc models.Service) (*models.Service, error) {
	update := bson.M{
		"$set": bson.M{
			"title":        svc.Title,
			"description":  svc.Description,
			"icon":         svc.Icon,
			"images":       svc.Images,
			"duration":     svc.Duration,
			"group_size":   svc.GroupSize,
			"availability": svc.Availability,
			"locations":    svc.Locations,
			"price":        svc.Price,
			"price_unit":   svc.PriceUnit,
			"rating":       svc.Rating,
			"features":     svc.Features,
			"itinerary":    svc.Itinerary,
			"contact_info": svc.ContactInfo,
			"benefits":     svc.Benefits,
			"updated_at":   time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Service
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"type": typ}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the service with the given type.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, typ string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"type": typ})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
