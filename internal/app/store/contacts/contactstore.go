// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"time"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the contacts collection (a single document).
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

// Get returns the contacts profile, or an empty profile if none was saved.
func (s *Store) Get(ctx context.Context) (*models.Contacts, error) {
	var c models.Contacts
	err := s.c.FindOne(ctx, bson.M{"singleton": true}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return &models.Contacts{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save replaces the profile and returns the stored document.
func (s *Store) Save(ctx context.Context, c models.Contacts) (*models.Contacts, error) {
	update := bson.M{
		"$set": bson.M{
			"singleton":        true,
			"phone":            c.Phone,
			"whatsapp":         c.WhatsApp,
			"email":            c.Email,
			"address":          c.Address,
			"facebook":         c.Facebook,
			"instagram":        c.Instagram,
			"twitter":          c.Twitter,
			"youtube":          c.YouTube,
			"tiktok":           c.TikTok,
			"snapchat":         c.Snapchat,
			"telegram":         c.Telegram,
			"linkedin":         c.LinkedIn,
			"vk":               c.VK,
			"business_hours":   c.BusinessHours,
			"seo_description":  c.SEODescription,
			"seo_keywords":     c.SEOKeywords,
			"privacy_policy":   c.PrivacyPolicy,
			"terms_of_service": c.TermsOfService,
			"updated_at":       time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Contacts
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"singleton": true}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
