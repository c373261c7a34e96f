// internal/domain/models/tripdate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripDate is the singleton "next trip" announcement.
type TripDate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date        string             `bson:"date" json:"date"`
	Places      []string           `bson:"places" json:"places"`
	Images      []Image            `bson:"images" json:"images"`
	Description string             `bson:"description" json:"description"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
