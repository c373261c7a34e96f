// internal/domain/models/category.go
package models

import (
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category types for the "Get to Know Russia" section.
const (
	CategoryRestaurants        = "restaurants"
	CategoryTouristAttractions = "touristAttractions"
	CategoryEvents             = "events"
	CategoryShopping           = "shopping"
	CategoryMuseums            = "museums"
	CategoryNaturalPlaces      = "naturalPlaces"
	CategoryHotels             = "hotels"
)

// CategoryTypes lists every bucket type in display order.
var CategoryTypes = []string{
	CategoryRestaurants,
	CategoryTouristAttractions,
	CategoryEvents,
	CategoryShopping,
	CategoryMuseums,
	CategoryNaturalPlaces,
	CategoryHotels,
}

// IsValidCategoryType reports whether t names a known bucket.
func IsValidCategoryType(t string) bool {
	for _, ct := range CategoryTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// CategoryTitle derives a display title from a bucket type:
// "touristAttractions" becomes "Tourist Attractions".
func CategoryTitle(t string) string {
	var b strings.Builder
	for i, r := range t {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CategoryBucket holds every item of one category type. Items are saved as a
// whole; they are not individually addressed by the store.
type CategoryBucket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Items     []CategoryItem     `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CategoryItem is one entry in a bucket. ID and Slug are assigned by the
// server when missing. The hotel fields are only kept for the hotels bucket.
type CategoryItem struct {
	ID          string   `bson:"id" json:"id"`
	Slug        string   `bson:"slug" json:"slug"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Images      []Image  `bson:"images" json:"images"`
	Features    []string `bson:"features" json:"features"`

	// Hotels only
	Address         string   `bson:"address,omitempty" json:"address,omitempty"`
	Phone           string   `bson:"phone,omitempty" json:"phone,omitempty"`
	WhatsApp        string   `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	PriceStartsFrom *float64 `bson:"price_starts_from,omitempty" json:"priceStartsFrom,omitempty"`
	Rating          *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Amenities       []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
}

// StripHotelFields clears the fields that only apply to hotels.
func (it *CategoryItem) StripHotelFields() {
	it.Address = ""
	it.Phone = ""
	it.WhatsApp = ""
	it.PriceStartsFrom = nil
	it.Rating = nil
	it.Amenities = nil
}
