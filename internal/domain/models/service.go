// internal/domain/models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service business types. Each exists in an English and an Arabic spelling;
// both spellings are distinct, independently stored records.
const (
	ServiceTourism   = "tourism"
	ServiceHotels    = "hotels"
	ServiceTransport = "transport"
	ServiceMedical   = "medical"

	ServiceTourismAR   = "سياحة"
	ServiceHotelsAR    = "فنادق"
	ServiceTransportAR = "نقل"
	ServiceMedicalAR   = "علاج"
)

// ServiceTypes is the allow-list of service type literals.
var ServiceTypes = []string{
	ServiceTourism, ServiceHotels, ServiceTransport, ServiceMedical,
	ServiceTourismAR, ServiceHotelsAR, ServiceTransportAR, ServiceMedicalAR,
}

// IsValidServiceType reports whether t is in the allow-list.
func IsValidServiceType(t string) bool {
	for _, st := range ServiceTypes {
		if st == t {
			return true
		}
	}
	return false
}

// Service is a bookable offering keyed by its type. Type never changes once
// the record exists.
type Service struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type         string             `bson:"type" json:"type"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Icon         string             `bson:"icon" json:"icon"`
	Images       []Image            `bson:"images" json:"images"`
	Duration     string             `bson:"duration" json:"duration"`
	GroupSize    string             `bson:"group_size" json:"groupSize"`
	Availability string             `bson:"availability" json:"availability"`
	Locations    []string           `bson:"locations" json:"locations"`
	Price        *float64           `bson:"price" json:"price"`
	PriceUnit    string             `bson:"price_unit" json:"priceUnit"`
	Rating       float64            `bson:"rating" json:"rating"`
	Features     []string           `bson:"features" json:"features"`
	Itinerary    []ItineraryDay     `bson:"itinerary" json:"itinerary"`
	ContactInfo  ContactInfo        `bson:"contact_info" json:"contactInfo"`
	Benefits     []string           `bson:"benefits" json:"benefits"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ItineraryDay is one day of a service itinerary.
type ItineraryDay struct {
	Day         int    `bson:"day" json:"day"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// ContactInfo is how a visitor reaches the team for one service.
type ContactInfo struct {
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
	Chat  string `bson:"chat" json:"chat"`
}
