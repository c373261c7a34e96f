// internal/domain/models/contacts.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contacts is the singleton site-wide contact and social profile.
type Contacts struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Phone    string             `bson:"phone" json:"phone" validate:"max=40"`
	WhatsApp string             `bson:"whatsapp" json:"whatsapp" validate:"max=40"`
	Email    string             `bson:"email" json:"email" validate:"omitempty,email" label:"Email"`
	Address  string             `bson:"address" json:"address" validate:"max=500"`

	// Social platforms
	Facebook  string `bson:"facebook" json:"facebook" validate:"omitempty,httpurl" label:"Facebook"`
	Instagram string `bson:"instagram" json:"instagram" validate:"omitempty,httpurl" label:"Instagram"`
	Twitter   string `bson:"twitter" json:"twitter" validate:"omitempty,httpurl" label:"Twitter"`
	YouTube   string `bson:"youtube" json:"youtube" validate:"omitempty,httpurl" label:"YouTube"`
	TikTok    string `bson:"tiktok" json:"tiktok" validate:"omitempty,httpurl" label:"TikTok"`
	Snapchat  string `bson:"snapchat" json:"snapchat" validate:"omitempty,httpurl" label:"Snapchat"`
	Telegram  string `bson:"telegram" json:"telegram" validate:"omitempty,httpurl" label:"Telegram"`
	LinkedIn  string `bson:"linkedin" json:"linkedin" validate:"omitempty,httpurl" label:"LinkedIn"`
	VK        string `bson:"vk" json:"vk" validate:"omitempty,httpurl" label:"VK"`

	BusinessHours  string `bson:"business_hours" json:"businessHours"`
	SEODescription string `bson:"seo_description" json:"seoDescription"`
	SEOKeywords    string `bson:"seo_keywords" json:"seoKeywords"`
	PrivacyPolicy  string `bson:"privacy_policy" json:"privacyPolicy"`
	TermsOfService string `bson:"terms_of_service" json:"termsOfService"`

	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
