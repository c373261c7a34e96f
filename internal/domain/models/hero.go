// internal/domain/models/hero.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hero is the singleton landing-page hero block.
//
// VideoURL and AssetID are written and cleared together: a hero never holds
// a video URL without the handle needed to delete it.
type Hero struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VideoURL  string             `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	AssetID   string             `bson:"asset_id,omitempty" json:"assetId,omitempty"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle  string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	CTAText   string             `bson:"cta_text,omitempty" json:"ctaText,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// HasVideo reports whether a deletable video is attached. A legacy URL
// without its handle does not count.
func (h *Hero) HasVideo() bool {
	return h != nil && h.VideoURL != "" && h.AssetID != ""
}
