// internal/domain/models/asset.go
package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Image is a stored reference to an uploaded asset.
//
// URL is what the site renders; AssetID is the storage handle used to delete
// the backing object. Images that arrive as bare URLs (pasted links, legacy
// data) have no AssetID and are never deleted from storage.
type Image struct {
	URL         string `bson:"url" json:"url"`
	AssetID     string `bson:"asset_id,omitempty" json:"assetId,omitempty"`
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// UnmarshalJSON accepts either a bare URL string or an image object.
func (img *Image) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*img = Image{URL: strings.TrimSpace(url)}
		return nil
	}
	if !strings.HasPrefix(trimmed, "{") {
		return errors.New("image must be a URL string or an object")
	}
	type plain Image
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*img = Image(p)
	img.URL = strings.TrimSpace(img.URL)
	return nil
}

// AssetIDs returns the non-empty asset handles referenced by imgs.
func AssetIDs(imgs []Image) []string {
	var ids []string
	for _, img := range imgs {
		if img.AssetID != "" {
			ids = append(ids, img.AssetID)
		}
	}
	return ids
}

// CleanImages drops entries without a URL.
func CleanImages(imgs []Image) []Image {
	out := make([]Image, 0, len(imgs))
	for _, img := range imgs {
		if img.URL == "" {
			continue
		}
		out = append(out, img)
	}
	return out
}
