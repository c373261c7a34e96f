package categories

import (
	"strconv"
	"strings"

	"github.com/dalemusser/stratatour/internal/domain/models"
)

// lookup is one way of resolving an item key within a bucket.
type lookup func(b *models.CategoryBucket, key string) (int, bool)

// lookups are tried in order. byLegacyIndex only serves links minted before
// items carried stored ids.
var lookups = []lookup{byID, bySlug, byLegacyIndex}

func findItem(b *models.CategoryBucket, key string) *models.CategoryItem {
	if b == nil || key == "" {
		return nil
	}
	for _, fn := range lookups {
		if i, ok := fn(b, key); ok {
			it := b.Items[i]
			return &it
		}
	}
	return nil
}

func byID(b *models.CategoryBucket, key string) (int, bool) {
	for i, it := range b.Items {
		if it.ID == key {
			return i, true
		}
	}
	return 0, false
}

func bySlug(b *models.CategoryBucket, key string) (int, bool) {
	for i, it := range b.Items {
		if it.Slug == key {
			return i, true
		}
	}
	return 0, false
}

// byLegacyIndex reads N from "<type>-<N>" and indexes into the items.
func byLegacyIndex(b *models.CategoryBucket, key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, b.Type+"-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || n >= len(b.Items) {
		return 0, false
	}
	return n, true
}
