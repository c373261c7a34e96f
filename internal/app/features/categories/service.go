// internal/app/features/categories/service.go
package categories

import (
	"context"
	"fmt"
	"strings"
	"time"

	categorystore "github.com/dalemusser/stratatour/internal/app/store/categories"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service runs the category bucket operations.
type Service struct {
	store  *categorystore.Store
	assets *assets.Manager
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a categories Service.
func NewService(db *mongo.Database, am *assets.Manager, logger *zap.Logger) *Service {
	return &Service{store: categorystore.New(db), assets: am, logger: logger, now: time.Now}
}

func checkType(typ string) error {
	if typ == "" {
		return apperr.InvalidInput("Category type is required")
	}
	if !models.IsValidCategoryType(typ) {
		return apperr.InvalidType("Invalid category type")
	}
	return nil
}

// List returns every saved bucket.
func (s *Service) List(ctx context.Context) ([]models.CategoryBucket, error) {
	buckets, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("Failed to load categories", err)
	}
	if buckets == nil {
		buckets = []models.CategoryBucket{}
	}
	return buckets, nil
}

// Get returns the bucket for typ, or an empty titled bucket if none is saved.
func (s *Service) Get(ctx context.Context, typ string) (*models.CategoryBucket, error) {
	if err := checkType(typ); err != nil {
		return nil, err
	}
	b, err := s.store.Get(ctx, typ)
	if err == mongo.ErrNoDocuments {
		return &models.CategoryBucket{
			Type:  typ,
			Title: models.CategoryTitle(typ),
			Items: []models.CategoryItem{},
		}, nil
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to load category", err)
	}
	return b, nil
}

// GetItem finds one item in the bucket for typ. key is tried as an id, then
// as a slug, then as a legacy "<type>-<N>" index. A nil item with a nil
// error means nothing matched.
func (s *Service) GetItem(ctx context.Context, typ, key string) (*models.CategoryItem, error) {
	b, err := s.Get(ctx, typ)
	if err != nil {
		return nil, err
	}
	return findItem(b, key), nil
}

// Save replaces the items of the bucket for typ. Missing ids and slugs are
// assigned, hotel-only fields are dropped outside the hotels bucket, asset
// ids the server did not issue are cleared, and image assets the new items
// no longer reference are released.
func (s *Service) Save(ctx context.Context, typ string, items []models.CategoryItem) (*models.CategoryBucket, error) {
	if err := checkType(typ); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, apperr.InvalidInput("Items must be an array")
	}

	prev, err := s.Get(ctx, typ)
	if err != nil {
		return nil, err
	}

	prepared := prepareItems(typ, items, s.now())
	lists := make([][]models.Image, len(prepared))
	for i := range prepared {
		lists[i] = prepared[i].Images
	}
	claimed, err := s.assets.Adopt(ctx, itemImages(prev.Items), lists...)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, models.CategoryBucket{
		Type:  typ,
		Title: models.CategoryTitle(typ),
		Items: prepared,
	})
	if err != nil {
		s.assets.Abandon(ctx, claimed)
		return nil, apperr.Upstream("Failed to save category", err)
	}

	s.assets.ReleaseOrphans(ctx, itemAssetIDs(prev.Items), itemAssetIDs(saved.Items))
	s.logger.Info("category saved",
		zap.String("type", typ),
		zap.Int("items", len(saved.Items)))
	return saved, nil
}

// prepareItems returns a normalized copy of items.
func prepareItems(typ string, items []models.CategoryItem, now time.Time) []models.CategoryItem {
	out := make([]models.CategoryItem, len(items))
	for i, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		it.Description = strings.TrimSpace(it.Description)
		if strings.TrimSpace(it.ID) == "" {
			it.ID = fmt.Sprintf("%s-%d-%d", typ, i, now.UnixMilli())
		}
		if strings.TrimSpace(it.Slug) == "" {
			it.Slug = normalize.Slug(it.Title)
			if it.Slug == "" {
				it.Slug = fmt.Sprintf("%s-%d", typ, i)
			}
		}
		it.Images = models.CleanImages(it.Images)
		if it.Features == nil {
			it.Features = []string{}
		}
		if typ != models.CategoryHotels {
			it.StripHotelFields()
		}
		out[i] = it
	}
	return out
}

func itemImages(items []models.CategoryItem) []models.Image {
	var imgs []models.Image
	for _, it := range items {
		imgs = append(imgs, it.Images...)
	}
	return imgs
}

func itemAssetIDs(items []models.CategoryItem) []string {
	var ids []string
	for _, it := range items {
		ids = append(ids, models.AssetIDs(it.Images)...)
	}
	return ids
}
