// internal/app/features/tripdate/service.go
package tripdate

import (
	"context"
	"strings"

	tripdatestore "github.com/dalemusser/stratatour/internal/app/store/tripdate"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service runs the trip date operations.
type Service struct {
	store  *tripdatestore.Store
	assets *assets.Manager
	logger *zap.Logger
}

// NewService creates a trip date Service.
func NewService(db *mongo.Database, am *assets.Manager, logger *zap.Logger) *Service {
	return &Service{store: tripdatestore.New(db), assets: am, logger: logger}
}

// UpdateInput is a partial trip date update.
//
// Nil scalar and list fields keep their stored value. Keep lists the URLs of
// stored images to retain; nil keeps all of them. NewImages are appended
// after the kept images.
type UpdateInput struct {
	Date        *string
	Places      []string
	Description *string
	NewImages   []assets.File
	Keep        []string
}

func (in UpdateInput) empty() bool {
	return in.Date == nil && in.Places == nil && in.Description == nil &&
		len(in.NewImages) == 0 && in.Keep == nil
}

// Get returns the trip date, or an empty one if none has been saved.
func (s *Service) Get(ctx context.Context) (*models.TripDate, error) {
	td, err := s.store.Get(ctx)
	if err == mongo.ErrNoDocuments {
		return &models.TripDate{Places: []string{}, Images: []models.Image{}}, nil
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to load trip date", err)
	}
	return td, nil
}

// Update uploads every new image, writes the merged trip date and then
// releases the stored images it no longer references.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*models.TripDate, error) {
	if in.empty() {
		return nil, apperr.InvalidInput("No content provided")
	}

	prev, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.assets.UploadAll(ctx, assets.TripImage, in.NewImages)
	if err != nil {
		return nil, err
	}

	next := *prev
	if in.Date != nil {
		next.Date = strings.TrimSpace(*in.Date)
	}
	if in.Places != nil {
		next.Places = in.Places
	}
	if in.Description != nil {
		next.Description = strings.TrimSpace(*in.Description)
	}
	next.Images = append(keepImages(prev.Images, in.Keep), assets.Images(uploaded)...)

	saved, err := s.store.Save(ctx, next)
	if err != nil {
		s.assets.Release(ctx, assets.IDs(uploaded)...)
		return nil, apperr.Upstream("Failed to save trip date", err)
	}

	s.assets.ReleaseOrphans(ctx, models.AssetIDs(prev.Images), models.AssetIDs(saved.Images))
	s.logger.Info("trip date updated",
		zap.Int("images", len(saved.Images)),
		zap.Int("uploaded", len(uploaded)))
	return saved, nil
}

// keepImages returns the images whose URL is listed in keep. A nil keep
// retains every image.
func keepImages(images []models.Image, keep []string) []models.Image {
	if keep == nil {
		return append([]models.Image(nil), images...)
	}
	set := make(map[string]struct{}, len(keep))
	for _, u := range keep {
		set[u] = struct{}{}
	}
	out := make([]models.Image, 0, len(images))
	for _, img := range images {
		if _, ok := set[img.URL]; ok {
			out = append(out, img)
		}
	}
	return out
}
