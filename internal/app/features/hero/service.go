// internal/app/features/hero/service.go
package hero

import (
	"context"
	"strings"

	herostore "github.com/dalemusser/stratatour/internal/app/store/hero"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service runs the hero operations against the content and asset stores.
type Service struct {
	store  *herostore.Store
	assets *assets.Manager
	logger *zap.Logger
}

// NewService creates a hero Service.
func NewService(db *mongo.Database, am *assets.Manager, logger *zap.Logger) *Service {
	return &Service{store: herostore.New(db), assets: am, logger: logger}
}

// UpdateInput is a partial hero update. Nil fields keep their stored value.
type UpdateInput struct {
	Video    *assets.File
	Title    *string
	Subtitle *string
	CTAText  *string
}

func (in UpdateInput) empty() bool {
	return in.Video == nil && in.Title == nil && in.Subtitle == nil && in.CTAText == nil
}

// Get returns the hero, or an empty hero if none has been saved.
func (s *Service) Get(ctx context.Context) (*models.Hero, error) {
	h, err := s.store.Get(ctx)
	if err == mongo.ErrNoDocuments {
		return &models.Hero{}, nil
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to load hero", err)
	}
	return h, nil
}

// Update merges in into the stored hero.
//
// A new video is uploaded before anything is written; if the upload fails the
// stored hero is left as it was. The previous video is released only after
// the new reference is committed, and that release is best-effort.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*models.Hero, error) {
	if in.empty() {
		return nil, apperr.InvalidInput("No content provided")
	}

	prev, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	next := *prev
	if in.Title != nil {
		next.Title = strings.TrimSpace(*in.Title)
	}
	if in.Subtitle != nil {
		next.Subtitle = strings.TrimSpace(*in.Subtitle)
	}
	if in.CTAText != nil {
		next.CTAText = strings.TrimSpace(*in.CTAText)
	}

	var uploaded assets.Asset
	if in.Video != nil {
		uploaded, err = s.assets.Upload(ctx, assets.HeroVideo, *in.Video)
		if err != nil {
			return nil, err
		}
		next.VideoURL = uploaded.URL
		next.AssetID = uploaded.AssetID
	}

	saved, err := s.store.Save(ctx, next)
	if err != nil {
		s.assets.Release(ctx, uploaded.AssetID)
		return nil, apperr.Upstream("Failed to save hero", err)
	}

	if in.Video != nil && prev.HasVideo() && prev.AssetID != uploaded.AssetID {
		s.assets.Release(ctx, prev.AssetID)
	}

	s.logger.Info("hero updated",
		zap.Bool("video_replaced", in.Video != nil),
		zap.String("asset_id", saved.AssetID))
	return saved, nil
}

// DeleteVideo detaches the hero video and releases its asset. The text
// fields are kept. A hero without a video is returned unchanged.
func (s *Service) DeleteVideo(ctx context.Context) (*models.Hero, error) {
	prev, err := s.store.Get(ctx)
	if err == mongo.ErrNoDocuments {
		return &models.Hero{}, nil
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to load hero", err)
	}
	if prev.VideoURL == "" && prev.AssetID == "" {
		return prev, nil
	}

	saved, err := s.store.ClearVideo(ctx)
	if err != nil {
		return nil, apperr.Upstream("Failed to delete hero video", err)
	}

	s.assets.Release(ctx, prev.AssetID)
	s.logger.Info("hero video deleted", zap.String("asset_id", prev.AssetID))
	return saved, nil
}
