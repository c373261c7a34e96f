// internal/app/features/services/service.go
package services

import (
	"context"
	"errors"
	"strings"

	servicestore "github.com/dalemusser/stratatour/internal/app/store/services"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/inputval"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service runs the service record operations.
type Service struct {
	store  *servicestore.Store
	assets *assets.Manager
	logger *zap.Logger
}

// NewService creates a services Service.
func NewService(db *mongo.Database, am *assets.Manager, logger *zap.Logger) *Service {
	return &Service{store: servicestore.New(db), assets: am, logger: logger}
}

// Input is a service payload. Pointer and list fields left nil were not
// sent; list fields accept a JSON array or a comma-joined string.
type Input struct {
	Type         string                  `json:"type"`
	Title        *string                 `json:"title"`
	Description  *string                 `json:"description"`
	Icon         *string                 `json:"icon"`
	Images       []models.Image          `json:"images"`
	Duration     *string                 `json:"duration"`
	GroupSize    *string                 `json:"groupSize"`
	Availability *string                 `json:"availability"`
	Locations    normalize.StringOrArray `json:"locations"`
	Price        normalize.Price         `json:"price"`
	PriceUnit    *string                 `json:"priceUnit"`
	Rating       *float64                `json:"rating"`
	Features     normalize.StringOrArray `json:"features"`
	Itinerary    []models.ItineraryDay   `json:"itinerary"`
	ContactInfo  *models.ContactInfo     `json:"contactInfo"`
	Benefits     normalize.StringOrArray `json:"benefits"`
}

type requiredFields struct {
	Type        string `json:"type" validate:"required" label:"Type"`
	Title       string `json:"title" validate:"required" label:"Title"`
	Description string `json:"description" validate:"required" label:"Description"`
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func textOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return strings.TrimSpace(*p)
}

// List returns every service.
func (s *Service) List(ctx context.Context) ([]models.Service, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("Failed to load services", err)
	}
	if list == nil {
		list = []models.Service{}
	}
	return list, nil
}

// Get returns the service with the given type.
func (s *Service) Get(ctx context.Context, typ string) (*models.Service, error) {
	svc, err := s.store.GetByType(ctx, typ)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Service not found")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to load service", err)
	}
	return svc, nil
}

// Create stores a new service. Type, title and description are required;
// every other field falls back to a default.
func (s *Service) Create(ctx context.Context, in Input) (*models.Service, error) {
	req := requiredFields{
		Type:        strings.TrimSpace(in.Type),
		Title:       text(in.Title),
		Description: text(in.Description),
	}
	if err := inputval.Validate(req).Err(); err != nil {
		return nil, err
	}
	if !models.IsValidServiceType(req.Type) {
		return nil, apperr.InvalidType("Invalid service type")
	}

	price := in.Price.Value
	if !in.Price.Set {
		p := defaultPrice
		price = &p
	}
	rating := defaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	images := models.CleanImages(in.Images)
	claimed, err := s.assets.Adopt(ctx, nil, images)
	if err != nil {
		return nil, err
	}
	itinerary := in.Itinerary
	if itinerary == nil {
		itinerary = defaultItinerary()
	}
	contact := models.ContactInfo{}
	if in.ContactInfo != nil {
		contact = *in.ContactInfo
	}

	created, err := s.store.Create(ctx, models.Service{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		Icon:         textOr(in.Icon, iconFor(req.Type)),
		Images:       images,
		Duration:     textOr(in.Duration, defaultDuration),
		GroupSize:    textOr(in.GroupSize, defaultGroupSize),
		Availability: textOr(in.Availability, defaultAvailability),
		Locations:    in.Locations.Or(defaultLocations()),
		Price:        price,
		PriceUnit:    textOr(in.PriceUnit, defaultPriceUnit),
		Rating:       rating,
		Features:     in.Features.Or(defaultFeatures()),
		Itinerary:    itinerary,
		ContactInfo:  contact,
		Benefits:     in.Benefits.Or(defaultBenefits()),
	})
	if err != nil {
		s.assets.Abandon(ctx, claimed)
	}
	if errors.Is(err, servicestore.ErrDuplicateType) {
		return nil, apperr.Conflict("Service with this type already exists")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to create service", err)
	}
	s.logger.Info("service created", zap.String("type", created.Type))
	return &created, nil
}

// Update merges in into the service with the given type. The type itself
// cannot change. Image assets the service no longer references are released.
func (s *Service) Update(ctx context.Context, typ string, in Input) (*models.Service, error) {
	prev, err := s.Get(ctx, typ)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Type); t != "" && t != prev.Type {
		return nil, apperr.InvalidInput("Service type cannot be changed")
	}

	next := merge(*prev, in)
	if err := inputval.Validate(requiredFields{
		Type:        next.Type,
		Title:       next.Title,
		Description: next.Description,
	}).Err(); err != nil {
		return nil, err
	}

	claimed, err := s.assets.Adopt(ctx, prev.Images, next.Images)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Update(ctx, prev.Type, next)
	if err != nil {
		s.assets.Abandon(ctx, claimed)
	}
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Service not found")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to update service", err)
	}

	s.assets.ReleaseOrphans(ctx, models.AssetIDs(prev.Images), models.AssetIDs(saved.Images))
	s.logger.Info("service updated", zap.String("type", saved.Type))
	return saved, nil
}

// merge overwrites the fields of svc that in provides.
func merge(svc models.Service, in Input) models.Service {
	svc.Title = textOr(in.Title, svc.Title)
	svc.Description = textOr(in.Description, svc.Description)
	svc.Icon = textOr(in.Icon, svc.Icon)
	svc.Duration = textOr(in.Duration, svc.Duration)
	svc.GroupSize = textOr(in.GroupSize, svc.GroupSize)
	svc.Availability = textOr(in.Availability, svc.Availability)
	svc.PriceUnit = textOr(in.PriceUnit, svc.PriceUnit)
	if in.Images != nil {
		svc.Images = models.CleanImages(in.Images)
	}
	svc.Locations = in.Locations.Or(svc.Locations)
	svc.Features = in.Features.Or(svc.Features)
	svc.Benefits = in.Benefits.Or(svc.Benefits)
	if in.Price.Set {
		svc.Price = in.Price.Value
	}
	if in.Rating != nil {
		svc.Rating = *in.Rating
	}
	if in.Itinerary != nil {
		svc.Itinerary = in.Itinerary
	}
	if in.ContactInfo != nil {
		svc.ContactInfo = *in.ContactInfo
	}
	return svc
}

// Delete removes the service with the given type and releases its images.
func (s *Service) Delete(ctx context.Context, typ string) error {
	prev, err := s.Get(ctx, typ)
	if err != nil {
		return err
	}
	n, err := s.store.Delete(ctx, typ)
	if err != nil {
		return apperr.Upstream("Failed to delete service", err)
	}
	if n == 0 {
		return apperr.NotFound("Service not found")
	}

	s.assets.Release(ctx, models.AssetIDs(prev.Images)...)
	s.logger.Info("service deleted", zap.String("type", typ))
	return nil
}
