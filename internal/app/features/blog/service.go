// internal/app/features/blog/service.go
package blog

import (
	"context"
	"strings"

	blogstore "github.com/dalemusser/stratatour/internal/app/store/blog"
	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratatour/internal/app/system/inputval"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// excerptLen is the number of characters kept in a derived excerpt.
const excerptLen = 150

// Service runs the blog post operations.
type Service struct {
	store  *blogstore.Store
	assets *assets.Manager
	logger *zap.Logger
}

// NewService creates a blog Service.
func NewService(db *mongo.Database, am *assets.Manager, logger *zap.Logger) *Service {
	return &Service{store: blogstore.New(db), assets: am, logger: logger}
}

// Input is a blog post payload. A nil Images on update keeps the stored
// images; an empty Excerpt is derived from the content.
type Input struct {
	Title   string         `json:"title" validate:"required" label:"Title"`
	Content string         `json:"content" validate:"required" label:"Content"`
	Author  string         `json:"author" validate:"required" label:"Author"`
	Excerpt string         `json:"excerpt"`
	Images  []models.Image `json:"images"`
}

func (in *Input) clean() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Content = strings.TrimSpace(htmlsanitize.SanitizeContent(in.Content))
	in.Excerpt = htmlsanitize.StripTags(in.Excerpt)
	if in.Images != nil {
		in.Images = models.CleanImages(in.Images)
	}
}

// excerpt returns the first excerptLen characters of the content followed by
// an ellipsis. Plain text is cut as written; markup is reduced to its text
// first.
func excerpt(content string) string {
	if !htmlsanitize.IsPlainText(content) {
		content = htmlsanitize.StripTags(content)
	}
	return normalize.Truncate(content, excerptLen) + "..."
}

func parseID(id string) (primitive.ObjectID, error) {
	if strings.TrimSpace(id) == "" {
		return primitive.NilObjectID, apperr.InvalidInput("Post ID is required")
	}
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("Post not found")
	}
	return oid, nil
}

// List returns every post, newest first.
func (s *Service) List(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("Failed to load posts", err)
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts, nil
}

// Get returns the post with the given id.
func (s *Service) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.store.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to load post", err)
	}
	return p, nil
}

// Create stores a new post.
func (s *Service) Create(ctx context.Context, in Input) (*models.BlogPost, error) {
	in.clean()
	if err := inputval.Validate(in).Err(); err != nil {
		return nil, err
	}
	if in.Excerpt == "" {
		in.Excerpt = excerpt(in.Content)
	}

	claimed, err := s.assets.Adopt(ctx, nil, in.Images)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Create(ctx, models.BlogPost{
		Title:   in.Title,
		Content: in.Content,
		Excerpt: in.Excerpt,
		Images:  in.Images,
		Author:  in.Author,
	})
	if err != nil {
		s.assets.Abandon(ctx, claimed)
		return nil, apperr.Upstream("Failed to create post", err)
	}
	s.logger.Info("blog post created", zap.String("id", p.ID.Hex()))
	return &p, nil
}

// Update overwrites the post with the given id and releases image assets it
// no longer references.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.BlogPost, error) {
	in.clean()
	if err := inputval.Validate(in).Err(); err != nil {
		return nil, err
	}

	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Excerpt == "" {
		in.Excerpt = excerpt(in.Content)
	}
	if in.Images == nil {
		in.Images = prev.Images
	}
	claimed, err := s.assets.Adopt(ctx, prev.Images, in.Images)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Update(ctx, prev.ID, models.BlogPost{
		Title:   in.Title,
		Content: in.Content,
		Excerpt: in.Excerpt,
		Images:  in.Images,
		Author:  in.Author,
	})
	if err != nil {
		s.assets.Abandon(ctx, claimed)
	}
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperr.Upstream("Failed to update post", err)
	}

	s.assets.ReleaseOrphans(ctx, models.AssetIDs(prev.Images), models.AssetIDs(saved.Images))
	s.logger.Info("blog post updated", zap.String("id", saved.ID.Hex()))
	return saved, nil
}

// Delete removes the post with the given id and releases its images.
func (s *Service) Delete(ctx context.Context, id string) error {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.store.Delete(ctx, prev.ID)
	if err != nil {
		return apperr.Upstream("Failed to delete post", err)
	}
	if n == 0 {
		return apperr.NotFound("Post not found")
	}

	s.assets.Release(ctx, models.AssetIDs(prev.Images)...)
	s.logger.Info("blog post deleted", zap.String("id", prev.ID.Hex()))
	return nil
}
