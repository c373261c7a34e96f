// Package assets coordinates uploaded binaries with the content records that
// reference them.
//
// Every stored image or video is addressed by an asset id, which is the path
// of the object in the backing store. Content operations upload first, write
// the record, and then release whatever the record no longer references.
// Releases are best-effort: a failed delete is logged and reported in a
// CleanupResult but never fails the caller.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the subset of a storage backend used here. waffle's local and S3
// stores satisfy it.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

// Kind describes where an upload is stored and which media type it must be.
type Kind struct {
	Prefix    string // first path segment
	MediaType string // required MIME top-level type, e.g. "image"
}

// Upload kinds.
var (
	HeroVideo     = Kind{Prefix: "hero", MediaType: "video"}
	TripImage     = Kind{Prefix: "trips", MediaType: "image"}
	CategoryImage = Kind{Prefix: "categories", MediaType: "image"}
	ServiceImage  = Kind{Prefix: "services", MediaType: "image"}
	BlogImage     = Kind{Prefix: "blog", MediaType: "image"}
	GenericImage  = Kind{Prefix: "uploads", MediaType: "image"}
)

// releaseTimeout bounds a best-effort release after the request is done.
const releaseTimeout = 30 * time.Second

// sniffLen is how many leading bytes are read to detect the media type.
const sniffLen = 3072

// Asset is a stored object.
type Asset struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
}

// Image returns the asset as a content image reference.
func (a Asset) Image() models.Image {
	return models.Image{URL: a.URL, AssetID: a.AssetID}
}

// File is an upload waiting to be stored.
type File struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromMultipart wraps a multipart file header.
func FromMultipart(fh *multipart.FileHeader) File {
	return File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// FromBytes wraps an in-memory payload.
func FromBytes(filename, contentType string, data []byte) File {
	return File{
		Filename:    filename,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Manager uploads and releases assets.
type Manager struct {
	store  Store
	ledger Ledger // nil: no standalone uploads are claimable
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Manager over store.
func New(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger, now: time.Now}
}

// URL returns the public URL for an asset id.
func (m *Manager) URL(assetID string) string {
	return m.store.URL(assetID)
}

// Upload stores f under <prefix>/YYYY/MM/<uuid8><ext>.
//
// The media type is sniffed from the content; the declared type is only used
// when sniffing is inconclusive. A mismatch with kind is InvalidInput. Any
// storage failure, including a cancelled or expired ctx, is UpstreamFailure.
func (m *Manager) Upload(ctx context.Context, kind Kind, f File) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, apperr.Upstream("Failed to upload file", err)
	}

	rc, err := f.Open()
	if err != nil {
		return Asset{}, apperr.InvalidInput("Could not read uploaded file")
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Asset{}, apperr.InvalidInput("Could not read uploaded file")
	}
	head = head[:n]
	if n == 0 {
		return Asset{}, apperr.InvalidInput("Uploaded file is empty")
	}

	contentType := detectContentType(head, f.ContentType)
	if !strings.HasPrefix(contentType, kind.MediaType+"/") {
		return Asset{}, apperr.InvalidInput(typeMessage(kind.MediaType))
	}

	path := m.newPath(kind, f.Filename)
	body := io.MultiReader(bytes.NewReader(head), rc)
	if err := m.store.Put(ctx, path, body, &storage.PutOptions{ContentType: contentType}); err != nil {
		return Asset{}, apperr.Upstream("Failed to upload file", err)
	}
	if err := ctx.Err(); err != nil {
		// The write may or may not have landed; drop it either way.
		m.Release(ctx, path)
		return Asset{}, apperr.Upstream("Failed to upload file", err)
	}

	m.logger.Info("asset uploaded",
		zap.String("asset_id", path),
		zap.String("content_type", contentType))

	return Asset{URL: m.store.URL(path), AssetID: path}, nil
}

// UploadAll uploads every file in order. If any upload fails, the ones that
// already succeeded are released and the error is returned.
func (m *Manager) UploadAll(ctx context.Context, kind Kind, files []File) ([]Asset, error) {
	out := make([]Asset, 0, len(files))
	for _, f := range files {
		a, err := m.Upload(ctx, kind, f)
		if err != nil {
			m.Release(ctx, IDs(out)...)
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Release deletes each asset id, best-effort, and drops deleted ids from the
// ledger. Empty ids are skipped. It runs detached from ctx cancellation so a
// finished request still cleans up.
func (m *Manager) Release(ctx context.Context, ids ...string) []CleanupResult {
	if len(ids) == 0 {
		return nil
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	results := make([]CleanupResult, 0, len(ids))
	var gone []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		r := Attempt(m.logger, "release asset "+id, func() error {
			return m.store.Delete(rctx, id)
		})
		if r.OK {
			gone = append(gone, id)
		}
		results = append(results, r)
	}
	if m.ledger != nil && len(gone) > 0 {
		Attempt(m.logger, "forget uploads", func() error {
			return m.ledger.Forget(rctx, gone...)
		})
	}
	return results
}

// ReleaseOrphans releases the ids in before that are absent from after.
func (m *Manager) ReleaseOrphans(ctx context.Context, before, after []string) []CleanupResult {
	return m.Release(ctx, Orphaned(before, after)...)
}

func (m *Manager) newPath(kind Kind, filename string) string {
	now := m.now().UTC()
	ext := strings.ToLower(filepath.Ext(filename))
	uniqueName := fmt.Sprintf("%s%s", uuid.New().String()[:8], ext)
	return fmt.Sprintf("%s/%04d/%02d/%s", kind.Prefix, now.Year(), now.Month(), uniqueName)
}

func detectContentType(head []byte, declared string) string {
	sniffed := mimetype.Detect(head).String()
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	if sniffed != "" && sniffed != "application/octet-stream" {
		return sniffed
	}
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}

func typeMessage(mediaType string) string {
	switch mediaType {
	case "image":
		return "File must be an image"
	case "video":
		return "File must be a video"
	default:
		return "Unsupported file type"
	}
}

// IDs returns the asset ids of as.
func IDs(as []Asset) []string {
	ids := make([]string, 0, len(as))
	for _, a := range as {
		ids = append(ids, a.AssetID)
	}
	return ids
}

// Images converts uploaded assets into content image references.
func Images(as []Asset) []models.Image {
	out := make([]models.Image, 0, len(as))
	for _, a := range as {
		out = append(out, a.Image())
	}
	return out
}
