package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/domain/models"
	"go.uber.org/zap"
)

// Ledger remembers which standalone uploads the server issued and whether a
// content record has taken ownership of them. The uploads store satisfies it.
type Ledger interface {
	Record(ctx context.Context, id, url string) error
	Claim(ctx context.Context, id, url string) (bool, error)
	Unclaim(ctx context.Context, ids ...string) error
	Forget(ctx context.Context, ids ...string) error
	Stale(ctx context.Context, before time.Time, limit int64) ([]string, error)
	Take(ctx context.Context, id string) (bool, error)
}

// staleBatch caps how many stale uploads one sweep releases.
const staleBatch = 200

// UseLedger attaches l. Without a ledger, client-supplied asset ids are only
// honored when the record already held them.
func (m *Manager) UseLedger(l Ledger) {
	m.ledger = l
}

// Issue uploads f and records it as claimable by a later content write.
func (m *Manager) Issue(ctx context.Context, kind Kind, f File) (Asset, error) {
	a, err := m.Upload(ctx, kind, f)
	if err != nil {
		return Asset{}, err
	}
	if m.ledger == nil {
		return a, nil
	}
	if err := m.ledger.Record(ctx, a.AssetID, a.URL); err != nil {
		m.Release(ctx, a.AssetID)
		return Asset{}, apperr.Upstream("Failed to upload file", err)
	}
	return a, nil
}

// Adopt vets the asset ids in lists, in place, before a content write.
//
// An id survives when prev already held it for the same URL, or when it is
// an issued, unclaimed upload whose URL matches; the latter is claimed and
// returned so a failed write can hand it back with Abandon. Any other id is
// cleared, leaving a plain URL that is never deleted from storage.
func (m *Manager) Adopt(ctx context.Context, prev []models.Image, lists ...[]models.Image) ([]string, error) {
	held := make(map[string]string, len(prev))
	for _, img := range prev {
		if img.AssetID != "" {
			held[img.AssetID] = img.URL
		}
	}

	adopted := make(map[string]string)
	var claimed []string
	for _, list := range lists {
		for i := range list {
			img := &list[i]
			if img.AssetID == "" {
				continue
			}
			if url, ok := held[img.AssetID]; ok && url == img.URL {
				continue
			}
			if url, ok := adopted[img.AssetID]; ok {
				if url != img.URL {
					m.disown(img)
				}
				continue
			}
			if m.ledger == nil || m.URL(img.AssetID) != img.URL {
				m.disown(img)
				continue
			}
			ok, err := m.ledger.Claim(ctx, img.AssetID, img.URL)
			if err != nil {
				m.Abandon(ctx, claimed)
				return nil, apperr.Upstream("Failed to save images", err)
			}
			if !ok {
				m.disown(img)
				continue
			}
			adopted[img.AssetID] = img.URL
			claimed = append(claimed, img.AssetID)
		}
	}
	return claimed, nil
}

func (m *Manager) disown(img *models.Image) {
	m.logger.Warn("ignoring unissued asset id",
		zap.String("asset_id", img.AssetID),
		zap.String("url", img.URL))
	img.AssetID = ""
}

// Abandon returns ids claimed by Adopt to the unclaimed pool, best-effort.
func (m *Manager) Abandon(ctx context.Context, ids []string) {
	if m.ledger == nil || len(ids) == 0 {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	Attempt(m.logger, "unclaim uploads", func() error {
		return m.ledger.Unclaim(rctx, ids...)
	})
}

// ReleaseStale deletes issued uploads nothing claimed within olderThan. An
// upload is taken off the ledger before its object is deleted, so a claim
// racing the sweep wins. It returns how many were released; the error
// summarizes the ones that could not be.
func (m *Manager) ReleaseStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if m.ledger == nil {
		return 0, nil
	}
	ids, err := m.ledger.Stale(ctx, m.now().Add(-olderThan), staleBatch)
	if err != nil {
		return 0, err
	}

	var results []CleanupResult
	for _, id := range ids {
		var taken bool
		r := Attempt(m.logger, "take upload "+id, func() error {
			var err error
			taken, err = m.ledger.Take(ctx, id)
			return err
		})
		if !r.OK {
			results = append(results, r)
			continue
		}
		if !taken {
			continue
		}
		results = append(results, Attempt(m.logger, "release stale upload "+id, func() error {
			return m.store.Delete(ctx, id)
		}))
	}

	failed := Failed(results)
	released := len(results) - len(failed)
	if released > 0 {
		m.logger.Info("released stale uploads", zap.Int("count", released))
	}
	if len(failed) > 0 {
		return released, fmt.Errorf("%d stale uploads not released: %w", len(failed), failed[0].Err)
	}
	return released, nil
}
