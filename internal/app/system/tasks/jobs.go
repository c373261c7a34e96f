// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	ratelimitstore "github.com/dalemusser/stratatour/internal/app/store/ratelimit"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
	"github.com/dalemusser/stratatour/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// LimiterSweepJob drops idle per-IP buckets from the login limiter.
func LimiterSweepJob(l *ratelimit.Limiter, logger *zap.Logger) Job {
	return Job{
		Name:     "login-limiter-sweep",
		Interval: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			before := l.Len()
			l.Sweep()
			if dropped := before - l.Len(); dropped > 0 {
				logger.Debug("swept idle login limiter buckets", zap.Int("dropped", dropped))
			}
			return nil
		},
	}
}

// LockoutPruneJob removes closed, unlocked login-attempt records. The TTL
// index on last_attempt is the backstop; this keeps the collection small
// between TTL passes.
func LockoutPruneJob(store *ratelimitstore.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "login-lockout-prune",
		Interval: 30 * time.Minute,
		Run: func(ctx context.Context) error {
			n, err := store.Prune(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned login attempt records", zap.Int64("deleted", n))
			}
			return nil
		},
	}
}

// StaleUploadAge is how long a standalone upload may sit unclaimed before
// the sweep deletes it.
const StaleUploadAge = 24 * time.Hour

// StaleUploadSweepJob deletes standalone uploads that no content record
// claimed within StaleUploadAge.
func StaleUploadSweepJob(am *assets.Manager) Job {
	return Job{
		Name:     "stale-upload-sweep",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			_, err := am.ReleaseStale(ctx, StaleUploadAge)
			return err
		},
	}
}
