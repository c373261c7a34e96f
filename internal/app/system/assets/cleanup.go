package assets

import (
	"go.uber.org/zap"
)

// CleanupResult is the outcome of a best-effort step.
type CleanupResult struct {
	Op  string
	OK  bool
	Err error
}

// Attempt runs fn as a non-fatal step. A failure is logged at Warn and
// returned in the result; it is never propagated as an error.
func Attempt(logger *zap.Logger, op string, fn func() error) CleanupResult {
	if err := fn(); err != nil {
		logger.Warn("cleanup failed", zap.String("op", op), zap.Error(err))
		return CleanupResult{Op: op, OK: false, Err: err}
	}
	return CleanupResult{Op: op, OK: true}
}

// Failed returns the results that did not succeed.
func Failed(results []CleanupResult) []CleanupResult {
	var out []CleanupResult
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}

// Orphaned returns the ids in before that do not appear in after, in order
// and without duplicates. Empty ids are ignored.
func Orphaned(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, id := range after {
		keep[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(before))
	var out []string
	for _, id := range before {
		if id == "" {
			continue
		}
		if _, ok := keep[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
