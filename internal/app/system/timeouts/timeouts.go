// Package timeouts provides the deadlines handlers apply to content operations.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultRead   = 5 * time.Second
	DefaultWrite  = 10 * time.Second
	DefaultUpload = 2 * time.Minute
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	read   = DefaultRead
	write  = DefaultWrite
	upload = DefaultUpload
)

// Read returns the timeout for lookups.
func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

// Write returns the timeout for record writes without file transfer.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Upload returns the timeout for writes that move files to asset storage.
// An upload that outlives it is a failed upload.
func Upload() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upload
}

// Config holds timeout configuration values. Zero fields keep the current value.
type Config struct {
	Read   time.Duration
	Write  time.Duration
	Upload time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
	if cfg.Upload > 0 {
		upload = cfg.Upload
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	read = DefaultRead
	write = DefaultWrite
	upload = DefaultUpload
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Read: read, Write: write, Upload: upload}
}

// WithTimeout creates a context with timeout that logs when the deadline hit.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
