// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for stratatour.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They are *app-level*
// configuration; WAFFLE's CoreConfig still owns ports, TLS, logging level
// and request body limits.
//
// The struct is passed to most lifecycle hooks, so anything needed during
// startup, request handling or shutdown should live here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin token signing
	JWTSecret string // HMAC secret for admin tokens (32+ chars in production)

	// Browser origins allowed to call the API. Empty or "*" allows any origin.
	CORSOrigins []string

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "uploads/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// Multipart upload cap in megabytes (hero video, trip-date images, uploads)
	MaxUploadMB int64

	// Admin seeding configuration
	SeedAdminEmail    string // Email of the admin to create on startup (if set)
	SeedAdminPassword string // Initial password for the seeded admin

	// Login lockout configuration (per email, persisted in Mongo)
	RateLimitEnabled       bool          // Enable lockout after repeated failed logins (default: true)
	RateLimitLoginAttempts int           // Max failed login attempts before lockout (default: 5)
	RateLimitLoginWindow   time.Duration // Time window for counting failed attempts (default: 15m)
	RateLimitLoginLockout  time.Duration // Lockout duration after exceeding limit (default: 15m)

	// Per-IP token bucket on /auth/login; zero disables it
	LoginRequestsPerMinute int

	// Operation deadlines for content store and asset store calls
	ReadTimeout   time.Duration // reads (default: 5s)
	WriteTimeout  time.Duration // writes (default: 10s)
	UploadTimeout time.Duration // multipart uploads to the asset store (default: 2m)
}
