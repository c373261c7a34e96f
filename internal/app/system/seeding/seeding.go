// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"errors"

	adminstore "github.com/dalemusser/stratatour/internal/app/store/admins"
	"github.com/dalemusser/stratatour/internal/app/system/authutil"
	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminSeed is the out-of-band administrator credential.
type AdminSeed struct {
	Email    string
	Password string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, admin AdminSeed, logger *zap.Logger) error {
	if err := seedAdmin(ctx, db, admin, logger); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the administrator when an email is configured and no
// admin with that email exists. An existing admin is never overwritten.
func seedAdmin(ctx context.Context, db *mongo.Database, seed AdminSeed, logger *zap.Logger) error {
	email := normalize.Email(seed.Email)
	if email == "" {
		logger.Debug("no seed admin configured")
		return nil
	}

	store := adminstore.New(db)
	if _, err := store.GetByEmail(ctx, email); err == nil {
		logger.Debug("seed admin already exists", zap.String("email", email))
		return nil
	} else if err != mongo.ErrNoDocuments {
		logger.Error("failed to check seed admin", zap.String("email", email), zap.Error(err))
		return err
	}

	if err := authutil.ValidatePassword(seed.Password); err != nil {
		logger.Error("seed admin password rejected", zap.String("email", email), zap.Error(err))
		return err
	}
	hash, err := authutil.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	if _, err := store.Create(ctx, email, hash); err != nil {
		if errors.Is(err, adminstore.ErrDuplicateEmail) {
			// Another instance seeded it first.
			return nil
		}
		logger.Error("failed to create seed admin", zap.String("email", email), zap.Error(err))
		return err
	}
	logger.Info("seeded admin", zap.String("email", email))
	return nil
}
