// internal/app/store/ratelimit/ratelimitstore.go
package ratelimitstore

import (
	"context"
	"time"

	"github.com/dalemusser/stratatour/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Attempt tracks failed login attempts for one admin email.
type Attempt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`         // normalized
	AttemptCount int                `bson:"attempt_count"` // failures in current window
	WindowStart  time.Time          `bson:"window_start"`
	LockedUntil  *time.Time         `bson:"locked_until"`
	LastAttempt  time.Time          `bson:"last_attempt"` // TTL anchor
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Store manages failed-login tracking and lockout.
type Store struct {
	c               *mongo.Collection
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	now             func() time.Time
}

// New creates a rate limit Store with the given configuration.
func New(db *mongo.Database, maxAttempts int, window, lockout time.Duration) *Store {
	return &Store{
		c:               db.Collection("rate_limits"),
		maxAttempts:     maxAttempts,
		windowDuration:  window,
		lockoutDuration: lockout,
		now:             time.Now,
	}
}

// CheckAllowed checks whether email may attempt a login.
// Returns:
//   - allowed: true if the attempt should be processed
//   - remaining: attempts left before lockout (-1 if locked)
//   - lockedUntil: when the lockout expires (nil if not locked)
//
// Lookup errors fail open.
func (s *Store) CheckAllowed(ctx context.Context, email string) (allowed bool, remaining int, lockedUntil *time.Time) {
	email = normalize.Email(email)
	now := s.now()

	var attempt Attempt
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&attempt); err != nil {
		return true, s.maxAttempts, nil
	}

	if attempt.LockedUntil != nil && now.Before(*attempt.LockedUntil) {
		return false, -1, attempt.LockedUntil
	}

	if now.After(attempt.WindowStart.Add(s.windowDuration)) {
		return true, s.maxAttempts, nil
	}

	remaining = s.maxAttempts - attempt.AttemptCount
	if remaining <= 0 {
		// lockout already elapsed but the window has not; one more try
		return true, 1, nil
	}
	return true, remaining, nil
}

// RecordFailure records a failed login for email.
// Returns:
//   - lockedOut: true if this failure triggered a lockout
//   - lockedUntil: when the lockout expires (nil if not locked)
func (s *Store) RecordFailure(ctx context.Context, email string) (lockedOut bool, lockedUntil *time.Time) {
	email = normalize.Email(email)
	now := s.now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&attempt)
	switch {
	case err == mongo.ErrNoDocuments:
		attempt = Attempt{Email: email, WindowStart: now, CreatedAt: now}
	case err != nil:
		return false, nil
	}

	if now.After(attempt.WindowStart.Add(s.windowDuration)) {
		attempt.AttemptCount = 0
		attempt.WindowStart = now
		attempt.LockedUntil = nil
	}
	attempt.AttemptCount++

	if attempt.AttemptCount >= s.maxAttempts {
		until := now.Add(s.lockoutDuration)
		attempt.LockedUntil = &until
		lockedOut = true
		lockedUntil = &until
	}

	_, _ = s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"attempt_count": attempt.AttemptCount,
				"window_start":  attempt.WindowStart,
				"locked_until":  attempt.LockedUntil,
				"last_attempt":  now,
				"updated_at":    now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)

	return lockedOut, lockedUntil
}

// ClearOnSuccess removes the record for email after a successful login.
func (s *Store) ClearOnSuccess(ctx context.Context, email string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"email": normalize.Email(email)})
	return err
}

// GetAttempt returns the current record for email, or nil if there is none.
func (s *Store) GetAttempt(ctx context.Context, email string) (*Attempt, error) {
	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Prune deletes records whose window has closed and that are not locked.
// Returns the number of records removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	now := s.now()
	res, err := s.c.DeleteMany(ctx, bson.M{
		"window_start": bson.M{"$lt": now.Add(-s.windowDuration)},
		"$or": []bson.M{
			{"locked_until": nil},
			{"locked_until": bson.M{"$lt": now}},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
