package ratelimitstore

import (
	"testing"
	"time"

	"github.com/dalemusser/stratatour/internal/testutil"
)

func TestStore_CheckAllowed_NoRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, "new@example.com")
	if !allowed {
		t.Error("CheckAllowed() should return true for a new email")
	}
	if remaining != 5 {
		t.Errorf("CheckAllowed() remaining = %d, want 5", remaining)
	}
	if lockedUntil != nil {
		t.Error("CheckAllowed() lockedUntil should be nil")
	}
}

func TestStore_CheckAllowed_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "admin@example.com")

	allowed, remaining, _ := store.CheckAllowed(ctx, "  ADMIN@Example.com ")
	if !allowed {
		t.Error("CheckAllowed() should return true")
	}
	if remaining != 4 {
		t.Errorf("CheckAllowed() remaining = %d, want 4", remaining)
	}
}

func TestStore_RecordFailure_TriggersLockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	email := "lockout@example.com"
	for i := 0; i < 2; i++ {
		if locked, _ := store.RecordFailure(ctx, email); locked {
			t.Fatalf("RecordFailure() #%d should not lock out", i+1)
		}
	}

	lockedOut, lockedUntil := store.RecordFailure(ctx, email)
	if !lockedOut || lockedUntil == nil {
		t.Fatal("RecordFailure() should lock out at max attempts")
	}
	if lockedUntil.Before(time.Now().Add(29 * time.Minute)) {
		t.Error("lockedUntil should be about 30 minutes in the future")
	}

	allowed, remaining, until := store.CheckAllowed(ctx, email)
	if allowed || remaining != -1 || until == nil {
		t.Errorf("CheckAllowed() = %v, %d, %v; want locked", allowed, remaining, until)
	}
}

func TestStore_LockoutExpires(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 2, time.Hour, 10*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now()
	store.now = func() time.Time { return now }

	email := "expiry@example.com"
	store.RecordFailure(ctx, email)
	store.RecordFailure(ctx, email)

	if allowed, _, _ := store.CheckAllowed(ctx, email); allowed {
		t.Fatal("CheckAllowed() should be locked")
	}

	now = now.Add(11 * time.Minute)
	if allowed, _, _ := store.CheckAllowed(ctx, email); !allowed {
		t.Error("CheckAllowed() should allow once the lockout elapses")
	}
}

func TestStore_WindowExpiry_ResetsCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now()
	store.now = func() time.Time { return now }

	email := "window@example.com"
	store.RecordFailure(ctx, email)
	store.RecordFailure(ctx, email)

	now = now.Add(2 * time.Minute)
	allowed, remaining, _ := store.CheckAllowed(ctx, email)
	if !allowed || remaining != 5 {
		t.Errorf("CheckAllowed() = %v, %d; want full attempts after window expiry", allowed, remaining)
	}

	store.RecordFailure(ctx, email)
	attempt, err := store.GetAttempt(ctx, email)
	if err != nil || attempt == nil {
		t.Fatalf("GetAttempt() = %v, %v", attempt, err)
	}
	if attempt.AttemptCount != 1 {
		t.Errorf("AttemptCount = %d, want 1 after window reset", attempt.AttemptCount)
	}
}

func TestStore_ClearOnSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	email := "clear@example.com"
	store.RecordFailure(ctx, email)

	if err := store.ClearOnSuccess(ctx, email); err != nil {
		t.Fatalf("ClearOnSuccess() error = %v", err)
	}
	attempt, err := store.GetAttempt(ctx, email)
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if attempt != nil {
		t.Error("GetAttempt() should return nil after clear")
	}
}

func TestStore_Prune(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 2, 15*time.Minute, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now()
	store.now = func() time.Time { return base }
	store.RecordFailure(ctx, "stale@example.com")
	store.RecordFailure(ctx, "locked@example.com")
	store.RecordFailure(ctx, "locked@example.com")

	// Past the window but inside the lockout.
	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	store.RecordFailure(ctx, "fresh@example.com")

	n, err := store.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if a, _ := store.GetAttempt(ctx, "stale@example.com"); a != nil {
		t.Error("stale record not pruned")
	}
	if a, _ := store.GetAttempt(ctx, "locked@example.com"); a == nil {
		t.Error("locked record pruned")
	}
	if a, _ := store.GetAttempt(ctx, "fresh@example.com"); a == nil {
		t.Error("fresh record pruned")
	}
}
