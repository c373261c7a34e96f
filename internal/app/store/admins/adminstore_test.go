package adminstore

import (
	"testing"

	"github.com/dalemusser/stratatour/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "  Admin@Example.COM ", "$2a$12$hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Email != "admin@example.com" {
		t.Errorf("Create() email = %q, want normalized", created.Email)
	}

	got, err := store.GetByEmail(ctx, "ADMIN@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "$2a$12$hash" {
		t.Errorf("GetByEmail() = %+v", got)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByEmail(ctx, "nobody@example.com")
	if err != mongo.ErrNoDocuments {
		t.Errorf("GetByEmail() error = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "admin@example.com", "h1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, "ADMIN@example.com", "h2"); err != ErrDuplicateEmail {
		t.Errorf("second Create() error = %v, want ErrDuplicateEmail", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}
