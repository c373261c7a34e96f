package tripdatestore

import (
	"reflect"
	"testing"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_SaveAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx); err != mongo.ErrNoDocuments {
		t.Fatalf("Get() on empty store error = %v, want mongo.ErrNoDocuments", err)
	}

	in := models.TripDate{
		Date:        "2026-06-12",
		Places:      []string{"Moscow", "Kazan"},
		Images:      []models.Image{{URL: "/files/trips/a.png", AssetID: "trips/a.png"}},
		Description: "Summer group trip",
	}
	saved, err := store.Save(ctx, in)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != saved.ID {
		t.Errorf("Get() id = %v, want %v", got.ID, saved.ID)
	}
	if got.Date != in.Date || got.Description != in.Description {
		t.Errorf("Get() = %+v", got)
	}
	if !reflect.DeepEqual(got.Places, in.Places) || !reflect.DeepEqual(got.Images, in.Images) {
		t.Errorf("Get() places/images = %v / %v", got.Places, got.Images)
	}
}

func TestStore_Save_NilSlicesStoredEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.Save(ctx, models.TripDate{Date: "2026-07-01"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got.Places == nil || len(got.Places) != 0 || got.Images == nil || len(got.Images) != 0 {
		t.Errorf("Save() places/images = %#v / %#v, want empty slices", got.Places, got.Images)
	}
}
