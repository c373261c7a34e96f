package contactstore

import (
	"testing"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/dalemusser/stratatour/internal/testutil"
)

func TestStore_Get_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Phone != "" || !got.ID.IsZero() {
		t.Errorf("Get() = %+v, want empty profile", got)
	}
}

func TestStore_Save_Replaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Save(ctx, models.Contacts{
		Phone:     "+7 495 000 00 00",
		Instagram: "https://instagram.com/stratatour",
		VK:        "https://vk.com/stratatour",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second, err := store.Save(ctx, models.Contacts{Phone: "+7 812 111 11 11"})
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if second.ID != first.ID {
		t.Error("Save() should update the same document")
	}
	if second.Instagram != "" || second.VK != "" {
		t.Errorf("Save() is a full replace; got instagram=%q vk=%q", second.Instagram, second.VK)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Phone != "+7 812 111 11 11" {
		t.Errorf("Get() phone = %q", got.Phone)
	}
}
