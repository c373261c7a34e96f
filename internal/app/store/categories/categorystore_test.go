package categorystore

import (
	"testing"

	"github.com/dalemusser/stratatour/internal/domain/models"
	"github.com/dalemusser/stratatour/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_SaveReplacesItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx, models.CategoryMuseums); err != mongo.ErrNoDocuments {
		t.Fatalf("Get() on empty store error = %v, want mongo.ErrNoDocuments", err)
	}

	first, err := store.Save(ctx, models.CategoryBucket{
		Type:  models.CategoryMuseums,
		Title: "Museums",
		Items: []models.CategoryItem{
			{ID: "museums-0-1", Slug: "hermitage", Title: "Hermitage"},
			{ID: "museums-1-1", Slug: "tretyakov", Title: "Tretyakov"},
		},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second, err := store.Save(ctx, models.CategoryBucket{
		Type:  models.CategoryMuseums,
		Title: "Museums",
		Items: []models.CategoryItem{{ID: "museums-1-1", Slug: "tretyakov", Title: "Tretyakov"}},
	})
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if second.ID != first.ID {
		t.Error("Save() should keep one bucket per type")
	}
	if len(second.Items) != 1 || second.Items[0].Slug != "tretyakov" {
		t.Errorf("Save() items = %+v, want only tretyakov", second.Items)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, typ := range []string{models.CategoryShopping, models.CategoryEvents} {
		if _, err := store.Save(ctx, models.CategoryBucket{Type: typ, Title: models.CategoryTitle(typ)}); err != nil {
			t.Fatalf("Save(%s) error = %v", typ, err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].Type != models.CategoryEvents || got[1].Type != models.CategoryShopping {
		t.Errorf("List() = %+v, want events then shopping", got)
	}
	if got[0].Items == nil {
		t.Error("List() items should be an empty slice, not nil")
	}
}
