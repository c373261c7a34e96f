package models

import "testing"

func TestCategoryTitle(t *testing.T) {
	tests := map[string]string{
		"restaurants":        "Restaurants",
		"touristAttractions": "Tourist Attractions",
		"naturalPlaces":      "Natural Places",
		"hotels":             "Hotels",
		"":                   "",
	}
	for in, want := range tests {
		if got := CategoryTitle(in); got != want {
			t.Errorf("CategoryTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsValidCategoryType(t *testing.T) {
	if !IsValidCategoryType("museums") {
		t.Error("museums should be valid")
	}
	if IsValidCategoryType("Museums") {
		t.Error("type match should be case-sensitive")
	}
	if IsValidCategoryType("casinos") {
		t.Error("casinos should not be valid")
	}
}

func TestIsValidServiceType(t *testing.T) {
	for _, st := range ServiceTypes {
		if !IsValidServiceType(st) {
			t.Errorf("IsValidServiceType(%q) = false, want true", st)
		}
	}
	if len(ServiceTypes) != 8 {
		t.Errorf("len(ServiceTypes) = %d, want 8", len(ServiceTypes))
	}
	if IsValidServiceType("spa") {
		t.Error("spa should not be a valid service type")
	}
}

func TestCategoryItem_StripHotelFields(t *testing.T) {
	price := 120.0
	it := CategoryItem{Title: "X", Address: "Tverskaya 1", PriceStartsFrom: &price, Amenities: []string{"wifi"}}
	it.StripHotelFields()
	if it.Address != "" || it.PriceStartsFrom != nil || it.Amenities != nil {
		t.Errorf("StripHotelFields() left hotel data: %+v", it)
	}
	if it.Title != "X" {
		t.Error("StripHotelFields() should keep shared fields")
	}
}
