package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestImage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Image
		wantErr bool
	}{
		{
			name:  "bare URLs",
			input: `["https://cdn.example.com/a.jpg", " https://cdn.example.com/b.jpg "]`,
			want: []Image{
				{URL: "https://cdn.example.com/a.jpg"},
				{URL: "https://cdn.example.com/b.jpg"},
			},
		},
		{
			name:  "objects",
			input: `[{"url":"/files/a.jpg","assetId":"categories/2026/10/abc.jpg","title":"Front"}]`,
			want: []Image{
				{URL: "/files/a.jpg", AssetID: "categories/2026/10/abc.jpg", Title: "Front"},
			},
		},
		{
			name:  "mixed",
			input: `["/files/a.jpg", {"url":"/files/b.jpg","assetId":"x/b.jpg"}]`,
			want: []Image{
				{URL: "/files/a.jpg"},
				{URL: "/files/b.jpg", AssetID: "x/b.jpg"},
			},
		},
		{
			name:    "number",
			input:   `[42]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Image
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAssetIDs(t *testing.T) {
	imgs := []Image{
		{URL: "/a", AssetID: "a"},
		{URL: "https://elsewhere.example.com/b.jpg"},
		{URL: "/c", AssetID: "c"},
	}
	got := AssetIDs(imgs)
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssetIDs() = %v, want %v", got, want)
	}
}

func TestCleanImages(t *testing.T) {
	got := CleanImages([]Image{{URL: ""}, {URL: "/a"}, {AssetID: "orphan"}})
	if len(got) != 1 || got[0].URL != "/a" {
		t.Errorf("CleanImages() = %+v, want only /a", got)
	}
}
