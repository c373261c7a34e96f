package formutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/testutil"
)

func TestParse_Multipart(t *testing.T) {
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/trip-date",
		map[string][]string{
			"date":   {" 2025-06-01 "},
			"places": {"Moscow", "Kazan"},
			"empty":  {""},
		},
		testutil.FormFile{Field: "images", Filename: "a.png", ContentType: "image/png", Data: testutil.PNG()},
		testutil.FormFile{Field: "images", Filename: "b.png", ContentType: "image/png", Data: testutil.PNG()},
	)
	rec := httptest.NewRecorder()

	f, err := Parse(rec, req, 1<<20)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer Close(req)

	if f.Value("date") != "2025-06-01" {
		t.Errorf("Value(date) = %q", f.Value("date"))
	}
	if got := f.Values("places"); len(got) != 2 || got[1] != "Kazan" {
		t.Errorf("Values(places) = %v", got)
	}
	if p := f.Optional("empty"); p == nil || *p != "" {
		t.Errorf("Optional(empty) = %v, want pointer to empty", p)
	}
	if f.Optional("missing") != nil {
		t.Error("Optional(missing) should be nil")
	}

	files := f.Files("images")
	if len(files) != 2 || files[0].Filename != "a.png" {
		t.Fatalf("Files(images) = %+v", files)
	}
	rc, err := files[0].Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != string(testutil.PNG()) {
		t.Error("file content mismatch")
	}

	if _, ok := f.File("video"); ok {
		t.Error("File(video) should be absent")
	}
}

func TestParse_URLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/hero", strings.NewReader("title=Hello&subtitle="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := Parse(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Value("title") != "Hello" || !f.Has("subtitle") || f.Has("ctaText") {
		t.Errorf("unexpected fields: %v", f.values)
	}
	if len(f.Files("video")) != 0 {
		t.Error("urlencoded form should have no files")
	}
}

func TestForm_List_KeepsCommas(t *testing.T) {
	body := "keep=" + url.QueryEscape("https://cdn.example.com/a.jpg?w=640,h=480") + "&keep=%20&keep=/files/b.png"
	req := httptest.NewRequest(http.MethodPost, "/trip-date", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := Parse(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := f.List("keep")
	want := []string{"https://cdn.example.com/a.jpg?w=640,h=480", "/files/b.png"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("List(keep) = %q, want %q", got, want)
	}
	if got := f.List("missing"); len(got) != 0 {
		t.Errorf("List(missing) = %q, want empty", got)
	}
}

func TestParse_TooLarge(t *testing.T) {
	big := make([]byte, 4096)
	req := testutil.NewMultipartRequest(t, http.MethodPost, "/hero", nil,
		testutil.FormFile{Field: "video", Filename: "v.mp4", Data: big})

	_, err := Parse(httptest.NewRecorder(), req, 512)
	if !apperr.Is(err, apperr.KindInvalidInput) {
		t.Fatalf("Parse() error = %v, want InvalidInput", err)
	}
	if apperr.Message(err) != "Upload is too large" {
		t.Errorf("message = %q", apperr.Message(err))
	}
}
