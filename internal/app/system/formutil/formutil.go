// Package formutil reads admin form submissions that may carry files.
//
// Content endpoints accept multipart/form-data (when files are attached) or
// application/x-www-form-urlencoded. Parse handles both and exposes the
// fields in the shapes the content operations need: optional scalars,
// repeated values and upload files.
package formutil

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/stratatour/internal/app/system/apperr"
	"github.com/dalemusser/stratatour/internal/app/system/assets"
)

// memoryLimit is how much of a multipart body is held in memory before
// parts spill to temp files.
const memoryLimit = 32 << 20

// Form is a parsed request body.
type Form struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
}

// Parse reads the body of r, capped at maxBytes. Oversized and malformed
// bodies are InvalidInput.
func Parse(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Form, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	err := r.ParseMultipartForm(memoryLimit)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return nil, apperr.InvalidInput("Upload is too large")
		}
		return nil, apperr.InvalidInput("Invalid form data")
	}

	f := &Form{values: r.PostForm, files: map[string][]*multipart.FileHeader{}}
	if f.values == nil {
		f.values = url.Values{}
	}
	if r.MultipartForm != nil {
		f.files = r.MultipartForm.File
	}
	return f, nil
}

// Close removes any temp files created for the multipart body.
func Close(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// Has reports whether the field was submitted, even if empty.
func (f *Form) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Value returns the trimmed first value of name.
func (f *Form) Value(name string) string {
	return strings.TrimSpace(f.values.Get(name))
}

// Optional returns the trimmed value of name, or nil if it was not submitted.
func (f *Form) Optional(name string) *string {
	if !f.Has(name) {
		return nil
	}
	v := f.Value(name)
	return &v
}

// Values returns every submitted value of name, in order.
func (f *Form) Values(name string) []string {
	return f.values[name]
}

// List returns the trimmed, non-empty values of name without splitting on
// commas. Use it for URLs, which may contain commas.
func (f *Form) List(name string) []string {
	out := []string{}
	for _, v := range f.values[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Files returns the uploads submitted under name, skipping empty parts.
func (f *Form) Files(name string) []assets.File {
	var out []assets.File
	for _, fh := range f.files[name] {
		if fh == nil || fh.Size == 0 && fh.Filename == "" {
			continue
		}
		out = append(out, assets.FromMultipart(fh))
	}
	return out
}

// File returns the first upload under name.
func (f *Form) File(name string) (assets.File, bool) {
	files := f.Files(name)
	if len(files) == 0 {
		return assets.File{}, false
	}
	return files[0], true
}
