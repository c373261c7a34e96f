// Package normalize provides helper functions for consistent input
// normalization across the application. Admin forms send the same field in
// several shapes (a comma-joined text box, a JSON array, an empty string for
// "no price"); the types here turn each shape into one canonical value at the
// request boundary so that no business logic has to inspect raw input.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical way to normalize emails before storage or comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a name or title by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// StringList splits every value on commas, trims each part and drops empty
// parts. It accepts both a single comma-joined form value and repeated values.
func StringList(values ...string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// StringOrArray is a list field that may arrive as a JSON array of strings or
// as a single comma-joined string. Set is false when the field was absent.
type StringOrArray struct {
	Set    bool
	Values []string
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrArray) UnmarshalJSON(data []byte) error {
	s.Set = true
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		s.Values = []string{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s.Values = StringList(str)
		return nil
	case len(data) > 0 && data[0] == '[':
		var raw []string
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.New("list must contain only strings")
		}
		s.Values = StringList(raw...)
		return nil
	default:
		return errors.New("list must be a string or an array of strings")
	}
}

// Or returns the normalized values when set, otherwise fallback.
func (s StringOrArray) Or(fallback []string) []string {
	if s.Set {
		return s.Values
	}
	return fallback
}

// NewStringOrArray builds a set value from form input.
func NewStringOrArray(values ...string) StringOrArray {
	return StringOrArray{Set: true, Values: StringList(values...)}
}

// Price is a numeric field that may arrive as a number, a numeric string, an
// empty string, or null. Empty string and null both mean "no price" and
// normalize to a nil Value, never to zero. Set is false when absent.
type Price struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	p.Set = true
	p.Value = nil
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := ParsePrice(str)
		if err != nil {
			return err
		}
		p.Value = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.New("price must be a number")
	}
	p.Value = &f
	return nil
}

// ParsePrice parses form text into a price. Blank text yields nil.
func ParsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("price must be a number")
	}
	return &f, nil
}

// Slug derives a URL slug: lowercase, runs of characters that are not letters
// or digits become a single "-", and leading/trailing "-" are trimmed.
// Letters are matched by Unicode class so Arabic titles keep readable slugs.
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Truncate returns the first n characters (runes) of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
