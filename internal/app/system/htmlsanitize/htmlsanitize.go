// Package htmlsanitize provides HTML sanitization for user-generated rich text content.
// It uses bluemonday to strip potentially dangerous HTML while preserving safe formatting.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for sanitizing rich text.
	policy     *bluemonday.Policy
	policyOnce sync.Once

	// strict removes every tag and is used to build plain-text excerpts.
	strict     *bluemonday.Policy
	strictOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// Start with UGC (User Generated Content) policy as base
		policy = bluemonday.UGCPolicy()

		// Blog editor output
		policy.AllowElements("u", "s", "sub", "sup", "mark", "figure", "figcaption")
		policy.AllowAttrs("dir").Matching(bluemonday.Direction).Globally()
		policy.AllowAttrs("lang").Globally()
	})
	return policy
}

func getStrict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Sanitize cleans HTML input, removing potentially dangerous elements and attributes.
// It preserves safe formatting like bold, italic, lists, links and images.
func Sanitize(content string) string {
	if content == "" {
		return ""
	}
	return getPolicy().Sanitize(content)
}

// SanitizeContent sanitizes any content that contains a "<" and returns
// the rest unchanged, so writing plain text never picks up entity escaping.
// An unclosed tag still goes through the policy.
func SanitizeContent(content string) string {
	if IsPlainText(content) {
		return content
	}
	return Sanitize(content)
}

// StripTags removes all markup and returns the readable text with entities
// decoded and whitespace collapsed.
func StripTags(content string) string {
	if content == "" {
		return ""
	}
	if IsPlainText(content) {
		return strings.Join(strings.Fields(content), " ")
	}
	text := html.UnescapeString(getStrict().Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// IsPlainText reports whether content has no "<" at all. A browser can
// complete a tag left open at the end of the content, so a lone "<" counts
// as markup.
func IsPlainText(content string) bool {
	return !strings.Contains(content, "<")
}
