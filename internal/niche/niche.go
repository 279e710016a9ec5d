// Package niche decides whether a post's text belongs to the user's
// configured topics.
package niche

import "strings"

// Result is the outcome of a keyword match. NotConfigured means no keywords
// are set at all, which callers must treat differently from Miss: with no
// keywords there is nothing to highlight, and any stale niche markers
// should be cleared.
type Result int

const (
	NotConfigured Result = iota
	Hit
	Miss
)

// Match reports whether text contains any of the keywords as a plain
// substring. No tokenization or word boundaries: "art" matches "party".
// Keywords are expected to already be lowercase.
func Match(text string, keywords []string) Result {
	if len(keywords) == 0 {
		return NotConfigured
	}

	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return Hit
		}
	}
	return Miss
}
