package text

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize reduces card content to plain text: all markup is stripped and
// HTML entities are unescaped so the stored value is what the user typed.
func Sanitize(content string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(content)))
}
