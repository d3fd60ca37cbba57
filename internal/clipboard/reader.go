// Package clipboard reads candidate deep-link text from the system
// clipboard. It applies only light hygiene; deciding whether the text is an
// acceptable deep link belongs to the deeplink package.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// MaxTextLen bounds accepted clipboard text. Deep links are short; anything
// larger is not worth handing to the matcher.
const MaxTextLen = 4096

var clipboardReadAll = clipboard.ReadAll

// Sanitize trims the text and rejects content that cannot be a deep link:
// overlong text or text containing newlines. Returns "" when rejected.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > MaxTextLen || strings.ContainsAny(text, "\n\r") {
		return ""
	}
	return text
}

// ReadText returns sanitized clipboard text. An unreadable clipboard yields
// "", never an error: absent clipboard context is an expected condition for
// deferred attribution, not a failure.
func ReadText() string {
	text, err := clipboardReadAll()
	if err != nil {
		return ""
	}
	return Sanitize(text)
}
