package deeplink

import "strings"

// Normalize trims the input and strips at most one leading "https://" or
// "http://" prefix, case-insensitively. It does not touch "www.", query
// strings, or trailing slashes, and is idempotent.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case hasPrefixFold(s, "https://"):
		return s[len("https://"):]
	case hasPrefixFold(s, "http://"):
		return s[len("http://"):]
	}
	return s
}
