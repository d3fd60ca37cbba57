// Package deeplink implements the pattern-matching engine behind deferred
// deep-link attribution: deciding whether an arbitrary URL-like string
// (typically read from the system clipboard) satisfies a developer-supplied
// allow-pattern, and extracting query parameters from it on success.
package deeplink

import (
	"net/url"
	"strings"
)

// ParsedURI is the structured form of a coerced deep-link candidate.
// It is never mutated after ParseToURI returns it.
type ParsedURI struct {
	Scheme   string
	Host     string
	Path     string
	RawQuery string
}

// ParseToURI coerces an arbitrary string into a ParsedURI. Strings without an
// explicit http:// or https:// prefix are parsed as if prefixed with
// "https://". Returns nil when the input cannot be parsed or yields no host;
// it never panics, since candidates are untrusted clipboard text.
func ParseToURI(raw string) *ParsedURI {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if !hasHTTPScheme(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil
	}

	return &ParsedURI{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}
}

// HostBase returns the host with a single leading "www." stripped,
// case-insensitively. Used for subdomain containment checks.
func (u *ParsedURI) HostBase() string {
	return stripWWW(u.Host)
}

// NormalPath returns the path, treating an empty path as "/".
func (u *ParsedURI) NormalPath() string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

func hasHTTPScheme(s string) bool {
	return hasPrefixFold(s, "http://") || hasPrefixFold(s, "https://")
}

func stripWWW(host string) string {
	if hasPrefixFold(host, "www.") {
		return host[len("www."):]
	}
	return host
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
