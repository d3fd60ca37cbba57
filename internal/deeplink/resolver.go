package deeplink

import (
	"net/url"
	"strings"
	"sync"
)

// Match is the immutable result of a successful resolution: the raw
// clipboard text together with its parsed URI. Query parameters are decoded
// once, on first access.
type Match struct {
	raw string
	uri *ParsedURI

	paramsOnce sync.Once
	params     map[string]string
}

// Raw returns the clipboard text exactly as it was resolved.
func (m *Match) Raw() string {
	return m.raw
}

// URI returns the parsed form of the matched text.
func (m *Match) URI() *ParsedURI {
	return m.uri
}

// Params returns the decoded query parameters. Keys are unique; when a key
// repeats in the query string the last value wins.
func (m *Match) Params() map[string]string {
	m.paramsOnce.Do(func() {
		m.params = DecodeParams(m.uri.RawQuery)
	})
	return m.params
}

// Param looks up a single query parameter by name.
func (m *Match) Param(name string) (string, bool) {
	v, ok := m.Params()[name]
	return v, ok
}

// Resolve tests the clipboard text against each pattern in order and, on the
// first match, wraps the text and its parsed URI into a Match. Returns nil
// when the text is empty, no pattern matches, or the text does not coerce
// to a URI. Uses the full (wildcard-aware) matcher.
func Resolve(clipboard string, patterns []string) *Match {
	return ResolveWith(clipboard, patterns, DefaultOptions())
}

// ResolveWith is Resolve with explicit matcher options.
func ResolveWith(clipboard string, patterns []string, opts Options) *Match {
	if strings.TrimSpace(clipboard) == "" {
		return nil
	}

	matcher := NewMatcher(opts)
	matched := false
	for _, pattern := range patterns {
		if matcher.Matches(clipboard, pattern) {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	// A loose fast-path match does not guarantee the text parses as a
	// full URI.
	uri := ParseToURI(clipboard)
	if uri == nil {
		return nil
	}

	return &Match{raw: clipboard, uri: uri}
}

// DecodeParams decodes a key=value&key=value component, the format shared
// by URL query strings and install-referrer payloads. Pairs that fail
// percent-decoding are skipped rather than failing the whole map, since the
// source text is untrusted.
func DecodeParams(rawQuery string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			continue
		}
		params[key] = val
	}
	return params
}
