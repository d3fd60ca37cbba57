package deeplink

import (
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		clipboard string
		pattern   string
		want      bool
	}{
		// Literal and normalized equality
		{"exact match", "https://example.com", "https://example.com", true},
		{"scheme stripped equality", "https://example.com", "example.com", true},
		{"reverse scheme equality", "example.com", "https://example.com", true},
		{"http vs https", "http://example.com", "https://example.com", true},

		// Loose prefix fast path (preserved compatibility behavior)
		{"path under pattern", "https://example.com/anything", "example.com", true},
		{"loose prefix accepts lookalike host", "example.com.evil.net", "example.com", true},

		// Subdomain containment
		{"subdomain", "https://sub.example.com", "example.com", true},
		{"www subdomain", "https://www.example.com", "example.com", true},
		{"www in pattern", "https://example.com", "www.example.com", true},
		{"deep subdomain", "https://a.b.example.com", "example.com", true},
		{"suffix without dot boundary", "https://notexample.com", "example.com", false},
		{"different host", "https://other.org", "example.com", false},

		// Host wildcard
		{"wildcard host subdomain", "https://a.b.example.com", "*.example.com", true},
		{"wildcard host bare domain", "https://example.com", "*.example.com", true},
		{"wildcard host lookalike", "https://notexample.com", "*.example.com", false},

		// Path constraints
		{"path prefix", "https://example.com/profile/settings", "example.com/profile", true},
		{"path prefix loose segments", "https://example.com/profiles/x", "example.com/profile", true},
		{"path mismatch", "https://example.com/other", "example.com/profile", false},
		{"root path pattern", "https://example.com/anything", "example.com/", true},
		{"pattern path on subdomain", "https://m.example.com/profile/settings?x=1", "https://example.com/profile", true},

		// Path wildcard
		{"path wildcard exact base", "https://example.com/profile", "example.com/profile/*", true},
		{"path wildcard nested", "https://example.com/profile/settings", "example.com/profile/*", true},
		{"path wildcard mismatch", "https://example.com/other", "example.com/profile/*", false},
		{"any path wildcard", "https://example.com/a/b/c", "example.com/*", true},

		// Malformed input
		{"garbage clipboard", "not a url###", "example.com", false},
		{"garbage pattern", "https://example.com", "###", false},
		{"empty clipboard", "", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.clipboard, tt.pattern); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.clipboard, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatchesUniversalWildcard(t *testing.T) {
	inputs := []string{
		"https://example.com",
		"example.com",
		"hello",
		"not a url###",
		"",
		"   ",
	}

	for _, s := range inputs {
		want := ParseToURI(s) != nil
		if got := Matches(s, "*"); got != want {
			t.Errorf("Matches(%q, \"*\") = %v, want %v", s, got, want)
		}
	}
}

func TestMatchesSchemeTransparent(t *testing.T) {
	cases := []struct {
		candidate string
		pattern   string
	}{
		{"example.com/profile", "example.com"},
		{"sub.example.com", "example.com"},
		{"example.com", "*.example.com"},
		{"other.org", "example.com"},
		{"example.com/profile/settings", "example.com/profile/*"},
	}

	for _, c := range cases {
		base := Matches(c.candidate, c.pattern)
		for _, prefix := range []string{"http://", "https://", "HTTP://", "HtTpS://"} {
			if got := Matches(prefix+c.candidate, c.pattern); got != base {
				t.Errorf("Matches(%q, %q) = %v, differs from unprefixed %v",
					prefix+c.candidate, c.pattern, got, base)
			}
		}
	}
}

func TestMatchesNoWildcard(t *testing.T) {
	tests := []struct {
		name      string
		clipboard string
		pattern   string
		want      bool
	}{
		{"plain host still matches", "https://example.com", "example.com", true},
		{"subdomain still matches", "https://sub.example.com", "example.com", true},
		{"path prefix still matches", "https://example.com/profile/x", "example.com/profile", true},
		{"universal wildcard disabled", "https://example.com", "*", false},
		{"host wildcard disabled", "https://sub.example.com", "*.example.com", false},
		{"path wildcard disabled", "https://example.com/profile", "example.com/profile/*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesNoWildcard(tt.clipboard, tt.pattern); got != tt.want {
				t.Errorf("MatchesNoWildcard(%q, %q) = %v, want %v", tt.clipboard, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatcherStrictHostBoundary(t *testing.T) {
	strict := NewMatcher(Options{Wildcards: true, StrictHostBoundary: true})

	if strict.Matches("example.com.evil.net", "example.com") {
		t.Error("strict matcher accepted lookalike host example.com.evil.net")
	}
	if !strict.Matches("https://sub.example.com", "example.com") {
		t.Error("strict matcher rejected genuine subdomain")
	}
	if !strict.Matches("https://example.com/profile", "example.com/profile") {
		t.Error("strict matcher rejected exact path match")
	}
}

func TestMatcherSegmentBoundary(t *testing.T) {
	m := NewMatcher(Options{Wildcards: true, StrictHostBoundary: true, SegmentBoundary: true})

	if m.Matches("https://example.com/profiles/x", "example.com/profile") {
		t.Error("segment-aware matcher accepted /profiles/x for /profile")
	}
	if !m.Matches("https://example.com/profile/x", "example.com/profile") {
		t.Error("segment-aware matcher rejected /profile/x for /profile")
	}
	if !m.Matches("https://example.com/profile", "example.com/profile") {
		t.Error("segment-aware matcher rejected exact path")
	}
}
