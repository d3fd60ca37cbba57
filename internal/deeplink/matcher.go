package deeplink

import "strings"

// Options controls matching behavior. The zero value is the legacy matcher:
// no wildcard support, loose host and path boundaries.
type Options struct {
	// Wildcards enables the universal "*" pattern, "*.host" subdomain
	// wildcards, and trailing "/*" path wildcards.
	Wildcards bool

	// StrictHostBoundary disables the loose normalized-prefix fast path,
	// under which pattern "example.com" also accepts
	// "example.com.evil.net". Off by default for compatibility.
	StrictHostBoundary bool

	// SegmentBoundary requires path prefixes to end on a "/" segment
	// boundary, so "/profile" no longer accepts "/profiles/x". Off by
	// default for compatibility.
	SegmentBoundary bool
}

// DefaultOptions is the full matcher: wildcards on, compatibility-loose
// host and path boundaries.
func DefaultOptions() Options {
	return Options{Wildcards: true}
}

// Matcher tests clipboard candidates against allow-patterns. It holds no
// mutable state and is safe for concurrent use.
type Matcher struct {
	opts Options
}

func NewMatcher(opts Options) *Matcher {
	return &Matcher{opts: opts}
}

// Matches reports whether clipboard satisfies pattern per the full matcher
// (wildcards enabled).
func Matches(clipboard, pattern string) bool {
	return NewMatcher(DefaultOptions()).Matches(clipboard, pattern)
}

// MatchesNoWildcard is the legacy variant: identical host-subdomain and
// literal path-prefix logic, but no universal "*", "*.host", or trailing
// "/*" support.
func MatchesNoWildcard(clipboard, pattern string) bool {
	return NewMatcher(Options{}).Matches(clipboard, pattern)
}

// Matches reports whether the clipboard candidate satisfies the
// allow-pattern. It never panics; unparseable input yields false, except
// for the universal wildcard, which only requires the candidate itself to
// coerce to a URI.
func (m *Matcher) Matches(clipboard, pattern string) bool {
	trimmed := strings.TrimSpace(pattern)

	if m.opts.Wildcards && trimmed == "*" {
		return ParseToURI(clipboard) != nil
	}

	// Fast path on normalized strings, before any parsing. The prefix
	// acceptance is intentionally loose; StrictHostBoundary opts out.
	normClip := Normalize(clipboard)
	normPat := Normalize(pattern)
	if normClip == normPat {
		return true
	}
	if !m.opts.StrictHostBoundary && strings.HasPrefix(normClip, normPat) {
		return true
	}

	clip := ParseToURI(clipboard)
	pat := ParseToURI(trimmed)
	if clip == nil || pat == nil {
		return false
	}

	clipHost := clip.HostBase()
	patHost := pat.HostBase()
	if clipHost == "" || patHost == "" {
		return false
	}

	if !m.hostMatches(clipHost, patHost) {
		return false
	}
	return m.pathMatches(clip.NormalPath(), pat.Path)
}

// hostMatches checks host equality with subdomain containment: pattern host
// "example.com" accepts "example.com" and any "*.example.com". An explicit
// "*.example.com" pattern behaves the same way when wildcards are enabled.
func (m *Matcher) hostMatches(clipHost, patHost string) bool {
	if m.opts.Wildcards && strings.HasPrefix(patHost, "*.") {
		base := patHost[len("*."):]
		return clipHost == base || strings.HasSuffix(clipHost, "."+base)
	}
	return clipHost == patHost || strings.HasSuffix(clipHost, "."+patHost)
}

func (m *Matcher) pathMatches(clipPath, patPath string) bool {
	// No path constraint: host match alone suffices.
	if patPath == "" || patPath == "/" {
		return true
	}

	if m.opts.Wildcards {
		if patPath == "/*" || patPath == "*" {
			return true
		}
		if strings.HasSuffix(patPath, "/*") {
			// "/profile/*" accepts "/profile" itself and anything
			// nested under "/profile/".
			base := strings.TrimSuffix(patPath, "*")
			return clipPath == strings.TrimSuffix(base, "/") ||
				strings.HasPrefix(clipPath, base)
		}
	}

	if m.opts.SegmentBoundary {
		return clipPath == patPath ||
			strings.HasPrefix(clipPath, strings.TrimSuffix(patPath, "/")+"/")
	}
	return strings.HasPrefix(clipPath, patPath)
}
