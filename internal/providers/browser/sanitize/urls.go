package sanitize

import "strings"

var (
	linkSchemes  = map[string]bool{"http": true, "https": true, "mailto": true}
	imageSchemes = map[string]bool{"http": true, "https": true}
)

// normalizeURL reads a URL attribute the way a browser does: leading and
// trailing C0 controls and spaces are ignored, tabs and newlines anywhere
// are removed.
func normalizeURL(raw string) string {
	raw = strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, raw)
}

// allowedURL reports whether raw is a relative reference or uses one of
// the given schemes. Protocol-relative references are rejected.
func allowedURL(raw string, schemes map[string]bool) bool {
	u := normalizeURL(raw)
	if u == "" {
		return false
	}

	if len(u) >= 2 && isSlash(u[0]) && isSlash(u[1]) {
		return false
	}

	i := strings.IndexAny(u, ":/?#\\")
	if i < 0 || u[i] != ':' {
		return true
	}
	if i == 0 {
		return false
	}

	scheme := strings.ToLower(u[:i])
	if !validScheme(scheme) {
		return false
	}
	return schemes[scheme]
}

func isSlash(c byte) bool {
	return c == '/' || c == '\\'
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
