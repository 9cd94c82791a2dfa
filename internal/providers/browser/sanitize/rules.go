package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// removedElements are dropped together with everything below them.
var removedElements = []string{
	// document metadata
	"head", "title",
	// executable or styling blocks
	"script", "style", "svg", "noscript", "template",
	// raw text containers
	"iframe", "noembed", "noframes", "object", "xmp", "plaintext",
	// decorative icon wrappers
	"i",
	// form inputs
	"input", "textarea", "select",
}

// metadataElements are void elements carrying document metadata only.
var metadataElements = []string{"meta", "link", "base"}

// voidElements never have content and are never pruned as empty.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// inlineDataPattern matches a base64 data: URI including its payload.
var inlineDataPattern = regexp.MustCompile(`(?i)data:[a-z0-9!#$&^_.+/=;-]*;base64,[a-z0-9+/=_-]*`)

// stripInlineData removes base64 data: payloads from s. Removing one
// payload can join its neighbours into another, so it repeats until none
// is left. Every replacement shortens s.
func stripInlineData(s string) string {
	for strings.Contains(strings.ToLower(s), "base64") {
		next := inlineDataPattern.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	return s
}

// isInlineImageSource reports whether src is a base64 data: URI.
func isInlineImageSource(src string) bool {
	src = strings.ToLower(normalizeURL(src))
	if !strings.HasPrefix(src, "data:") {
		return false
	}
	header, _, ok := strings.Cut(src, ",")
	return ok && strings.Contains(header, ";base64")
}

// allowedAttribute reports whether attribute key may stay on element tag.
func allowedAttribute(tag, key string) bool {
	switch key {
	case "id":
		return true
	case "href":
		return tag == "a"
	case "src", "alt":
		return tag == "img"
	}
	return false
}

// filterAttributes applies the allow-list, the scheme restriction and data
// payload stripping. The first occurrence of an attribute wins.
func filterAttributes(n *html.Node) []html.Attribute {
	if len(n.Attr) == 0 {
		return nil
	}

	var kept []html.Attribute
	seen := make(map[string]bool, len(n.Attr))
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		key := strings.ToLower(attr.Key)
		if seen[key] {
			continue
		}
		seen[key] = true

		if !allowedAttribute(n.Data, key) {
			continue
		}

		switch key {
		case "href":
			if !allowedURL(attr.Val, linkSchemes) {
				continue
			}
		case "src":
			if !allowedURL(attr.Val, imageSchemes) {
				continue
			}
		}

		kept = append(kept, html.Attribute{Key: key, Val: stripInlineData(attr.Val)})
	}
	return kept
}

// isBlank reports whether s holds only whitespace, zero-width characters
// included.
func isBlank(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || isZeroWidth(r) {
			continue
		}
		return false
	}
	return true
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}
	return false
}

// prunable reports whether an element is empty and attribute-free.
func prunable(n *html.Node) bool {
	return n.Type == html.ElementNode &&
		len(n.Attr) == 0 &&
		n.FirstChild == nil &&
		!voidElements[n.Data]
}
