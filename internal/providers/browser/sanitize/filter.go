package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultMaxPasses bounds the fixed-point loop. Real pages settle after
// two or three passes.
const DefaultMaxPasses = 10

// Filter sanitizes page markup. A Filter is safe for concurrent use.
type Filter struct {
	policy         *bluemonday.Policy
	removeSelector string
	maxPasses      int
}

// Report describes one Run.
type Report struct {
	HTML      string
	Passes    int
	Converged bool
}

// New creates a filter with the default rule set.
func New() *Filter {
	return &Filter{
		policy:         newPolicy(),
		removeSelector: strings.Join(append(append([]string{}, removedElements...), metadataElements...), ", "),
		maxPasses:      DefaultMaxPasses,
	}
}

var defaultFilter = New()

// Sanitize runs the default filter over raw.
func Sanitize(raw string) string {
	return defaultFilter.Sanitize(raw)
}

// Sanitize returns the sanitized form of raw.
func (f *Filter) Sanitize(raw string) string {
	return f.Run(raw).HTML
}

// Run applies the rule set until the output stops changing. When the pass
// limit is reached first, the last output has its data payloads stripped
// once more and Converged is false.
func (f *Filter) Run(raw string) Report {
	out := raw
	for pass := 1; pass <= f.maxPasses; pass++ {
		next := f.pass(out)
		if next == out {
			return Report{HTML: next, Passes: pass, Converged: true}
		}
		out = next
	}
	return Report{HTML: stripInlineData(out), Passes: f.maxPasses}
}

// pass runs every rule once.
func (f *Filter) pass(raw string) string {
	root, err := parse(raw)
	if err != nil {
		return html.EscapeString(stripInlineData(raw))
	}

	f.removeSubtrees(root)
	clean(root)

	return f.policy.Sanitize(render(root))
}

// removeSubtrees drops blocked elements and inline images.
func (f *Filter) removeSubtrees(root *html.Node) {
	doc := goquery.NewDocumentFromNode(root)
	doc.Find(f.removeSelector).Remove()
	doc.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		return isInlineImageSource(src)
	}).Remove()
}

// clean walks the tree bottom-up. Children are finished before their
// parent is tested for emptiness, so chains of wrappers collapse in one
// walk.
func clean(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			clean(c)
			if voidElements[c.Data] {
				removeChildren(c)
			}
			c.Attr = filterAttributes(c)
			if prunable(c) {
				n.RemoveChild(c)
			}
		case html.TextNode:
			c.Data = stripInlineData(c.Data)
			if c.Data == "" {
				n.RemoveChild(c)
			}
		default:
			n.RemoveChild(c)
		}
		c = next
	}
	collapseWhitespace(n)
}

// collapseWhitespace merges adjacent text children of n and drops the
// blank ones that sit between two tags. Merged text is stripped again.
func collapseWhitespace(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			merged := false
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				merged = true
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
			if merged {
				c.Data = stripInlineData(c.Data)
			}
			if c.Data == "" || (isBlank(c.Data) && tagBefore(c) && tagAfter(c)) {
				n.RemoveChild(c)
			}
		}
		c = next
	}
}

func tagBefore(n *html.Node) bool {
	if n.PrevSibling != nil {
		return n.PrevSibling.Type == html.ElementNode
	}
	return n.Parent.Type == html.ElementNode
}

func tagAfter(n *html.Node) bool {
	if n.NextSibling != nil {
		return n.NextSibling.Type == html.ElementNode
	}
	return n.Parent.Type == html.ElementNode
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// parse builds a tree under a document node. Whole documents keep their
// html/body structure; anything else is parsed as body content.
func parse(raw string) (*html.Node, error) {
	if looksLikeDocument(raw) {
		return html.Parse(strings.NewReader(raw))
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(raw), context)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

func looksLikeDocument(raw string) bool {
	head := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if len(head) > 10 {
		head = head[:10]
	}
	head = strings.ToLower(head)
	if strings.HasPrefix(head, "<!doctype") {
		return true
	}
	if !strings.HasPrefix(head, "<html") {
		return false
	}
	if len(head) == len("<html") {
		return true
	}
	switch head[len("<html")] {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// render serializes the children of root. A child the renderer rejects is
// left out.
func render(root *html.Node) string {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		var part strings.Builder
		if err := html.Render(&part, c); err != nil {
			continue
		}
		b.WriteString(part.String())
	}
	return b.String()
}

// newPolicy mirrors the tree rules as a string-level allow-list. Element
// names are not restricted here; the tree pass has already removed the
// blocked ones.
func newPolicy() *bluemonday.Policy {
	anyElement := regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

	p := bluemonday.NewPolicy()
	p.AllowElementsMatching(anyElement)
	p.AllowNoAttrs().OnElementsMatching(anyElement)
	p.AllowAttrs("id").Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	return p
}
