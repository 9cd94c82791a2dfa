package sanitize

import (
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// hostileInputs is shared by the idempotence and safety tests.
var hostileInputs = []string{
	``,
	`plain text`,
	`<div onclick="evil()" id="x" data-foo="y">t</div>`,
	`<html lang="en"><head><title>T</title><script>alert(1)</script><style>p{}</style></head><body><p>Hi</p></body></html>`,
	`<!DOCTYPE html><html><head><meta charset="utf-8"><link rel="stylesheet" href="x.css"></head><body>  <main> <p>a</p> </main>  </body></html>`,
	`<svg><script>alert(1)</script><foreignObject><input value="x"></foreignObject></svg><p>after</p>`,
	`<style><script>alert(1)</script></style><head><input></head><b>bold</b>`,
	`<div><script><script>alert(1)</script></script></div>`,
	`<scr<script>ipt>alert(1)</script>`,
	`<img src="data:image/png;base64,AAAA"><img src="https://x/y.png" alt="a" onerror="evil()">`,
	`<IMG SRC=" DATA:image/gif;BASE64,R0lGOD=="><p>t</p>`,
	`<a href="javascript:evil()">x</a><a href="&#106;avascript:evil()">y</a><a href=" java	script:evil()">z</a>`,
	`<a href="//evil.example/x">p</a><a href="\\evil.example">q</a><a href="mailto:a@b.c">m</a>`,
	`<p title="data:text/html;base64,PHNjcmlwdD4=">see data:image/png;base64,iVBORw0KGgo= here</p>`,
	`<div><span><p>   </p></span></div><section>` + "\u200b" + `</section>`,
	`<i class="fa fa-star"></i><em>keep</em>`,
	`<iframe src="https://evil.example"></iframe><noscript><img src=x></noscript><template><p>t</p></template>`,
	`<math><mtext><table><mglyph><style><img src=x onerror=alert(1)></style></mglyph></table></mtext></math>`,
	`<form><math><mtext></form><form><mglyph><style></math><img src onerror=alert(1)>`,
	`<table><tr><td>1</td><td></td></tr></table>`,
	`<p>unclosed <b>bold <i>icon <a href="/rel">link`,
	`<!-- comment --><div id="a" id="b">dup</div>`,
	`<textarea><script>alert(1)</script></textarea><select><option>o</option></select>`,
	`<object data="x.swf"><embed src="x.swf"></object><xmp><script>x</script></xmp>`,
	`<a href="https://ok?a=1&amp;b=2" id="l">amp</a>`,
	`<p>` + nestedInlineData(12) + `</p>`,
	`<p id="` + nestedInlineData(12) + `">t</p>`,
	`<p>keep data:x<b></b>;base64,AA</p>`,
}

// nestedInlineData wraps a payload so that stripping it joins the
// surrounding text into another one, depth times over.
func nestedInlineData(depth int) string {
	return strings.Repeat("data", depth) + "data:y;base64,ZZ" + strings.Repeat(":x;base64,BB", depth)
}

func TestSanitizeIdempotent(t *testing.T) {
	f := New()
	for _, input := range hostileInputs {
		t.Run(input, func(t *testing.T) {
			report := f.Run(input)
			require.True(t, report.Converged, "filter did not settle")

			again := f.Sanitize(report.HTML)
			assert.Equal(t, report.HTML, again)
		})
	}
}

func TestSanitizeSafety(t *testing.T) {
	blocked := map[string]bool{
		"script": true, "style": true, "svg": true, "iframe": true,
		"meta": true, "input": true, "link": true, "title": true,
	}

	for _, input := range hostileInputs {
		t.Run(input, func(t *testing.T) {
			out := Sanitize(input)

			lower := strings.ToLower(out)
			for _, tag := range []string{"<script", "<style", "<svg", "<iframe", "<meta", "<input"} {
				assert.NotContains(t, lower, tag)
			}
			assert.NotContains(t, lower, ";base64,")
			assert.NotContains(t, lower, "javascript:")

			doc, err := htmlquery.Parse(strings.NewReader(out))
			require.NoError(t, err)

			for _, n := range htmlquery.Find(doc, "//*") {
				assert.False(t, blocked[n.Data], "blocked element %q in %q", n.Data, out)
				if n.Data == "head" {
					assert.Nil(t, n.FirstChild, "head content in %q", out)
				}
				for _, attr := range n.Attr {
					assert.True(t, allowedAttribute(n.Data, attr.Key),
						"attribute %q on <%s> in %q", attr.Key, n.Data, out)
				}
			}
		})
	}
}

func TestSanitizeStripsAttributes(t *testing.T) {
	out := Sanitize(`<div onclick="evil()" id="x" data-foo="y">t</div>`)
	assert.Equal(t, `<div id="x">t</div>`, out)
}

func TestSanitizeKeepsFirstDuplicateAttribute(t *testing.T) {
	out := Sanitize(`<div id="a" id="b">dup</div>`)
	assert.Equal(t, `<div id="a">dup</div>`, out)
}

func TestSanitizeRemovesSubtrees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "script inside svg",
			input: `<svg><script>alert(1)</script></svg><p>after</p>`,
			want:  `<p>after</p>`,
		},
		{
			name:  "script text inside style",
			input: `<style><script>alert(1)</script></style><b>bold</b>`,
			want:  `<b>bold</b>`,
		},
		{
			name:  "icon wrapper",
			input: `<i class="fa fa-star"></i><em>keep</em>`,
			want:  `<em>keep</em>`,
		},
		{
			name:  "form inputs",
			input: `<p>name <input name="q"><textarea>x</textarea><select><option>o</option></select></p>`,
			want:  `<p>name </p>`,
		},
		{
			name:  "metadata",
			input: `<meta charset="utf-8"><link rel="icon" href="x"><p>t</p>`,
			want:  `<p>t</p>`,
		},
		{
			name:  "comments",
			input: `<!-- hidden --><p>t<!-- also --></p>`,
			want:  `<p>t</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeDocument(t *testing.T) {
	input := `<!DOCTYPE html>
<html lang="en">
<head>
	<title>Test Page</title>
	<meta name="description" content="d">
	<script>window.x = 1</script>
</head>
<body class="home">
	<h1 id="main-heading">Welcome</h1>
	<p>Text</p>
</body>
</html>`

	out := Sanitize(input)

	assert.True(t, strings.HasPrefix(out, "<html>"), out)
	assert.Contains(t, out, `<h1 id="main-heading">Welcome</h1>`)
	assert.Contains(t, out, `<p>Text</p>`)
	assert.NotContains(t, out, "Test Page")
	assert.NotContains(t, out, "window.x")
	assert.NotContains(t, out, "<head")
	assert.NotContains(t, out, "class=")
	assert.NotContains(t, out, "\n")
}

func TestSanitizeInlineImages(t *testing.T) {
	t.Run("base64 image removed", func(t *testing.T) {
		out := Sanitize(`<p>before<img src="data:image/png;base64,AAAA">after</p>`)
		assert.Equal(t, `<p>beforeafter</p>`, out)
	})

	t.Run("mixed case payload removed", func(t *testing.T) {
		out := Sanitize(`<IMG SRC=" DATA:image/gif;BASE64,R0lGOD=="><p>t</p>`)
		assert.Equal(t, `<p>t</p>`, out)
	})

	t.Run("remote image kept with src and alt", func(t *testing.T) {
		out := Sanitize(`<img class="hero" src="https://x/y.png" alt="a" onerror="evil()">`)

		doc, err := htmlquery.Parse(strings.NewReader(out))
		require.NoError(t, err)
		imgs := htmlquery.Find(doc, "//img")
		require.Len(t, imgs, 1)
		assert.Equal(t, []html.Attribute{
			{Key: "src", Val: "https://x/y.png"},
			{Key: "alt", Val: "a"},
		}, imgs[0].Attr)
	})

	t.Run("payload stripped from text and attributes", func(t *testing.T) {
		out := Sanitize(`<p id="pre data:text/html;base64,PHNjcmlwdD4= post">see data:image/png;base64,iVBORw0KGgo= here</p>`)
		assert.Equal(t, `<p id="pre  post">see  here</p>`, out)
	})
}

func TestSanitizeSchemes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		dropped bool
	}{
		{name: "https link", input: `<a href="https://ok">x</a>`, want: `https://ok`},
		{name: "http link", input: `<a href="http://ok/path">x</a>`, want: `http://ok/path`},
		{name: "mailto link", input: `<a href="mailto:a@b.c">x</a>`, want: `mailto:a@b.c`},
		{name: "relative link", input: `<a href="/about">x</a>`, want: `/about`},
		{name: "fragment link", input: `<a href="#top">x</a>`, want: `#top`},
		{name: "javascript", input: `<a href="javascript:evil()">x</a>`, dropped: true},
		{name: "entity encoded javascript", input: `<a href="&#106;avascript:evil()">x</a>`, dropped: true},
		{name: "tab in scheme", input: "<a href=\"java\tscript:evil()\">x</a>", dropped: true},
		{name: "upper case", input: `<a href="JAVASCRIPT:evil()">x</a>`, dropped: true},
		{name: "protocol relative", input: `<a href="//evil.example/">x</a>`, dropped: true},
		{name: "backslash relative", input: `<a href="\\evil.example">x</a>`, dropped: true},
		{name: "data link", input: `<a href="data:text/html,hi">x</a>`, dropped: true},
		{name: "ftp link", input: `<a href="ftp://files">x</a>`, dropped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Sanitize(tt.input)
			assert.Contains(t, out, "x")
			if tt.dropped {
				assert.NotContains(t, out, "href")
				return
			}
			assert.Contains(t, out, `href="`+tt.want+`"`)
		})
	}

	t.Run("mailto image", func(t *testing.T) {
		out := Sanitize(`<img src="mailto:a@b.c" alt="m">`)
		assert.NotContains(t, out, "src=")
		assert.Contains(t, out, `alt="m"`)
	})
}

func TestSanitizePrunesEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty span", input: `<span></span>`, want: ``},
		{name: "blank paragraph", input: `<p>   </p>`, want: ``},
		{name: "nested two levels", input: `<div><span><p>   </p></span></div>`, want: ``},
		{name: "zero width", input: "<section>\u200b\u200d</section>", want: ``},
		{name: "emptied by removal", input: `<div><script>x</script><i></i></div><p>t</p>`, want: `<p>t</p>`},
		{name: "emptied by attribute strip", input: `<a href="javascript:x"></a>`, want: ``},
		{name: "attributes keep element", input: `<div id="slot"></div>`, want: `<div id="slot"></div>`},
		{name: "void element kept", input: `<p>a<br>b</p>`, want: `<p>a<br/>b</p>`},
		{name: "whitespace between tags", input: "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>", want: `<ul><li>a</li><li>b</li></ul>`},
		{name: "inner text spacing kept", input: `<p>a <b>b</b> c</p>`, want: `<p>a <b>b</b> c</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestRunReportsPasses(t *testing.T) {
	f := New()

	report := f.Run(`<p>t</p>`)
	assert.True(t, report.Converged)
	assert.Equal(t, 1, report.Passes)

	report = f.Run(`<div onclick="x"><span></span>t</div>`)
	assert.True(t, report.Converged)
	assert.Equal(t, 2, report.Passes)
	assert.Equal(t, `<div>t</div>`, report.HTML)
}

func TestSanitizeNestedInlineData(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "text", input: `<p>` + nestedInlineData(DefaultMaxPasses+2) + `</p>`},
		{name: "attribute", input: `<p id="` + nestedInlineData(DefaultMaxPasses+2) + `">t</p>`},
		{name: "split by removed element", input: `<p>keep data:x<i>icon</i>;base64,AA</p>`},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := f.Run(tt.input)
			require.True(t, report.Converged, "filter did not settle after %d passes", report.Passes)
			assert.NotContains(t, strings.ToLower(report.HTML), ";base64,")
			assert.Equal(t, report.HTML, f.Sanitize(report.HTML))
		})
	}
}

func TestStripInlineDataRepeats(t *testing.T) {
	assert.Equal(t, "", stripInlineData(nestedInlineData(20)))
	assert.Equal(t, "before  after", stripInlineData("before data:image/png;base64,AAAA after"))
	assert.Equal(t, "no payload", stripInlineData("no payload"))
}

func TestRunStripsDataAtPassLimit(t *testing.T) {
	f := New()
	f.maxPasses = 1

	report := f.Run(`<p>data:x<a:b>q</a:b>;base64,AA</p><div onclick="x"><span></span>t</div>`)
	assert.False(t, report.Converged)
	assert.Equal(t, 1, report.Passes)
	assert.NotRegexp(t, inlineDataPattern, report.HTML)
}

func TestAllowedURL(t *testing.T) {
	assert.True(t, allowedURL("https://x", linkSchemes))
	assert.True(t, allowedURL("  https://x  ", linkSchemes))
	assert.True(t, allowedURL("page.html?x=1", linkSchemes))
	assert.True(t, allowedURL("a/b:c", linkSchemes))
	assert.False(t, allowedURL("", linkSchemes))
	assert.False(t, allowedURL(":x", linkSchemes))
	assert.False(t, allowedURL("mailto:x", imageSchemes))
	assert.False(t, allowedURL("\x01javascript:x", linkSchemes))
	assert.False(t, allowedURL("1http:x", linkSchemes))
}

func TestLooksLikeDocument(t *testing.T) {
	assert.True(t, looksLikeDocument("<!DOCTYPE html><html>"))
	assert.True(t, looksLikeDocument("  <html>"))
	assert.True(t, looksLikeDocument(`<HTML lang="en">`))
	assert.True(t, looksLikeDocument("<html"))
	assert.False(t, looksLikeDocument("<html-widget></html-widget>"))
	assert.False(t, looksLikeDocument("<div>"))
}
