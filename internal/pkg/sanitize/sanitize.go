// Package sanitize strips or allow-lists markup in user-submitted text.
package sanitize

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// markdownElements is the full set of tags a rendered post body may contain.
// No attributes are allowed on any of them.
var markdownElements = []string{"p", "br", "ul", "li", "ol", "strong", "bold", "i", "em", "h1", "h2", "h3"}

var (
	strictPolicy   = bluemonday.StrictPolicy()
	markdownPolicy = bluemonday.NewPolicy().AllowElements(markdownElements...)
	markdown       = goldmark.New()
)

// maxPasses bounds the strip loop. Every pass that changes its input removes
// a tag or decodes an entity, so real input settles in a few passes.
const maxPasses = 32

// StripTags removes every tag and attribute from s and returns plain text.
// Entities are decoded after each pass and the pass repeats until nothing
// changes, so escaped markup cannot turn into a tag later and
// StripTags(StripTags(s)) == StripTags(s). The result is meant to be escaped
// by whatever displays it.
func StripTags(s string) string {
	return settle(s, func(v string) string {
		return html.UnescapeString(strictPolicy.Sanitize(v))
	})
}

// PlainText trims s and strips all markup until the value is stable.
func PlainText(s string) string {
	return settle(strings.TrimSpace(s), func(v string) string {
		return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(v)))
	})
}

func settle(s string, pass func(string) string) string {
	for i := 0; i < maxPasses; i++ {
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

// RenderMarkdown converts a markdown body to HTML limited to the allow-listed
// elements. goldmark already omits raw HTML; the policy is the final gate.
func RenderMarkdown(body string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return template.HTML(markdownPolicy.Sanitize(template.HTMLEscapeString(body)))
	}
	return template.HTML(markdownPolicy.SanitizeBytes(buf.Bytes()))
}
