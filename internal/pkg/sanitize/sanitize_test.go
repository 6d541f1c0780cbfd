package sanitize

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		"  Hello  ":                         "Hello",
		"<b>Hello</b>":                      "Hello",
		`<a href="javascript:x()">click</a>`: "click",
		"<script>alert(1)</script>Hi":       "Hi",
		"Tom & Jerry":                       "Tom & Jerry",
		"  <b> </b>  ":                      "",
		"**markdown** stays":                "**markdown** stays",
		"&lt;b&gt;Hi&lt;/b&gt;":             "Hi",
		"a < b && c > d":                    "a < b && c > d",
	}
	for in, want := range cases {
		if got := PlainText(in); got != want {
			t.Errorf("PlainText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlainTextIsStable(t *testing.T) {
	inputs := []string{
		"&lt;b&gt;Hi&lt;/b&gt; &lt;script&gt;x&lt;/script&gt;",
		"Use &lt;br&gt; for a line break",
		"&amp;lt;i&amp;gt;double&amp;lt;/i&amp;gt;",
		"Fish & Chips <3",
		"line one\r\nline two",
		"  <p> spaced </p>  ",
	}
	for _, in := range inputs {
		once := PlainText(in)
		if twice := PlainText(once); twice != once {
			t.Errorf("PlainText(%q) = %q, applied again = %q", in, once, twice)
		}
		if once != StripTags(once) {
			t.Errorf("PlainText(%q) = %q still carries markup", in, once)
		}
		if strings.Contains(once, "<b>") || strings.Contains(once, "<script") || strings.Contains(once, "<i>") {
			t.Errorf("PlainText(%q) = %q decoded into a tag", in, once)
		}
	}
}

func TestRenderMarkdownKeepsLiteralText(t *testing.T) {
	got := string(RenderMarkdown(PlainText("Fish & Chips <3 and a < b")))
	if !strings.Contains(got, "Fish &amp; Chips &lt;3 and a &lt; b") {
		t.Errorf("rendered output %q lost literal text", got)
	}
}

func TestRenderMarkdownAllowedTags(t *testing.T) {
	got := string(RenderMarkdown("# Title\n\n**world** and *you*\n\n- one\n- two\n\n1. first"))
	for _, want := range []string{"<h1>Title</h1>", "<strong>world</strong>", "<em>you</em>", "<ul>", "<li>one</li>", "<ol>"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered output %q missing %q", got, want)
		}
	}
}

func TestRenderMarkdownStripsUnsafeMarkup(t *testing.T) {
	input := "<script>alert(1)</script>\n\n[link](http://example.com) ![img](x.png)\n\n#### deep\n\n<p onclick=\"x()\">raw</p>"
	got := string(RenderMarkdown(input))

	for _, banned := range []string{"<script", "<a", "href", "<img", "<h4", "onclick", "<!--"} {
		if strings.Contains(got, banned) {
			t.Errorf("rendered output %q contains %q", got, banned)
		}
	}
	if !strings.Contains(got, "link") || !strings.Contains(got, "deep") {
		t.Errorf("rendered output %q lost text content", got)
	}
}

func TestRenderMarkdownNoAttributes(t *testing.T) {
	got := string(RenderMarkdown("```go\ncode\n```\n\n**bold**"))
	if strings.Contains(got, "class=") {
		t.Errorf("rendered output %q kept an attribute", got)
	}
}
