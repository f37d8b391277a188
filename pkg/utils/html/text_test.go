package html

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestVisibleText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "paragraphs become lines",
			src:  "<p>First   paragraph.</p><p>Second\tparagraph.</p>",
			want: "First paragraph.\nSecond paragraph.",
		},
		{
			name: "inline elements join",
			src:  "<p>Go is <b>fast</b> and <em>simple</em>.</p>",
			want: "Go is fast and simple.",
		},
		{
			name: "script and style skipped",
			src:  "<div><script>var x = 1;</script><style>p{}</style><p>Body</p></div>",
			want: "Body",
		},
		{
			name: "hidden attributes skipped",
			src:  `<div><p hidden>secret</p><span aria-hidden="true">icon</span><p aria-hidden="false">shown</p></div>`,
			want: "shown",
		},
		{
			name: "noscript and template skipped",
			src:  "<noscript>enable js</noscript><template><p>tpl</p></template><p>text</p>",
			want: "text",
		},
		{
			name: "only whitespace",
			src:  "<div>   \n\t </div>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleText(parse(t, tt.src)); got != tt.want {
				t.Errorf("VisibleText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVisibleText_Nil(t *testing.T) {
	if got := VisibleText(nil); got != "" {
		t.Errorf("VisibleText(nil) = %q", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	got := NormalizeWhitespace("  a  b \r\n\n\n  c\t\td  ")
	if got != "a b\nc d" {
		t.Errorf("NormalizeWhitespace() = %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<h1>Title</h1><p>Tom &amp; Jerry&nbsp;show</p>")
	if got != "Title\nTom & Jerry show" {
		t.Errorf("StripHTML() = %q", got)
	}
}
