package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustParse(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := ParseHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	return doc
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		wantOK bool
	}{
		{
			name:   "content root",
			src:    `<html><body><nav>Menu</nav><div class="page"><h1>Title</h1><p>Body   text.</p></div></body></html>`,
			want:   "Title\nBody text.",
			wantOK: true,
		},
		{
			name:   "first root wins",
			src:    `<div class="page"><p>one</p></div><div class="page"><p>two</p></div>`,
			want:   "one",
			wantOK: true,
		},
		{
			name:   "invisible content ignored",
			src:    `<div class="page"><script>track()</script><p>visible</p><p hidden>hidden</p></div>`,
			want:   "visible",
			wantOK: true,
		},
		{
			name:   "no content root",
			src:    `<div class="article"><p>text</p></div>`,
			wantOK: false,
		},
		{
			name:   "whitespace only",
			src:    "<div class=\"page\">  \n\t <p> </p></div>",
			wantOK: false,
		},
		{
			name:   "only hidden text",
			src:    `<div class="page"><style>p{}</style><span aria-hidden="true">x</span></div>`,
			wantOK: false,
		},
	}

	e := New("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Extract(mustParse(t, tt.src))
			if ok != tt.wantOK {
				t.Fatalf("Extract() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	doc := mustParse(t, `<div class="page"><h2>Intro</h2><p>Same text <a href="#">every</a> time.</p></div>`)
	before, _ := doc.Html()
	e := New(DefaultSelector)

	first, ok1 := e.Extract(doc)
	second, ok2 := e.Extract(doc)

	if !ok1 || !ok2 || first != second {
		t.Errorf("Extract not idempotent: %q (%v) vs %q (%v)", first, ok1, second, ok2)
	}
	after, _ := doc.Html()
	if before != after {
		t.Error("Extract modified the document")
	}
}

func TestExtract_ReadsLiveDocument(t *testing.T) {
	doc := mustParse(t, `<div class="page"><p>old</p></div>`)
	e := New("")

	if got, _ := e.Extract(doc); got != "old" {
		t.Fatalf("Extract() = %q", got)
	}
	doc.Find(".page p").SetText("new")
	if got, _ := e.Extract(doc); got != "new" {
		t.Errorf("Extract() = %q after DOM change, want new", got)
	}
}

func TestExtract_CustomSelectorAndSelection(t *testing.T) {
	doc := mustParse(t, `<main><article id="story"><p>story text</p></article></main>`)
	e := New("#story")

	got, ok := e.Extract(doc.Find("main"))
	if !ok || got != "story text" {
		t.Errorf("Extract() = %q, %v", got, ok)
	}
	if e.Selector() != "#story" {
		t.Errorf("Selector() = %q", e.Selector())
	}
}

func TestExtract_NilDocument(t *testing.T) {
	if _, ok := New("").Extract(nil); ok {
		t.Error("nil document should yield no text")
	}
}
