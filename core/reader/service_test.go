package reader

import (
	"context"
	"strings"
	"testing"
	"time"

	"reader-assist/core/errors"
	"reader-assist/core/extractor"
	"reader-assist/core/interfaces"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Understanding Channels in Go</title>
  <meta name="author" content="Jane Gopher">
  <meta property="og:site_name" content="Gopher Weekly">
</head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <article>
    <h1>Understanding Channels in Go</h1>
    <p>Channels are the pipes that connect concurrent goroutines. You can send values into channels from one goroutine and receive those values into another goroutine. This simple idea underpins most of the concurrency patterns in idiomatic Go programs.</p>
    <p>An unbuffered channel synchronizes the sender and the receiver: a send blocks until another goroutine is ready to receive. Buffered channels accept a limited number of values without a corresponding receiver, which makes them useful for smoothing out bursts of work.</p>
    <h2>Closing channels</h2>
    <p>Closing a channel indicates that no more values will be sent on it. Receivers can test whether a channel has been closed, and a range loop over a channel stops once the channel is closed and drained. Only the sender should close a channel, never the receiver.</p>
    <script>trackPageView();</script>
  </article>
  <footer>Copyright Gopher Weekly</footer>
</body>
</html>`

func newTestService(cache interfaces.Cache, client interfaces.HTTPClient) *Service {
	return NewService(cache, client, mockLogger{}, time.Minute)
}

func TestRender(t *testing.T) {
	cache := newMockCache()
	s := newTestService(cache, nil)

	view, err := s.Render(context.Background(), "https://example.com/channels", strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if view.Title != "Understanding Channels in Go" {
		t.Errorf("Title = %q", view.Title)
	}
	if !strings.Contains(view.TextContent, "Closing a channel indicates") {
		t.Errorf("TextContent missing article text: %q", view.TextContent)
	}
	if strings.Contains(view.TextContent, "trackPageView") {
		t.Error("TextContent contains script")
	}
	if view.ReadingTime != "1 minute" {
		t.Errorf("ReadingTime = %q", view.ReadingTime)
	}
	if !strings.HasPrefix(view.Markdown, "# Understanding Channels in Go") {
		t.Errorf("Markdown should start with the title: %q", view.Markdown)
	}
	if !strings.Contains(view.Markdown, "**URL:** <https://example.com/channels>") {
		t.Errorf("Markdown missing metadata header: %q", view.Markdown)
	}
	if _, ok := cache.data["reader:https://example.com/channels"]; !ok {
		t.Error("rendered view was not cached")
	}
	if cache.ttls["reader:https://example.com/channels"] != time.Minute {
		t.Error("view cached with wrong ttl")
	}
}

func TestRender_ContentRootIsExtractable(t *testing.T) {
	s := newTestService(nil, nil)
	view, err := s.Render(context.Background(), "", strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Document(view)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := extractor.New("").Extract(doc)
	if !ok {
		t.Fatal("rendered view has no extractable content root")
	}
	if !strings.Contains(text, "Channels are the pipes") {
		t.Errorf("extracted text = %q", text)
	}
}

func TestRender_InvalidURL(t *testing.T) {
	s := newTestService(nil, nil)
	_, err := s.Render(context.Background(), "not a url", strings.NewReader(samplePage))
	if !errors.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestRender_EmptyPage(t *testing.T) {
	s := newTestService(nil, nil)
	_, err := s.Render(context.Background(), "", strings.NewReader("<html><body></body></html>"))
	if !errors.IsExtraction(err) {
		t.Errorf("err = %v, want extraction error", err)
	}
}

func TestFetch(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: samplePage}, nil
		},
	}
	s := newTestService(newMockCache(), client)
	ctx := context.Background()

	first, err := s.Fetch(ctx, "https://example.com/a")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	second, err := s.Fetch(ctx, "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}

	if client.calls != 1 {
		t.Errorf("client called %d times, want 1 (second from cache)", client.calls)
	}
	if first.Title != second.Title || first.Markdown != second.Markdown {
		t.Error("cached view differs from rendered view")
	}
}

func TestFetch_UpstreamError(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 404, body: "not found"}, nil
		},
	}
	s := newTestService(nil, client)

	_, err := s.Fetch(context.Background(), "https://example.com/missing")
	if !errors.IsExternalAPI(err) {
		t.Errorf("err = %v, want external API error", err)
	}
}

func TestFetch_NoClient(t *testing.T) {
	s := newTestService(nil, nil)
	if _, err := s.Fetch(context.Background(), "https://example.com"); err == nil {
		t.Error("Fetch without a client should fail")
	}
}

func TestMarkdownFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Understanding Channels in Go", "Understanding Channels in Go.md"},
		{"What/Why: a <guide>?", "What Why a guide.md"},
		{"   ", "article.md"},
		{"", "article.md"},
		{"...hidden", "hidden.md"},
	}

	for _, tt := range tests {
		if got := MarkdownFileName(tt.title); got != tt.want {
			t.Errorf("MarkdownFileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestWrapContentRoot(t *testing.T) {
	wrapped := wrapContentRoot("<p>x</p>")
	if wrapped != `<div class="page"><p>x</p></div>` {
		t.Errorf("wrapContentRoot = %q", wrapped)
	}
	already := `<div id="readability-page-1" class="page"><p>x</p></div>`
	if got := wrapContentRoot(already); got != already {
		t.Errorf("existing root rewrapped: %q", got)
	}
}

func TestCleanMarkdown(t *testing.T) {
	got := cleanMarkdown("Intro  \r\n\n\n\n## Section\nBody")
	want := "Intro\n\n## Section\n\nBody"
	if got != want {
		t.Errorf("cleanMarkdown() = %q, want %q", got, want)
	}
}
