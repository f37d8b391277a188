// ABOUTME: Reader view renderer producing the overlay page and its markdown export
// ABOUTME: Runs go-readability over page HTML, wraps the content root and caches views by URL

package reader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"reader-assist/core/domain"
	coreerrors "reader-assist/core/errors"
	"reader-assist/core/interfaces"
	"reader-assist/pkg/utils/duration"
	htmlutil "reader-assist/pkg/utils/html"
)

// ContentRootClass is the class of the element holding the rendered article
const ContentRootClass = "page"

// DefaultCacheTTL is used when the service is created without a TTL
const DefaultCacheTTL = time.Hour

const cachePrefix = "reader:"

var (
	reBlankLines     = regexp.MustCompile(`\n{3,}`)
	reTrailingSpace  = regexp.MustCompile(`[ \t]+\n`)
	reLeadingSpace   = regexp.MustCompile(`\n[ \t]+`)
	reHeaderBefore   = regexp.MustCompile(`\n(#{1,6} )`)
	reHeaderAfter    = regexp.MustCompile(`(#{1,6} [^\n]+)\n([^\n])`)
	reUnsafeFileName = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)
)

// Service renders host pages into reader views
type Service struct {
	cache    interfaces.Cache
	client   interfaces.HTTPClient
	logger   interfaces.Logger
	cacheTTL time.Duration
}

// NewService creates a reader service. cache and client may be nil; without a
// cache views are never reused and without a client Fetch is unavailable.
func NewService(cache interfaces.Cache, client interfaces.HTTPClient, logger interfaces.Logger, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		cache:    cache,
		client:   client,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Render turns page HTML into a reader view. pageURL resolves relative links
// and keys the view cache; it may be empty for local files.
func (s *Service) Render(ctx context.Context, pageURL string, page io.Reader) (domain.ReaderView, error) {
	parsed := &url.URL{Scheme: "file", Path: "/"}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "file") {
			return domain.ReaderView{}, &coreerrors.ValidationError{Field: "url", Message: "must be an absolute http(s) or file URL"}
		}
		parsed = u
	}

	article, err := readability.FromReader(page, parsed)
	if err != nil {
		s.logger.Error("Failed to parse reader view", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return domain.ReaderView{}, &coreerrors.ExtractionError{Selector: "." + ContentRootClass, Err: err}
	}

	text := htmlutil.NormalizeWhitespace(article.TextContent)
	if text == "" {
		return domain.ReaderView{}, &coreerrors.ExtractionError{Selector: "." + ContentRootClass, Err: coreerrors.ErrEmptyContent}
	}

	view := domain.ReaderView{
		URL:         pageURL,
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		Content:     wrapContentRoot(article.Content),
		TextContent: text,
		SiteName:    article.SiteName,
		Image:       article.Image,
		Favicon:     article.Favicon,
		ReadingTime: duration.HumanReadable(duration.ReadingTime(text)),
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(view.Content)
	if err != nil {
		// Markdown is an export convenience; the view is still usable
		s.logger.Debug("Failed to convert HTML to markdown", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
	} else {
		view.Markdown = buildMarkdownWithMetadata(view, markdown)
	}

	s.store(ctx, view)
	return view, nil
}

// Fetch downloads pageURL and renders it, reusing a cached view when present
func (s *Service) Fetch(ctx context.Context, pageURL string) (domain.ReaderView, error) {
	if view, ok := s.Cached(ctx, pageURL); ok {
		s.logger.Debug("Reader view cache hit", map[string]interface{}{"url": pageURL})
		return view, nil
	}
	if s.client == nil {
		return domain.ReaderView{}, errors.New("reader: no HTTP client configured")
	}

	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return domain.ReaderView{}, coreerrors.WrapError(err, "fetch page")
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return domain.ReaderView{}, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "page fetch failed",
			API:        pageURL,
		}
	}

	return s.Render(ctx, pageURL, body)
}

// Cached returns the cached view for pageURL
func (s *Service) Cached(ctx context.Context, pageURL string) (domain.ReaderView, bool) {
	if s.cache == nil || pageURL == "" {
		return domain.ReaderView{}, false
	}
	data, err := s.cache.Get(ctx, cachePrefix+pageURL)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn("Reader view cache read failed", map[string]interface{}{
				"url":   pageURL,
				"error": err.Error(),
			})
		}
		return domain.ReaderView{}, false
	}
	var view domain.ReaderView
	if err := json.Unmarshal(data, &view); err != nil {
		return domain.ReaderView{}, false
	}
	return view, true
}

func (s *Service) store(ctx context.Context, view domain.ReaderView) {
	if s.cache == nil || view.URL == "" {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cachePrefix+view.URL, data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache reader view", map[string]interface{}{
			"url":   view.URL,
			"error": err.Error(),
		})
	}
}

// Document parses the rendered view so the content extractor can read it
func Document(view domain.ReaderView) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(view.Content))
}

// MarkdownFileName returns a safe download file name for an article title
func MarkdownFileName(title string) string {
	name := reUnsafeFileName.ReplaceAllString(title, " ")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, ". ")
	if runes := []rune(name); len(runes) > 120 {
		name = strings.TrimSpace(string(runes[:120]))
	}
	if name == "" {
		name = "article"
	}
	return name + ".md"
}

// wrapContentRoot makes sure the article sits inside exactly one content root
func wrapContentRoot(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil && doc.Find("."+ContentRootClass).Length() > 0 {
		return content
	}
	return fmt.Sprintf(`<div class="%s">%s</div>`, ContentRootClass, content)
}

// buildMarkdownWithMetadata creates a markdown document with a metadata header
func buildMarkdownWithMetadata(view domain.ReaderView, content string) string {
	var markdown strings.Builder

	if view.Title != "" {
		markdown.WriteString("# ")
		markdown.WriteString(view.Title)
		markdown.WriteString("\n\n")
	}

	var metadataItems []string
	if view.Byline != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Author:** %s", view.Byline))
	}
	if view.SiteName != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Source:** %s", view.SiteName))
	}
	if view.ReadingTime != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Reading time:** %s", view.ReadingTime))
	}
	if view.URL != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**URL:** <%s>", view.URL))
	}

	if len(metadataItems) > 0 {
		markdown.WriteString(strings.Join(metadataItems, " | "))
		markdown.WriteString("\n\n---\n\n")
	}

	markdown.WriteString(cleanMarkdown(content))
	return markdown.String()
}

// cleanMarkdown removes excessive newlines and tidies header spacing
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")

	markdown = reBlankLines.ReplaceAllString(markdown, "\n\n")
	markdown = reTrailingSpace.ReplaceAllString(markdown, "\n")
	markdown = reLeadingSpace.ReplaceAllString(markdown, "\n")

	markdown = reHeaderBefore.ReplaceAllString(markdown, "\n\n$1")
	markdown = reHeaderAfter.ReplaceAllString(markdown, "$1\n\n$2")
	markdown = reBlankLines.ReplaceAllString(markdown, "\n\n")

	return strings.TrimSpace(markdown)
}
