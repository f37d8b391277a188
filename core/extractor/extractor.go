// ABOUTME: Content extractor that reads the article text from a rendered reader page
// ABOUTME: Locates the single content root and returns its normalized visible text

package extractor

import (
	"io"

	"github.com/PuerkitoBio/goquery"

	htmlutil "reader-assist/pkg/utils/html"
)

// DefaultSelector matches the content root rendered by the reader view
const DefaultSelector = ".page"

// Document is the part of a parsed page the extractor needs. Both
// *goquery.Document and *goquery.Selection satisfy it.
type Document interface {
	Find(selector string) *goquery.Selection
}

// Extractor pulls article text out of a document
type Extractor struct {
	selector string
}

// New creates an extractor for the given content root selector
func New(selector string) *Extractor {
	if selector == "" {
		selector = DefaultSelector
	}
	return &Extractor{selector: selector}
}

// Selector returns the content root selector
func (e *Extractor) Selector() string {
	return e.selector
}

// Extract returns the visible text of the first content root in doc. The
// boolean is false when there is no root or the root holds no visible text.
// The document is never modified and nothing is cached.
func (e *Extractor) Extract(doc Document) (string, bool) {
	if doc == nil {
		return "", false
	}
	root := doc.Find(e.selector).First()
	if root.Length() == 0 {
		return "", false
	}

	text := htmlutil.VisibleText(root.Get(0))
	if text == "" {
		return "", false
	}
	return text, true
}

// ParseHTML parses a page into a document the extractor can read
func ParseHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}
