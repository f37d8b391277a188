// ABOUTME: Domain models and types for reader view functionality
// ABOUTME: Defines the structure of a rendered article page

package domain

// ReaderView represents an article rendered into the reader overlay
type ReaderView struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	Content     string `json:"content"`     // HTML wrapped in the page content root
	Markdown    string `json:"markdown"`    // Markdown export
	TextContent string `json:"textContent"` // Plain text content
	SiteName    string `json:"siteName"`
	Image       string `json:"image"`
	Favicon     string `json:"favicon"`
	ReadingTime string `json:"readingTime,omitempty"`
}

// Article returns the identity of the rendered article
func (v ReaderView) Article() Article {
	return Article{Title: v.Title}
}
