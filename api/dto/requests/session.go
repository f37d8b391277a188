// ABOUTME: Request DTOs for the reader session endpoints
// ABOUTME: Mounting takes page HTML, a URL to fetch, or both

package requests

import (
	"net/url"
	"strings"

	"reader-assist/core/errors"
)

// MountSessionRequest mounts a reader overlay for a page
type MountSessionRequest struct {
	URL  string `json:"url,omitempty" doc:"Page URL; fetched when html is omitted" example:"https://example.com/article"`
	HTML string `json:"html,omitempty" doc:"Page HTML the extension already holds"`
}

// Validate checks that the request names a page
func (r MountSessionRequest) Validate() error {
	if strings.TrimSpace(r.HTML) == "" && r.URL == "" {
		return &errors.ValidationError{Field: "body", Message: "either url or html is required"}
	}
	if r.URL != "" && !isHTTPURL(r.URL) {
		return &errors.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CompleteChatRequest optionally adds a user turn before completing
type CompleteChatRequest struct {
	Message string `json:"message,omitempty" doc:"Follow-up question appended as a user message" example:"What is the main argument?"`
}
