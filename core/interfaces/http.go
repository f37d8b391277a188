package interfaces

import (
	"context"
	"io"
)

// HTTPClient fetches host pages when an overlay is mounted from a URL
// instead of from the page HTML the extension already holds.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, or "".
	Header(key string) string
}
