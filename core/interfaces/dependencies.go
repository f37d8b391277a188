// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the reader core

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache persists settings and caches rendered reader views
	Cache Cache

	// HTTPClient fetches pages when a session is mounted from a URL
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// ChatBackend completes transcripts against the AI provider
	ChatBackend ChatBackend
}
