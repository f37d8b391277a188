// Package api provides the HTTP API layer for the reader overlay.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers for sessions, chat, settings and the toolbar
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: request logging and per-client rate limiting
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// - JSON spec available at /openapi.json
// - Interactive docs at /docs
//
// 2. Request/Response Validation
//
// Huma validates request bodies from struct tags. Settings updates are
// partial: every field is a pointer and omitted fields keep their value.
//
//	type UpdateSettingsRequest struct {
//	    FontSize  *int `json:"fontSize,omitempty"`
//	    PageWidth *int `json:"pageWidth,omitempty"`
//	}
//
// 3. Middleware Support
//
// - Request logging with unique request IDs
// - Rate limiting per client IP
// - Feature flags attached to every request context
// - CORS handling
//
// # Usage Example
//
//	limiter := middleware.NewRateLimiter(10, 20)
//	defer limiter.Close()
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:  logger,
//	    Limiter: limiter,
//	    Flags:   featureflags.NewEnvManager("READER_"),
//	})
//	handlers.NewSettingsHandler(store, logger).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "session not found: 3f2a..."
//	}
//
// Extraction failures map to 422 and settings storage failures to 503.
package api
