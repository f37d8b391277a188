// ABOUTME: Chat handler for the Huma API
// ABOUTME: Exposes a session's transcript and forwards it to the chat backend

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"reader-assist/api/dto/mappers"
	"reader-assist/api/dto/requests"
	"reader-assist/api/dto/responses"
	"reader-assist/core/domain"
	"reader-assist/core/errors"
	"reader-assist/core/interfaces"
	"reader-assist/core/overlay"
	"reader-assist/pkg/featureflags"
)

// ChatHandler handles transcript and completion requests
type ChatHandler struct {
	registry *overlay.Registry
	settings interfaces.SettingsStore
	backend  interfaces.ChatBackend
	logger   interfaces.Logger
}

// NewChatHandler creates a new chat handler. A nil backend disables completion.
func NewChatHandler(registry *overlay.Registry, settings interfaces.SettingsStore, backend interfaces.ChatBackend, logger interfaces.Logger) *ChatHandler {
	return &ChatHandler{
		registry: registry,
		settings: settings,
		backend:  backend,
		logger:   logger,
	}
}

// RegisterRoutes registers all chat routes
func (h *ChatHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getTranscript",
		Method:      http.MethodGet,
		Path:        "/sessions/{id}/transcript",
		Summary:     "Get the session transcript",
		Tags:        []string{"Chat"},
	}, h.GetTranscript)

	huma.Register(api, huma.Operation{
		OperationID: "resetTranscript",
		Method:      http.MethodDelete,
		Path:        "/sessions/{id}/transcript",
		Summary:     "Clear the session transcript",
		Tags:        []string{"Chat"},
	}, h.ResetTranscript)

	huma.Register(api, huma.Operation{
		OperationID: "completeChat",
		Method:      http.MethodPost,
		Path:        "/sessions/{id}/chat/complete",
		Summary:     "Send the transcript to the chat backend",
		Description: "Optionally appends a user message, then appends the assistant reply",
		Tags:        []string{"Chat"},
	}, h.CompleteChat)
}

// TranscriptOutput wraps a transcript response
type TranscriptOutput struct {
	Body responses.TranscriptResponse
}

// GetTranscript returns the session transcript
func (h *ChatHandler) GetTranscript(ctx context.Context, input *SessionIDInput) (*TranscriptOutput, error) {
	o, err := h.registry.Lookup(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TranscriptOutput{Body: mappers.ToTranscriptResponse(o.Transcript.Current())}, nil
}

// ResetTranscript clears the session transcript
func (h *ChatHandler) ResetTranscript(ctx context.Context, input *SessionIDInput) (*TranscriptOutput, error) {
	o, err := h.registry.Lookup(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TranscriptOutput{Body: mappers.ToTranscriptResponse(o.Transcript.Reset())}, nil
}

// CompleteChatInput defines the input for the CompleteChat operation
type CompleteChatInput struct {
	ID   string `path:"id" doc:"Session id"`
	Body *requests.CompleteChatRequest
}

// CompleteChat sends the transcript to the backend and appends the reply
func (h *ChatHandler) CompleteChat(ctx context.Context, input *CompleteChatInput) (*TranscriptOutput, error) {
	if err := requireFeature(ctx, featureflags.ChatEnabled); err != nil {
		return nil, err
	}
	if h.backend == nil {
		return nil, huma.Error503ServiceUnavailable("Chat backend not configured")
	}

	o, err := h.registry.Lookup(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	transcript := o.Transcript.Current()
	if input.Body != nil && strings.TrimSpace(input.Body.Message) != "" {
		message := strings.TrimSpace(input.Body.Message)
		transcript = o.Transcript.Append(domain.UserMessage(message))
	}
	if len(transcript) == 0 {
		return nil, toHumaError(&errors.ValidationError{Field: "message", Message: "transcript is empty"})
	}

	reply, err := h.backend.Complete(ctx, h.settings.Get(), transcript)
	if err != nil {
		h.logger.Error("Chat completion failed", map[string]interface{}{
			"session_id": input.ID,
			"messages":   len(transcript),
			"error":      err.Error(),
		})
		return nil, toHumaError(err)
	}

	updated := o.Transcript.Append(reply)
	return &TranscriptOutput{Body: mappers.ToTranscriptResponse(updated)}, nil
}
