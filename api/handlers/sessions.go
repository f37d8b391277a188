// ABOUTME: Reader session handler for the Huma API
// ABOUTME: Mounts overlays and drives their toolbar actions and markdown export

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"reader-assist/api/dto/mappers"
	"reader-assist/api/dto/requests"
	"reader-assist/api/dto/responses"
	"reader-assist/core/domain"
	"reader-assist/core/interfaces"
	"reader-assist/core/overlay"
	"reader-assist/core/reader"
	"reader-assist/pkg/featureflags"
)

// SessionHandler handles reader session requests
type SessionHandler struct {
	registry *overlay.Registry
	reader   interfaces.ReaderService
	logger   interfaces.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *overlay.Registry, readerService interfaces.ReaderService, logger interfaces.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		reader:   readerService,
		logger:   logger,
	}
}

// RegisterRoutes registers all session routes
func (h *SessionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "mountSession",
		Method:        http.MethodPost,
		Path:          "/sessions",
		Summary:       "Mount a reader overlay",
		Description:   "Renders the page into a reader view and opens a session for it",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.MountSession)

	huma.Register(api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/sessions/{id}",
		Summary:     "Get session state",
		Tags:        []string{"Sessions"},
	}, h.GetSession)

	huma.Register(api, huma.Operation{
		OperationID: "unmountSession",
		Method:      http.MethodDelete,
		Path:        "/sessions/{id}",
		Summary:     "Unmount a reader overlay",
		Tags:        []string{"Sessions"},
	}, h.UnmountSession)

	huma.Register(api, huma.Operation{
		OperationID: "toggleChat",
		Method:      http.MethodPost,
		Path:        "/sessions/{id}/chat/toggle",
		Summary:     "Toggle the paragraph chat panel",
		Tags:        []string{"Toolbar"},
	}, h.ToggleChat)

	huma.Register(api, huma.Operation{
		OperationID: "summarizeFullArticle",
		Method:      http.MethodPost,
		Path:        "/sessions/{id}/summary",
		Summary:     "Toggle the full-article summary",
		Description: "Flips the chat panel into full-article mode and, when it opens, appends a summary request to the transcript",
		Tags:        []string{"Toolbar"},
	}, h.SummarizeFullArticle)

	huma.Register(api, huma.Operation{
		OperationID: "toggleTranslate",
		Method:      http.MethodPost,
		Path:        "/sessions/{id}/translate/toggle",
		Summary:     "Toggle page translation",
		Tags:        []string{"Toolbar"},
	}, h.ToggleTranslate)

	huma.Register(api, huma.Operation{
		OperationID: "toggleSettingsPanel",
		Method:      http.MethodPost,
		Path:        "/sessions/{id}/settings-panel/toggle",
		Summary:     "Toggle the settings panel",
		Tags:        []string{"Toolbar"},
	}, h.ToggleSettingsPanel)

	huma.Register(api, huma.Operation{
		OperationID: "exportMarkdown",
		Method:      http.MethodGet,
		Path:        "/sessions/{id}/markdown",
		Summary:     "Download the article as markdown",
		Tags:        []string{"Toolbar"},
	}, h.ExportMarkdown)
}

// MountSessionInput defines the input for the MountSession operation
type MountSessionInput struct {
	Body requests.MountSessionRequest
}

// SessionOutput wraps a session response
type SessionOutput struct {
	Body responses.SessionResponse
}

// SessionIDInput identifies a mounted session
type SessionIDInput struct {
	ID string `path:"id" doc:"Session id"`
}

// MountSession renders a page and mounts an overlay for it
func (h *SessionHandler) MountSession(ctx context.Context, input *MountSessionInput) (*SessionOutput, error) {
	if err := input.Body.Validate(); err != nil {
		return nil, toHumaError(err)
	}

	var (
		view domain.ReaderView
		err  error
	)
	if strings.TrimSpace(input.Body.HTML) != "" {
		view, err = h.reader.Render(ctx, input.Body.URL, strings.NewReader(input.Body.HTML))
	} else {
		view, err = h.reader.Fetch(ctx, input.Body.URL)
	}
	if err != nil {
		return nil, toHumaError(err)
	}

	o, err := h.registry.Mount(view)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SessionOutput{Body: mappers.ToSessionResponse(ctx, o)}, nil
}

// GetSession returns the state of a mounted session
func (h *SessionHandler) GetSession(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
	o, err := h.registry.Lookup(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SessionOutput{Body: mappers.ToSessionResponse(ctx, o)}, nil
}

// UnmountSession tears a session down
func (h *SessionHandler) UnmountSession(ctx context.Context, input *SessionIDInput) (*struct{}, error) {
	if err := h.registry.Unmount(input.ID); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}

// ToggleChat opens or closes the paragraph chat panel
func (h *SessionHandler) ToggleChat(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
	return h.toggle(ctx, input.ID, featureflags.ChatEnabled, func(o *overlay.Overlay) {
		o.Toolbar.ToggleChat()
	})
}

// ToggleTranslate flips page translation
func (h *SessionHandler) ToggleTranslate(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
	return h.toggle(ctx, input.ID, featureflags.TranslateEnabled, func(o *overlay.Overlay) {
		o.Toolbar.ToggleTranslate()
	})
}

// ToggleSettingsPanel opens or closes the settings panel
func (h *SessionHandler) ToggleSettingsPanel(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
	return h.toggle(ctx, input.ID, featureflags.SettingsEnabled, func(o *overlay.Overlay) {
		o.Toolbar.ToggleSettingsPanel()
	})
}

func (h *SessionHandler) toggle(ctx context.Context, id string, flag featureflags.FeatureFlag, action func(*overlay.Overlay)) (*SessionOutput, error) {
	if err := requireFeature(ctx, flag); err != nil {
		return nil, err
	}
	o, err := h.registry.Lookup(id)
	if err != nil {
		return nil, toHumaError(err)
	}
	action(o)
	return &SessionOutput{Body: mappers.ToSessionResponse(ctx, o)}, nil
}

// SummaryOutput wraps a summary response
type SummaryOutput struct {
	Body responses.SummaryResponse
}

// SummarizeFullArticle runs the full-article summary toolbar action. An
// extraction failure is reported in the body; the panel transition stands.
func (h *SessionHandler) SummarizeFullArticle(ctx context.Context, input *SessionIDInput) (*SummaryOutput, error) {
	if err := requireFeature(ctx, featureflags.FullArticleSummaryEnabled); err != nil {
		return nil, err
	}
	o, err := h.registry.Lookup(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	outcome := o.SummarizeFullArticle()
	return &SummaryOutput{Body: mappers.ToSummaryResponse(ctx, o, outcome)}, nil
}

// MarkdownOutput is a markdown file download
type MarkdownOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportMarkdown returns the article as a markdown attachment
func (h *SessionHandler) ExportMarkdown(ctx context.Context, input *SessionIDInput) (*MarkdownOutput, error) {
	if err := requireFeature(ctx, featureflags.MarkdownExportEnabled); err != nil {
		return nil, err
	}
	o, err := h.registry.Lookup(input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	view := o.View()
	name := reader.MarkdownFileName(view.Title)
	return &MarkdownOutput{
		ContentType:        "text/markdown; charset=utf-8",
		ContentDisposition: fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)),
		Body:               []byte(view.Markdown),
	}, nil
}
