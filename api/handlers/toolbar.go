// ABOUTME: Toolbar handler for the Huma API
// ABOUTME: Lists the enabled toolbar buttons, optionally for one session

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"reader-assist/api/dto/responses"
	"reader-assist/core/domain"
	"reader-assist/core/overlay"
	"reader-assist/core/toolbar"
)

// ToolbarHandler handles toolbar requests
type ToolbarHandler struct {
	registry *overlay.Registry
}

// NewToolbarHandler creates a new toolbar handler
func NewToolbarHandler(registry *overlay.Registry) *ToolbarHandler {
	return &ToolbarHandler{registry: registry}
}

// RegisterRoutes registers the toolbar routes
func (h *ToolbarHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getToolbar",
		Method:      http.MethodGet,
		Path:        "/toolbar",
		Summary:     "List toolbar buttons",
		Description: "Returns the enabled buttons in display order, with active state when a session is given",
		Tags:        []string{"Toolbar"},
	}, h.GetToolbar)
}

// GetToolbarInput defines the input for the GetToolbar operation
type GetToolbarInput struct {
	Session string `query:"session" doc:"Session id to report active buttons for"`
}

// GetToolbarOutput defines the output for the GetToolbar operation
type GetToolbarOutput struct {
	Body responses.ToolbarResponse
}

// GetToolbar lists the enabled buttons
func (h *ToolbarHandler) GetToolbar(ctx context.Context, input *GetToolbarInput) (*GetToolbarOutput, error) {
	if input.Session == "" {
		state := domain.NewSessionState(domain.Article{})
		return &GetToolbarOutput{Body: responses.ToolbarResponse{Buttons: toolbar.ButtonsFor(ctx, state)}}, nil
	}

	o, err := h.registry.Lookup(input.Session)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetToolbarOutput{Body: responses.ToolbarResponse{Buttons: o.Toolbar.Buttons(ctx)}}, nil
}
