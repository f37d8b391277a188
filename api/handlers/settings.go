// ABOUTME: Settings handler for the Huma API
// ABOUTME: Reads and partially updates the settings shared by every overlay

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"reader-assist/api/dto/mappers"
	"reader-assist/api/dto/requests"
	"reader-assist/api/dto/responses"
	"reader-assist/core/interfaces"
	"reader-assist/pkg/featureflags"
)

// SettingsHandler handles settings requests
type SettingsHandler struct {
	store  interfaces.SettingsStore
	logger interfaces.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store interfaces.SettingsStore, logger interfaces.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers all settings routes
func (h *SettingsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get reader settings",
		Description: "Returns the current settings with the API key masked",
		Tags:        []string{"Settings"},
	}, h.GetSettings)

	huma.Register(api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPatch,
		Path:        "/settings",
		Summary:     "Update reader settings",
		Description: "Merges the given fields into the settings; omitted fields keep their value",
		Tags:        []string{"Settings"},
	}, h.UpdateSettings)
}

// GetSettingsOutput defines the output for the GetSettings operation
type GetSettingsOutput struct {
	Body responses.SettingsResponse
}

// GetSettings returns the current settings
func (h *SettingsHandler) GetSettings(ctx context.Context, input *struct{}) (*GetSettingsOutput, error) {
	return &GetSettingsOutput{Body: mappers.ToSettingsResponse(h.store.Get())}, nil
}

// UpdateSettingsInput defines the input for the UpdateSettings operation
type UpdateSettingsInput struct {
	Body requests.UpdateSettingsRequest
}

// UpdateSettings applies a partial settings update
func (h *SettingsHandler) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*GetSettingsOutput, error) {
	if err := requireFeature(ctx, featureflags.SettingsEnabled); err != nil {
		return nil, err
	}

	patch, err := input.Body.ToPatch()
	if err != nil {
		return nil, toHumaError(err)
	}

	updated := h.store.Set(patch)
	h.logger.Info("Settings updated", map[string]interface{}{
		"font_size":  updated.FontSize,
		"page_width": updated.PageWidth,
		"model":      updated.Model,
	})
	return &GetSettingsOutput{Body: mappers.ToSettingsResponse(updated)}, nil
}
