// ABOUTME: Request DTOs for the settings endpoints
// ABOUTME: Converts a partial JSON update into a clamped, validated settings patch

package requests

import (
	"fmt"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
)

// UpdateSettingsRequest carries only the settings the user changed
type UpdateSettingsRequest struct {
	FontFamily       *string `json:"fontFamily,omitempty" doc:"Font family name" example:"Georgia"`
	FontSize         *int    `json:"fontSize,omitempty" doc:"Font size in px, clamped to 12-40" example:"20"`
	LineSpacing      *string `json:"lineSpacing,omitempty" doc:"Line height: 1.4em, 1.8em or 2.4em" example:"1.8em"`
	PageWidth        *int    `json:"pageWidth,omitempty" doc:"Page width in px, clamped to 400-1900 in steps of 10" example:"800"`
	TranslateService *string `json:"translateService,omitempty" doc:"Translation backend" example:"google_translate"`
	OpenAIKey        *string `json:"openaiKey,omitempty" doc:"OpenAI API key"`
	Model            *string `json:"model,omitempty" doc:"Chat model name" example:"gpt-4o-mini"`
	SummaryPrompt    *string `json:"summaryPrompt,omitempty" doc:"Custom summary system prompt; empty restores the default"`
}

// ToPatch validates enum fields, clamps numeric ones and returns the patch
func (r UpdateSettingsRequest) ToPatch() (domain.SettingsPatch, error) {
	patch := domain.SettingsPatch{
		FontFamily:    r.FontFamily,
		OpenAIKey:     r.OpenAIKey,
		Model:         r.Model,
		SummaryPrompt: r.SummaryPrompt,
	}

	if r.FontSize != nil {
		size := domain.ClampFontSize(*r.FontSize)
		patch.FontSize = &size
	}
	if r.PageWidth != nil {
		width := domain.ClampPageWidth(*r.PageWidth)
		patch.PageWidth = &width
	}

	if r.LineSpacing != nil {
		spacing := domain.LineSpacing(*r.LineSpacing)
		if !isKnownLineSpacing(spacing) {
			return domain.SettingsPatch{}, &errors.ValidationError{
				Field:   "lineSpacing",
				Message: fmt.Sprintf("unknown line spacing %q", *r.LineSpacing),
			}
		}
		patch.LineSpacing = &spacing
	}

	if r.TranslateService != nil {
		service := domain.TranslateService(*r.TranslateService)
		if !service.IsValid() {
			return domain.SettingsPatch{}, &errors.ValidationError{
				Field:   "translateService",
				Message: fmt.Sprintf("unknown translation service %q", *r.TranslateService),
			}
		}
		patch.TranslateService = &service
	}

	if patch.IsEmpty() {
		return domain.SettingsPatch{}, &errors.ValidationError{Field: "body", Message: "no settings to update"}
	}
	return patch, nil
}

func isKnownLineSpacing(spacing domain.LineSpacing) bool {
	for _, known := range domain.LineSpacings {
		if spacing == known {
			return true
		}
	}
	return false
}
