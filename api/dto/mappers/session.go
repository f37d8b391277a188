// ABOUTME: Mappers for converting between domain models and API DTOs
// ABOUTME: Builds session, summary, transcript and settings responses

package mappers

import (
	"context"

	"reader-assist/api/dto/responses"
	"reader-assist/core/domain"
	"reader-assist/core/overlay"
	"reader-assist/core/toolbar"
)

// ToSessionResponse converts a mounted overlay to a SessionResponse DTO.
// Toolbar buttons are filtered by the flags carried by ctx.
func ToSessionResponse(ctx context.Context, o *overlay.Overlay) responses.SessionResponse {
	state := o.Session.Snapshot()
	view := o.View()
	return responses.SessionResponse{
		ID:          o.ID(),
		State:       state,
		Panel:       state.Panel().String(),
		Title:       view.Title,
		SiteName:    view.SiteName,
		ReadingTime: view.ReadingTime,
		Buttons:     toolbar.ButtonsFor(ctx, state),
	}
}

// ToSummaryResponse converts a summary outcome
func ToSummaryResponse(ctx context.Context, o *overlay.Overlay, outcome toolbar.SummaryOutcome) responses.SummaryResponse {
	resp := responses.SummaryResponse{
		Session:  ToSessionResponse(ctx, o),
		Appended: outcome.Appended,
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}
	return resp
}

// ToTranscriptResponse converts a transcript
func ToTranscriptResponse(transcript domain.Transcript) responses.TranscriptResponse {
	messages := transcript.Clone()
	return responses.TranscriptResponse{
		Messages: messages,
		Count:    len(messages),
	}
}

// ToSettingsResponse masks the API key and attaches the panel options
func ToSettingsResponse(settings domain.Settings) responses.SettingsResponse {
	spacings := make([]responses.LineSpacingOption, 0, len(domain.LineSpacings))
	for _, s := range domain.LineSpacings {
		spacings = append(spacings, responses.LineSpacingOption{Label: s.Label(), Value: s})
	}
	return responses.SettingsResponse{
		Settings: settings.Masked(),
		Options: responses.SettingsOptions{
			Fonts:             domain.Fonts,
			LineSpacings:      spacings,
			TranslateServices: domain.TranslateServices,
			FontSize:          responses.RangeOption{Min: domain.MinFontSize, Max: domain.MaxFontSize, Step: 1},
			PageWidth:         responses.RangeOption{Min: domain.MinPageWidth, Max: domain.MaxPageWidth, Step: domain.PageWidthStep},
		},
	}
}
