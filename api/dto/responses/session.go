// ABOUTME: Response DTOs for the reader session endpoints
// ABOUTME: Session state, summary outcomes, transcripts and toolbar buttons

package responses

import (
	"reader-assist/core/domain"
	"reader-assist/core/toolbar"
)

// SessionResponse describes a mounted reader overlay
type SessionResponse struct {
	ID          string              `json:"id" doc:"Session id"`
	State       domain.SessionState `json:"state"`
	Panel       string              `json:"panel" enum:"closed,open_paragraph,open_full_article" doc:"Derived chat panel state"`
	Title       string              `json:"title"`
	SiteName    string              `json:"siteName,omitempty"`
	ReadingTime string              `json:"readingTime,omitempty"`
	Buttons     []toolbar.Button    `json:"buttons" doc:"Enabled toolbar buttons in display order"`
}

// SummaryResponse reports the result of the full-article summary action
type SummaryResponse struct {
	Session  SessionResponse `json:"session"`
	Appended int             `json:"appended" doc:"Messages appended to the transcript"`
	Error    string          `json:"error,omitempty" doc:"Why no summary request was built"`
}

// TranscriptResponse is the conversation of one session
type TranscriptResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
	Count    int                  `json:"count"`
}

// ToolbarResponse lists the enabled toolbar buttons
type ToolbarResponse struct {
	Buttons []toolbar.Button `json:"buttons"`
}
