// ABOUTME: Service interfaces for external collaborators of the reader core
// ABOUTME: The chat backend receives transcripts; the core only builds them

package interfaces

import (
	"context"
	"io"

	"reader-assist/core/domain"
)

// ChatBackend sends an ordered transcript to the AI provider and returns the
// assistant reply. Message order must be preserved verbatim.
type ChatBackend interface {
	Complete(ctx context.Context, settings domain.Settings, transcript domain.Transcript) (domain.ChatMessage, error)
}

// ReaderService renders pages into reader views
type ReaderService interface {
	Render(ctx context.Context, pageURL string, page io.Reader) (domain.ReaderView, error)
	Fetch(ctx context.Context, pageURL string) (domain.ReaderView, error)
}

// SettingsStore is the shared settings record
type SettingsStore interface {
	Get() domain.Settings
	Set(patch domain.SettingsPatch) domain.Settings
}
