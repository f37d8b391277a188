// ABOUTME: Toolbar controller translating user actions into session state transitions
// ABOUTME: Runs the extract, assemble and append pipeline for full-article summaries

package toolbar

import (
	"context"
	"fmt"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
	"reader-assist/core/extractor"
	"reader-assist/core/interfaces"
	"reader-assist/core/prompt"
	"reader-assist/core/session"
	"reader-assist/core/transcript"
	"reader-assist/pkg/featureflags"
)

// SettingsSource provides the current settings snapshot
type SettingsSource interface {
	Get() domain.Settings
}

// SummaryOutcome reports what a full-article summary action did
type SummaryOutcome struct {
	State    domain.SessionState `json:"state"`
	Panel    domain.PanelState   `json:"panel"`
	Appended int                 `json:"appended"`
	Err      error               `json:"-"`
}

// Controller drives one reader session from toolbar actions
type Controller struct {
	session    *session.State
	transcript *transcript.Store
	settings   SettingsSource
	extractor  *extractor.Extractor
	logger     interfaces.Logger
}

// NewController wires a controller for one mounted session
func NewController(
	state *session.State,
	messages *transcript.Store,
	settings SettingsSource,
	ext *extractor.Extractor,
	logger interfaces.Logger,
) *Controller {
	if ext == nil {
		ext = extractor.New("")
	}
	return &Controller{
		session:    state,
		transcript: messages,
		settings:   settings,
		extractor:  ext,
		logger:     logger,
	}
}

// Panel returns the current chat panel state
func (c *Controller) Panel() domain.PanelState {
	return c.session.Snapshot().Panel()
}

// ToggleChat switches to paragraph mode and flips the chat panel: any open
// panel closes, a closed panel opens in paragraph mode
func (c *Controller) ToggleChat() domain.SessionState {
	return c.session.Update(func(st *domain.SessionState) {
		st.SummaryType = domain.SummaryParagraph
		st.ChatOn = !st.ChatOn
	})
}

// SummarizeFullArticle switches to full-article mode and flips the chat panel
// once. When the panel opened it extracts the article from doc and appends a
// summary request to the transcript. Failures leave the transcript untouched
// and are reported in the outcome, never returned or panicked.
func (c *Controller) SummarizeFullArticle(doc extractor.Document) SummaryOutcome {
	state := c.session.Update(func(st *domain.SessionState) {
		st.SummaryType = domain.SummaryFullArticle
		st.ChatOn = !st.ChatOn
	})
	outcome := SummaryOutcome{State: state, Panel: state.Panel()}

	if !state.ChatOn {
		c.logger.Debug("Chat panel closed, no summary requested", map[string]interface{}{
			"session_id": c.session.ID(),
		})
		return outcome
	}

	article, ok := c.extractor.Extract(doc)
	if !ok {
		outcome.Err = &errors.ExtractionError{
			Selector: c.extractor.Selector(),
			Err:      extractionCause(doc, c.extractor.Selector()),
		}
		c.logger.Error("No article content found", map[string]interface{}{
			"session_id": c.session.ID(),
			"selector":   c.extractor.Selector(),
			"error":      outcome.Err.Error(),
		})
		return outcome
	}

	before := c.transcript.Current()
	messages, err := prompt.BuildSummaryRequest(article, state.SummaryType, c.settings.Get().SummaryPrompt, before)
	if err != nil {
		outcome.Err = errors.WrapError(err, "build summary request")
		c.logger.Error("Failed to build summary request", map[string]interface{}{
			"session_id": c.session.ID(),
			"error":      err.Error(),
		})
		return outcome
	}

	added := messages[len(before):]
	c.transcript.Append(added...)
	outcome.Appended = len(added)

	c.logger.Info("Full article summary requested", map[string]interface{}{
		"session_id":    c.session.ID(),
		"article_chars": len(article),
		"messages":      len(before) + len(added),
	})
	return outcome
}

// ToggleTranslate flips page translation
func (c *Controller) ToggleTranslate() domain.SessionState {
	return c.session.Update(func(st *domain.SessionState) {
		st.TranslateOn = !st.TranslateOn
	})
}

// ToggleSettingsPanel shows or hides the settings panel
func (c *Controller) ToggleSettingsPanel() domain.SessionState {
	return c.session.Update(func(st *domain.SessionState) {
		st.SettingStatus = !st.SettingStatus
	})
}

// Navigate replaces the article, resets the session and starts a new conversation
func (c *Controller) Navigate(article domain.Article) domain.SessionState {
	state := c.session.Update(func(st *domain.SessionState) {
		*st = domain.NewSessionState(article)
	})
	c.transcript.Reset()
	return state
}

func extractionCause(doc extractor.Document, selector string) error {
	if doc == nil || doc.Find(selector).Length() == 0 {
		return errors.ErrNoContentRoot
	}
	return errors.ErrEmptyContent
}

// ButtonID names a toolbar button
type ButtonID string

const (
	ButtonChat        ButtonID = "chat"
	ButtonFullSummary ButtonID = "full_article_summary"
	ButtonTranslate   ButtonID = "translate"
	ButtonMarkdown    ButtonID = "markdown"
	ButtonSettings    ButtonID = "settings"
)

// Button describes one toolbar entry
type Button struct {
	ID     ButtonID `json:"id"`
	Label  string   `json:"label"`
	Active bool     `json:"active"`
}

var buttonOrder = []struct {
	id    ButtonID
	label string
	flag  featureflags.FeatureFlag
}{
	{ButtonChat, "OpenAI", featureflags.ChatEnabled},
	{ButtonFullSummary, "Summarize full article", featureflags.FullArticleSummaryEnabled},
	{ButtonTranslate, "Translate", featureflags.TranslateEnabled},
	{ButtonMarkdown, "Download Markdown", featureflags.MarkdownExportEnabled},
	{ButtonSettings, "Settings", featureflags.SettingsEnabled},
}

// Buttons returns the enabled toolbar buttons in display order with their
// active state for this session
func (c *Controller) Buttons(ctx context.Context) []Button {
	return ButtonsFor(ctx, c.session.Snapshot())
}

// ButtonsFor returns the enabled toolbar buttons for state. Flags come from
// the manager carried by ctx.
func ButtonsFor(ctx context.Context, state domain.SessionState) []Button {
	panel := state.Panel()
	buttons := make([]Button, 0, len(buttonOrder))
	for _, b := range buttonOrder {
		if !featureflags.IsEnabled(ctx, b.flag) {
			continue
		}
		buttons = append(buttons, Button{
			ID:     b.id,
			Label:  b.label,
			Active: isActive(b.id, state, panel),
		})
	}
	return buttons
}

func isActive(id ButtonID, state domain.SessionState, panel domain.PanelState) bool {
	switch id {
	case ButtonChat:
		return panel == domain.PanelOpenParagraph
	case ButtonFullSummary:
		return panel == domain.PanelOpenFullArticle
	case ButtonTranslate:
		return state.TranslateOn
	case ButtonSettings:
		return state.SettingStatus
	case ButtonMarkdown:
		return false
	default:
		panic(fmt.Sprintf("toolbar: unknown button %q", id))
	}
}
