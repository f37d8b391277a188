// ABOUTME: Reader session domain types shared by the session store and toolbar
// ABOUTME: Defines the article identity, summary mode and derived chat panel state

package domain

import "fmt"

// Article identifies the current reading target. Navigation replaces it.
type Article struct {
	Title string `json:"title"`
}

// SummaryType selects the prompt template and scope of a summarization request
type SummaryType string

const (
	SummaryParagraph   SummaryType = "paragraph"
	SummaryFullArticle SummaryType = "full_article"
)

// ParseSummaryType converts a wire value into a SummaryType
func ParseSummaryType(value string) (SummaryType, error) {
	switch SummaryType(value) {
	case SummaryParagraph:
		return SummaryParagraph, nil
	case SummaryFullArticle:
		return SummaryFullArticle, nil
	default:
		return "", fmt.Errorf("unknown summary type %q", value)
	}
}

// SessionState is the per-page-view state of one reader overlay
type SessionState struct {
	SettingStatus bool        `json:"settingStatus"`
	Article       Article     `json:"article"`
	TranslateOn   bool        `json:"translateOn"`
	ChatOn        bool        `json:"chatOn"`
	SummaryType   SummaryType `json:"summaryType"`
}

// NewSessionState returns the state of a freshly mounted overlay
func NewSessionState(article Article) SessionState {
	return SessionState{
		Article:     article,
		SummaryType: SummaryParagraph,
	}
}

// PanelState is the chat panel state derived from a SessionState
type PanelState int

const (
	PanelClosed PanelState = iota
	PanelOpenParagraph
	PanelOpenFullArticle
)

// String implements fmt.Stringer
func (p PanelState) String() string {
	switch p {
	case PanelClosed:
		return "closed"
	case PanelOpenParagraph:
		return "open_paragraph"
	case PanelOpenFullArticle:
		return "open_full_article"
	default:
		return fmt.Sprintf("PanelState(%d)", int(p))
	}
}

// MarshalText lets the panel state appear by name in JSON payloads
func (p PanelState) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Panel derives the chat panel state. An unknown summary type is a
// programming error and panics.
func (s SessionState) Panel() PanelState {
	if !s.ChatOn {
		return PanelClosed
	}
	switch s.SummaryType {
	case SummaryParagraph:
		return PanelOpenParagraph
	case SummaryFullArticle:
		return PanelOpenFullArticle
	default:
		panic(fmt.Sprintf("domain: unknown summary type %q", s.SummaryType))
	}
}
