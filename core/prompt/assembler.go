// ABOUTME: Prompt assembler that turns extracted article text into a chat request
// ABOUTME: Selects the system template by summary mode or user override and appends system then user turns

package prompt

import (
	"fmt"
	"strings"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
)

// FullArticleTemplate asks for a structured multi-section summary
const FullArticleTemplate = `You are a professional article summarization assistant. Write a comprehensive summary of the following article covering:
1. The main points and arguments
2. Key evidence and supporting data
3. The structure and logic of the article
4. The author's conclusions or recommendations

Use a clear structure and concise language.`

// ParagraphTemplate asks for a short summary of the selected passage
const ParagraphTemplate = `You are a reading assistant. Summarize the following passage in one concise paragraph, keeping its key facts and the author's intent. Do not add information that is not in the text.`

// DefaultTemplate returns the built-in system prompt for mode. An unknown mode
// is a programming error and panics.
func DefaultTemplate(mode domain.SummaryType) string {
	switch mode {
	case domain.SummaryFullArticle:
		return FullArticleTemplate
	case domain.SummaryParagraph:
		return ParagraphTemplate
	default:
		panic(fmt.Sprintf("prompt: unknown summary type %q", mode))
	}
}

// SelectTemplate returns customPrompt when the user configured one, otherwise
// the default for mode
func SelectTemplate(mode domain.SummaryType, customPrompt string) string {
	if customPrompt != "" {
		return customPrompt
	}
	return DefaultTemplate(mode)
}

// BuildSummaryRequest returns prior followed by a system turn carrying the
// selected template and a user turn carrying the article. prior is not modified.
func BuildSummaryRequest(article string, mode domain.SummaryType, customPrompt string, prior domain.Transcript) (domain.Transcript, error) {
	if strings.TrimSpace(article) == "" {
		return nil, &errors.ValidationError{
			Field:   "article",
			Message: "must not be empty",
		}
	}

	out := make(domain.Transcript, 0, len(prior)+2)
	out = append(out, prior...)
	out = append(out,
		domain.SystemMessage(SelectTemplate(mode, customPrompt)),
		domain.UserMessage(article),
	)
	return out, nil
}
