package prompt

import (
	"testing"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
)

func TestBuildSummaryRequest_AppendsSystemThenUser(t *testing.T) {
	priors := []domain.Transcript{
		nil,
		{},
		{domain.UserMessage("hi"), domain.AssistantMessage("hello")},
		{
			domain.SystemMessage("old prompt"),
			domain.UserMessage("old article"),
			domain.AssistantMessage("old summary"),
			domain.UserMessage("follow up"),
		},
	}

	for _, prior := range priors {
		for _, mode := range []domain.SummaryType{domain.SummaryParagraph, domain.SummaryFullArticle} {
			got, err := BuildSummaryRequest("Article body", mode, "", prior)
			if err != nil {
				t.Fatalf("BuildSummaryRequest failed: %v", err)
			}
			if len(got) != len(prior)+2 {
				t.Fatalf("len = %d, want %d", len(got), len(prior)+2)
			}
			for i := range prior {
				if got[i] != prior[i] {
					t.Errorf("entry %d changed: %+v -> %+v", i, prior[i], got[i])
				}
			}
			system, user := got[len(got)-2], got[len(got)-1]
			if system.Role != domain.RoleSystem || user.Role != domain.RoleUser {
				t.Errorf("roles = %s, %s; want system, user", system.Role, user.Role)
			}
			if user.Content != "Article body" {
				t.Errorf("user content = %q", user.Content)
			}
		}
	}
}

func TestBuildSummaryRequest_DoesNotMutatePrior(t *testing.T) {
	prior := make(domain.Transcript, 1, 8)
	prior[0] = domain.UserMessage("first")

	got, err := BuildSummaryRequest("text", domain.SummaryFullArticle, "", prior)
	if err != nil {
		t.Fatal(err)
	}
	got[0].Content = "changed"

	if prior[0].Content != "first" {
		t.Error("result shares storage with prior")
	}
	if extended := prior[:2]; extended[1].Content != "" {
		t.Errorf("prior backing array was written: %+v", extended[1])
	}
}

func TestBuildSummaryRequest_TemplateSelection(t *testing.T) {
	tests := []struct {
		name   string
		mode   domain.SummaryType
		custom string
		want   string
	}{
		{"full article default", domain.SummaryFullArticle, "", FullArticleTemplate},
		{"paragraph default", domain.SummaryParagraph, "", ParagraphTemplate},
		{"custom overrides full article", domain.SummaryFullArticle, "Summarize in 3 bullets", "Summarize in 3 bullets"},
		{"custom overrides paragraph", domain.SummaryParagraph, "TL;DR please", "TL;DR please"},
		{"whitespace custom is kept verbatim", domain.SummaryFullArticle, "  ", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSummaryRequest("article", tt.mode, tt.custom, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got[0].Content != tt.want {
				t.Errorf("system content = %q, want %q", got[0].Content, tt.want)
			}
		})
	}
}

func TestBuildSummaryRequest_RejectsEmptyArticle(t *testing.T) {
	for _, article := range []string{"", "   ", "\n\t"} {
		got, err := BuildSummaryRequest(article, domain.SummaryFullArticle, "", domain.Transcript{domain.UserMessage("x")})
		if !errors.IsValidation(err) {
			t.Errorf("BuildSummaryRequest(%q) err = %v, want validation error", article, err)
		}
		if got != nil {
			t.Errorf("BuildSummaryRequest(%q) returned %v", article, got)
		}
	}
}

func TestDefaultTemplate_UnknownModePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("DefaultTemplate should panic on an unknown mode")
		}
	}()
	DefaultTemplate("chapter")
}
