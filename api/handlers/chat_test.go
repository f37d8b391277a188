package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reader-assist/api/dto/responses"
	"reader-assist/core/domain"
	"reader-assist/core/errors"
)

func TestCompleteChat_SendsTranscriptInOrder(t *testing.T) {
	env := newTestEnv(t)
	session := mountSession(t, env)
	env.api.Post("/sessions/" + session.ID + "/summary")

	resp := env.api.Post("/sessions/"+session.ID+"/chat/complete", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var got responses.TranscriptResponse
	decode(t, resp.Body, &got)
	require.Equal(t, 3, got.Count)
	assert.Equal(t, domain.RoleAssistant, got.Messages[2].Role)
	assert.Equal(t, "a summary", got.Messages[2].Content)

	require.Len(t, env.backend.transcripts, 1)
	sent := env.backend.transcripts[0]
	require.Len(t, sent, 2)
	assert.Equal(t, domain.RoleSystem, sent[0].Role)
	assert.Equal(t, domain.RoleUser, sent[1].Role)
}

func TestCompleteChat_AppendsFollowUp(t *testing.T) {
	env := newTestEnv(t)
	session := mountSession(t, env)

	resp := env.api.Post("/sessions/"+session.ID+"/chat/complete", map[string]any{"message": "What is this about?"})
	require.Equal(t, http.StatusOK, resp.Code)

	var got responses.TranscriptResponse
	decode(t, resp.Body, &got)
	require.Equal(t, 2, got.Count)
	assert.Equal(t, domain.UserMessage("What is this about?"), got.Messages[0])
}

func TestCompleteChat_EmptyTranscript(t *testing.T) {
	env := newTestEnv(t)
	session := mountSession(t, env)

	resp := env.api.Post("/sessions/"+session.ID+"/chat/complete", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, env.backend.transcripts)
}

func TestCompleteChat_BackendFailureKeepsTranscript(t *testing.T) {
	env := newTestEnv(t)
	env.backend.completeFunc = func(ctx context.Context, settings domain.Settings, transcript domain.Transcript) (domain.ChatMessage, error) {
		return domain.ChatMessage{}, &errors.ExternalAPIError{StatusCode: 502, API: "openai", Message: "upstream"}
	}
	session := mountSession(t, env)

	resp := env.api.Post("/sessions/"+session.ID+"/chat/complete", map[string]any{"message": "hi"})

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	o, _ := env.registry.Lookup(session.ID)
	assert.Equal(t, 1, o.Transcript.Len())
}

func TestTranscript_GetAndReset(t *testing.T) {
	env := newTestEnv(t)
	session := mountSession(t, env)
	env.api.Post("/sessions/" + session.ID + "/summary")

	resp := env.api.Get("/sessions/" + session.ID + "/transcript")
	var got responses.TranscriptResponse
	decode(t, resp.Body, &got)
	assert.Equal(t, 2, got.Count)

	resp = env.api.Delete("/sessions/" + session.ID + "/transcript")
	require.Equal(t, http.StatusOK, resp.Code)
	decode(t, resp.Body, &got)
	assert.Zero(t, got.Count)
}
