// ABOUTME: Chat backend adapter sending transcripts to OpenAI through eino
// ABOUTME: Builds a chat model per request from the user's key and model settings

package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"reader-assist/core/domain"
	"reader-assist/core/errors"
	"reader-assist/core/interfaces"
)

// Generator is the part of an eino chat model the backend uses
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// ModelFactory builds a chat model for one API key and model name
type ModelFactory func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (Generator, error)

// Options configures the backend
type Options struct {
	// BaseURL overrides the OpenAI-compatible endpoint
	BaseURL string

	// Timeout bounds a single completion
	Timeout time.Duration

	// Factory builds the chat model; defaults to eino's OpenAI model
	Factory ModelFactory
}

// Backend implements interfaces.ChatBackend
type Backend struct {
	baseURL string
	timeout time.Duration
	factory ModelFactory
	logger  interfaces.Logger
}

// NewBackend creates an OpenAI chat backend
func NewBackend(opts Options, logger interfaces.Logger) *Backend {
	factory := opts.Factory
	if factory == nil {
		factory = func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (Generator, error) {
			return einoopenai.NewChatModel(ctx, cfg)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Backend{
		baseURL: opts.BaseURL,
		timeout: timeout,
		factory: factory,
		logger:  logger,
	}
}

// Complete sends the transcript in order and returns the assistant reply
func (b *Backend) Complete(ctx context.Context, settings domain.Settings, transcript domain.Transcript) (domain.ChatMessage, error) {
	if strings.TrimSpace(settings.OpenAIKey) == "" {
		return domain.ChatMessage{}, &errors.ValidationError{Field: "openaiKey", Message: "an OpenAI API key is required"}
	}
	if len(transcript) == 0 {
		return domain.ChatMessage{}, &errors.ValidationError{Field: "transcript", Message: "must not be empty"}
	}

	messages, err := ToSchemaMessages(transcript)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	modelName := settings.Model
	if modelName == "" {
		modelName = domain.DefaultModel
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	chatModel, err := b.factory(ctx, &einoopenai.ChatModelConfig{
		APIKey:  settings.OpenAIKey,
		Model:   modelName,
		BaseURL: b.baseURL,
	})
	if err != nil {
		return domain.ChatMessage{}, errors.WrapError(err, "create chat model")
	}

	start := time.Now()
	reply, err := chatModel.Generate(ctx, messages)
	if err != nil {
		b.logger.Error("Chat completion failed", map[string]interface{}{
			"model":    modelName,
			"messages": len(messages),
			"error":    err.Error(),
		})
		return domain.ChatMessage{}, &errors.ExternalAPIError{
			StatusCode: 502,
			Message:    err.Error(),
			API:        "openai",
		}
	}
	if reply == nil || reply.Role != schema.Assistant {
		return domain.ChatMessage{}, &errors.ExternalAPIError{
			StatusCode: 502,
			Message:    "no assistant reply",
			API:        "openai",
		}
	}

	b.logger.Info("Chat completion finished", map[string]interface{}{
		"model":       modelName,
		"messages":    len(messages),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return domain.AssistantMessage(reply.Content), nil
}

// ToSchemaMessages converts a transcript to eino messages preserving order
func ToSchemaMessages(transcript domain.Transcript) ([]*schema.Message, error) {
	out := make([]*schema.Message, 0, len(transcript))
	for i, msg := range transcript {
		switch msg.Role {
		case domain.RoleSystem:
			out = append(out, schema.SystemMessage(msg.Content))
		case domain.RoleUser:
			out = append(out, schema.UserMessage(msg.Content))
		case domain.RoleAssistant:
			out = append(out, schema.AssistantMessage(msg.Content, nil))
		default:
			return nil, &errors.ValidationError{
				Field:   fmt.Sprintf("transcript[%d].role", i),
				Message: fmt.Sprintf("unknown role %q", msg.Role),
			}
		}
	}
	return out, nil
}
