package handlers

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"reader-assist/core/domain"
	"reader-assist/core/overlay"
	"reader-assist/pkg/featureflags"
)

const testPageContent = `<div class="page"><h1>Test Article</h1><p>First paragraph of the article.</p><p>Second paragraph.</p></div>`

// mockReaderService is a mock implementation of the reader service
type mockReaderService struct {
	renderFunc func(ctx context.Context, pageURL string, page io.Reader) (domain.ReaderView, error)
	fetchFunc  func(ctx context.Context, pageURL string) (domain.ReaderView, error)
}

func (m *mockReaderService) Render(ctx context.Context, pageURL string, page io.Reader) (domain.ReaderView, error) {
	if m.renderFunc != nil {
		return m.renderFunc(ctx, pageURL, page)
	}
	return testReaderView(pageURL), nil
}

func (m *mockReaderService) Fetch(ctx context.Context, pageURL string) (domain.ReaderView, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, pageURL)
	}
	return testReaderView(pageURL), nil
}

func testReaderView(pageURL string) domain.ReaderView {
	return domain.ReaderView{
		URL:         pageURL,
		Title:       "Test Article",
		SiteName:    "Example",
		Content:     testPageContent,
		Markdown:    "# Test Article\n\nFirst paragraph of the article.\n",
		ReadingTime: "1 minute",
	}
}

// mockSettingsStore records every patch it applies
type mockSettingsStore struct {
	mu       sync.Mutex
	settings domain.Settings
	patches  []domain.SettingsPatch
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{settings: domain.DefaultSettings()}
}

func (m *mockSettingsStore) Get() domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

func (m *mockSettingsStore) Set(patch domain.SettingsPatch) domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patches = append(m.patches, patch)
	m.settings = patch.Apply(m.settings)
	return m.settings
}

// mockChatBackend records the transcripts it receives
type mockChatBackend struct {
	mu           sync.Mutex
	transcripts  []domain.Transcript
	completeFunc func(ctx context.Context, settings domain.Settings, transcript domain.Transcript) (domain.ChatMessage, error)
}

func (m *mockChatBackend) Complete(ctx context.Context, settings domain.Settings, transcript domain.Transcript) (domain.ChatMessage, error) {
	m.mu.Lock()
	m.transcripts = append(m.transcripts, transcript.Clone())
	m.mu.Unlock()
	if m.completeFunc != nil {
		return m.completeFunc(ctx, settings, transcript)
	}
	return domain.AssistantMessage("a summary"), nil
}

type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}

type testEnv struct {
	api      humatest.TestAPI
	registry *overlay.Registry
	reader   *mockReaderService
	settings *mockSettingsStore
	backend  *mockChatBackend
	flags    *featureflags.StaticManager
}

// newTestEnv registers every handler on a test API whose requests carry flags
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	_, api := humatest.New(t)

	env := &testEnv{
		api:      api,
		reader:   &mockReaderService{},
		settings: newMockSettingsStore(),
		backend:  &mockChatBackend{},
		flags:    featureflags.NewStaticManager(featureflags.Defaults),
	}
	env.registry = overlay.NewRegistry(env.settings, nil, mockLogger{})

	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, featureflags.WithManager(ctx.Context(), env.flags)))
	})

	NewSessionHandler(env.registry, env.reader, mockLogger{}).RegisterRoutes(api)
	NewChatHandler(env.registry, env.settings, env.backend, mockLogger{}).RegisterRoutes(api)
	NewSettingsHandler(env.settings, mockLogger{}).RegisterRoutes(api)
	NewToolbarHandler(env.registry).RegisterRoutes(api)
	return env
}

func decode(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(v))
}
