package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"reader-assist/infrastructure/cache/keyring"
	"reader-assist/infrastructure/cache/memory"
	"reader-assist/infrastructure/cache/sqlite"
	"reader-assist/pkg/config"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

func TestNewStorage(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		name      string
		cfg       config.StorageConfig
		wantType  interface{}
		hasCloser bool
	}{
		{"memory", config.StorageConfig{Type: config.StorageMemory}, &memory.MemoryCache{}, false},
		{"sqlite", config.StorageConfig{Type: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "s.db")}, &sqlite.Client{}, true},
		{"keyring", config.StorageConfig{Type: config.StorageKeyring, KeyringService: "reader-test"}, &keyring.Client{}, false},
		{"redis unreachable falls back to memory", config.StorageConfig{Type: config.StorageRedis, Redis: config.RedisConfig{Address: "127.0.0.1:1"}}, &memory.MemoryCache{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, closer, err := newStorage(tt.cfg, nopLogger{})
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, cache)
			assert.Equal(t, tt.hasCloser, closer != nil)
			if closer != nil {
				assert.NoError(t, closer.Close())
			}
		})
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	cfg.Storage.Type = config.StorageMemory
	return cfg
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Type = "floppy"

	_, err := newApp(context.Background(), cfg, io.Discard)
	assert.Error(t, err)
}

func TestNewRouter_ServesAPI(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t), io.Discard)
	require.NoError(t, err)
	defer a.Close()

	router, limiter := newRouter(a)
	if limiter != nil {
		defer limiter.Close()
	}

	for _, path := range []string{"/settings", "/toolbar", "/openapi.json"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = "0"
	a, err := newApp(context.Background(), cfg, io.Discard)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, runServer(ctx, a))
}
