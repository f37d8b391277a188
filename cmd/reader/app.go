// ABOUTME: Wires configuration, storage, logging and the reader core into one app
// ABOUTME: Shared by every CLI command; Close flushes settings and releases storage

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"reader-assist/core/domain"
	"reader-assist/core/extractor"
	"reader-assist/core/interfaces"
	"reader-assist/core/overlay"
	"reader-assist/core/reader"
	"reader-assist/core/settings"
	"reader-assist/infrastructure/cache/keyring"
	"reader-assist/infrastructure/cache/memory"
	"reader-assist/infrastructure/cache/redis"
	"reader-assist/infrastructure/cache/sqlite"
	"reader-assist/infrastructure/chat/openai"
	stdhttp "reader-assist/infrastructure/http/standard"
	"reader-assist/infrastructure/logger/structured"
	"reader-assist/pkg/config"
	"reader-assist/pkg/featureflags"
)

const teardownTimeout = 5 * time.Second

// app holds the components every command works with
type app struct {
	cfg      *config.Config
	logger   interfaces.Logger
	deps     interfaces.Dependencies
	settings *settings.Store
	reader   *reader.Service
	registry *overlay.Registry
	flags    featureflags.Manager

	closers []io.Closer
}

// newApp builds the app from cfg and loads the persisted settings
func newApp(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOutput,
	})

	a := &app{
		cfg:    cfg,
		logger: logger,
		flags:  featureflags.NewEnvManager("READER_"),
	}

	storage, closer, err := newStorage(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	// The keyring holds small secrets only, so rendered views stay in memory there
	viewCache := storage
	if cfg.Storage.Type == config.StorageKeyring {
		viewCache = memory.NewMemoryCache()
	}

	a.deps = interfaces.Dependencies{
		Cache:      viewCache,
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Reader.FetchTimeout, logger),
		Logger:     logger,
		ChatBackend: openai.NewBackend(openai.Options{
			BaseURL: cfg.Chat.BaseURL,
			Timeout: cfg.Chat.Timeout,
		}, logger),
	}

	a.settings = settings.New(storage, logger)
	a.settings.Init(ctx, domain.DefaultSettings())

	a.reader = reader.NewService(a.deps.Cache, a.deps.HTTPClient, logger, cfg.Reader.CacheTTL)
	a.registry = overlay.NewRegistry(a.settings, extractor.New(cfg.Reader.ContentRootSelector), logger)
	return a, nil
}

// Close unmounts every overlay, writes pending settings and releases storage
func (a *app) Close() error {
	a.registry.UnmountAll()

	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	err := a.settings.Teardown(ctx)

	for _, c := range a.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// newStorage opens the settings storage backend named by cfg.Type
func newStorage(cfg config.StorageConfig, logger interfaces.Logger) (interfaces.Cache, io.Closer, error) {
	switch cfg.Type {
	case config.StorageSQLite:
		client, err := sqlite.NewSQLiteCache(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		logger.Info("Using SQLite storage", map[string]interface{}{"path": cfg.SQLitePath})
		return client, client, nil
	case config.StorageRedis:
		client, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis storage, falling back to memory", map[string]interface{}{
				"address": cfg.Redis.Address,
				"error":   err.Error(),
			})
			return memory.NewMemoryCache(), nil, nil
		}
		logger.Info("Using Redis storage", map[string]interface{}{"address": cfg.Redis.Address})
		return client, client, nil
	case config.StorageKeyring:
		logger.Info("Using OS keyring storage", map[string]interface{}{"service": cfg.KeyringService})
		return keyring.NewKeyringCache(cfg.KeyringService), nil, nil
	default:
		logger.Info("Using memory storage", nil)
		return memory.NewMemoryCache(), nil, nil
	}
}
