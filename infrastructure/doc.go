// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: storage, HTTP, logging and the chat backend.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory store backed by go-cache
// - cache/sqlite: file-backed store on SQLite
// - cache/redis: Redis-backed store
// - cache/keyring: OS credential store, for settings that carry an API key
// - chat/openai: chat backend on eino's OpenAI model
// - http/standard: standard library HTTP client with retry logic
// - logger/structured: logrus logger with text or JSON output
//
// # Storage
//
// Every store implements interfaces.Cache. A ttl of 0 keeps the value until
// it is deleted.
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "reader:settings", data, 0)
//	value, err := cache.Get(ctx, "reader:settings")
//
//	redisCache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30*time.Second, logger)
//	resp, err := client.Get(ctx, "https://example.com/article")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "debug", Format: "json"})
//	logger.Info("Settings updated", map[string]interface{}{
//	    "font_size": 20,
//	})
package infrastructure
