package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"reader-assist/core/interfaces"
	"reader-assist/pkg/config"
)

// These are integration tests against a live Redis instance.
func skipIfNoRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	if os.Getenv("REDIS_TEST") != "1" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
	}
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	return config.RedisConfig{Address: addr, KeyPrefix: "reader-assist-test:"}
}

func TestNewRedisCache_InvalidAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{})

	if err == nil {
		t.Error("NewRedisCache should return error for empty address")
	}
	if cache != nil {
		t.Error("NewRedisCache should return nil cache for invalid config")
	}
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cfg := skipIfNoRedis(t)

	cache, err := NewRedisCache(cfg)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	key := "reader:settings"
	value := []byte(`{"fontSize":20}`)

	if err := cache.Set(ctx, key, value, 0); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, key); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	cfg := skipIfNoRedis(t)

	cache, err := NewRedisCache(cfg)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Set(ctx, "reader:view", []byte("x"), 100*time.Millisecond); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	if _, err := cache.Get(ctx, "reader:view"); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}
